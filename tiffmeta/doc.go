// Package tiffmeta writes and reads multi-frame TIFF containers whose
// first frame carries ROI overlay metadata in vendor tags.
//
// # Container Layout
//
// Writer wraps the standard TIFF encoder rather than reimplementing it:
// every frame is encoded as a plain single-frame TIFF, then spliced into
// one growing container by copying the frame bytes verbatim, rebasing its
// IFD offsets, and linking the IFDs into a chain:
//
//	┌────────┬──────────────┬───────┬──────────────┬───────┬─────┐
//	│ header │ frame 0 data │ IFD 0 │ frame 1 data │ IFD 1 │ ... │
//	└────────┴──────────────┴───────┴──────────────┴───────┴─────┘
//	              ▲             │  extra tags  ▲       │
//	              └─────────────┘              └───────┘
//
// The first frame's IFD gains an ImageDescription tag (270) holding the
// "ImageJ=" marker, and the metadata block rides in two vendor tags:
// 50838 holds the byte-count table, 50839 the block itself. The block
// header follows the container's byte order while the ROI record payloads
// inside stay big-endian, matching what annotation-aware viewers expect.
//
// # One-Shot Metadata
//
// The metadata tags are attached exactly once per writer, on the first
// frame written while ROI records are pending. Records queued after that
// frame accumulate in the writer but are never emitted:
//
//	w, _ := tiffmeta.NewWriter(f)
//	w.AddROI(outline, "", 0, 0, 0) // named F01-C1
//	w.WriteImage(frame0)           // carries description + metadata tags
//	w.AddROI(outline, "", 0, 0, 1) // queued, never written
//	w.WriteImage(frame1)
//	err := w.Close()
//
// Checkpoint and Restore serialize this annotation state (pending
// records, per-frame counters, emission flag) so an interrupted session
// can continue in a fresh writer.
//
// # Reading
//
// ReadMetadata scans any TIFF container for the metadata tags and splits
// the block back into records; plain TIFF files yield empty metadata
// rather than an error. Decode and DecodeFrames pair the metadata with
// the pixel data, the latter serving every frame of the chain through the
// standard single-frame decoder.
package tiffmeta
