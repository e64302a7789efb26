// Package roi encodes and decodes ROI records: self-contained binary
// descriptions of image outlines that annotation-aware viewers read from
// ".roi" files, "RoiSet" zip archives, and TIFF metadata blocks.
//
// # Record Structure
//
// Every record is a single big-endian byte sequence with four sections:
//
//	┌──────────────────┬─────────────────────┬───────────────────┬──────────────┐
//	│ primary header   │ coordinate planes   │ secondary header  │ UTF-16 name  │
//	│ 64 bytes         │ 4*n bytes           │ 52 bytes          │ 2*len bytes  │
//	└──────────────────┴─────────────────────┴───────────────────┴──────────────┘
//
// The primary header's header2_offset field locates the secondary header,
// and the secondary header's name_offset/name_length pair locates the
// name, so decoders never have to infer section positions. Package section
// documents both headers field by field.
//
// # Encoding
//
// Encode always produces freehand records: the outline's vertices are
// stored verbatim as 16-bit coordinate pairs, translated so the
// bounding-box origin lands at (0, 0):
//
//	record, err := roi.Encode(points,
//		roi.WithPosition(0, 0, 2), // frame t=2, recorded as position 3
//		roi.WithName("cellA"),
//	)
//
// Records encoded without a name get one synthesized from the frame and
// the per-frame object index ("F03-C1") or, when no index is given, a
// random hex suffix ("F03-9ae41f2c"). Names double as track keys: an
// object keeping its name across frames forms a track, recoverable from
// OverlaySet.Tracks after decoding.
//
// # Blocks
//
// AssembleBlock packs records into the metadata block stored in a TIFF
// container, returning the block plus the byte-count table that records
// its internal boundaries. SplitBlock reverses the operation for blocks
// read back from a container, including blocks written by other software
// that interleave overlay records with info, label, range, and LUT
// segments.
//
// # Foreign Records
//
// Decode handles records this package never writes: any roi_type byte is
// accepted, coordinate planes are decoded only for the coordinate-bearing
// types, and the coordinate count is read with unsigned semantics. Header
// fields the encoder leaves zero (colors, stroke widths, subtypes) are
// surfaced on Record so no information is dropped.
package roi
