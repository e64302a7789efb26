// Package ijroi reads and writes ImageJ-style ROI annotations: standalone
// ".roi" records, "RoiSet" zip archives, and multi-frame TIFF containers
// whose metadata tags carry an overlay of outlines.
//
// # Core Features
//
//   - Faithful big-endian ROI record codec with full header coverage
//   - Overlay metadata blocks in either container byte order
//   - A TIFF writer that decorates the standard encoder with metadata tags
//   - Track recovery: outlines sharing a name across frames form a track
//   - Session checkpoints with pluggable compression (None, Zstd, S2, LZ4)
//
// # Basic Usage
//
// Writing an annotated container:
//
//	import "github.com/arloliu/ijroi"
//
//	f, _ := os.Create("stack.tif")
//	w, _ := ijroi.NewWriter(f)
//
//	// Outlines queued before the first frame ride in its metadata tags.
//	w.AddROI(outline, "cellA", 0, 0, 0)
//	w.AddROI(outline, "", 0, 0, 0) // named F01-C1
//
//	w.WriteImage(frame0)
//	w.WriteImage(frame1)
//	w.Close()
//	f.Close()
//
// Reading the annotations back:
//
//	md, _ := ijroi.ReadMetadata(f)
//	for rec := range md.Overlays.All() {
//	    fmt.Printf("%s on frame %d\n", rec.Name, rec.Position)
//	}
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the roi and
// tiffmeta packages, simplifying the most common use cases. For
// fine-grained control over records, blocks, and containers, use those
// packages directly.
package ijroi

import (
	"image"
	"io"

	"github.com/arloliu/ijroi/internal/hash"
	"github.com/arloliu/ijroi/roi"
	"github.com/arloliu/ijroi/tiffmeta"
)

// EncodeROI serializes one outline into a ROI record.
//
// The record is big-endian and self-contained: header, coordinate planes,
// secondary header, and name. Options control the name, the hyperstack
// position, and the per-frame index used for name synthesis.
//
// Parameters:
//   - points: Outline vertices in image coordinates
//   - opts: Optional configuration functions (see roi.EncodeOption)
//
// Returns:
//   - []byte: The encoded record.
//   - error: An error if the outline is empty or does not fit the format.
//
// Example:
//
//	record, err := ijroi.EncodeROI(points,
//	    roi.WithName("cellA"),
//	    roi.WithPosition(0, 0, 2),
//	)
func EncodeROI(points []image.Point, opts ...roi.EncodeOption) ([]byte, error) {
	return roi.Encode(points, opts...)
}

// DecodeROI parses a ROI record into its structured form.
//
// Records written by any producer of the format are accepted: unknown
// roi_type values decode with their header fields and name preserved,
// only the coordinate planes are left nil.
//
// Parameters:
//   - data: The raw record bytes
//
// Returns:
//   - *roi.Record: The decoded record.
//   - error: An error if the record is truncated or its offsets are bad.
func DecodeROI(data []byte) (*roi.Record, error) {
	return roi.Decode(data)
}

// NewWriter creates a TIFF container writer emitting to w on Close.
//
// The writer wraps the standard TIFF encoder: each WriteImage call appends
// one frame, and ROI records queued with AddROI are attached to the first
// frame written while records are pending. See tiffmeta.Writer for the
// exact one-shot semantics.
//
// Parameters:
//   - w: Destination for the finished container
//   - opts: Optional configuration functions (see tiffmeta.WriterOption)
//
// Returns:
//   - *tiffmeta.Writer: The created writer.
//   - error: An error if the configuration is invalid.
//
// Available options:
//   - tiffmeta.WithTIFFOptions(...) for frame encoding
//   - tiffmeta.WithDescription(...) for the description tag
//   - tiffmeta.WithCheckpointCompression(...) for session snapshots
func NewWriter(w io.Writer, opts ...tiffmeta.WriterOption) (*tiffmeta.Writer, error) {
	return tiffmeta.NewWriter(w, opts...)
}

// ReadMetadata scans a TIFF container for annotation metadata.
//
// Plain TIFF files yield empty metadata and no error. Overlay records are
// decoded best-effort; see tiffmeta.ReadMetadata for the error contract.
//
// Parameters:
//   - r: The container, addressable at arbitrary offsets
//
// Returns:
//   - *tiffmeta.Metadata: Description, raw tag payloads, and decoded overlays.
//   - error: An error if the container or its metadata block is malformed.
func ReadMetadata(r io.ReaderAt) (*tiffmeta.Metadata, error) {
	return tiffmeta.ReadMetadata(r)
}

// Decode reads a container's first frame along with its metadata.
func Decode(r io.Reader) (image.Image, *tiffmeta.Metadata, error) {
	return tiffmeta.Decode(r)
}

// DecodeFrames reads every frame of a multi-page container along with its
// metadata.
func DecodeFrames(r io.Reader) ([]image.Image, *tiffmeta.Metadata, error) {
	return tiffmeta.DecodeFrames(r)
}

// WriteRoiSet packs encoded ROI records into a "RoiSet" zip archive, the
// exchange format annotation tools use for bundles of standalone records.
//
// Parameters:
//   - w: Destination for the archive
//   - records: Encoded ROI records
//
// Returns:
//   - error: An error if a record cannot be named or the archive fails.
func WriteRoiSet(w io.Writer, records [][]byte) error {
	return roi.WriteRoiSet(w, records)
}

// ReadRoiSet extracts the encoded ROI records from a "RoiSet" zip archive.
//
// Parameters:
//   - r: The archive, addressable at arbitrary offsets
//   - size: The archive size in bytes
//
// Returns:
//   - [][]byte: The raw records, one per ".roi" entry, in archive order.
//   - error: An error if the archive cannot be opened.
func ReadRoiSet(r io.ReaderAt, size int64) ([][]byte, error) {
	return roi.ReadRoiSet(r, size)
}

// TrackID converts a track name to its 64-bit hash identifier.
//
// Outlines that keep their name across frames form a track; the hash gives
// tracks a fixed-size identity for map keys and cross-container joins.
// The same name always produces the same ID. Distinct names can collide;
// OverlaySet.HasCollision reports when that happened so callers can fall
// back to exact name lookups.
//
// Example:
//
//	id := ijroi.TrackID("cellA")
//	records := md.Overlays.Tracks()[id]
func TrackID(name string) uint64 {
	return hash.ID(name)
}
