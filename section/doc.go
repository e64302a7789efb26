// Package section defines the low-level binary structures and constants of
// the ImageJ ROI and metadata block format.
//
// This package provides the foundational layout tables and constants that
// define the physical shape of ROI records and of the "IJIJ" metadata block
// embedded in TIFF containers. Higher-level encoding and decoding lives in
// the roi package; container splicing lives in the tiffmeta package.
//
// # Overview
//
// The section package defines three things:
//
//  1. Layouts: the primary and secondary ROI header field tables
//     (RoiHeaderLayout, RoiHeader2Layout)
//  2. MetaHeader: the block header (magic + per-kind entry counts)
//  3. Constants: magic values, metadata kinds, sizes and TIFF tag IDs
//
// ROI record payloads are big-endian regardless of the byte order of the
// surrounding TIFF container. The block header alone follows the container's
// byte order, since the consuming software reads it through the container.
//
// # ROI Record Structure
//
// One ROI record is laid out as four consecutive sections:
//
//	┌─────────────────────────────────────────────────────────┐
//	│ Primary header (64 bytes, fixed)                        │
//	│  - "Iout" tag, version, roi_type                        │
//	│  - bounding box (top, left, bottom, right)              │
//	│  - n_coordinates                                        │
//	│  - display attributes, position                         │
//	│  - header2_offset ──────────────────────┐               │
//	├─────────────────────────────────────────│───────────────┤
//	│ Coordinate data (4 × n bytes)           │               │
//	│  - all x values, then all y values      │               │
//	│  - int16 pairs relative to (left, top)  │               │
//	├─────────────────────────────────────────▼───────────────┤
//	│ Secondary header (52 bytes, fixed)                      │
//	│  - c/z/t indices                                        │
//	│  - name_offset ──────────────────────────┐              │
//	│  - name_length (UTF-16 code units)       │              │
//	│  - overlay display attributes            │              │
//	├──────────────────────────────────────────▼──────────────┤
//	│ Name (2 × name_length bytes, optional)                  │
//	│  - UTF-16 big-endian text                               │
//	└─────────────────────────────────────────────────────────┘
//
// For encoder-produced records the offsets are fully determined:
//
//	header2_offset = 64 + 4*n_coordinates
//	name_offset    = header2_offset + 52
//
// # Primary Header Format
//
// RoiHeaderLayout (64 bytes):
//
//	Bytes  | Field                       | Type  | Description
//	-------|-----------------------------|-------|---------------------------
//	0-3    | _iout                       | bytes | Always "Iout"
//	4-5    | version                     | int16 | Format version (226)
//	6      | roi_type                    | int8  | Shape type (0-10)
//	7      | _pad_byte                   | uint8 | Reserved
//	8-9    | top                         | int16 | Bounding box top
//	10-11  | left                        | int16 | Bounding box left
//	12-13  | bottom                      | int16 | Bounding box bottom
//	14-15  | right                       | int16 | Bounding box right
//	16-17  | n_coordinates               | int16 | Number of (x,y) pairs
//	18-33  | x1, y1, x2, y2              | int32 | Shape-specific extents
//	34-35  | stroke_width                | int16 | Outline width
//	36-39  | shape_roi_size              | int32 | Composite shape length
//	40-43  | stroke_color                | int32 | Outline color (ARGB)
//	44-47  | fill_color                  | int32 | Fill color (ARGB)
//	48-49  | subtype                     | int16 | Shape subtype
//	50-51  | options                     | int16 | Bit flags
//	52     | arrow_style_or_aspect_ratio | uint8 | Arrow style / aspect
//	53     | arrow_head_size             | uint8 | Arrow head size
//	54-55  | rounded_rect_arc_size       | int16 | Rounded corner arc
//	56-59  | position                    | int32 | 1-based stack position
//	60-63  | header2_offset              | int32 | Offset of secondary header
//
// # Secondary Header Format
//
// RoiHeader2Layout (52 bytes):
//
//	Bytes  | Field               | Type    | Description
//	-------|---------------------|---------|---------------------------------
//	0-3    | _nil                | int32   | Reserved
//	4-7    | c                   | int32   | 1-based channel index
//	8-11   | z                   | int32   | 1-based slice index
//	12-15  | t                   | int32   | 1-based frame index
//	16-19  | name_offset         | int32   | Name offset from record start
//	20-23  | name_length         | int32   | Name length in UTF-16 units
//	24-27  | overlay_label_color | int32   | Label color (ARGB)
//	28-29  | overlay_font_size   | int16   | Label font size
//	30     | available_byte1     | int8    | Reserved
//	31     | image_opacity       | uint8   | Image opacity
//	32-35  | image_size          | int32   | Embedded image byte length
//	36-39  | float_stroke_width  | float32 | Sub-pixel stroke width
//	40-43  | roi_props_offset    | int32   | Properties text offset
//	44-47  | roi_props_length    | int32   | Properties text length
//	48-51  | counters_offset     | int32   | Point counters offset
//
// A name_offset of zero means the record carries no name.
//
// # Metadata Block Structure
//
// A metadata block gathers typed segments behind one header. It travels in
// TIFF tag 50839 with the per-segment byte counts in tag 50838:
//
//	┌─────────────────────────────────────────────────────────┐
//	│ Block header (4 + 8×K bytes)                            │
//	│  - magic "IJIJ" (4 bytes)                               │
//	│  - K × (kind, count) uint32 pairs, container order      │
//	├─────────────────────────────────────────────────────────┤
//	│ Segment 1 (byte_counts[1] bytes)                        │
//	├─────────────────────────────────────────────────────────┤
//	│ ...                                                     │
//	├─────────────────────────────────────────────────────────┤
//	│ Segment N (byte_counts[N] bytes)                        │
//	└─────────────────────────────────────────────────────────┘
//
// byte_counts[0] is the header size itself, so the byte-count table always
// has one more entry than the block has segments. Segments follow the
// header in entry order: all segments of the first entry's kind, then the
// second entry's, and so on.
//
// The known kinds are "info" (image property text), "labl" (slice labels),
// "rang" (display ranges), "luts" (channel lookup tables), "roi " (single
// ROI) and "over" (overlay records). Unknown kinds pass through as raw
// segments.
//
// # Usage Examples
//
// Building the header of an overlay block:
//
//	hdr := section.NewOverlayHeader(len(records))
//	blockPrefix := hdr.Bytes()
//
// Parsing a header whose size comes from the byte-count table:
//
//	hdr, err := section.ParseMetaHeader(block, int(byteCounts[0]))
//	for _, e := range hdr.Entries {
//	    fmt.Println(e.Kind, e.Count)
//	}
//
// Parsing a primary ROI header from a record buffer:
//
//	rec, err := layout.ParseRecord(section.RoiHeaderLayout(), data, 0)
//	roiType, _ := rec.Int("roi_type")
//
// # Integration with Other Packages
//
// The section package is used by:
//   - roi: record encoder/decoder and block assembler
//   - tiffmeta: container tag splicing and extraction
//
// Most users should interact with the roi and tiffmeta packages instead of
// using section directly.
package section
