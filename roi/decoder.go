package roi

import (
	"fmt"

	"github.com/arloliu/ijroi/encoding"
	"github.com/arloliu/ijroi/endian"
	"github.com/arloliu/ijroi/errs"
	"github.com/arloliu/ijroi/layout"
	"github.com/arloliu/ijroi/section"
)

// Decode parses one ROI record into its decoded form.
//
// Both headers are parsed unconditionally. The coordinate planes are
// decoded only for the coordinate-bearing types reported by
// Type.Supported; records of any other type, including type bytes this
// package does not define, decode without error and keep a nil
// Coordinates slice so round-tripping foreign records stays lossless at
// the header level.
//
// The coordinate count is read with unsigned semantics, so records
// holding up to 65535 points decode even though the encoder in this
// package never writes more than 32767.
//
// The returned record owns all of its memory; data may be reused or
// mutated afterwards.
//
// Parameters:
//   - data: One complete record, starting at the primary header
//
// Returns:
//   - *Record: Decoded record
//   - error: ErrBufferTooShort when data cannot hold a section,
//     ErrOffsetOutOfRange when a recorded offset points outside data
func Decode(data []byte) (*Record, error) {
	header, err := layout.ParseRecord(section.RoiHeaderLayout(), data, 0)
	if err != nil {
		return nil, err
	}

	h2off := int(fieldInt(header, "header2_offset"))
	if h2off < 0 || h2off+section.RoiHeader2Size > len(data) {
		return nil, fmt.Errorf("%w: secondary header at %d..%d in a %d-byte record",
			errs.ErrOffsetOutOfRange, h2off, h2off+section.RoiHeader2Size, len(data))
	}

	header2, err := layout.ParseRecord(section.RoiHeader2Layout(), data, h2off)
	if err != nil {
		return nil, err
	}

	rec := &Record{
		Version:                 int16(fieldInt(header, "version")),
		Type:                    Type(uint8(fieldInt(header, "roi_type"))),
		Top:                     int16(fieldInt(header, "top")),
		Left:                    int16(fieldInt(header, "left")),
		Bottom:                  int16(fieldInt(header, "bottom")),
		Right:                   int16(fieldInt(header, "right")),
		NCoordinates:            int(fieldUint(header, "n_coordinates")),
		X1:                      int32(fieldInt(header, "x1")),
		Y1:                      int32(fieldInt(header, "y1")),
		X2:                      int32(fieldInt(header, "x2")),
		Y2:                      int32(fieldInt(header, "y2")),
		StrokeWidth:             int16(fieldInt(header, "stroke_width")),
		ShapeRoiSize:            int32(fieldInt(header, "shape_roi_size")),
		StrokeColor:             int32(fieldInt(header, "stroke_color")),
		FillColor:               int32(fieldInt(header, "fill_color")),
		Subtype:                 int16(fieldInt(header, "subtype")),
		Options:                 int16(fieldInt(header, "options")),
		ArrowStyleOrAspectRatio: uint8(fieldUint(header, "arrow_style_or_aspect_ratio")),
		ArrowHeadSize:           uint8(fieldUint(header, "arrow_head_size")),
		RoundedRectArcSize:      int16(fieldInt(header, "rounded_rect_arc_size")),
		Position:                int32(fieldInt(header, "position")),
		Header2Offset:           int32(fieldInt(header, "header2_offset")),

		C:                 int32(fieldInt(header2, "c")),
		Z:                 int32(fieldInt(header2, "z")),
		T:                 int32(fieldInt(header2, "t")),
		NameOffset:        int32(fieldInt(header2, "name_offset")),
		NameLength:        int32(fieldInt(header2, "name_length")),
		OverlayLabelColor: int32(fieldInt(header2, "overlay_label_color")),
		OverlayFontSize:   int16(fieldInt(header2, "overlay_font_size")),
		AvailableByte1:    int8(fieldInt(header2, "available_byte1")),
		ImageOpacity:      uint8(fieldInt(header2, "image_opacity")),
		ImageSize:         int32(fieldInt(header2, "image_size")),
		FloatStrokeWidth:  fieldFloat32(header2, "float_stroke_width"),
		RoiPropsOffset:    int32(fieldInt(header2, "roi_props_offset")),
		RoiPropsLength:    int32(fieldInt(header2, "roi_props_length")),
		CountersOffset:    int32(fieldInt(header2, "counters_offset")),
	}

	engine := endian.GetBigEndianEngine()

	if rec.NameOffset > 0 {
		start := int(rec.NameOffset)
		end := start + 2*int(rec.NameLength)
		if rec.NameLength < 0 || end > len(data) {
			return nil, fmt.Errorf("%w: name at %d..%d in a %d-byte record",
				errs.ErrOffsetOutOfRange, start, end, len(data))
		}
		rec.Name = encoding.DecodeUTF16(data[start:end], engine)
	}

	if rec.Type.Supported() {
		xs, ys, err := encoding.DecodeCoordinatePlanes(data[section.RoiHeaderSize:], rec.NCoordinates, engine)
		if err != nil {
			return nil, err
		}
		rec.Coordinates = make([]Coordinate, rec.NCoordinates)
		for i := range rec.Coordinates {
			rec.Coordinates[i] = Coordinate{X: xs[i], Y: ys[i]}
		}
	}

	return rec, nil
}

// Field access on the fixed header layouts cannot fail once the record is
// parsed, so lookup errors are programming bugs and panic.
func fieldInt(rec *layout.Record, name string) int64 {
	v, err := rec.Int(name)
	if err != nil {
		panic(err)
	}

	return v
}

func fieldUint(rec *layout.Record, name string) uint64 {
	v, err := rec.Uint(name)
	if err != nil {
		panic(err)
	}

	return v
}

func fieldFloat32(rec *layout.Record, name string) float32 {
	v, err := rec.Float32(name)
	if err != nil {
		panic(err)
	}

	return v
}
