package section

import "github.com/arloliu/ijroi/layout"

// roiHeaderLayout is the 24-field primary ROI header. Offsets follow the
// reference decoder of the consuming software; the header2_offset field in
// the last slot links to the secondary header.
var roiHeaderLayout = layout.MustNew(
	layout.Bytes("_iout", 4), // always "Iout"
	layout.Int16("version"),
	layout.Int8("roi_type"),
	layout.Uint8("_pad_byte"),
	layout.Int16("top"),
	layout.Int16("left"),
	layout.Int16("bottom"),
	layout.Int16("right"),
	layout.Int16("n_coordinates"),
	layout.Int32("x1"),
	layout.Int32("y1"),
	layout.Int32("x2"),
	layout.Int32("y2"),
	layout.Int16("stroke_width"),
	layout.Int32("shape_roi_size"),
	layout.Int32("stroke_color"),
	layout.Int32("fill_color"),
	layout.Int16("subtype"),
	layout.Int16("options"),
	layout.Uint8("arrow_style_or_aspect_ratio"),
	layout.Uint8("arrow_head_size"),
	layout.Int16("rounded_rect_arc_size"),
	layout.Int32("position"),
	layout.Int32("header2_offset"),
)

// roiHeader2Layout is the 15-field secondary ROI header, located at the
// primary header's header2_offset. The name_offset/name_length pair locates
// the UTF-16 name payload relative to the record start.
var roiHeader2Layout = layout.MustNew(
	layout.Int32("_nil"),
	layout.Int32("c"),
	layout.Int32("z"),
	layout.Int32("t"),
	layout.Int32("name_offset"),
	layout.Int32("name_length"),
	layout.Int32("overlay_label_color"),
	layout.Int16("overlay_font_size"),
	layout.Int8("available_byte1"),
	layout.Uint8("image_opacity"),
	layout.Int32("image_size"),
	layout.Float32("float_stroke_width"),
	layout.Int32("roi_props_offset"),
	layout.Int32("roi_props_length"),
	layout.Int32("counters_offset"),
)

// RoiHeaderLayout returns the shared primary ROI header layout. Its size is
// RoiHeaderSize.
func RoiHeaderLayout() *layout.Layout {
	return roiHeaderLayout
}

// RoiHeader2Layout returns the shared secondary ROI header layout. Its size
// is RoiHeader2Size.
func RoiHeader2Layout() *layout.Layout {
	return roiHeader2Layout
}
