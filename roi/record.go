package roi

import (
	"image"

	"github.com/arloliu/ijroi/internal/hash"
)

// Coordinate is one vertex of a decoded outline, stored relative to the
// record's bounding-box origin (Left, Top) exactly as it appears on the
// wire.
type Coordinate struct {
	X int16
	Y int16
}

// Record is the decoded form of one ROI record.
//
// Every named field of the primary and secondary headers appears here;
// reserved wire fields (the magic bytes, the pad byte) are validated or
// skipped during decoding and have no counterpart. Name and Coordinates
// hold the variable-length sections that follow the headers.
//
// A Record returned by Decode owns all of its memory. Mutating the buffer
// the record was decoded from never changes the record.
type Record struct {
	// Primary header fields.
	Version                 int16
	Type                    Type
	Top                     int16
	Left                    int16
	Bottom                  int16
	Right                   int16
	NCoordinates            int
	X1                      int32
	Y1                      int32
	X2                      int32
	Y2                      int32
	StrokeWidth             int16
	ShapeRoiSize            int32
	StrokeColor             int32
	FillColor               int32
	Subtype                 int16
	Options                 int16
	ArrowStyleOrAspectRatio uint8
	ArrowHeadSize           uint8
	RoundedRectArcSize      int16
	Position                int32
	Header2Offset           int32

	// Secondary header fields.
	C                 int32
	Z                 int32
	T                 int32
	NameOffset        int32
	NameLength        int32
	OverlayLabelColor int32
	OverlayFontSize   int16
	AvailableByte1    int8
	ImageOpacity      uint8
	ImageSize         int32
	FloatStrokeWidth  float32
	RoiPropsOffset    int32
	RoiPropsLength    int32
	CountersOffset    int32

	// Variable-length sections.
	Name        string
	Coordinates []Coordinate
}

// AbsoluteCoordinates returns the outline vertices in image space, undoing
// the bounding-box translation applied during encoding. The result is nil
// when the record carries no coordinate section.
func (r *Record) AbsoluteCoordinates() []image.Point {
	if r.Coordinates == nil {
		return nil
	}
	pts := make([]image.Point, len(r.Coordinates))
	for i, c := range r.Coordinates {
		pts[i] = image.Point{X: int(c.X) + int(r.Left), Y: int(c.Y) + int(r.Top)}
	}
	return pts
}

// TrackID returns the 64-bit hash of the record name used to group records
// belonging to the same track across frames. It returns 0 for unnamed
// records, which never participate in track grouping.
func (r *Record) TrackID() uint64 {
	if r.Name == "" {
		return 0
	}
	return hash.ID(r.Name)
}
