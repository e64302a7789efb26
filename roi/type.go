package roi

// Type identifies the shape class of an ROI record. The wire format stores
// it as a single byte in the primary header.
//
// Values outside the defined range decode without error and pass through
// unchanged; only the coordinate-bearing types listed under Supported get
// their coordinate section decoded.
type Type uint8

const (
	TypePolygon  Type = 0
	TypeRect     Type = 1
	TypeOval     Type = 2
	TypeLine     Type = 3
	TypeFreeline Type = 4
	TypePolyline Type = 5
	TypeNoRoi    Type = 6
	TypeFreehand Type = 7
	TypeTraced   Type = 8
	TypeAngle    Type = 9
	TypePoint    Type = 10
)

func (t Type) String() string {
	switch t {
	case TypePolygon:
		return "Polygon"
	case TypeRect:
		return "Rect"
	case TypeOval:
		return "Oval"
	case TypeLine:
		return "Line"
	case TypeFreeline:
		return "Freeline"
	case TypePolyline:
		return "Polyline"
	case TypeNoRoi:
		return "NoRoi"
	case TypeFreehand:
		return "Freehand"
	case TypeTraced:
		return "Traced"
	case TypeAngle:
		return "Angle"
	case TypePoint:
		return "Point"
	default:
		return "Unknown"
	}
}

// Supported reports whether records of this type carry a coordinate
// section after the primary header.
func (t Type) Supported() bool {
	switch t {
	case TypePolygon, TypeFreehand, TypeTraced, TypePolyline, TypeFreeline, TypeAngle, TypePoint:
		return true
	default:
		return false
	}
}
