// Package encoding implements the payload codecs of the ROI record format:
// the column-major coordinate planes and the UTF-16 name text.
//
// # Coordinate Planes
//
// Coordinates are stored relative to the record's bounding box origin as
// signed 16-bit integers, but not interleaved: the record holds all x
// values first, then all y values, like two parallel columns.
//
//	offset:  0        2n       4n
//	         ├─ x[0..n) ┼─ y[0..n) ┤
//
// Values are validated against the int16 range during encoding and fail
// with ErrCoordinateOverflow instead of wrapping. Decoding always copies
// into fresh slices, since record buffers are routinely reused by callers.
//
// # Name Text
//
// ROI names travel as UTF-16 code units with no terminator; the enclosing
// record stores the unit count separately. UTF16Length reports the count
// for a Go string, including the doubled count of surrogate pairs.
//
// Both codecs take an endian.EndianEngine. The ROI wire format is always
// big-endian, so callers pass endian.GetBigEndianEngine(); the parameter
// keeps the byte order explicit at every call site.
package encoding
