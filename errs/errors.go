// Package errs defines sentinel errors shared across the ijroi packages.
//
// All errors are wrapped with additional context at the call site using
// fmt.Errorf("%w: ...", err), so callers can match them with errors.Is
// regardless of the detail attached:
//
//	rec, err := roi.Decode(data)
//	if errors.Is(err, errs.ErrBufferTooShort) {
//		// buffer was truncated
//	}
package errs

import "errors"

// Record parsing and serialization errors.
var (
	// ErrBufferTooShort indicates the input buffer ends before the fixed
	// portion of a record or header could be read.
	ErrBufferTooShort = errors.New("buffer too short")

	// ErrOffsetOutOfRange indicates a stored offset (secondary header,
	// name, payload) points outside the enclosing buffer.
	ErrOffsetOutOfRange = errors.New("offset out of range")

	// ErrUnknownField indicates a field name not present in the layout.
	ErrUnknownField = errors.New("unknown field")

	// ErrFieldType indicates an accessor was used on a field of an
	// incompatible kind, or a value outside the field's range.
	ErrFieldType = errors.New("field type mismatch")

	// ErrInvalidLayout indicates a layout definition is malformed
	// (duplicate field name, zero-length byte field).
	ErrInvalidLayout = errors.New("invalid layout")
)

// ROI encoding errors.
var (
	// ErrNoPoints indicates an encode request with an empty point list.
	ErrNoPoints = errors.New("no points")

	// ErrTooManyPoints indicates the point count does not fit the 16-bit
	// coordinate count field.
	ErrTooManyPoints = errors.New("too many points")

	// ErrCoordinateOverflow indicates a translated coordinate falls outside
	// the signed 16-bit range of the wire format.
	ErrCoordinateOverflow = errors.New("coordinate overflow")
)

// Metadata block errors.
var (
	// ErrInvalidMagicNumber indicates the block does not start with the
	// expected magic value.
	ErrInvalidMagicNumber = errors.New("invalid magic number")

	// ErrInvalidHeaderSize indicates a header whose size field disagrees
	// with the actual data length.
	ErrInvalidHeaderSize = errors.New("invalid header size")

	// ErrMissingByteCounts indicates a metadata block without the byte-count
	// table that delimits its segments.
	ErrMissingByteCounts = errors.New("missing byte counts")

	// ErrByteCountMismatch indicates the byte-count table does not sum to
	// the block length, or disagrees with the header entry count.
	ErrByteCountMismatch = errors.New("byte count mismatch")
)

// Session and container errors.
var (
	// ErrInvalidSnapshot indicates a checkpoint buffer that is corrupt or
	// was produced by an incompatible version.
	ErrInvalidSnapshot = errors.New("invalid snapshot")

	// ErrUnknownCompression indicates an unrecognized compression type.
	ErrUnknownCompression = errors.New("unknown compression type")

	// ErrHashCollision indicates two distinct track names hashing to the
	// same 64-bit ID.
	ErrHashCollision = errors.New("hash collision detected")

	// ErrNotTIFF indicates input that does not begin with a TIFF header.
	ErrNotTIFF = errors.New("not a TIFF file")
)
