package encoding

import (
	"fmt"
	"math"
	"slices"

	"github.com/arloliu/ijroi/endian"
	"github.com/arloliu/ijroi/errs"
)

// CoordinateSize is the encoded size of one (x, y) pair in bytes.
const CoordinateSize = 4

// AppendCoordinatePlanes appends n coordinate pairs to dst in column-major
// plane order: all x values first, then all y values, each as a signed
// 16-bit integer in the given byte order.
//
// The inputs are full-width ints so translated coordinates can be validated
// here instead of silently truncated: any value outside the int16 range
// fails with ErrCoordinateOverflow.
//
// Parameters:
//   - dst: Destination slice to append to (may be nil)
//   - xs: X values, already translated to the local frame
//   - ys: Y values, same length as xs
//   - engine: Byte order engine
//
// Returns:
//   - []byte: Extended destination slice holding 4*len(xs) new bytes
//   - error: ErrCoordinateOverflow when a value does not fit int16
func AppendCoordinatePlanes(dst []byte, xs, ys []int, engine endian.EndianEngine) ([]byte, error) {
	if len(xs) != len(ys) {
		return dst, fmt.Errorf("coordinate plane length mismatch: %d x values, %d y values", len(xs), len(ys))
	}

	for _, plane := range [][]int{xs, ys} {
		for _, v := range plane {
			if v < math.MinInt16 || v > math.MaxInt16 {
				return dst, fmt.Errorf("%w: value %d outside int16 range", errs.ErrCoordinateOverflow, v)
			}
		}
	}

	dst = slices.Grow(dst, CoordinateSize*len(xs))
	for _, plane := range [][]int{xs, ys} {
		for _, v := range plane {
			dst = engine.AppendUint16(dst, uint16(int16(v)))
		}
	}

	return dst, nil
}

// DecodeCoordinatePlanes decodes n coordinate pairs laid out in column-major
// plane order from the start of data.
//
// The returned slices are freshly allocated and never alias data, so they
// stay valid after the input buffer is reused.
//
// Parameters:
//   - data: Buffer starting at the coordinate section
//   - n: Number of pairs to decode
//   - engine: Byte order engine
//
// Returns:
//   - xs: Decoded x values
//   - ys: Decoded y values
//   - error: ErrBufferTooShort when data holds fewer than 4*n bytes
func DecodeCoordinatePlanes(data []byte, n int, engine endian.EndianEngine) (xs, ys []int16, err error) {
	if n < 0 {
		return nil, nil, fmt.Errorf("negative coordinate count %d", n)
	}
	if len(data) < CoordinateSize*n {
		return nil, nil, fmt.Errorf("%w: need %d coordinate bytes, have %d",
			errs.ErrBufferTooShort, CoordinateSize*n, len(data))
	}

	xs = make([]int16, n)
	ys = make([]int16, n)
	for i := range n {
		xs[i] = int16(engine.Uint16(data[2*i:]))
		ys[i] = int16(engine.Uint16(data[2*(n+i):]))
	}

	return xs, ys, nil
}
