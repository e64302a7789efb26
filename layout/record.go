package layout

import (
	"fmt"
	"math"

	"github.com/arloliu/ijroi/endian"
	"github.com/arloliu/ijroi/errs"
)

// Record is one instance of a layout, backed by its wire image. Field
// accessors decode and encode directly against the image, so Bytes is
// always a faithful serialization of the current field values.
//
// A Record is not safe for concurrent mutation.
type Record struct {
	layout *Layout
	engine endian.EndianEngine
	data   []byte
}

// NewRecord returns a zero-filled record of the given layout using
// big-endian byte order, the order of the ImageJ ROI format.
func NewRecord(l *Layout) *Record {
	return NewRecordWithEngine(l, endian.GetBigEndianEngine())
}

// NewRecordWithEngine returns a zero-filled record using the given byte
// order engine.
func NewRecordWithEngine(l *Layout, engine endian.EndianEngine) *Record {
	return &Record{
		layout: l,
		engine: engine,
		data:   make([]byte, l.Size()),
	}
}

// ParseRecord decodes a record of the given layout from data starting at
// offset, using big-endian byte order. The record copies the bytes it
// covers; later changes to data do not affect it.
//
// Returns ErrBufferTooShort when data ends before offset+l.Size().
func ParseRecord(l *Layout, data []byte, offset int) (*Record, error) {
	return ParseRecordWithEngine(l, data, offset, endian.GetBigEndianEngine())
}

// ParseRecordWithEngine is like ParseRecord with an explicit byte order.
func ParseRecordWithEngine(l *Layout, data []byte, offset int, engine endian.EndianEngine) (*Record, error) {
	if offset < 0 || offset > len(data) {
		return nil, fmt.Errorf("%w: offset %d outside buffer of %d bytes", errs.ErrOffsetOutOfRange, offset, len(data))
	}
	if len(data)-offset < l.Size() {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, have %d",
			errs.ErrBufferTooShort, l.Size(), offset, len(data)-offset)
	}

	rec := &Record{
		layout: l,
		engine: engine,
		data:   make([]byte, l.Size()),
	}
	copy(rec.data, data[offset:offset+l.Size()])

	return rec, nil
}

// Layout returns the record's layout.
func (r *Record) Layout() *Layout {
	return r.layout
}

// Bytes returns the record's wire image. The returned slice is a copy.
func (r *Record) Bytes() []byte {
	out := make([]byte, len(r.data))
	copy(out, r.data)

	return out
}

// AppendTo appends the record's wire image to dst and returns the extended
// slice.
func (r *Record) AppendTo(dst []byte) []byte {
	return append(dst, r.data...)
}

// Int returns the named integer field sign-extended to int64. Unsigned
// kinds are zero-extended. Fails on float and byte fields.
func (r *Record) Int(name string) (int64, error) {
	f, off, err := r.layout.fieldAt(name)
	if err != nil {
		return 0, err
	}

	switch f.Kind {
	case KindInt8:
		return int64(int8(r.data[off])), nil
	case KindUint8:
		return int64(r.data[off]), nil
	case KindInt16:
		return int64(int16(r.engine.Uint16(r.data[off:]))), nil
	case KindUint16:
		return int64(r.engine.Uint16(r.data[off:])), nil
	case KindInt32:
		return int64(int32(r.engine.Uint32(r.data[off:]))), nil
	case KindUint32:
		return int64(r.engine.Uint32(r.data[off:])), nil
	default:
		return 0, fmt.Errorf("%w: %q is %s, not an integer", errs.ErrFieldType, name, f.Kind)
	}
}

// Uint returns the raw bits of the named integer field zero-extended to
// uint64, regardless of the field's signedness. This matters for fields
// that are declared signed on the wire but written with unsigned semantics
// by other producers.
func (r *Record) Uint(name string) (uint64, error) {
	f, off, err := r.layout.fieldAt(name)
	if err != nil {
		return 0, err
	}

	switch f.Kind {
	case KindInt8, KindUint8:
		return uint64(r.data[off]), nil
	case KindInt16, KindUint16:
		return uint64(r.engine.Uint16(r.data[off:])), nil
	case KindInt32, KindUint32:
		return uint64(r.engine.Uint32(r.data[off:])), nil
	default:
		return 0, fmt.Errorf("%w: %q is %s, not an integer", errs.ErrFieldType, name, f.Kind)
	}
}

// SetInt stores v into the named integer field. Fails when v is outside
// the field's representable range.
func (r *Record) SetInt(name string, v int64) error {
	f, off, err := r.layout.fieldAt(name)
	if err != nil {
		return err
	}

	var minVal, maxVal int64
	switch f.Kind {
	case KindInt8:
		minVal, maxVal = math.MinInt8, math.MaxInt8
	case KindUint8:
		minVal, maxVal = 0, math.MaxUint8
	case KindInt16:
		minVal, maxVal = math.MinInt16, math.MaxInt16
	case KindUint16:
		minVal, maxVal = 0, math.MaxUint16
	case KindInt32:
		minVal, maxVal = math.MinInt32, math.MaxInt32
	case KindUint32:
		minVal, maxVal = 0, math.MaxUint32
	default:
		return fmt.Errorf("%w: %q is %s, not an integer", errs.ErrFieldType, name, f.Kind)
	}
	if v < minVal || v > maxVal {
		return fmt.Errorf("%w: value %d outside range of %s field %q", errs.ErrFieldType, v, f.Kind, name)
	}

	r.putBits(f, off, uint64(v))

	return nil
}

// MustSetInt is like SetInt but panics on error. Intended for encoder
// internals writing pre-validated values into known layouts.
func (r *Record) MustSetInt(name string, v int64) {
	if err := r.SetInt(name, v); err != nil {
		panic(err)
	}
}

// SetUint stores the low bits of v into the named integer field. The limit
// is the field width's unsigned maximum even for signed kinds, mirroring
// producers that reuse sign bits as value bits.
func (r *Record) SetUint(name string, v uint64) error {
	f, off, err := r.layout.fieldAt(name)
	if err != nil {
		return err
	}

	var maxVal uint64
	switch f.Kind {
	case KindInt8, KindUint8:
		maxVal = math.MaxUint8
	case KindInt16, KindUint16:
		maxVal = math.MaxUint16
	case KindInt32, KindUint32:
		maxVal = math.MaxUint32
	default:
		return fmt.Errorf("%w: %q is %s, not an integer", errs.ErrFieldType, name, f.Kind)
	}
	if v > maxVal {
		return fmt.Errorf("%w: value %d outside range of %s field %q", errs.ErrFieldType, v, f.Kind, name)
	}

	r.putBits(f, off, v)

	return nil
}

func (r *Record) putBits(f Field, off int, bits uint64) {
	switch f.Size {
	case 1:
		r.data[off] = byte(bits)
	case 2:
		r.engine.PutUint16(r.data[off:], uint16(bits))
	case 4:
		r.engine.PutUint32(r.data[off:], uint32(bits))
	}
}

// Float32 returns the named float field.
func (r *Record) Float32(name string) (float32, error) {
	f, off, err := r.layout.fieldAt(name)
	if err != nil {
		return 0, err
	}
	if f.Kind != KindFloat32 {
		return 0, fmt.Errorf("%w: %q is %s, not float32", errs.ErrFieldType, name, f.Kind)
	}

	return math.Float32frombits(r.engine.Uint32(r.data[off:])), nil
}

// SetFloat32 stores v into the named float field.
func (r *Record) SetFloat32(name string, v float32) error {
	f, off, err := r.layout.fieldAt(name)
	if err != nil {
		return err
	}
	if f.Kind != KindFloat32 {
		return fmt.Errorf("%w: %q is %s, not float32", errs.ErrFieldType, name, f.Kind)
	}

	r.engine.PutUint32(r.data[off:], math.Float32bits(v))

	return nil
}

// BytesField returns a copy of the named fixed-length byte field.
func (r *Record) BytesField(name string) ([]byte, error) {
	f, off, err := r.layout.fieldAt(name)
	if err != nil {
		return nil, err
	}
	if f.Kind != KindBytes {
		return nil, fmt.Errorf("%w: %q is %s, not bytes", errs.ErrFieldType, name, f.Kind)
	}

	out := make([]byte, f.Size)
	copy(out, r.data[off:off+f.Size])

	return out, nil
}

// SetBytesField stores v into the named byte field. The value length must
// match the declared field length exactly.
func (r *Record) SetBytesField(name string, v []byte) error {
	f, off, err := r.layout.fieldAt(name)
	if err != nil {
		return err
	}
	if f.Kind != KindBytes {
		return fmt.Errorf("%w: %q is %s, not bytes", errs.ErrFieldType, name, f.Kind)
	}
	if len(v) != f.Size {
		return fmt.Errorf("%w: byte field %q holds %d bytes, got %d", errs.ErrFieldType, name, f.Size, len(v))
	}

	copy(r.data[off:], v)

	return nil
}

// Map flattens the record into a name-to-value map using natural Go types
// (int8, uint16, float32, []byte, ...). Reserved fields, the ones whose
// name starts with an underscore, are skipped.
func (r *Record) Map() map[string]any {
	out := make(map[string]any, len(r.layout.fields))
	for i, f := range r.layout.fields {
		if f.Reserved() {
			continue
		}
		off := r.layout.offsets[i]
		switch f.Kind {
		case KindInt8:
			out[f.Name] = int8(r.data[off])
		case KindUint8:
			out[f.Name] = r.data[off]
		case KindInt16:
			out[f.Name] = int16(r.engine.Uint16(r.data[off:]))
		case KindUint16:
			out[f.Name] = r.engine.Uint16(r.data[off:])
		case KindInt32:
			out[f.Name] = int32(r.engine.Uint32(r.data[off:]))
		case KindUint32:
			out[f.Name] = r.engine.Uint32(r.data[off:])
		case KindFloat32:
			out[f.Name] = math.Float32frombits(r.engine.Uint32(r.data[off:]))
		case KindBytes:
			b := make([]byte, f.Size)
			copy(b, r.data[off:off+f.Size])
			out[f.Name] = b
		}
	}

	return out
}
