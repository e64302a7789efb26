// Package layout implements a declarative codec for fixed-size binary
// records. A Layout names an ordered list of typed fields; a Record is one
// instance of a layout backed by its wire image, with typed access by field
// name.
//
// The package exists for the ImageJ ROI headers in the section package,
// which are dense big-endian structures full of reserved slots and offsets.
// Declaring them as layouts keeps the field tables in one place and makes
// the offset arithmetic impossible to get wrong by hand:
//
//	hdr := layout.MustNew(
//		layout.Bytes("iout", 4),
//		layout.Int16("version"),
//		layout.Int8("roi_type"),
//		layout.Uint8("_pad"),
//		layout.Int16("top"),
//		// ...
//	)
//
//	rec, err := layout.ParseRecord(hdr, data, 0)
//	top, err := rec.Int("top")
//
// Field names starting with an underscore mark reserved or padding slots.
// They are encoded and decoded like any other field but are skipped when a
// record is flattened with Map.
package layout

import (
	"fmt"

	"github.com/arloliu/ijroi/errs"
)

// Kind identifies the wire type of a single field.
type Kind uint8

const (
	KindInt8 Kind = iota + 1
	KindUint8
	KindInt16
	KindUint16
	KindInt32
	KindUint32
	KindFloat32
	KindBytes
)

func (k Kind) String() string {
	switch k {
	case KindInt8:
		return "int8"
	case KindUint8:
		return "uint8"
	case KindInt16:
		return "int16"
	case KindUint16:
		return "uint16"
	case KindInt32:
		return "int32"
	case KindUint32:
		return "uint32"
	case KindFloat32:
		return "float32"
	case KindBytes:
		return "bytes"
	default:
		return "unknown"
	}
}

// size returns the encoded width of the kind, or 0 for KindBytes whose
// width comes from the field declaration.
func (k Kind) size() int {
	switch k {
	case KindInt8, KindUint8:
		return 1
	case KindInt16, KindUint16:
		return 2
	case KindInt32, KindUint32, KindFloat32:
		return 4
	default:
		return 0
	}
}

// Field declares one slot of a layout. Use the constructor matching the
// wire type rather than filling the struct directly.
type Field struct {
	Name string
	Kind Kind
	Size int
}

// Reserved reports whether the field is a reserved or padding slot.
func (f Field) Reserved() bool {
	return len(f.Name) > 0 && f.Name[0] == '_'
}

func Int8(name string) Field    { return Field{Name: name, Kind: KindInt8, Size: 1} }
func Uint8(name string) Field   { return Field{Name: name, Kind: KindUint8, Size: 1} }
func Int16(name string) Field   { return Field{Name: name, Kind: KindInt16, Size: 2} }
func Uint16(name string) Field  { return Field{Name: name, Kind: KindUint16, Size: 2} }
func Int32(name string) Field   { return Field{Name: name, Kind: KindInt32, Size: 4} }
func Uint32(name string) Field  { return Field{Name: name, Kind: KindUint32, Size: 4} }
func Float32(name string) Field { return Field{Name: name, Kind: KindFloat32, Size: 4} }

// Bytes declares a fixed-length byte string field of n bytes.
func Bytes(name string, n int) Field {
	return Field{Name: name, Kind: KindBytes, Size: n}
}

// Layout is an immutable ordered set of fields with precomputed offsets.
// A Layout is safe for concurrent use; typically one is built per record
// format at package init and shared by all records.
type Layout struct {
	fields  []Field
	offsets []int
	index   map[string]int
	size    int
}

// New builds a layout from the given fields. It fails if a field name is
// empty or duplicated, a byte field has a non-positive length, or the field
// list is empty.
func New(fields ...Field) (*Layout, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: no fields", errs.ErrInvalidLayout)
	}

	l := &Layout{
		fields:  make([]Field, len(fields)),
		offsets: make([]int, len(fields)),
		index:   make(map[string]int, len(fields)),
	}

	offset := 0
	for i, f := range fields {
		if f.Name == "" {
			return nil, fmt.Errorf("%w: field %d has empty name", errs.ErrInvalidLayout, i)
		}
		if _, exists := l.index[f.Name]; exists {
			return nil, fmt.Errorf("%w: duplicate field %q", errs.ErrInvalidLayout, f.Name)
		}
		if f.Kind < KindInt8 || f.Kind > KindBytes {
			return nil, fmt.Errorf("%w: field %q has unknown kind", errs.ErrInvalidLayout, f.Name)
		}
		if f.Kind == KindBytes {
			if f.Size <= 0 {
				return nil, fmt.Errorf("%w: byte field %q must have positive length", errs.ErrInvalidLayout, f.Name)
			}
		} else {
			f.Size = f.Kind.size()
		}

		l.fields[i] = f
		l.offsets[i] = offset
		l.index[f.Name] = i
		offset += f.Size
	}
	l.size = offset

	return l, nil
}

// MustNew is like New but panics on error. Intended for package-level
// layout tables built from literal field lists.
func MustNew(fields ...Field) *Layout {
	l, err := New(fields...)
	if err != nil {
		panic(err)
	}

	return l
}

// Size returns the total encoded size of the layout in bytes.
func (l *Layout) Size() int {
	return l.size
}

// NumFields returns the number of declared fields.
func (l *Layout) NumFields() int {
	return len(l.fields)
}

// Fields returns the declared fields in order. The returned slice is shared;
// callers must not modify it.
func (l *Layout) Fields() []Field {
	return l.fields
}

// FieldNames returns the field names in declaration order.
func (l *Layout) FieldNames() []string {
	names := make([]string, len(l.fields))
	for i, f := range l.fields {
		names[i] = f.Name
	}

	return names
}

// Offset returns the byte offset of the named field within the record.
func (l *Layout) Offset(name string) (int, bool) {
	i, ok := l.index[name]
	if !ok {
		return 0, false
	}

	return l.offsets[i], true
}

// Lookup returns the declared field with the given name.
func (l *Layout) Lookup(name string) (Field, bool) {
	i, ok := l.index[name]
	if !ok {
		return Field{}, false
	}

	return l.fields[i], true
}

func (l *Layout) fieldAt(name string) (Field, int, error) {
	i, ok := l.index[name]
	if !ok {
		return Field{}, 0, fmt.Errorf("%w: %q", errs.ErrUnknownField, name)
	}

	return l.fields[i], l.offsets[i], nil
}
