package tiffmeta

import (
	"fmt"
	"io"
	"math"
	"slices"

	"github.com/arloliu/ijroi/endian"
	"github.com/arloliu/ijroi/errs"
)

const (
	leHeader = "II\x2A\x00" // header of little-endian containers
	beHeader = "MM\x00\x2A" // header of big-endian containers

	headerLen   = 8
	ifdEntryLen = 12
)

// IFD entry data types (TIFF 6.0, p. 14-16).
const (
	dtByte      = 1
	dtASCII     = 2
	dtShort     = 3
	dtLong      = 4
	dtRational  = 5
	dtSByte     = 6
	dtUndefined = 7
	dtSShort    = 8
	dtSLong     = 9
	dtSRational = 10
	dtFloat     = 11
	dtDouble    = 12
)

// typeSizes holds the element size in bytes per data type, indexed by type.
var typeSizes = [...]uint32{0, 1, 1, 2, 4, 8, 1, 1, 2, 4, 8, 4, 8}

// Pixel-locating tags whose values shift when a frame is relocated inside
// a larger container.
const (
	tagStripOffsets = 273
	tagTileOffsets  = 324
)

// maxEntryData caps a single tag payload so a corrupt count field cannot
// trigger an arbitrarily large allocation.
const maxEntryData = 1 << 30

// ifdEntry is one 12-byte IFD entry: tag, element type, element count, and
// four value bytes holding either the payload itself or a pointer to it.
// The value bytes stay in container byte order.
type ifdEntry struct {
	tag   uint16
	typ   uint16
	count uint32
	value [4]byte
}

// dataLen returns the total payload size in bytes, or 0 for data types
// this package does not know, which therefore stay untouched.
func (e *ifdEntry) dataLen() uint32 {
	if int(e.typ) >= len(typeSizes) {
		return 0
	}
	size := typeSizes[e.typ]
	if e.count > math.MaxUint32/max(size, 1) {
		return math.MaxUint32
	}

	return size * e.count
}

// pointer reports whether the payload lives behind an offset instead of in
// the value bytes.
func (e *ifdEntry) pointer() bool {
	return e.dataLen() > 4
}

func (e *ifdEntry) offset(engine endian.EndianEngine) uint32 {
	return engine.Uint32(e.value[:])
}

func (e *ifdEntry) setOffset(engine endian.EndianEngine, off uint32) {
	engine.PutUint32(e.value[:], off)
}

// detectByteOrder maps a container header to its byte order engine.
func detectByteOrder(header []byte) (endian.EndianEngine, error) {
	if len(header) < headerLen {
		return nil, fmt.Errorf("%w: %d header bytes", errs.ErrNotTIFF, len(header))
	}
	switch string(header[0:4]) {
	case leHeader:
		return endian.GetLittleEndianEngine(), nil
	case beHeader:
		return endian.GetBigEndianEngine(), nil
	}

	return nil, fmt.Errorf("%w: bad magic % X", errs.ErrNotTIFF, header[0:4])
}

// readContainerHeader validates the header of an in-memory container and
// returns its byte order plus the first IFD offset.
func readContainerHeader(buf []byte) (endian.EndianEngine, int, error) {
	engine, err := detectByteOrder(buf)
	if err != nil {
		return nil, 0, err
	}

	return engine, int(engine.Uint32(buf[4:8])), nil
}

// decodeEntry parses one 12-byte entry.
func decodeEntry(p []byte, engine endian.EndianEngine) ifdEntry {
	e := ifdEntry{
		tag:   engine.Uint16(p[0:2]),
		typ:   engine.Uint16(p[2:4]),
		count: engine.Uint32(p[4:8]),
	}
	copy(e.value[:], p[8:12])

	return e
}

// parseIFD reads the IFD at off in buf: the entry count, the entries, and
// the trailing next-IFD pointer.
func parseIFD(buf []byte, off int, engine endian.EndianEngine) ([]ifdEntry, uint32, error) {
	if off < 0 || off+2 > len(buf) {
		return nil, 0, fmt.Errorf("%w: IFD at offset %d in a %d-byte container", errs.ErrOffsetOutOfRange, off, len(buf))
	}

	n := int(engine.Uint16(buf[off : off+2]))
	end := off + 2 + n*ifdEntryLen + 4
	if end > len(buf) {
		return nil, 0, fmt.Errorf("%w: IFD with %d entries needs %d bytes, have %d", errs.ErrBufferTooShort, n, end-off, len(buf)-off)
	}

	entries := make([]ifdEntry, n)
	for i := range entries {
		entries[i] = decodeEntry(buf[off+2+i*ifdEntryLen:], engine)
	}
	next := engine.Uint32(buf[end-4 : end])

	return entries, next, nil
}

// readIFD reads the IFD at off through an io.ReaderAt.
func readIFD(r io.ReaderAt, off int64, engine endian.EndianEngine) ([]ifdEntry, uint32, error) {
	var cnt [2]byte
	if _, err := r.ReadAt(cnt[:], off); err != nil {
		return nil, 0, fmt.Errorf("read IFD at %d: %w", off, err)
	}

	n := int(engine.Uint16(cnt[:]))
	raw := make([]byte, n*ifdEntryLen+4)
	if _, err := r.ReadAt(raw, off+2); err != nil {
		return nil, 0, fmt.Errorf("read %d IFD entries at %d: %w", n, off, err)
	}

	entries := make([]ifdEntry, n)
	for i := range entries {
		entries[i] = decodeEntry(raw[i*ifdEntryLen:], engine)
	}
	next := engine.Uint32(raw[n*ifdEntryLen:])

	return entries, next, nil
}

// appendIFD serializes the entries plus the next-IFD pointer at the end of
// buf, even-aligned, and returns the IFD's offset.
func appendIFD(buf []byte, entries []ifdEntry, next uint32, engine endian.EndianEngine) ([]byte, int) {
	buf = alignEven(buf)
	off := len(buf)

	buf = engine.AppendUint16(buf, uint16(len(entries)))
	for i := range entries {
		e := &entries[i]
		buf = engine.AppendUint16(buf, e.tag)
		buf = engine.AppendUint16(buf, e.typ)
		buf = engine.AppendUint32(buf, e.count)
		buf = append(buf, e.value[:]...)
	}
	buf = engine.AppendUint32(buf, next)

	return buf, off
}

// appendEntryData places an entry payload: inline when it fits the four
// value bytes, otherwise appended to buf at an even offset with the value
// bytes holding the pointer.
func appendEntryData(buf []byte, data []byte, engine endian.EndianEngine) ([]byte, [4]byte) {
	var v [4]byte
	if len(data) <= 4 {
		copy(v[:], data)
		return buf, v
	}

	buf = alignEven(buf)
	engine.PutUint32(v[:], uint32(len(buf)))

	return append(buf, data...), v
}

// insertEntry keeps the ascending tag order the format requires.
func insertEntry(entries []ifdEntry, e ifdEntry) []ifdEntry {
	i, _ := slices.BinarySearchFunc(entries, e, func(a, b ifdEntry) int {
		return int(a.tag) - int(b.tag)
	})

	return slices.Insert(entries, i, e)
}

// rebaseEntry shifts the entry's payload pointer by delta after its frame
// was copied delta bytes into a larger container. Strip and tile position
// tags additionally get their elements shifted, since those address pixel
// bytes of the relocated frame.
func rebaseEntry(buf []byte, e *ifdEntry, delta uint32, engine endian.EndianEngine) error {
	if e.pointer() {
		e.setOffset(engine, e.offset(engine)+delta)
	}
	if e.tag != tagStripOffsets && e.tag != tagTileOffsets {
		return nil
	}

	var data []byte
	if e.pointer() {
		start := int(e.offset(engine))
		end := start + int(e.dataLen())
		if start < 0 || end > len(buf) {
			return fmt.Errorf("%w: tag %d payload at %d..%d in a %d-byte container", errs.ErrOffsetOutOfRange, e.tag, start, end, len(buf))
		}
		data = buf[start:end]
	} else {
		data = e.value[:e.dataLen()]
	}

	switch e.typ {
	case dtShort:
		for i := 0; i+2 <= len(data); i += 2 {
			v := uint32(engine.Uint16(data[i:i+2])) + delta
			if v > math.MaxUint16 {
				return fmt.Errorf("tag %d: relocated offset %d does not fit its 16-bit storage", e.tag, v)
			}
			engine.PutUint16(data[i:i+2], uint16(v))
		}
	case dtLong:
		for i := 0; i+4 <= len(data); i += 4 {
			engine.PutUint32(data[i:i+4], engine.Uint32(data[i:i+4])+delta)
		}
	default:
		return fmt.Errorf("tag %d: unsupported element type %d for relocated offsets", e.tag, e.typ)
	}

	return nil
}

// entryData returns the entry's payload bytes, following the pointer when
// the payload does not fit inline. The result is always an owned copy.
func entryData(r io.ReaderAt, e *ifdEntry, engine endian.EndianEngine) ([]byte, error) {
	n := e.dataLen()
	if n > maxEntryData {
		return nil, fmt.Errorf("tag %d: payload of %d bytes is implausibly large", e.tag, n)
	}
	if n <= 4 {
		out := make([]byte, n)
		copy(out, e.value[:n])

		return out, nil
	}

	out := make([]byte, n)
	if _, err := r.ReadAt(out, int64(e.offset(engine))); err != nil {
		return nil, fmt.Errorf("read tag %d payload: %w", e.tag, err)
	}

	return out, nil
}

// entryUints decodes an integer-typed entry payload into uint32 values.
func entryUints(r io.ReaderAt, e *ifdEntry, engine endian.EndianEngine) ([]uint32, error) {
	data, err := entryData(r, e, engine)
	if err != nil {
		return nil, err
	}

	out := make([]uint32, e.count)
	switch e.typ {
	case dtByte:
		for i := range out {
			out[i] = uint32(data[i])
		}
	case dtShort:
		for i := range out {
			out[i] = uint32(engine.Uint16(data[2*i : 2*i+2]))
		}
	case dtLong:
		for i := range out {
			out[i] = engine.Uint32(data[4*i : 4*i+4])
		}
	default:
		return nil, fmt.Errorf("tag %d: element type %d is not an unsigned integer", e.tag, e.typ)
	}

	return out, nil
}

func alignEven(buf []byte) []byte {
	if len(buf)%2 == 1 {
		return append(buf, 0)
	}

	return buf
}
