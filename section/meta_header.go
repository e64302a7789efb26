package section

import (
	"fmt"

	"github.com/arloliu/ijroi/endian"
	"github.com/arloliu/ijroi/errs"
)

// MetaEntry is one (kind, count) pair of a metadata block header. Count is
// the number of segments of that kind packed into the block body.
type MetaEntry struct {
	Kind  MetaKind
	Count uint32
}

// MetaHeader represents the header that opens a metadata block: the magic
// value followed by one entry per metadata kind present in the block.
//
// The assembler always emits the single-entry overlay form. The parser
// accepts any number of entries, since containers produced by the consuming
// software carry info, labels, ranges and LUT entries alongside overlays.
type MetaHeader struct {
	Entries []MetaEntry
}

// NewOverlayHeader creates the header for a block holding count overlay
// records and nothing else.
func NewOverlayHeader(count int) *MetaHeader {
	return &MetaHeader{
		Entries: []MetaEntry{{Kind: KindOverlay, Count: uint32(count)}},
	}
}

// Size returns the encoded header size in bytes.
func (h *MetaHeader) Size() int {
	return MetaMagicSize + len(h.Entries)*MetaEntrySize
}

// SegmentCount returns the total number of data segments the header
// announces across all entries.
func (h *MetaHeader) SegmentCount() int {
	total := 0
	for _, e := range h.Entries {
		total += int(e.Count)
	}

	return total
}

// Parse parses the header from a byte slice holding exactly the header:
// the magic followed by a whole number of entries. Header integers are
// read big-endian, the order of a ">" container.
//
// Returns ErrInvalidHeaderSize when the length does not fit the shape, and
// ErrInvalidMagicNumber when the magic does not match.
func (h *MetaHeader) Parse(data []byte) error {
	return h.ParseWithEngine(data, endian.GetBigEndianEngine())
}

// ParseWithEngine parses the header using the given byte order. The block
// header follows the byte order of the TIFF container it is stored in,
// unlike ROI record payloads which are always big-endian.
func (h *MetaHeader) ParseWithEngine(data []byte, engine endian.EndianEngine) error {
	if len(data) < MetaMagicSize || (len(data)-MetaMagicSize)%MetaEntrySize != 0 {
		return fmt.Errorf("%w: %d bytes is not a valid block header length", errs.ErrInvalidHeaderSize, len(data))
	}

	if magic := engine.Uint32(data[0:4]); magic != MetaMagic {
		return fmt.Errorf("%w: got 0x%08X, want 0x%08X", errs.ErrInvalidMagicNumber, magic, MetaMagic)
	}

	numEntries := (len(data) - MetaMagicSize) / MetaEntrySize
	h.Entries = make([]MetaEntry, numEntries)
	for i := range numEntries {
		off := MetaMagicSize + i*MetaEntrySize
		h.Entries[i] = MetaEntry{
			Kind:  MetaKind(engine.Uint32(data[off : off+4])),
			Count: engine.Uint32(data[off+4 : off+8]),
		}
	}

	return nil
}

// Bytes serializes the MetaHeader big-endian.
func (h *MetaHeader) Bytes() []byte {
	return h.BytesWithEngine(endian.GetBigEndianEngine())
}

// BytesWithEngine serializes the MetaHeader in the given byte order, which
// must match the byte order of the container the block is stored in.
func (h *MetaHeader) BytesWithEngine(engine endian.EndianEngine) []byte {
	b := make([]byte, 0, h.Size())
	b = engine.AppendUint32(b, MetaMagic)
	for _, e := range h.Entries {
		b = engine.AppendUint32(b, uint32(e.Kind))
		b = engine.AppendUint32(b, e.Count)
	}

	return b
}

// ParseMetaHeader parses a big-endian MetaHeader of the given size from
// the start of data. The size normally comes from the first entry of the
// byte-count table stored alongside the block.
//
// Returns ErrBufferTooShort when data is shorter than headerSize, plus the
// Parse errors.
func ParseMetaHeader(data []byte, headerSize int) (MetaHeader, error) {
	return ParseMetaHeaderWithEngine(data, headerSize, endian.GetBigEndianEngine())
}

// ParseMetaHeaderWithEngine is ParseMetaHeader with an explicit byte
// order, for blocks read out of little-endian containers.
func ParseMetaHeaderWithEngine(data []byte, headerSize int, engine endian.EndianEngine) (MetaHeader, error) {
	if headerSize < MetaMagicSize {
		return MetaHeader{}, fmt.Errorf("%w: block header of %d bytes is shorter than the magic", errs.ErrInvalidHeaderSize, headerSize)
	}
	if len(data) < headerSize {
		return MetaHeader{}, fmt.Errorf("%w: need %d header bytes, have %d", errs.ErrBufferTooShort, headerSize, len(data))
	}

	h := MetaHeader{}
	if err := h.ParseWithEngine(data[:headerSize], engine); err != nil {
		return MetaHeader{}, err
	}

	return h, nil
}
