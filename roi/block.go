package roi

import (
	"fmt"

	"github.com/arloliu/ijroi/endian"
	"github.com/arloliu/ijroi/errs"
	"github.com/arloliu/ijroi/section"
)

// AssembleBlock packs encoded overlay records into one metadata block.
//
// The block starts with an overlay header announcing the record count,
// followed by the records back to back. The returned byte counts describe
// the block's internal boundaries: the first entry is the header size and
// each following entry is one record's size, which is exactly the shape
// the byte-count companion tag stores in a TIFF container. The two return
// values always satisfy len(block) == sum(byteCounts).
//
// The block header is written big-endian; records are big-endian by
// construction. An empty record list assembles into a bare header
// announcing zero records, which readers accept.
func AssembleBlock(records [][]byte) ([]byte, []uint32) {
	return AssembleBlockWithEngine(records, endian.GetBigEndianEngine())
}

// AssembleBlockWithEngine is AssembleBlock with an explicit byte order for
// the block header. The header must match the byte order of the container
// the block is stored in; the records themselves stay big-endian either
// way.
func AssembleBlockWithEngine(records [][]byte, engine endian.EndianEngine) ([]byte, []uint32) {
	header := section.NewOverlayHeader(len(records))

	size := header.Size()
	for _, r := range records {
		size += len(r)
	}

	block := make([]byte, 0, size)
	block = append(block, header.BytesWithEngine(engine)...)

	byteCounts := make([]uint32, 0, len(records)+1)
	byteCounts = append(byteCounts, uint32(header.Size()))
	for _, r := range records {
		block = append(block, r...)
		byteCounts = append(byteCounts, uint32(len(r)))
	}

	return block, byteCounts
}

// BlockInfo is the parsed form of a metadata block: the header and the raw
// segment payloads grouped by kind, each kind's segments in block order.
type BlockInfo struct {
	Header   section.MetaHeader
	Segments map[section.MetaKind][][]byte
}

// Overlays returns the raw overlay record segments, or nil when the block
// carries none. Each segment is one complete ROI record for Decode.
func (b *BlockInfo) Overlays() [][]byte {
	return b.Segments[section.KindOverlay]
}

// SplitBlock cuts a metadata block back into its segments using the
// byte-count table stored alongside it.
//
// The first byte count sizes the header; the remaining counts size the
// segments in the order the header's entries announce them. Segments are
// copied out of block, so the returned BlockInfo stays valid after the
// caller releases or reuses the block buffer. Trailing bytes beyond the
// last segment are ignored.
//
// Parameters:
//   - block: Complete metadata block
//   - byteCounts: Companion byte-count table, header size first
//
// Returns:
//   - *BlockInfo: Parsed header plus per-kind raw segments
//   - error: ErrMissingByteCounts, ErrBufferTooShort, ErrInvalidHeaderSize,
//     ErrInvalidMagicNumber, or ErrByteCountMismatch
func SplitBlock(block []byte, byteCounts []uint32) (*BlockInfo, error) {
	return SplitBlockWithEngine(block, byteCounts, endian.GetBigEndianEngine())
}

// SplitBlockWithEngine is SplitBlock with an explicit byte order for the
// block header, matching the byte order of the container the block was
// read from.
func SplitBlockWithEngine(block []byte, byteCounts []uint32, engine endian.EndianEngine) (*BlockInfo, error) {
	if len(byteCounts) == 0 {
		return nil, errs.ErrMissingByteCounts
	}

	headerSize := int(byteCounts[0])
	header, err := section.ParseMetaHeaderWithEngine(block, headerSize, engine)
	if err != nil {
		return nil, err
	}

	if header.SegmentCount() != len(byteCounts)-1 {
		return nil, fmt.Errorf("%w: header announces %d segments, byte-count table holds %d",
			errs.ErrByteCountMismatch, header.SegmentCount(), len(byteCounts)-1)
	}

	info := &BlockInfo{
		Header:   header,
		Segments: make(map[section.MetaKind][][]byte, len(header.Entries)),
	}

	offset := headerSize
	next := 1
	for _, entry := range header.Entries {
		for i := uint32(0); i < entry.Count; i++ {
			size := int(byteCounts[next])
			next++
			if offset+size > len(block) {
				return nil, fmt.Errorf("%w: segment %d spans %d..%d in a %d-byte block",
					errs.ErrByteCountMismatch, next-1, offset, offset+size, len(block))
			}
			seg := make([]byte, size)
			copy(seg, block[offset:offset+size])
			info.Segments[entry.Kind] = append(info.Segments[entry.Kind], seg)
			offset += size
		}
	}

	return info, nil
}
