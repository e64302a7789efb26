package roi

import (
	"encoding/binary"
	"image"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/ijroi/endian"
	"github.com/arloliu/ijroi/errs"
	"github.com/arloliu/ijroi/section"
)

func encodeBlockRecords(t *testing.T) [][]byte {
	t.Helper()

	square := []image.Point{{X: 10, Y: 20}, {X: 15, Y: 20}, {X: 15, Y: 25}, {X: 10, Y: 25}}
	triangle := []image.Point{{X: 0, Y: 0}, {X: 8, Y: 0}, {X: 4, Y: 6}}

	r0, err := Encode(square, WithPosition(0, 0, 0), WithName("cellA"))
	require.NoError(t, err)
	r1, err := Encode(triangle, WithPosition(0, 0, 1), WithName("cellA"))
	require.NoError(t, err)

	return [][]byte{r0, r1}
}

func TestAssembleBlock(t *testing.T) {
	records := encodeBlockRecords(t)

	block, byteCounts := AssembleBlock(records)

	wantHeader := []byte{
		0x49, 0x4A, 0x49, 0x4A, // "IJIJ"
		0x6F, 0x76, 0x65, 0x72, // "over"
		0x00, 0x00, 0x00, 0x02, // two records
	}
	require.Equal(t, wantHeader, block[:12])

	require.Equal(t, []uint32{12, uint32(len(records[0])), uint32(len(records[1]))}, byteCounts)

	total := 0
	for _, c := range byteCounts {
		total += int(c)
	}
	require.Len(t, block, total, "byte counts partition the block exactly")

	require.Equal(t, records[0], block[12:12+len(records[0])])
	require.Equal(t, records[1], block[12+len(records[0]):])
}

func TestAssembleBlock_Empty(t *testing.T) {
	block, byteCounts := AssembleBlock(nil)

	require.Len(t, block, 12)
	require.Equal(t, []uint32{12}, byteCounts)
	require.Equal(t, uint32(0), binary.BigEndian.Uint32(block[8:12]))

	info, err := SplitBlock(block, byteCounts)
	require.NoError(t, err)
	require.Empty(t, info.Overlays())
}

func TestSplitBlock_RoundTrip(t *testing.T) {
	records := encodeBlockRecords(t)
	block, byteCounts := AssembleBlock(records)

	info, err := SplitBlock(block, byteCounts)
	require.NoError(t, err)

	require.Len(t, info.Header.Entries, 1)
	require.Equal(t, section.KindOverlay, info.Header.Entries[0].Kind)
	require.Equal(t, uint32(2), info.Header.Entries[0].Count)

	overlays := info.Overlays()
	require.Equal(t, records, overlays)

	for i, seg := range overlays {
		rec, err := Decode(seg)
		require.NoError(t, err, "record %d", i)
		require.Equal(t, "cellA", rec.Name)
	}
}

func TestSplitBlock_CopiesSegments(t *testing.T) {
	records := encodeBlockRecords(t)
	block, byteCounts := AssembleBlock(records)

	info, err := SplitBlock(block, byteCounts)
	require.NoError(t, err)

	for i := range block {
		block[i] = 0xAA
	}

	require.Equal(t, records, info.Overlays())
}

func TestSplitBlock_MultiKind(t *testing.T) {
	// Blocks from other writers interleave overlay records with info and
	// label segments; the splitter routes each to its own kind.
	info := []byte("ImageJ=1.54f\nimages=3\n")
	labels := [][]byte{[]byte("frame 1"), []byte("frame 2")}
	records := encodeBlockRecords(t)

	header := &section.MetaHeader{Entries: []section.MetaEntry{
		{Kind: section.KindInfo, Count: 1},
		{Kind: section.KindLabels, Count: 2},
		{Kind: section.KindOverlay, Count: 2},
	}}

	block := header.Bytes()
	byteCounts := []uint32{uint32(header.Size())}
	for _, seg := range [][]byte{info, labels[0], labels[1], records[0], records[1]} {
		block = append(block, seg...)
		byteCounts = append(byteCounts, uint32(len(seg)))
	}

	parsed, err := SplitBlock(block, byteCounts)
	require.NoError(t, err)

	require.Equal(t, [][]byte{info}, parsed.Segments[section.KindInfo])
	require.Equal(t, labels, parsed.Segments[section.KindLabels])
	require.Equal(t, records, parsed.Overlays())
}

func TestSplitBlock_LittleEndianHeader(t *testing.T) {
	// Blocks embedded in little-endian containers store the header in
	// container order while the records stay big-endian.
	records := encodeBlockRecords(t)
	engine := endian.GetLittleEndianEngine()

	block, byteCounts := AssembleBlockWithEngine(records, engine)
	require.Equal(t, []byte{0x4A, 0x49, 0x4A, 0x49}, block[:4])

	info, err := SplitBlockWithEngine(block, byteCounts, engine)
	require.NoError(t, err)
	require.Equal(t, records, info.Overlays())

	for _, seg := range info.Overlays() {
		_, err := Decode(seg)
		require.NoError(t, err)
	}

	_, err = SplitBlock(block, byteCounts)
	require.ErrorIs(t, err, errs.ErrInvalidMagicNumber)
}

func TestSplitBlock_TrailingBytes(t *testing.T) {
	records := encodeBlockRecords(t)
	block, byteCounts := AssembleBlock(records)
	block = append(block, 0x00, 0x00)

	info, err := SplitBlock(block, byteCounts)
	require.NoError(t, err)
	require.Equal(t, records, info.Overlays())
}

func TestSplitBlock_Errors(t *testing.T) {
	records := encodeBlockRecords(t)
	block, byteCounts := AssembleBlock(records)

	t.Run("missing byte counts", func(t *testing.T) {
		_, err := SplitBlock(block, nil)
		require.ErrorIs(t, err, errs.ErrMissingByteCounts)
	})

	t.Run("block shorter than header size", func(t *testing.T) {
		_, err := SplitBlock(block[:8], byteCounts)
		require.ErrorIs(t, err, errs.ErrBufferTooShort)
	})

	t.Run("misshapen header size", func(t *testing.T) {
		counts := append([]uint32{}, byteCounts...)
		counts[0] = 10

		_, err := SplitBlock(block, counts)
		require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)
	})

	t.Run("wrong magic", func(t *testing.T) {
		bad := append([]byte{}, block...)
		bad[0] = 'X'

		_, err := SplitBlock(bad, byteCounts)
		require.ErrorIs(t, err, errs.ErrInvalidMagicNumber)
	})

	t.Run("count table shorter than announced", func(t *testing.T) {
		_, err := SplitBlock(block, byteCounts[:2])
		require.ErrorIs(t, err, errs.ErrByteCountMismatch)
	})

	t.Run("count table longer than announced", func(t *testing.T) {
		counts := append(append([]uint32{}, byteCounts...), 5)

		_, err := SplitBlock(block, counts)
		require.ErrorIs(t, err, errs.ErrByteCountMismatch)
	})

	t.Run("segment overruns block", func(t *testing.T) {
		counts := append([]uint32{}, byteCounts...)
		counts[2] += 100

		_, err := SplitBlock(block, counts)
		require.ErrorIs(t, err, errs.ErrByteCountMismatch)
	})
}
