package section

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/ijroi/errs"
)

func TestNewOverlayHeader(t *testing.T) {
	require := require.New(t)

	h := NewOverlayHeader(3)

	require.Equal(OverlayMetaHeaderSize, h.Size())
	require.Equal(3, h.SegmentCount())
	require.Len(h.Entries, 1)
	require.Equal(KindOverlay, h.Entries[0].Kind)
	require.Equal(uint32(3), h.Entries[0].Count)
}

func TestMetaHeader_Bytes(t *testing.T) {
	h := NewOverlayHeader(2)

	want := []byte{
		0x49, 0x4A, 0x49, 0x4A, // "IJIJ"
		0x6F, 0x76, 0x65, 0x72, // "over"
		0x00, 0x00, 0x00, 0x02, // count = 2
	}
	require.Equal(t, want, h.Bytes())
}

func TestMetaHeader_ParseRoundTrip(t *testing.T) {
	t.Run("single overlay entry", func(t *testing.T) {
		orig := NewOverlayHeader(7)

		parsed := MetaHeader{}
		require.NoError(t, parsed.Parse(orig.Bytes()))
		require.Equal(t, orig.Entries, parsed.Entries)
	})

	t.Run("multiple entries", func(t *testing.T) {
		orig := &MetaHeader{
			Entries: []MetaEntry{
				{Kind: KindInfo, Count: 1},
				{Kind: KindLabels, Count: 5},
				{Kind: KindOverlay, Count: 3},
			},
		}
		require.Equal(t, 4+3*8, orig.Size())
		require.Equal(t, 9, orig.SegmentCount())

		parsed := MetaHeader{}
		require.NoError(t, parsed.Parse(orig.Bytes()))
		require.Equal(t, orig.Entries, parsed.Entries)
	})

	t.Run("magic only, no entries", func(t *testing.T) {
		data := []byte{0x49, 0x4A, 0x49, 0x4A}

		parsed := MetaHeader{}
		require.NoError(t, parsed.Parse(data))
		require.Empty(t, parsed.Entries)
		require.Equal(t, 0, parsed.SegmentCount())
	})
}

func TestMetaHeader_ParseErrors(t *testing.T) {
	t.Run("invalid magic", func(t *testing.T) {
		data := []byte{
			0xDE, 0xAD, 0xBE, 0xEF,
			0x6F, 0x76, 0x65, 0x72,
			0x00, 0x00, 0x00, 0x01,
		}
		parsed := MetaHeader{}
		require.ErrorIs(t, parsed.Parse(data), errs.ErrInvalidMagicNumber)
	})

	t.Run("length not aligned to entries", func(t *testing.T) {
		data := NewOverlayHeader(1).Bytes()
		parsed := MetaHeader{}
		require.ErrorIs(t, parsed.Parse(data[:10]), errs.ErrInvalidHeaderSize)
	})

	t.Run("shorter than magic", func(t *testing.T) {
		parsed := MetaHeader{}
		require.ErrorIs(t, parsed.Parse([]byte{0x49, 0x4A}), errs.ErrInvalidHeaderSize)
	})
}

func TestParseMetaHeader(t *testing.T) {
	block := append(NewOverlayHeader(2).Bytes(), 0xAA, 0xBB, 0xCC)

	t.Run("parses header prefix of a block", func(t *testing.T) {
		h, err := ParseMetaHeader(block, OverlayMetaHeaderSize)
		require.NoError(t, err)
		require.Equal(t, KindOverlay, h.Entries[0].Kind)
		require.Equal(t, uint32(2), h.Entries[0].Count)
	})

	t.Run("buffer shorter than header size", func(t *testing.T) {
		_, err := ParseMetaHeader(block[:8], OverlayMetaHeaderSize)
		require.ErrorIs(t, err, errs.ErrBufferTooShort)
	})

	t.Run("header size below magic size", func(t *testing.T) {
		_, err := ParseMetaHeader(block, 2)
		require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)
	})
}
