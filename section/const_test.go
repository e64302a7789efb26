package section

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMetaKindValues(t *testing.T) {
	// The kinds are four ASCII characters packed big-endian; the String
	// form must spell them back.
	tests := []struct {
		kind MetaKind
		text string
	}{
		{KindInfo, "info"},
		{KindLabels, "labl"},
		{KindRanges, "rang"},
		{KindLUTs, "luts"},
		{KindRoi, "roi "},
		{KindOverlay, "over"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.text, tt.kind.String())
		require.True(t, tt.kind.Known())
	}
}

func TestMetaKindUnknown(t *testing.T) {
	k := MetaKind(0x00000001)
	require.False(t, k.Known())
	require.Equal(t, "0x00000001", k.String())

	// Printable but unknown stays unknown while rendering as text.
	k = MetaKind(0x61626364) // "abcd"
	require.False(t, k.Known())
	require.Equal(t, "abcd", k.String())
}

func TestMetaMagicSpellsIJIJ(t *testing.T) {
	require.Equal(t, uint32(0x494A494A), MetaMagic)
	m := MetaMagic
	require.Equal(t, "IJIJ", string([]byte{
		byte(m >> 24), byte(m >> 16),
		byte(m >> 8), byte(m),
	}))
}

func TestSizeConstants(t *testing.T) {
	require.Equal(t, 64, RoiHeaderSize)
	require.Equal(t, 52, RoiHeader2Size)
	require.Equal(t, 12, OverlayMetaHeaderSize)
	require.Equal(t, 40, RoiEncodeOptions)
}
