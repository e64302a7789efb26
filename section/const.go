package section

import "fmt"

// MetaMagic opens every metadata block ("IJIJ" in ASCII).
const MetaMagic uint32 = 0x494A494A

// MetaKind identifies one class of metadata carried in a block. The known
// values are four ASCII characters packed big-endian.
type MetaKind uint32

const (
	KindInfo    MetaKind = 0x696E666F // "info" image property
	KindLabels  MetaKind = 0x6C61626C // "labl" slice labels
	KindRanges  MetaKind = 0x72616E67 // "rang" display ranges
	KindLUTs    MetaKind = 0x6C757473 // "luts" channel lookup tables
	KindRoi     MetaKind = 0x726F6920 // "roi " single ROI
	KindOverlay MetaKind = 0x6F766572 // "over" overlay
)

// Known reports whether k is one of the defined metadata kinds.
func (k MetaKind) Known() bool {
	switch k {
	case KindInfo, KindLabels, KindRanges, KindLUTs, KindRoi, KindOverlay:
		return true
	default:
		return false
	}
}

// String renders the four ASCII characters of the kind, or the hex value
// when any byte is not printable.
func (k MetaKind) String() string {
	b := [4]byte{byte(k >> 24), byte(k >> 16), byte(k >> 8), byte(k)}
	for _, c := range b {
		if c < 0x20 || c > 0x7E {
			return fmt.Sprintf("0x%08X", uint32(k))
		}
	}

	return string(b[:])
}

// ROI record identity constants.
const (
	// RoiMagic is the 4-byte tag opening every ROI record.
	RoiMagic = "Iout"
	// RoiVersion is the ROI format version emitted by the encoder.
	RoiVersion = 226
)

// Options bit flags stored in the primary header's options field.
const (
	RoiOptionOverlayLabels      = 8  // draw labels on the overlay
	RoiOptionOverlayBackgrounds = 32 // draw label backgrounds
	// RoiEncodeOptions is the fixed flag set stamped on encoded records.
	RoiEncodeOptions = RoiOptionOverlayLabels | RoiOptionOverlayBackgrounds
)

// Section sizes in bytes.
const (
	RoiHeaderSize  = 64 // fixed primary ROI header size
	RoiHeader2Size = 52 // fixed secondary ROI header size
	MetaMagicSize  = 4  // magic prefix of a metadata block header
	MetaEntrySize  = 8  // one (kind, count) pair in a block header
	// OverlayMetaHeaderSize is the block header size the assembler emits:
	// the magic plus a single overlay entry.
	OverlayMetaHeaderSize = MetaMagicSize + MetaEntrySize
	// CoordinateSize is the encoded size of one (x, y) pair.
	CoordinateSize = 4
)

// TIFF tag IDs used to carry the metadata block in a container file.
const (
	TagImageDescription = 270   // ASCII description, holds the "ImageJ=" marker
	TagMetaByteCounts   = 50838 // LONG array of per-segment byte counts
	TagMeta             = 50839 // BYTE array holding the metadata block
)
