package encoding

import (
	"unicode/utf16"

	"github.com/arloliu/ijroi/endian"
)

// UTF16Length returns the length of s in UTF-16 code units. Characters
// outside the basic multilingual plane encode as surrogate pairs and count
// as two units, matching the length bookkeeping of the consuming software.
func UTF16Length(s string) int {
	n := 0
	for _, r := range s {
		n++
		if r > 0xFFFF {
			n++
		}
	}

	return n
}

// AppendUTF16 appends s as UTF-16 code units in the given byte order and
// returns the extended slice plus the number of code units written.
func AppendUTF16(dst []byte, s string, engine endian.EndianEngine) ([]byte, int) {
	units := utf16.Encode([]rune(s))
	for _, u := range units {
		dst = engine.AppendUint16(dst, u)
	}

	return dst, len(units)
}

// DecodeUTF16 decodes UTF-16 code units from data in the given byte order.
// A trailing odd byte is ignored. Unpaired surrogates decode to the
// replacement character.
func DecodeUTF16(data []byte, engine endian.EndianEngine) string {
	units := make([]uint16, 0, len(data)/2)
	for i := 0; i+1 < len(data); i += 2 {
		units = append(units, engine.Uint16(data[i:]))
	}

	return string(utf16.Decode(units))
}
