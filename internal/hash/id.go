// Package hash derives stable 64-bit IDs from ROI track names.
//
// Same-named ROIs across frames form a track; the xxHash64 of the name is
// the track's map key. IDs are stable across processes, so they can be
// persisted or compared between sessions.
package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}
