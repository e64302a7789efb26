package roi

import (
	"errors"
	"fmt"
	"iter"
	"slices"

	"github.com/arloliu/ijroi/internal/collision"
	"github.com/arloliu/ijroi/internal/hash"
)

// OverlaySet is a collection of decoded overlay records indexed for frame
// and track queries. Records keep their block order; the per-frame and
// per-name views preserve that order within each key.
//
// Tracks are keyed by the 64-bit hash of the record name, so records that
// share a name across frames form one track. The set detects hash
// collisions between distinct names on construction.
type OverlaySet struct {
	records []*Record
	byFrame map[int][]*Record
	byName  map[string][]*Record
	tracker *collision.Tracker
}

// NewOverlaySet indexes the given records. The slice is retained; callers
// must not mutate it afterwards.
func NewOverlaySet(records []*Record) *OverlaySet {
	s := &OverlaySet{
		records: records,
		byFrame: make(map[int][]*Record),
		byName:  make(map[string][]*Record),
		tracker: collision.NewTracker(),
	}

	for _, rec := range records {
		frame := int(rec.Position)
		s.byFrame[frame] = append(s.byFrame[frame], rec)
		if rec.Name != "" {
			s.byName[rec.Name] = append(s.byName[rec.Name], rec)
			s.tracker.Track(rec.Name, rec.TrackID())
		}
	}

	return s
}

// DecodeOverlaySet decodes raw overlay segments, typically the output of
// SplitBlock, and indexes the result.
//
// Decoding is best-effort: segments that fail to decode are skipped and
// reported in the joined error, while the returned set holds every record
// that decoded cleanly. The set is non-nil even when all segments fail.
func DecodeOverlaySet(segments [][]byte) (*OverlaySet, error) {
	records := make([]*Record, 0, len(segments))

	var errList []error
	for i, seg := range segments {
		rec, err := Decode(seg)
		if err != nil {
			errList = append(errList, fmt.Errorf("overlay segment %d: %w", i, err))
			continue
		}
		records = append(records, rec)
	}

	return NewOverlaySet(records), errors.Join(errList...)
}

// Len returns the number of records in the set.
func (s *OverlaySet) Len() int {
	return len(s.records)
}

// Records returns the records in block order. The slice is shared with the
// set; callers must not mutate it.
func (s *OverlaySet) Records() []*Record {
	return s.records
}

// All iterates over the records in block order.
func (s *OverlaySet) All() iter.Seq[*Record] {
	return func(yield func(*Record) bool) {
		for _, rec := range s.records {
			if !yield(rec) {
				return
			}
		}
	}
}

// Frames returns the sorted one-based positions that have at least one
// record. Records encoded with position 0 appear under frame 0.
func (s *OverlaySet) Frames() []int {
	frames := make([]int, 0, len(s.byFrame))
	for frame := range s.byFrame {
		frames = append(frames, frame)
	}
	slices.Sort(frames)

	return frames
}

// ByFrame returns the records placed on the given one-based position, in
// block order, or nil when the frame has none.
func (s *OverlaySet) ByFrame(position int) []*Record {
	return s.byFrame[position]
}

// ByName returns the records carrying the given name, in block order.
// The empty name always returns nil; unnamed records are not indexed.
func (s *OverlaySet) ByName(name string) []*Record {
	return s.byName[name]
}

// Tracks groups the named records by track ID. A track normally holds one
// record per frame the object appears on, sorted by position. Unnamed
// records belong to no track.
func (s *OverlaySet) Tracks() map[uint64][]*Record {
	tracks := make(map[uint64][]*Record, len(s.byName))
	for name, recs := range s.byName {
		id := hash.ID(name)
		tracks[id] = append(tracks[id], recs...)
	}
	for _, recs := range tracks {
		slices.SortStableFunc(recs, func(a, b *Record) int {
			return int(a.Position) - int(b.Position)
		})
	}

	return tracks
}

// TrackNames returns the distinct record names in first-seen order.
func (s *OverlaySet) TrackNames() []string {
	return s.tracker.Names()
}

// TrackName resolves a track ID back to its record name. The second
// return is false for IDs no record in the set hashes to.
func (s *OverlaySet) TrackName(id uint64) (string, bool) {
	return s.tracker.Name(id)
}

// HasCollision reports whether two distinct record names hash to the same
// track ID. Collisions do not block decoding, but Tracks merges the
// colliding names into one entry, so callers grouping by track should
// fall back to grouping by name when this returns true.
func (s *OverlaySet) HasCollision() bool {
	return s.tracker.HasCollision()
}
