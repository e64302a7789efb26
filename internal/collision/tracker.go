// Package collision detects track-name hash collisions while grouping
// decoded overlays into tracks.
package collision

// Tracker records track names and their 64-bit IDs as overlays are grouped.
// Same-named overlays across frames share a track, so repeated names are
// expected and tracked once. Distinct names mapping to the same ID set the
// collision flag; callers then fall back to exact name lookups instead of
// trusting IDs alone.
type Tracker struct {
	trackNames map[uint64]string // ID → name mapping for collision detection
	nameOrder  []string          // distinct names in first-seen order
	collision  bool              // whether a collision has been detected
}

// NewTracker creates a new collision tracker.
func NewTracker() *Tracker {
	return &Tracker{
		trackNames: make(map[uint64]string),
		nameOrder:  make([]string, 0),
	}
}

// Track records a track name with its hash ID.
//
// The first occurrence of a name registers the track. Later occurrences of
// the same name are no-ops. A different name arriving with an already-used
// ID sets the collision flag; the original name keeps the ID.
func (t *Tracker) Track(name string, hash uint64) {
	existing, exists := t.trackNames[hash]
	if exists {
		if existing != name {
			t.collision = true
		}

		return
	}

	t.trackNames[hash] = name
	t.nameOrder = append(t.nameOrder, name)
}

// HasCollision returns true if two distinct names mapped to the same ID.
func (t *Tracker) HasCollision() bool {
	return t.collision
}

// Names returns the distinct track names in first-seen order.
func (t *Tracker) Names() []string {
	return t.nameOrder
}

// Name returns the track name registered for the given ID.
func (t *Tracker) Name(hash uint64) (string, bool) {
	name, ok := t.trackNames[hash]
	return name, ok
}

// Count returns the number of distinct tracks.
func (t *Tracker) Count() int {
	return len(t.nameOrder)
}

// Reset clears all tracked names and collision state so the tracker can be
// reused for a new overlay set.
func (t *Tracker) Reset() {
	// Clear maps but preserve capacity to avoid allocations
	for k := range t.trackNames {
		delete(t.trackNames, k)
	}
	t.nameOrder = t.nameOrder[:0]
	t.collision = false
}
