package roi

import (
	"image"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/ijroi/internal/hash"
)

// trackedRecords builds a small time-lapse: cellA on frames 1..3, cellB on
// frames 1..2, plus one unnamed record on frame 1.
func trackedRecords(t *testing.T) []*Record {
	t.Helper()

	outline := []image.Point{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}}

	var records []*Record
	add := func(frame int, opts ...EncodeOption) {
		opts = append(opts, WithPosition(0, 0, frame))
		data, err := Encode(outline, opts...)
		require.NoError(t, err)
		rec, err := Decode(data)
		require.NoError(t, err)
		records = append(records, rec)
	}

	add(0, WithName("cellA"))
	add(0, WithName("cellB"))
	add(0, WithName(""))
	add(1, WithName("cellA"))
	add(1, WithName("cellB"))
	add(2, WithName("cellA"))

	return records
}

func TestOverlaySet_Indexing(t *testing.T) {
	set := NewOverlaySet(trackedRecords(t))

	require.Equal(t, 6, set.Len())
	require.Equal(t, []int{1, 2, 3}, set.Frames())

	require.Len(t, set.ByFrame(1), 3)
	require.Len(t, set.ByFrame(2), 2)
	require.Len(t, set.ByFrame(3), 1)
	require.Nil(t, set.ByFrame(4))

	require.Len(t, set.ByName("cellA"), 3)
	require.Len(t, set.ByName("cellB"), 2)
	require.Nil(t, set.ByName(""), "unnamed records are not indexed by name")
	require.Nil(t, set.ByName("cellC"))
}

func TestOverlaySet_All(t *testing.T) {
	records := trackedRecords(t)
	set := NewOverlaySet(records)

	var seen []*Record
	for rec := range set.All() {
		seen = append(seen, rec)
	}
	require.Equal(t, records, seen)

	// Early break must not panic or overrun.
	count := 0
	for range set.All() {
		count++
		if count == 2 {
			break
		}
	}
	require.Equal(t, 2, count)
}

func TestOverlaySet_Tracks(t *testing.T) {
	set := NewOverlaySet(trackedRecords(t))

	tracks := set.Tracks()
	require.Len(t, tracks, 2, "unnamed records form no track")

	idA := hash.ID("cellA")
	idB := hash.ID("cellB")

	trackA := tracks[idA]
	require.Len(t, trackA, 3)
	for i, rec := range trackA {
		require.Equal(t, "cellA", rec.Name)
		require.Equal(t, int32(i+1), rec.Position, "tracks are sorted by position")
	}

	require.Len(t, tracks[idB], 2)

	require.Equal(t, []string{"cellA", "cellB"}, set.TrackNames())

	name, ok := set.TrackName(idA)
	require.True(t, ok)
	require.Equal(t, "cellA", name)

	_, ok = set.TrackName(0xDEADBEEF)
	require.False(t, ok)

	require.False(t, set.HasCollision())
}

func TestOverlaySet_Empty(t *testing.T) {
	set := NewOverlaySet(nil)

	require.Zero(t, set.Len())
	require.Empty(t, set.Frames())
	require.Empty(t, set.Tracks())
	require.Empty(t, set.TrackNames())
	require.False(t, set.HasCollision())
}

func TestDecodeOverlaySet(t *testing.T) {
	t.Run("clean segments", func(t *testing.T) {
		records := encodeBlockRecords(t)

		set, err := DecodeOverlaySet(records)
		require.NoError(t, err)
		require.Equal(t, 2, set.Len())
		require.Len(t, set.ByName("cellA"), 2)
	})

	t.Run("bad segment skipped", func(t *testing.T) {
		records := encodeBlockRecords(t)
		segments := [][]byte{records[0], {0x01, 0x02}, records[1]}

		set, err := DecodeOverlaySet(segments)
		require.Error(t, err)
		require.ErrorContains(t, err, "overlay segment 1")
		require.Equal(t, 2, set.Len(), "good records survive a bad sibling")
	})

	t.Run("all segments bad", func(t *testing.T) {
		set, err := DecodeOverlaySet([][]byte{{0x01}, {0x02}})
		require.Error(t, err)
		require.NotNil(t, set)
		require.Zero(t, set.Len())
	})
}
