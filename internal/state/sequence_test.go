package state

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCuts(n int) []Cut {
	cuts := make([]Cut, n)
	for i := range cuts {
		cuts[i] = Cut{
			ID:          fmt.Sprintf("cut-%d", i+1),
			Index:       i,
			Pos:         Vec{X: float64(i) * 400, Y: 100},
			Size:        Size{W: 350, H: 200},
			Description: fmt.Sprintf("desc%d", i+1),
		}
	}
	return cuts
}

func TestSequenceAppendCapturesCentre(t *testing.T) {
	cuts := testCuts(3)
	s := NewSequence(3, PolicyAppendOnly)

	assert.Equal(t, ToggleAdded, s.Toggle(cuts[1]))
	entries := s.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "cut-2", entries[0].CutID)
	assert.Equal(t, Vec{X: 400 + 175, Y: 200}, entries[0].Center)
}

func TestSequenceAppendOnlyIgnoresReselect(t *testing.T) {
	cuts := testCuts(3)
	s := NewSequence(3, PolicyAppendOnly)

	s.Toggle(cuts[0])
	assert.Equal(t, ToggleIgnored, s.Toggle(cuts[0]))
	assert.Equal(t, 1, s.Len())
}

func TestSequenceToggleRemoves(t *testing.T) {
	cuts := testCuts(3)
	s := NewSequence(3, PolicyToggle)

	s.Toggle(cuts[0])
	s.Toggle(cuts[1])
	assert.Equal(t, ToggleRemoved, s.Toggle(cuts[0]))
	assert.Equal(t, []string{"desc2"}, s.Descriptions())

	rank, ok := s.Rank("cut-2")
	assert.True(t, ok)
	assert.Equal(t, 1, rank)
}

func TestSequenceSealsAtLimit(t *testing.T) {
	cuts := testCuts(3)
	s := NewSequence(3, PolicyToggle)

	var fired [][]Entry
	s.OnComplete = func(entries []Entry) { fired = append(fired, entries) }

	s.Toggle(cuts[1])
	s.Toggle(cuts[0])
	assert.Empty(t, fired)
	s.Toggle(cuts[2])

	require.Len(t, fired, 1, "completion fires synchronously, once")
	assert.True(t, s.Sealed())
	assert.Equal(t, []string{"desc2", "desc1", "desc3"}, s.Descriptions())

	// sealed: toggling is a no-op, including removal under the toggle policy
	assert.Equal(t, ToggleIgnored, s.Toggle(cuts[0]))
	assert.Equal(t, 3, s.Len())
	assert.False(t, s.ForceGenerate(cuts))
	assert.Len(t, fired, 1)
}

func TestSequenceNeverDuplicatesOrOverflows(t *testing.T) {
	cuts := testCuts(5)
	for _, policy := range []SelectionPolicy{PolicyAppendOnly, PolicyToggle} {
		s := NewSequence(4, policy)
		order := []int{0, 1, 1, 2, 0, 3, 4, 2, 4, 1, 0, 3}
		for _, i := range order {
			s.Toggle(cuts[i])

			seen := map[string]bool{}
			for _, e := range s.Entries() {
				require.False(t, seen[e.CutID], "duplicate %s under %s", e.CutID, policy)
				seen[e.CutID] = true
			}
			require.LessOrEqual(t, s.Len(), 4)
		}
	}
}

func TestSequenceForceGenerate(t *testing.T) {
	cuts := testCuts(4)

	t.Run("partial selection is kept", func(t *testing.T) {
		s := NewSequence(4, PolicyAppendOnly)
		var got []Entry
		s.OnComplete = func(entries []Entry) { got = entries }

		s.Toggle(cuts[2])
		require.True(t, s.ForceGenerate(cuts))
		assert.True(t, s.Sealed())
		require.Len(t, got, 1)
		assert.Equal(t, "cut-3", got[0].CutID)
	})

	t.Run("empty selection uses layout order", func(t *testing.T) {
		s := NewSequence(4, PolicyAppendOnly)
		var got []Entry
		s.OnComplete = func(entries []Entry) { got = entries }

		require.True(t, s.ForceGenerate(cuts))
		require.Len(t, got, 4)
		assert.Equal(t, []string{"desc1", "desc2", "desc3", "desc4"}, s.Descriptions())
	})
}

func TestParseSelectionPolicy(t *testing.T) {
	p, err := ParseSelectionPolicy("")
	require.NoError(t, err)
	assert.Equal(t, PolicyAppendOnly, p)

	p, err = ParseSelectionPolicy("toggle")
	require.NoError(t, err)
	assert.Equal(t, PolicyToggle, p)

	_, err = ParseSelectionPolicy("shuffle")
	assert.Error(t, err)
}
