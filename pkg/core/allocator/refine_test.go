package allocator

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalSearch_MovesUnmatchedPupil(t *testing.T) {
	prefs := prefsOf(
		"A", []string{"B"},
		"B", []string{"A"},
		"C", []string{"A"},
		"D", []string{},
	)
	initial := Allocation{
		{Capacity: 3, Members: []string{"A", "B"}},
		{Capacity: 2, Members: []string{"C", "D"}},
	}

	refined, err := NewLocalSearch(10).Refine(context.Background(), prefs, initial)
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B", "C"}, refined[0].Members)
	assert.Equal(t, []string{"D"}, refined[1].Members)

	// The input allocation is left untouched
	assert.Equal(t, []string{"A", "B"}, initial[0].Members)
	assert.Equal(t, []string{"C", "D"}, initial[1].Members)
}

func TestLocalSearch_SkipsStuckPupilAndContinues(t *testing.T) {
	// C has no room to go to, D does; both are unmatched
	prefs := prefsOf(
		"A", []string{"B"},
		"B", []string{"A"},
		"C", []string{"Ghost"},
		"D", []string{"A"},
	)
	initial := Allocation{
		{Capacity: 3, Members: []string{"A", "B"}},
		{Capacity: 2, Members: []string{"C", "D"}},
	}

	refined, err := NewLocalSearch(10).Refine(context.Background(), prefs, initial)
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B", "D"}, refined[0].Members)
	assert.Equal(t, []string{"C"}, refined[1].Members)
}

func TestLocalSearch_StopsWhenNoMoveExists(t *testing.T) {
	prefs := prefsOf(
		"A", []string{"B"},
		"B", []string{"A"},
		"C", []string{"A"},
	)
	initial := Allocation{
		{Capacity: 2, Members: []string{"A", "B"}},
		{Capacity: 2, Members: []string{"C"}},
	}

	refined, err := NewLocalSearch(1000).Refine(context.Background(), prefs, initial)
	require.NoError(t, err)

	assert.Equal(t, initial, refined, "A's room is full so C stays")
}

func TestLocalSearch_RespectsIterationLimit(t *testing.T) {
	prefs := prefsOf(
		"A", []string{},
		"B", []string{"A"},
		"C", []string{"A"},
		"D", []string{},
	)
	initial := Allocation{
		{Capacity: 3, Members: []string{"A"}},
		{Capacity: 2, Members: []string{"B"}},
		{Capacity: 2, Members: []string{"C", "D"}},
	}

	refined, err := (&LocalSearch{MaxIterations: 1}).Refine(context.Background(), prefs, initial)
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B"}, refined[0].Members)
	assert.Equal(t, []string{"C", "D"}, refined[2].Members, "second move needs another iteration")
}

func TestLocalSearch_Cancelled(t *testing.T) {
	prefs := prefsOf("A", []string{"B"}, "B", []string{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLocalSearch(10).Refine(ctx, prefs, rooms([]string{"A"}, []string{"B"}))

	assert.ErrorIs(t, err, context.Canceled)
}

func TestLocalSearch_KeepsAllocationValid(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 20; i++ {
		prefs := randomRoster(rng, 24)
		seeded := SeedByLinks(prefs, []int{4, 4, 4, 3, 3, 2, 2, 2})

		refined, err := NewLocalSearch(0).Refine(context.Background(), prefs, seeded)
		require.NoError(t, err)

		assertValidAllocation(t, prefs, refined)
		assert.Equal(t, seeded.Capacities(), refined.Capacities())
	}
}

func TestNewLocalSearch_DefaultsIterations(t *testing.T) {
	assert.Equal(t, DefaultRefineIterations, NewLocalSearch(0).MaxIterations)
	assert.Equal(t, 5, NewLocalSearch(5).MaxIterations)
}
