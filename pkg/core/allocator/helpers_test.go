package allocator

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

// prefsOf builds preferences from ordered name/choices pairs
func prefsOf(entries ...any) *Preferences {
	prefs := NewPreferences()
	for i := 0; i+1 < len(entries); i += 2 {
		prefs.Add(entries[i].(string), entries[i+1].([]string))
	}
	return prefs
}

func rooms(members ...[]string) Allocation {
	alloc := make(Allocation, len(members))
	for i, m := range members {
		alloc[i] = Room{Capacity: len(m), Members: m}
	}
	return alloc
}

// randomRoster builds n pupils who each choose up to 5 others, sometimes naming someone absent
func randomRoster(rng *rand.Rand, n int) *Preferences {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("Pupil %02d", i)
	}

	prefs := NewPreferences()
	for _, name := range names {
		count := rng.Intn(6)
		choices := make([]string, 0, count)
		for i := 0; i < count; i++ {
			if rng.Intn(10) == 0 {
				choices = append(choices, "Absent Pupil")
				continue
			}
			choices = append(choices, names[rng.Intn(n)])
		}
		prefs.Add(name, choices)
	}
	return prefs
}

func assertValidAllocation(t *testing.T, prefs *Preferences, alloc Allocation) {
	t.Helper()
	assert.Empty(t, ValidateAllocation(prefs, alloc))
	assert.Equal(t, prefs.Len(), alloc.PlacedCount())
}
