package allocator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAllocation_Valid(t *testing.T) {
	prefs := endToEndPrefs()
	alloc := Allocation{
		{Capacity: 2, Members: []string{"A", "B"}},
		{Capacity: 3, Members: []string{"C", "D"}},
	}

	assert.Empty(t, ValidateAllocation(prefs, alloc))
}

func TestValidateAllocation_OverCapacity(t *testing.T) {
	prefs := endToEndPrefs()
	alloc := Allocation{
		{Capacity: 3, Members: []string{"A", "B", "C", "D"}},
	}

	errs := ValidateAllocation(prefs, alloc)

	require.Len(t, errs, 1)
	assert.Equal(t, RuleCapacity, errs[0].Rule)
	assert.Equal(t, 0, errs[0].Room)
	assert.Equal(t, "room 1 Capacity: holds 4 pupils but capacity is 3", errs[0].Error())
}

func TestValidateAllocation_DuplicateAndUnplaced(t *testing.T) {
	prefs := endToEndPrefs()
	alloc := Allocation{
		{Capacity: 2, Members: []string{"A", "B"}},
		{Capacity: 2, Members: []string{"A", "C"}},
	}

	errs := ValidateAllocation(prefs, alloc)

	require.Len(t, errs, 2)
	assert.Equal(t, RuleDuplicate, errs[0].Rule)
	assert.Contains(t, errs[0].Description, `"A" is also in room 1`)
	assert.Equal(t, RuleUnplaced, errs[1].Rule)
	assert.Equal(t, -1, errs[1].Room)
	assert.Equal(t, `Unplaced: "D" has no room`, errs[1].Error())
}

func TestValidateAllocation_UnknownPupil(t *testing.T) {
	prefs := prefsOf("A", []string{})
	alloc := Allocation{{Capacity: 2, Members: []string{"A", "Z"}}}

	errs := ValidateAllocation(prefs, alloc)

	require.Len(t, errs, 1)
	assert.Equal(t, RuleUnknown, errs[0].Rule)
}
