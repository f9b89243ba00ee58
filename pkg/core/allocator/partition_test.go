package allocator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/trip-rooms/pkg/core/model"
)

func TestSplitCapacities(t *testing.T) {
	rooms := []model.RoomSpec{
		{Label: "R1", Capacity: 4},
		{Label: "R2", Capacity: 4},
		{Label: "R3", Capacity: 2},
	}

	a, b := SplitCapacities(rooms, 6, 4)

	assert.Equal(t, []model.RoomSpec{{Label: "R1", Capacity: 4}, {Label: "R3", Capacity: 2}}, a)
	assert.Equal(t, []model.RoomSpec{{Label: "R2", Capacity: 4}}, b)
	assert.GreaterOrEqual(t, model.TotalCapacity(a), 6)
	assert.GreaterOrEqual(t, model.TotalCapacity(b), 4)

	// Same input, same split
	a2, b2 := SplitCapacities(rooms, 6, 4)
	assert.Equal(t, a, a2)
	assert.Equal(t, b, b2)
}

func TestSplitCapacities_TiesFavourA(t *testing.T) {
	rooms := []model.RoomSpec{{Label: "R1", Capacity: 2}, {Label: "R2", Capacity: 2}}

	a, b := SplitCapacities(rooms, 2, 2)

	assert.Equal(t, "R1", a[0].Label)
	assert.Equal(t, "R2", b[0].Label)
}

func TestSplitCapacities_LargestFirstAndStable(t *testing.T) {
	rooms := []model.RoomSpec{
		{Label: "Small", Capacity: 2},
		{Label: "Big1", Capacity: 6},
		{Label: "Big2", Capacity: 6},
		{Label: "Mid", Capacity: 4},
	}

	a, b := SplitCapacities(rooms, 8, 8)

	// Big1 -> A (tie), Big2 -> B (B needs 8 > 2), Mid -> A (tie at 2), Small -> B
	assert.Equal(t, []string{"Big1", "Mid"}, labels(a))
	assert.Equal(t, []string{"Big2", "Small"}, labels(b))
}

func TestSplitCapacities_SatisfiedSidePassesRooms(t *testing.T) {
	rooms := []model.RoomSpec{
		{Label: "R1", Capacity: 4},
		{Label: "R2", Capacity: 4},
		{Label: "R3", Capacity: 4},
	}

	a, b := SplitCapacities(rooms, 0, 8)

	assert.Empty(t, a)
	assert.Equal(t, []string{"R1", "R2", "R3"}, labels(b))
}

func TestSplitCapacities_Empty(t *testing.T) {
	a, b := SplitCapacities(nil, 3, 3)

	assert.NotNil(t, a)
	assert.NotNil(t, b)
	assert.Empty(t, a)
	assert.Empty(t, b)
}

func TestAssignNames(t *testing.T) {
	all := []model.RoomSpec{
		{Label: "101", Capacity: 4},
		{Label: "102", Capacity: 2},
		{Label: "103", Capacity: 4},
		{Label: "104", Capacity: 2},
	}
	boys := Allocation{
		{Capacity: 4, Members: []string{"Al", "Ben"}},
		{Capacity: 2, Members: []string{"Cal"}},
	}
	girls := Allocation{
		{Capacity: 2, Members: []string{"Di", "Eve"}},
		{Capacity: 4, Members: []string{"Fay"}},
	}

	named, err := AssignNames(all,
		GroupAllocation{Gender: model.GenderMale, Allocation: boys},
		GroupAllocation{Gender: model.GenderFemale, Allocation: girls},
	)
	require.NoError(t, err)
	require.Len(t, named, 4)

	assert.Equal(t, model.NamedRoom{Label: "101", Capacity: 4, Gender: model.GenderMale, Members: []string{"Al", "Ben"}}, named[0])
	assert.Equal(t, "102", named[1].Label)
	assert.Equal(t, "104", named[2].Label)
	assert.Equal(t, model.GenderFemale, named[2].Gender)
	assert.Equal(t, "103", named[3].Label)
	assert.Equal(t, 3, named[3].Spare())
}

func TestAssignNames_NoMatchingCapacity(t *testing.T) {
	all := []model.RoomSpec{{Label: "101", Capacity: 4}}
	boys := Allocation{{Capacity: 3, Members: []string{"Al"}}}

	_, err := AssignNames(all, GroupAllocation{Gender: model.GenderMale, Allocation: boys})

	assert.ErrorIs(t, err, ErrNoRoomForCapacity)
	assert.Contains(t, err.Error(), "Boys room 1 needs capacity 3")
}

func TestAssignNames_EachRoomUsedOnce(t *testing.T) {
	all := []model.RoomSpec{{Label: "101", Capacity: 2}}
	boys := Allocation{{Capacity: 2}, {Capacity: 2}}

	_, err := AssignNames(all, GroupAllocation{Gender: model.GenderMale, Allocation: boys})

	assert.ErrorIs(t, err, ErrNoRoomForCapacity)
}

func labels(rooms []model.RoomSpec) []string {
	out := make([]string, len(rooms))
	for i, r := range rooms {
		out[i] = r.Label
	}
	return out
}
