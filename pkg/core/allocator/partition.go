package allocator

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/jakechorley/trip-rooms/pkg/core/model"
)

// SplitCapacities divides rooms between two groups of countA and countB pupils.
//
// Rooms are taken largest first. Each room goes to the group with more beds
// still needed (ties go to A); a group that needs nothing more passes the room
// to the other. A room is never held back for a better fit, so either group
// can end up with more beds than it needs.
func SplitCapacities(rooms []model.RoomSpec, countA, countB int) (a, b []model.RoomSpec) {
	sorted := slices.Clone(rooms)
	slices.SortStableFunc(sorted, func(x, y model.RoomSpec) int { return cmp.Compare(y.Capacity, x.Capacity) })

	a, b = []model.RoomSpec{}, []model.RoomSpec{}
	remainingA, remainingB := countA, countB

	for _, room := range sorted {
		toA := remainingA > 0
		if remainingA < remainingB {
			toA = remainingB <= 0
		}

		if toA {
			a = append(a, room)
			remainingA -= room.Capacity
		} else {
			b = append(b, room)
			remainingB -= room.Capacity
		}
	}
	return a, b
}

// GroupAllocation is an allocation for one gender
type GroupAllocation struct {
	Gender     model.Gender
	Allocation Allocation
}

// AssignNames matches each allocated room to a named room of the same capacity.
//
// Groups are processed in order and, within a group, rooms in order. Each
// takes the first still-unused named room with an equal capacity, following
// the order of all.
func AssignNames(all []model.RoomSpec, groups ...GroupAllocation) ([]model.NamedRoom, error) {
	available := slices.Clone(all)
	var named []model.NamedRoom

	for _, group := range groups {
		for i, room := range group.Allocation {
			idx := slices.IndexFunc(available, func(r model.RoomSpec) bool { return r.Capacity == room.Capacity })
			if idx < 0 {
				return nil, fmt.Errorf("%w: %s room %d needs capacity %d", ErrNoRoomForCapacity, group.Gender.Label(), i+1, room.Capacity)
			}

			spec := available[idx]
			available = slices.Delete(available, idx, idx+1)

			named = append(named, model.NamedRoom{
				Label:    spec.Label,
				Capacity: spec.Capacity,
				Gender:   group.Gender,
				Members:  slices.Clone(room.Members),
			})
		}
	}

	return named, nil
}
