package allocator

import (
	"errors"
	"fmt"
)

var (
	// ErrCapacityShortfall is returned when rooms cannot hold every pupil
	ErrCapacityShortfall = errors.New("not enough room capacity")

	// ErrStrictRejected is returned when an allocation leaves a pupil unmatched or alone in a room
	ErrStrictRejected = errors.New("allocation rejected under strict rules")

	// ErrNoViableAllocation is returned when every random restart produced a lone occupant
	ErrNoViableAllocation = errors.New("no allocation without a lone occupant was found")

	// ErrNoRoomForCapacity is returned when an allocated room cannot be matched to a named room
	ErrNoRoomForCapacity = errors.New("no available room with matching capacity")

	// ErrUnknownStrategy is returned for an unrecognised strategy name
	ErrUnknownStrategy = errors.New("unknown allocation strategy")
)

// CapacityShortfallError describes why the rooms cannot hold the pupils
type CapacityShortfallError struct {
	Pupils   int
	Capacity int

	// InvalidRoom is the index of a room with non-positive capacity, -1 if none
	InvalidRoom int
}

func (e *CapacityShortfallError) Error() string {
	if e.InvalidRoom >= 0 {
		return fmt.Sprintf("room %d has non-positive capacity", e.InvalidRoom+1)
	}
	return fmt.Sprintf("%d pupils but only %d beds", e.Pupils, e.Capacity)
}

func (e *CapacityShortfallError) Is(target error) bool {
	return target == ErrCapacityShortfall
}

// CheckCapacity verifies that every room has a positive capacity and that
// the rooms can hold all pupils together
func CheckCapacity(pupils int, capacities []int) error {
	total := 0
	for i, c := range capacities {
		if c <= 0 {
			return &CapacityShortfallError{Pupils: pupils, InvalidRoom: i}
		}
		total += c
	}

	if total < pupils {
		return &CapacityShortfallError{Pupils: pupils, Capacity: total, InvalidRoom: -1}
	}
	return nil
}
