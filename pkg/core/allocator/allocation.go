package allocator

import "slices"

// Room is an anonymous room of fixed capacity being filled by an allocator
type Room struct {
	Capacity int
	Members  []string
}

// HasSpace returns true if the room can take another pupil
func (r *Room) HasSpace() bool {
	return len(r.Members) < r.Capacity
}

// IsEmpty returns true if nobody has been placed in the room
func (r *Room) IsEmpty() bool {
	return len(r.Members) == 0
}

// IsSingleton returns true if the room has exactly one occupant
func (r *Room) IsSingleton() bool {
	return len(r.Members) == 1
}

func (r *Room) add(name string) {
	r.Members = append(r.Members, name)
}

func (r *Room) remove(name string) bool {
	idx := slices.Index(r.Members, name)
	if idx < 0 {
		return false
	}
	r.Members = slices.Delete(r.Members, idx, idx+1)
	return true
}

// containsAny returns true if any member of the room is in names
func (r *Room) containsAny(names map[string]bool) bool {
	for _, m := range r.Members {
		if names[m] {
			return true
		}
	}
	return false
}

// Allocation is one gender's set of rooms. Each allocator returns a value it
// owns; callers that want to modify it should Clone first.
type Allocation []Room

// NewAllocation creates empty rooms with the given capacities, in order
func NewAllocation(capacities []int) Allocation {
	rooms := make(Allocation, len(capacities))
	for i, c := range capacities {
		rooms[i] = Room{Capacity: c, Members: []string{}}
	}
	return rooms
}

// Clone returns a deep copy of the allocation
func (a Allocation) Clone() Allocation {
	clone := make(Allocation, len(a))
	for i, r := range a {
		clone[i] = Room{Capacity: r.Capacity, Members: slices.Clone(r.Members)}
		if clone[i].Members == nil {
			clone[i].Members = []string{}
		}
	}
	return clone
}

// RoomIndex maps each placed pupil to the index of their room
func (a Allocation) RoomIndex() map[string]int {
	index := make(map[string]int)
	for i, r := range a {
		for _, m := range r.Members {
			index[m] = i
		}
	}
	return index
}

// SingletonCount returns the number of rooms with exactly one occupant
func (a Allocation) SingletonCount() int {
	count := 0
	for i := range a {
		if a[i].IsSingleton() {
			count++
		}
	}
	return count
}

// PlacedCount returns the total number of pupils placed
func (a Allocation) PlacedCount() int {
	count := 0
	for _, r := range a {
		count += len(r.Members)
	}
	return count
}

// Capacities returns the capacity of each room, in order
func (a Allocation) Capacities() []int {
	caps := make([]int, len(a))
	for i, r := range a {
		caps[i] = r.Capacity
	}
	return caps
}

// firstWithSpace returns the first room with spare capacity, or nil
func (a Allocation) firstWithSpace() *Room {
	for i := range a {
		if a[i].HasSpace() {
			return &a[i]
		}
	}
	return nil
}
