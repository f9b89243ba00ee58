package allocator

import (
	"cmp"
	"slices"
)

// Seeder produces an initial allocation for a set of preferences
type Seeder interface {
	Seed(prefs *Preferences, capacities []int) Allocation
}

// LinkSeeder seeds rooms by following preference links
type LinkSeeder struct{}

func (LinkSeeder) Seed(prefs *Preferences, capacities []int) Allocation {
	return SeedByLinks(prefs, capacities)
}

// SeedByLinks builds rooms greedily around preference links.
//
// Pupils who are hardest to place go first: those with the shortest lists,
// and among those the most chosen. Pupils who chose nobody go last. Each
// pupil in turn is placed:
//  1. into a room with space that holds someone they chose or someone who chose them
//  2. otherwise into an empty room
//  3. otherwise into the first room with space
//
// In cases 1 and 2 their unplaced choices are pulled in while space remains.
// Rooms are filled largest first. The result is deterministic for a given
// preference insertion order.
func SeedByLinks(prefs *Preferences, capacities []int) Allocation {
	sorted := slices.Clone(capacities)
	slices.SortStableFunc(sorted, func(a, b int) int { return cmp.Compare(b, a) })
	rooms := NewAllocation(sorted)

	incoming := prefs.Inbound()
	order := seedOrder(prefs, incoming)

	unplaced := make(map[string]bool, prefs.Len())
	for _, p := range prefs.Names() {
		unplaced[p] = true
	}

	place := func(room *Room, p string, pullFriends bool) {
		room.add(p)
		delete(unplaced, p)
		if !pullFriends {
			return
		}
		for _, friend := range prefs.Choices(p) {
			if unplaced[friend] && room.HasSpace() {
				room.add(friend)
				delete(unplaced, friend)
			}
		}
	}

	for _, p := range order {
		if !unplaced[p] {
			continue
		}

		linked := make(map[string]bool)
		for _, c := range prefs.Choices(p) {
			linked[c] = true
		}
		for a := range incoming[p] {
			linked[a] = true
		}

		if room := findRoom(rooms, func(r *Room) bool { return r.HasSpace() && r.containsAny(linked) }); room != nil {
			place(room, p, true)
			continue
		}

		if room := findRoom(rooms, func(r *Room) bool { return r.IsEmpty() && r.HasSpace() }); room != nil {
			place(room, p, true)
			continue
		}

		if room := rooms.firstWithSpace(); room != nil {
			place(room, p, false)
		}
	}

	// Leftovers only occur when capacity is short
	for _, p := range prefs.Names() {
		if !unplaced[p] {
			continue
		}
		if room := rooms.firstWithSpace(); room != nil {
			place(room, p, false)
		}
	}

	return rooms
}

// seedOrder sorts pupils by list length ascending (empty lists last), then by
// how often they were chosen, descending. Ties keep insertion order.
func seedOrder(prefs *Preferences, incoming map[string]map[string]bool) []string {
	listLen := func(p string) int {
		n := len(prefs.Choices(p))
		if n == 0 {
			return emptyListRank
		}
		return n
	}

	order := slices.Clone(prefs.Names())
	slices.SortStableFunc(order, func(a, b string) int {
		if c := cmp.Compare(listLen(a), listLen(b)); c != 0 {
			return c
		}
		return cmp.Compare(len(incoming[b]), len(incoming[a]))
	})
	return order
}

// emptyListRank sorts pupils without choices after any realistic list length
const emptyListRank = 99

func findRoom(rooms Allocation, match func(*Room) bool) *Room {
	for i := range rooms {
		if match(&rooms[i]) {
			return &rooms[i]
		}
	}
	return nil
}
