package model

import "strings"

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

func (g Gender) IsValid() bool {
	return g == GenderMale || g == GenderFemale
}

// Label returns the plural group label used in display output ("Boys" / "Girls")
func (g Gender) Label() string {
	switch g {
	case GenderMale:
		return "Boys"
	case GenderFemale:
		return "Girls"
	}
	return string(g)
}

// Pupil represents a single row of the roster
type Pupil struct {
	Name       string
	Gender     Gender
	RawChoices string // ';'-delimited roommate names, as entered on the form
}

// RoomSpec is a physical room as supplied by the rooms list
type RoomSpec struct {
	Label    string
	Capacity int
}

// NamedRoom is an allocated room matched back to a physical room
type NamedRoom struct {
	Label    string
	Capacity int
	Gender   Gender
	Members  []string
}

// Filled returns the number of pupils in the room
func (r NamedRoom) Filled() int {
	return len(r.Members)
}

// Spare returns the number of unused beds in the room
func (r NamedRoom) Spare() int {
	return max(r.Capacity-len(r.Members), 0)
}

// FilterByGender returns the pupils with the given gender, keeping roster order
func FilterByGender(pupils []Pupil, gender Gender) []Pupil {
	filtered := make([]Pupil, 0, len(pupils))
	for _, p := range pupils {
		if p.Gender == gender {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// Capacities returns the capacity of each room, in order
func Capacities(rooms []RoomSpec) []int {
	caps := make([]int, len(rooms))
	for i, r := range rooms {
		caps[i] = r.Capacity
	}
	return caps
}

// TotalCapacity sums the capacities of the given rooms
func TotalCapacity(rooms []RoomSpec) int {
	total := 0
	for _, r := range rooms {
		total += r.Capacity
	}
	return total
}

// FirstLast converts "Last, First" into "First Last". Other names are returned unchanged.
func FirstLast(name string) string {
	last, first, ok := strings.Cut(name, ", ")
	if !ok {
		return name
	}
	return first + " " + last
}
