package allocator

import "fmt"

// Rule names reported by ValidateAllocation
const (
	RuleCapacity  = "Capacity"
	RuleUnplaced  = "Unplaced"
	RuleDuplicate = "Duplicate"
	RuleUnknown   = "UnknownPupil"
)

// ValidationError describes a broken allocation invariant
type ValidationError struct {
	// Room is the index of the offending room, -1 when the error is not about one room
	Room        int
	Rule        string
	Description string
}

func (e ValidationError) Error() string {
	if e.Room < 0 {
		return fmt.Sprintf("%s: %s", e.Rule, e.Description)
	}
	return fmt.Sprintf("room %d %s: %s", e.Room+1, e.Rule, e.Description)
}

// ValidateAllocation checks the core invariants every strategy must keep:
//   - no room holds more pupils than its capacity
//   - every pupil is placed exactly once
//   - only pupils from prefs are placed
func ValidateAllocation(prefs *Preferences, alloc Allocation) []ValidationError {
	errs := []ValidationError{}

	seen := make(map[string]int)
	for i, room := range alloc {
		if len(room.Members) > room.Capacity {
			errs = append(errs, ValidationError{
				Room:        i,
				Rule:        RuleCapacity,
				Description: fmt.Sprintf("holds %d pupils but capacity is %d", len(room.Members), room.Capacity),
			})
		}

		for _, m := range room.Members {
			if !prefs.Has(m) {
				errs = append(errs, ValidationError{
					Room:        i,
					Rule:        RuleUnknown,
					Description: fmt.Sprintf("%q is not on the roster", m),
				})
			}
			if prev, dup := seen[m]; dup {
				errs = append(errs, ValidationError{
					Room:        i,
					Rule:        RuleDuplicate,
					Description: fmt.Sprintf("%q is also in room %d", m, prev+1),
				})
				continue
			}
			seen[m] = i
		}
	}

	for _, p := range prefs.Names() {
		if _, ok := seen[p]; !ok {
			errs = append(errs, ValidationError{
				Room:        -1,
				Rule:        RuleUnplaced,
				Description: fmt.Sprintf("%q has no room", p),
			})
		}
	}

	return errs
}
