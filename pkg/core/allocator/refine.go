package allocator

import (
	"context"
	"fmt"
)

// DefaultRefineIterations bounds the local search when no limit is configured
const DefaultRefineIterations = 1000

// Refiner improves an existing allocation. Implementations must not modify
// the allocation they are given.
type Refiner interface {
	Refine(ctx context.Context, prefs *Preferences, alloc Allocation) (Allocation, error)
}

// LocalSearch moves unmatched pupils into rooms containing someone they chose.
//
// Each iteration re-evaluates the allocation and relocates the first NO_MATCH
// pupil that has a candidate room with space. It stops when nobody is
// unmatched, when a full pass finds no move, or after MaxIterations moves.
// There is no backtracking, so it may settle with pupils still unmatched.
type LocalSearch struct {
	MaxIterations int
}

// NewLocalSearch creates a LocalSearch, defaulting non-positive limits
func NewLocalSearch(maxIterations int) *LocalSearch {
	if maxIterations <= 0 {
		maxIterations = DefaultRefineIterations
	}
	return &LocalSearch{MaxIterations: maxIterations}
}

func (ls *LocalSearch) Refine(ctx context.Context, prefs *Preferences, alloc Allocation) (Allocation, error) {
	rooms := alloc.Clone()

	for iter := 0; iter < ls.MaxIterations; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("refinement stopped after %d iterations: %w", iter, err)
		}

		unmatched := Evaluate(prefs, rooms).NoMatch()
		if len(unmatched) == 0 {
			break
		}

		moved := false
		for _, row := range unmatched {
			if ls.relocate(prefs, rooms, row) {
				moved = true
				break
			}
		}

		if !moved {
			break
		}
	}

	return rooms, nil
}

// relocate moves the pupil to the first room with space holding one of their
// choices. Returns false if no such room exists.
func (ls *LocalSearch) relocate(prefs *Preferences, rooms Allocation, row PupilEvaluation) bool {
	wanted := make(map[string]bool)
	for _, c := range prefs.Choices(row.Pupil) {
		if c != row.Pupil {
			wanted[c] = true
		}
	}
	if len(wanted) == 0 {
		return false
	}

	for i := range rooms {
		if i == row.Room || !rooms[i].HasSpace() || !rooms[i].containsAny(wanted) {
			continue
		}
		if row.Room >= 0 {
			rooms[row.Room].remove(row.Pupil)
		}
		rooms[i].add(row.Pupil)
		return true
	}
	return false
}
