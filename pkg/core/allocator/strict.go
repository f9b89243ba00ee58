package allocator

import (
	"context"
	"errors"
	"fmt"
)

// StrictAcceptance rejects allocations with an unmatched pupil or a lone occupant
type StrictAcceptance struct{}

func (StrictAcceptance) Accept(alloc Allocation, eval Evaluation) error {
	noMatch := eval.Counts().NoMatch
	singletons := alloc.SingletonCount()
	if noMatch == 0 && singletons == 0 {
		return nil
	}
	return fmt.Errorf("%w: %d unmatched pupils, %d rooms with a lone occupant", ErrStrictRejected, noMatch, singletons)
}

// AllocateStrict seeds and refines, and returns ErrStrictRejected instead of
// an allocation that leaves anyone unmatched or alone
func AllocateStrict(ctx context.Context, prefs *Preferences, capacities []int, seeder Seeder, refiner Refiner) (*Result, error) {
	if err := CheckCapacity(prefs.Len(), capacities); err != nil {
		return nil, err
	}

	alloc, err := seedAndRefine(ctx, seeder, refiner, prefs, capacities)
	if err != nil {
		return nil, err
	}

	eval := Evaluate(prefs, alloc)
	if err := (StrictAcceptance{}).Accept(alloc, eval); err != nil {
		return nil, err
	}

	return &Result{
		Strategy:   StrategyStrict,
		Allocation: alloc,
		Evaluation: eval,
		Score:      Score(alloc, eval),
	}, nil
}

// AllocateFallback runs the same pipeline as AllocateStrict but always returns
// the allocation. Degraded is set when strict rules would have rejected it.
func AllocateFallback(ctx context.Context, prefs *Preferences, capacities []int, seeder Seeder, refiner Refiner) (*Result, error) {
	if err := CheckCapacity(prefs.Len(), capacities); err != nil {
		return nil, err
	}

	alloc, err := seedAndRefine(ctx, seeder, refiner, prefs, capacities)
	if err != nil {
		return nil, err
	}

	eval := Evaluate(prefs, alloc)
	result := &Result{
		Strategy:   StrategyStrict,
		Allocation: alloc,
		Evaluation: eval,
		Score:      Score(alloc, eval),
	}
	if rejection := (StrictAcceptance{}).Accept(alloc, eval); rejection != nil {
		result.Degraded = true
		result.Warnings = append(result.Warnings, rejection.Error())
	}
	return result, nil
}

// StrictStrategy tries the strict pipeline and falls back to a best-effort
// allocation, marked Degraded, when strict rules cannot be met
type StrictStrategy struct {
	Seeder  Seeder
	Refiner Refiner
}

// NewStrictStrategy creates a StrictStrategy with link seeding and local search
func NewStrictStrategy(refineIterations int) *StrictStrategy {
	return &StrictStrategy{
		Seeder:  LinkSeeder{},
		Refiner: NewLocalSearch(refineIterations),
	}
}

func (s *StrictStrategy) Name() string {
	return StrategyStrict
}

func (s *StrictStrategy) Allocate(ctx context.Context, prefs *Preferences, capacities []int) (*Result, error) {
	result, err := AllocateStrict(ctx, prefs, capacities, s.Seeder, s.Refiner)
	if err == nil {
		return result, nil
	}
	if !errors.Is(err, ErrStrictRejected) {
		return nil, err
	}

	return AllocateFallback(ctx, prefs, capacities, s.Seeder, s.Refiner)
}
