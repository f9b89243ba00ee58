package allocator

import (
	"context"
	"fmt"
	"math/rand"
)

// Strategy names accepted by NewStrategy
const (
	StrategyGreedy     = "greedy"
	StrategyStrict     = "strict"
	StrategyRandomized = "random"
)

// Strategies lists the available strategy names
var Strategies = []string{StrategyGreedy, StrategyStrict, StrategyRandomized}

// Acceptor decides whether a finished allocation is good enough.
// A nil return accepts the allocation.
type Acceptor interface {
	Accept(alloc Allocation, eval Evaluation) error
}

// Strategy turns preferences and room capacities into an allocation
type Strategy interface {
	// Name returns the identifier used in configuration and output
	Name() string

	// Allocate places every pupil in prefs into rooms with the given capacities
	Allocate(ctx context.Context, prefs *Preferences, capacities []int) (*Result, error)
}

// Result is the outcome of running a strategy for one group of pupils
type Result struct {
	Strategy   string
	Allocation Allocation
	Evaluation Evaluation

	// Score is the randomized optimizer's score of the allocation
	Score int

	// Degraded is set when the allocation did not meet the strategy's acceptance rules
	// and is returned as a best effort
	Degraded bool

	// Warnings are human-readable notes about a degraded result
	Warnings []string
}

// Params configures strategy construction
type Params struct {
	// RefineIterations bounds the local search used by the greedy and strict strategies
	RefineIterations int

	// RandomIterations is the number of restarts of the randomized strategy
	RandomIterations int

	// Rand drives the randomized strategy; nil means seeded from the clock
	Rand *rand.Rand
}

// NewStrategy creates the strategy with the given name
func NewStrategy(name string, params Params) (Strategy, error) {
	switch name {
	case StrategyGreedy:
		return NewGreedyStrategy(params.RefineIterations), nil
	case StrategyStrict:
		return NewStrictStrategy(params.RefineIterations), nil
	case StrategyRandomized:
		return NewRandomizedStrategy(params.RandomIterations, params.Rand), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

// GreedyStrategy seeds by preference links and refines with local search.
// It always returns its result.
type GreedyStrategy struct {
	Seeder  Seeder
	Refiner Refiner
}

// NewGreedyStrategy creates a GreedyStrategy with link seeding and local search
func NewGreedyStrategy(refineIterations int) *GreedyStrategy {
	return &GreedyStrategy{
		Seeder:  LinkSeeder{},
		Refiner: NewLocalSearch(refineIterations),
	}
}

func (s *GreedyStrategy) Name() string {
	return StrategyGreedy
}

func (s *GreedyStrategy) Allocate(ctx context.Context, prefs *Preferences, capacities []int) (*Result, error) {
	if err := CheckCapacity(prefs.Len(), capacities); err != nil {
		return nil, err
	}

	alloc, err := seedAndRefine(ctx, s.Seeder, s.Refiner, prefs, capacities)
	if err != nil {
		return nil, err
	}

	eval := Evaluate(prefs, alloc)
	return &Result{
		Strategy:   s.Name(),
		Allocation: alloc,
		Evaluation: eval,
		Score:      Score(alloc, eval),
	}, nil
}

func seedAndRefine(ctx context.Context, seeder Seeder, refiner Refiner, prefs *Preferences, capacities []int) (Allocation, error) {
	alloc := seeder.Seed(prefs, capacities)
	if refiner == nil {
		return alloc, nil
	}
	refined, err := refiner.Refine(ctx, prefs, alloc)
	if err != nil {
		return nil, fmt.Errorf("failed to refine allocation: %w", err)
	}
	return refined, nil
}
