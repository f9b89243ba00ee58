package allocator

import (
	"context"
	"fmt"
	"math/rand"
	"time"
)

// DefaultRandomIterations is the number of restarts when none is configured
const DefaultRandomIterations = 2000

// Score weights. Any unmatched pupil or lone occupant outweighs every gain in match quality.
const (
	ScoreMutual    = 1000
	ScoreOneWay    = 100
	ScoreNoMatch   = -10000
	ScoreSingleton = -5000
)

// Score rates an allocation for the randomized optimizer
func Score(alloc Allocation, eval Evaluation) int {
	counts := eval.Counts()
	return ScoreMutual*counts.Mutual +
		ScoreOneWay*counts.OneWay +
		ScoreNoMatch*counts.NoMatch +
		ScoreSingleton*alloc.SingletonCount()
}

// ScoreAcceptance rejects any allocation containing a lone occupant
type ScoreAcceptance struct{}

func (ScoreAcceptance) Accept(alloc Allocation, eval Evaluation) error {
	if n := alloc.SingletonCount(); n > 0 {
		return fmt.Errorf("%d rooms with a lone occupant", n)
	}
	return nil
}

// RandomSeeder places pupils in a random order, each into the first room with
// space under its own random room order
type RandomSeeder struct {
	Rand *rand.Rand
}

func (s *RandomSeeder) Seed(prefs *Preferences, capacities []int) Allocation {
	rooms := NewAllocation(capacities)
	if len(rooms) == 0 {
		return rooms
	}

	names := prefs.Names()
	for i, pi := range s.Rand.Perm(len(names)) {
		p := names[pi]
		placed := false
		for _, ri := range s.Rand.Perm(len(rooms)) {
			if rooms[ri].HasSpace() {
				rooms[ri].add(p)
				placed = true
				break
			}
		}
		if !placed {
			// Only reachable when capacity is short
			rooms[i%len(rooms)].add(p)
		}
	}
	return rooms
}

// RandomizedStrategy generates many random allocations and keeps the best
// scoring one that has no lone occupant
type RandomizedStrategy struct {
	Iterations int
	Seeder     Seeder
	Acceptor   Acceptor
}

// NewRandomizedStrategy creates a RandomizedStrategy. A nil rng is seeded from the clock.
func NewRandomizedStrategy(iterations int, rng *rand.Rand) *RandomizedStrategy {
	if iterations <= 0 {
		iterations = DefaultRandomIterations
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &RandomizedStrategy{
		Iterations: iterations,
		Seeder:     &RandomSeeder{Rand: rng},
		Acceptor:   ScoreAcceptance{},
	}
}

func (s *RandomizedStrategy) Name() string {
	return StrategyRandomized
}

func (s *RandomizedStrategy) Allocate(ctx context.Context, prefs *Preferences, capacities []int) (*Result, error) {
	if err := CheckCapacity(prefs.Len(), capacities); err != nil {
		return nil, err
	}

	var best *Result
	for iter := 0; iter < s.Iterations; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("optimization stopped after %d iterations: %w", iter, err)
		}

		candidate := s.Seeder.Seed(prefs, capacities)
		eval := Evaluate(prefs, candidate)
		if s.Acceptor.Accept(candidate, eval) != nil {
			continue
		}

		score := Score(candidate, eval)
		if best == nil || score > best.Score {
			best = &Result{
				Strategy:   s.Name(),
				Allocation: candidate,
				Evaluation: eval,
				Score:      score,
			}
		}
	}

	if best == nil {
		return nil, fmt.Errorf("%w after %d attempts; adjust room capacities", ErrNoViableAllocation, s.Iterations)
	}
	return best, nil
}
