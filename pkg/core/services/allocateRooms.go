package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jakechorley/trip-rooms/internal/config"
	"github.com/jakechorley/trip-rooms/pkg/core/allocator"
	"github.com/jakechorley/trip-rooms/pkg/core/model"
)

// genders is the order in which groups are allocated, named and displayed
var genders = []model.Gender{model.GenderMale, model.GenderFemale}

// AllocateOptions controls a single allocation run
type AllocateOptions struct {
	Strategy         string
	RefineIterations int
	RandomIterations int

	// Seed makes the randomized strategy reproducible when set
	Seed *int64

	// AutoSplit divides the room list between the genders. When false,
	// ManualBoys and ManualGirls are the room capacities of each group.
	AutoSplit   bool
	ManualBoys  []int
	ManualGirls []int

	// Slots is the number of pupil columns in the display table
	Slots int
}

// AllocateOptionsFromConfig builds options from the allocation and display config
func AllocateOptionsFromConfig(cfg *config.Config) AllocateOptions {
	return AllocateOptions{
		Strategy:         cfg.Allocation.Strategy,
		RefineIterations: cfg.Allocation.RefineIterations,
		RandomIterations: cfg.Allocation.RandomIterations,
		Seed:             cfg.Allocation.Seed,
		AutoSplit:        cfg.Allocation.AutoSplit,
		ManualBoys:       cfg.Allocation.ManualBoys,
		ManualGirls:      cfg.Allocation.ManualGirls,
		Slots:            cfg.Display.Slots,
	}
}

// GroupResult is the allocation of one gender
type GroupResult struct {
	Gender     model.Gender
	Pupils     int
	Capacities []int
	Result     *allocator.Result

	// RoomLabels holds the named room of each allocated room, by allocation index
	RoomLabels []string
}

// Counts totals the group's pupils per match status
func (g GroupResult) Counts() allocator.StatusCounts {
	return g.Result.Evaluation.Counts()
}

// AllocationReport is the outcome of an allocation run
type AllocationReport struct {
	RunID     string
	CreatedAt time.Time
	Strategy  string
	Slots     int

	Groups     []GroupResult
	Rooms      []model.NamedRoom
	Display    []DisplayRow
	Evaluation []EvaluationRow

	// Warnings collects notes about degraded results and skipped input
	Warnings []string
}

// Degraded reports whether any group fell back to a best-effort allocation
func (r *AllocationReport) Degraded() bool {
	for _, g := range r.Groups {
		if g.Result.Degraded {
			return true
		}
	}
	return false
}

// AllocateRooms reads the roster and rooms, splits them by gender, runs the
// configured strategy for each group and names the resulting rooms.
// Capacity is checked for both groups before any strategy runs.
func AllocateRooms(ctx context.Context, source RosterSource, logger *zap.Logger, opts AllocateOptions) (*AllocationReport, error) {
	report := &AllocationReport{
		RunID:     uuid.New().String(),
		CreatedAt: time.Now(),
		Strategy:  opts.Strategy,
		Slots:     opts.Slots,
	}
	logger = logger.With(zap.String("run_id", report.RunID))

	logger.Debug("Starting allocation run",
		zap.String("strategy", opts.Strategy),
		zap.Bool("auto_split", opts.AutoSplit))

	pupils, err := source.ListPupils(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pupils: %w", err)
	}

	rooms, err := source.ListRooms(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rooms: %w", err)
	}

	logger.Info("Loaded roster", zap.Int("pupils", len(pupils)), zap.Int("rooms", len(rooms)))

	pupils, duplicates := dedupePupils(pupils)
	for _, name := range duplicates {
		logger.Warn("Duplicate pupil on roster, keeping the last entry", zap.String("pupil", name))
		report.Warnings = append(report.Warnings, fmt.Sprintf("%q appears more than once on the roster; the last entry was used", name))
	}

	byGender := make(map[model.Gender][]model.Pupil, len(genders))
	for _, g := range genders {
		byGender[g] = model.FilterByGender(pupils, g)
	}

	capacities, err := groupCapacities(rooms, byGender, opts)
	if err != nil {
		return nil, err
	}

	prefs := make(map[model.Gender]*allocator.Preferences, len(genders))
	for _, g := range genders {
		prefs[g] = allocator.PreferencesFromPupils(byGender[g])
		if err := allocator.CheckCapacity(prefs[g].Len(), capacities[g]); err != nil {
			return nil, fmt.Errorf("%s: %w", g.Label(), err)
		}
	}

	params := allocator.Params{
		RefineIterations: opts.RefineIterations,
		RandomIterations: opts.RandomIterations,
	}
	if opts.Seed != nil {
		params.Rand = rand.New(rand.NewSource(*opts.Seed))
	}

	groups := make([]allocator.GroupAllocation, 0, len(genders))
	for _, g := range genders {
		strategy, err := allocator.NewStrategy(opts.Strategy, params)
		if err != nil {
			return nil, err
		}

		logger.Debug("Allocating group",
			zap.String("group", g.Label()),
			zap.Int("pupils", prefs[g].Len()),
			zap.Ints("capacities", capacities[g]))

		result, err := strategy.Allocate(ctx, prefs[g], capacities[g])
		if err != nil {
			return nil, fmt.Errorf("failed to allocate %s: %w", g.Label(), err)
		}

		if errs := allocator.ValidateAllocation(prefs[g], result.Allocation); len(errs) > 0 {
			joined := make([]error, len(errs))
			for i, e := range errs {
				joined[i] = e
			}
			return nil, fmt.Errorf("allocation for %s is invalid: %w", g.Label(), errors.Join(joined...))
		}

		for _, warning := range result.Warnings {
			logger.Warn("Allocation degraded", zap.String("group", g.Label()), zap.String("warning", warning))
			report.Warnings = append(report.Warnings, fmt.Sprintf("%s: %s", g.Label(), warning))
		}

		counts := result.Evaluation.Counts()
		logger.Info("Allocated group",
			zap.String("group", g.Label()),
			zap.Int("mutual", counts.Mutual),
			zap.Int("one_way", counts.OneWay),
			zap.Int("no_match", counts.NoMatch),
			zap.Int("lone_occupants", result.Allocation.SingletonCount()),
			zap.Bool("degraded", result.Degraded))

		report.Groups = append(report.Groups, GroupResult{
			Gender:     g,
			Pupils:     prefs[g].Len(),
			Capacities: capacities[g],
			Result:     result,
		})
		groups = append(groups, allocator.GroupAllocation{Gender: g, Allocation: result.Allocation})
	}

	named, err := allocator.AssignNames(rooms, groups...)
	if err != nil {
		return nil, fmt.Errorf("failed to name rooms: %w", err)
	}
	report.Rooms = named

	offset := 0
	for i := range report.Groups {
		n := len(report.Groups[i].Result.Allocation)
		report.Groups[i].RoomLabels = make([]string, n)
		for j := 0; j < n; j++ {
			report.Groups[i].RoomLabels[j] = named[offset+j].Label
		}
		offset += n
	}

	report.Display = BuildDisplayTable(named, opts.Slots)
	report.Evaluation = BuildEvaluationTable(report.Groups)

	logger.Info("Allocation run complete",
		zap.Int("rooms_used", len(named)),
		zap.Int("warnings", len(report.Warnings)))

	return report, nil
}

// groupCapacities returns the room capacities of each gender, either split
// automatically from the room list or taken from the manual lists
func groupCapacities(rooms []model.RoomSpec, byGender map[model.Gender][]model.Pupil, opts AllocateOptions) (map[model.Gender][]int, error) {
	if !opts.AutoSplit {
		if len(opts.ManualBoys) == 0 && len(opts.ManualGirls) == 0 {
			return nil, fmt.Errorf("manual room capacities are required when auto split is off")
		}
		return map[model.Gender][]int{
			model.GenderMale:   opts.ManualBoys,
			model.GenderFemale: opts.ManualGirls,
		}, nil
	}

	boys, girls := allocator.SplitCapacities(rooms, len(byGender[model.GenderMale]), len(byGender[model.GenderFemale]))
	return map[model.Gender][]int{
		model.GenderMale:   model.Capacities(boys),
		model.GenderFemale: model.Capacities(girls),
	}, nil
}

// dedupePupils keeps the first position and last entry of each repeated name
// and returns the repeated names in roster order
func dedupePupils(pupils []model.Pupil) ([]model.Pupil, []string) {
	index := make(map[string]int, len(pupils))
	unique := make([]model.Pupil, 0, len(pupils))
	var duplicates []string

	reported := make(map[string]bool)

	for _, p := range pupils {
		if i, ok := index[p.Name]; ok {
			unique[i] = p
			if !reported[p.Name] {
				reported[p.Name] = true
				duplicates = append(duplicates, p.Name)
			}
			continue
		}
		index[p.Name] = len(unique)
		unique = append(unique, p)
	}

	return unique, duplicates
}
