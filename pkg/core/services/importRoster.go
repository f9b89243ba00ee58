package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/trip-rooms/pkg/core/model"
)

// ImportResult reports what was stored by ImportRoster
type ImportResult struct {
	Pupils int
	Boys   int
	Girls  int
	Rooms  int
}

// ImportRoster copies the pupils and rooms of source into store, replacing
// any roster already stored
func ImportRoster(ctx context.Context, source RosterSource, store RosterStore, logger *zap.Logger) (*ImportResult, error) {
	pupils, err := source.ListPupils(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pupils: %w", err)
	}

	rooms, err := source.ListRooms(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rooms: %w", err)
	}

	pupils, duplicates := dedupePupils(pupils)
	for _, name := range duplicates {
		logger.Warn("Duplicate pupil on roster, keeping the last entry", zap.String("pupil", name))
	}

	logger.Debug("Storing roster", zap.Int("pupils", len(pupils)), zap.Int("rooms", len(rooms)))

	if err := store.ReplaceRoster(ctx, pupils, rooms); err != nil {
		return nil, fmt.Errorf("failed to store roster: %w", err)
	}

	result := &ImportResult{
		Pupils: len(pupils),
		Boys:   len(model.FilterByGender(pupils, model.GenderMale)),
		Girls:  len(model.FilterByGender(pupils, model.GenderFemale)),
		Rooms:  len(rooms),
	}

	logger.Info("Imported roster",
		zap.Int("pupils", result.Pupils),
		zap.Int("rooms", result.Rooms))

	return result, nil
}
