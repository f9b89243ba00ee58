package services

import (
	"context"

	"github.com/jakechorley/trip-rooms/pkg/core/model"
)

// RosterSource provides the pupils and the rooms of a trip
type RosterSource interface {
	// ListPupils returns pupils in roster order
	ListPupils(ctx context.Context) ([]model.Pupil, error)

	// ListRooms returns rooms in list order
	ListRooms(ctx context.Context) ([]model.RoomSpec, error)
}

// RosterStore persists a roster for later allocation runs
type RosterStore interface {
	ReplaceRoster(ctx context.Context, pupils []model.Pupil, rooms []model.RoomSpec) error
}
