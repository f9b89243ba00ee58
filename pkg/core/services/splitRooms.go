package services

import (
	"go.uber.org/zap"

	"github.com/jakechorley/trip-rooms/pkg/core/allocator"
	"github.com/jakechorley/trip-rooms/pkg/core/model"
)

// RoomSplit is the automatic division of rooms between boys and girls
type RoomSplit struct {
	Boys  []model.RoomSpec
	Girls []model.RoomSpec

	BoysPupils  int
	GirlsPupils int
}

// BoysShortfall returns how many boys the boys' rooms cannot hold, 0 if none
func (s RoomSplit) BoysShortfall() int {
	return max(s.BoysPupils-model.TotalCapacity(s.Boys), 0)
}

// GirlsShortfall returns how many girls the girls' rooms cannot hold, 0 if none
func (s RoomSplit) GirlsShortfall() int {
	return max(s.GirlsPupils-model.TotalCapacity(s.Girls), 0)
}

// SplitRooms divides the rooms between the given numbers of boys and girls
func SplitRooms(rooms []model.RoomSpec, boys, girls int, logger *zap.Logger) RoomSplit {
	boysRooms, girlsRooms := allocator.SplitCapacities(rooms, boys, girls)

	split := RoomSplit{
		Boys:        boysRooms,
		Girls:       girlsRooms,
		BoysPupils:  boys,
		GirlsPupils: girls,
	}

	logger.Debug("Split rooms",
		zap.Int("boys", boys),
		zap.Int("girls", girls),
		zap.Ints("boys_capacities", model.Capacities(boysRooms)),
		zap.Ints("girls_capacities", model.Capacities(girlsRooms)))

	if split.BoysShortfall() > 0 || split.GirlsShortfall() > 0 {
		logger.Warn("Automatic split leaves pupils without beds",
			zap.Int("boys_short", split.BoysShortfall()),
			zap.Int("girls_short", split.GirlsShortfall()))
	}

	return split
}
