package services

import (
	"context"

	"github.com/jakechorley/trip-rooms/pkg/core/model"
)

// mockRosterSource implements RosterSource for testing
type mockRosterSource struct {
	pupils    []model.Pupil
	rooms     []model.RoomSpec
	pupilsErr error
	roomsErr  error
}

func (m *mockRosterSource) ListPupils(ctx context.Context) ([]model.Pupil, error) {
	if m.pupilsErr != nil {
		return nil, m.pupilsErr
	}
	return m.pupils, nil
}

func (m *mockRosterSource) ListRooms(ctx context.Context) ([]model.RoomSpec, error) {
	if m.roomsErr != nil {
		return nil, m.roomsErr
	}
	return m.rooms, nil
}

// mockRosterStore implements RosterStore for testing
type mockRosterStore struct {
	pupils     []model.Pupil
	rooms      []model.RoomSpec
	replaceErr error
}

func (m *mockRosterStore) ReplaceRoster(ctx context.Context, pupils []model.Pupil, rooms []model.RoomSpec) error {
	if m.replaceErr != nil {
		return m.replaceErr
	}
	m.pupils = pupils
	m.rooms = rooms
	return nil
}

func boy(name, choices string) model.Pupil {
	return model.Pupil{Name: name, Gender: model.GenderMale, RawChoices: choices}
}

func girl(name, choices string) model.Pupil {
	return model.Pupil{Name: name, Gender: model.GenderFemale, RawChoices: choices}
}

func strictOptions() AllocateOptions {
	return AllocateOptions{
		Strategy:         "strict",
		RefineIterations: 100,
		RandomIterations: 100,
		AutoSplit:        true,
		Slots:            4,
	}
}
