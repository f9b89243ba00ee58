package sheetsclient

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/trip-rooms/internal/config"
	"github.com/jakechorley/trip-rooms/pkg/core/model"
	"github.com/jakechorley/trip-rooms/pkg/roster"
)

// RosterSource reads the pupils and rooms tabs of the roster spreadsheet.
// The pupils tab has a header row; the rooms tab is "label, capacity" rows without one.
type RosterSource struct {
	client        *Client
	spreadsheetID string
	pupilsTab     string
	roomsTab      string
	parser        *roster.Parser
}

// NewRosterSource creates a RosterSource for the configured roster spreadsheet
func NewRosterSource(client *Client, cfg *config.Config, logger *zap.Logger) *RosterSource {
	return &RosterSource{
		client:        client,
		spreadsheetID: cfg.Sheets.RosterSheetID,
		pupilsTab:     cfg.Sheets.PupilsTab,
		roomsTab:      cfg.Sheets.RoomsTab,
		parser:        roster.NewParser(cfg.Roster, logger),
	}
}

// ListPupils retrieves and parses the pupils tab
func (s *RosterSource) ListPupils(ctx context.Context) ([]model.Pupil, error) {
	values, err := s.client.GetValues(ctx, s.spreadsheetID, s.pupilsTab)
	if err != nil {
		return nil, fmt.Errorf("failed to get pupils data: %w", err)
	}

	if len(values) == 0 {
		return nil, fmt.Errorf("pupils tab %q is empty", s.pupilsTab)
	}

	pupils, err := s.parser.ParsePupils(cellsToStrings(values))
	if err != nil {
		return nil, fmt.Errorf("failed to parse pupils: %w", err)
	}

	return pupils, nil
}

// ListRooms retrieves and parses the rooms tab
func (s *RosterSource) ListRooms(ctx context.Context) ([]model.RoomSpec, error) {
	values, err := s.client.GetValues(ctx, s.spreadsheetID, s.roomsTab)
	if err != nil {
		return nil, fmt.Errorf("failed to get rooms data: %w", err)
	}

	rooms, err := roster.ParseRooms(cellsToStrings(values))
	if err != nil {
		return nil, fmt.Errorf("failed to parse rooms: %w", err)
	}

	return rooms, nil
}

// cellsToStrings converts raw API cells into strings
func cellsToStrings(raw [][]interface{}) [][]string {
	rows := make([][]string, len(raw))
	for i, row := range raw {
		rows[i] = make([]string, len(row))
		for j, cell := range row {
			if cell != nil {
				rows[i][j] = fmt.Sprint(cell)
			}
		}
	}
	return rows
}
