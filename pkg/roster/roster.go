// Package roster turns raw roster and room rows into model values.
// Rows come from any tabular source (xlsx, csv, Google Sheets) as strings.
package roster

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/jakechorley/trip-rooms/internal/config"
	"github.com/jakechorley/trip-rooms/pkg/core/model"
)

var (
	// ErrMissingColumn is returned when a required roster column is absent from the header row
	ErrMissingColumn = errors.New("missing required column")

	// ErrInvalidRoom is returned when a room row has no label or a non-numeric capacity
	ErrInvalidRoom = errors.New("invalid room row")
)

// Parser maps roster rows onto pupils using the configured column headers
type Parser struct {
	cfg    config.RosterConfig
	logger *zap.Logger
}

// NewParser creates a Parser for the given column layout
func NewParser(cfg config.RosterConfig, logger *zap.Logger) *Parser {
	return &Parser{cfg: cfg, logger: logger}
}

// ParsePupils converts rows (header first) into pupils, keeping roster order.
// Rows with an empty name or an unrecognised gender value are skipped.
func (p *Parser) ParsePupils(rows [][]string) ([]model.Pupil, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no header row found", ErrMissingColumn)
	}

	indexes, err := p.columnIndexes(rows[0])
	if err != nil {
		return nil, err
	}

	getField := func(row []string, column string) string {
		index := indexes[column]
		if index >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[index])
	}

	pupils := make([]model.Pupil, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rowNumber := i + 2

		name := getField(row, p.cfg.NameColumn)
		if name == "" {
			p.logger.Debug("Skipping roster row without a name", zap.Int("row", rowNumber))
			continue
		}

		genderValue := getField(row, p.cfg.GenderColumn)
		gender, ok := p.gender(genderValue)
		if !ok {
			p.logger.Warn("Skipping pupil with unrecognised gender",
				zap.Int("row", rowNumber),
				zap.String("pupil", name),
				zap.String("gender", genderValue))
			continue
		}

		pupils = append(pupils, model.Pupil{
			Name:       name,
			Gender:     gender,
			RawChoices: getField(row, p.cfg.ChoicesColumn),
		})
	}

	p.logger.Debug("Parsed roster", zap.Int("rows", len(rows)-1), zap.Int("pupils", len(pupils)))

	return pupils, nil
}

func (p *Parser) columnIndexes(header []string) (map[string]int, error) {
	indexes := make(map[string]int)
	for _, column := range []string{p.cfg.NameColumn, p.cfg.GenderColumn, p.cfg.ChoicesColumn} {
		index := -1
		for i, cell := range header {
			if strings.TrimSpace(cell) == strings.TrimSpace(column) {
				index = i
				break
			}
		}
		if index == -1 {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, column)
		}
		indexes[column] = index
	}
	return indexes, nil
}

func (p *Parser) gender(value string) (model.Gender, bool) {
	switch {
	case strings.EqualFold(value, p.cfg.MaleValue):
		return model.GenderMale, true
	case strings.EqualFold(value, p.cfg.FemaleValue):
		return model.GenderFemale, true
	}
	return "", false
}

// ParseRooms converts header-less "label,capacity" rows into rooms, keeping
// their order. Blank rows are skipped.
func ParseRooms(rows [][]string) ([]model.RoomSpec, error) {
	rooms := make([]model.RoomSpec, 0, len(rows))
	for i, row := range rows {
		if isBlank(row) {
			continue
		}
		if len(row) < 2 {
			return nil, fmt.Errorf("%w: row %d has %d columns, want label and capacity", ErrInvalidRoom, i+1, len(row))
		}

		label := strings.TrimSpace(row[0])
		if label == "" {
			return nil, fmt.Errorf("%w: row %d has no label", ErrInvalidRoom, i+1)
		}

		capacity, err := strconv.Atoi(strings.TrimSpace(row[1]))
		if err != nil {
			return nil, fmt.Errorf("%w: row %d capacity %q is not a number", ErrInvalidRoom, i+1, row[1])
		}

		rooms = append(rooms, model.RoomSpec{Label: label, Capacity: capacity})
	}
	return rooms, nil
}

// ParseCapacities parses a comma-separated capacity list such as "4, 4,2".
// Empty entries are ignored.
func ParseCapacities(raw string) ([]int, error) {
	caps := []int{}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		capacity, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid capacity %q: %w", part, err)
		}
		caps = append(caps, capacity)
	}
	return caps, nil
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
