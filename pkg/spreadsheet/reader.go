// Package spreadsheet reads rosters from and writes allocations to local
// .xlsx and .csv files.
package spreadsheet

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/jakechorley/trip-rooms/internal/config"
	"github.com/jakechorley/trip-rooms/pkg/core/model"
	"github.com/jakechorley/trip-rooms/pkg/roster"
)

const (
	extXLSX = ".xlsx"
	extCSV  = ".csv"
)

// FileSource reads the pupils roster and the rooms list from local files.
// Pupils may be .xlsx or .csv with a header row; rooms are a header-less
// "label,capacity" .csv.
type FileSource struct {
	pupilsPath string
	roomsPath  string
	sheetName  string
	parser     *roster.Parser
	logger     *zap.Logger
}

// NewFileSource creates a FileSource for the given files
func NewFileSource(pupilsPath, roomsPath string, cfg config.RosterConfig, logger *zap.Logger) *FileSource {
	return &FileSource{
		pupilsPath: pupilsPath,
		roomsPath:  roomsPath,
		sheetName:  cfg.SheetName,
		parser:     roster.NewParser(cfg, logger),
		logger:     logger,
	}
}

// ListPupils reads and parses the pupils file
func (s *FileSource) ListPupils(ctx context.Context) ([]model.Pupil, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows, err := ReadRows(s.pupilsPath, s.sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read pupils file: %w", err)
	}

	pupils, err := s.parser.ParsePupils(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to parse pupils file %s: %w", s.pupilsPath, err)
	}

	s.logger.Debug("Read pupils file", zap.String("path", s.pupilsPath), zap.Int("pupils", len(pupils)))

	return pupils, nil
}

// ListRooms reads and parses the rooms file
func (s *FileSource) ListRooms(ctx context.Context) ([]model.RoomSpec, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows, err := readCSV(s.roomsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read rooms file: %w", err)
	}

	rooms, err := roster.ParseRooms(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to parse rooms file %s: %w", s.roomsPath, err)
	}

	s.logger.Debug("Read rooms file", zap.String("path", s.roomsPath), zap.Int("rooms", len(rooms)))

	return rooms, nil
}

// ReadRows returns every row of a .xlsx worksheet or a .csv file as strings
func ReadRows(path, sheetName string) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case extXLSX:
		return readXLSX(path, sheetName)
	case extCSV:
		return readCSV(path)
	default:
		return nil, fmt.Errorf("unsupported file type %q (want %s or %s)", filepath.Ext(path), extXLSX, extCSV)
	}
}

func readXLSX(path, sheetName string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheetName, err)
	}

	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}

	// Excel writes a byte order mark at the start of UTF-8 csv exports
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")
	}

	return rows, nil
}
