package services

import (
	"fmt"
	"slices"

	"github.com/jakechorley/trip-rooms/pkg/core/allocator"
	"github.com/jakechorley/trip-rooms/pkg/core/model"
	"github.com/jakechorley/trip-rooms/pkg/spreadsheet"
)

// DefaultSlots is the number of pupil columns shown when none is configured
const DefaultSlots = 4

// DisplayRow is one room of the final allocation table
type DisplayRow struct {
	RoomNumber string
	Capacity   int
	Gender     string

	// Pupils holds one entry per slot, "First Last", empty when the slot is unused
	Pupils []string

	Filled int
	Spare  int
}

// EvaluationRow is one pupil of the evaluation table
type EvaluationRow struct {
	Gender string
	Pupil  string

	// Room is the 1-based room number within the pupil's group, 0 if unplaced
	Room      int
	RoomLabel string

	Status      allocator.MatchStatus
	MutualCount int
	OneWayCount int
	BestRank    int
}

// BuildDisplayTable lays out named rooms with members sorted by name.
// Members beyond the slot count are not shown.
func BuildDisplayTable(rooms []model.NamedRoom, slots int) []DisplayRow {
	if slots <= 0 {
		slots = DefaultSlots
	}

	rows := make([]DisplayRow, 0, len(rooms))
	for _, room := range rooms {
		members := slices.Clone(room.Members)
		slices.Sort(members)

		pupils := make([]string, slots)
		for i := 0; i < slots && i < len(members); i++ {
			pupils[i] = model.FirstLast(members[i])
		}

		rows = append(rows, DisplayRow{
			RoomNumber: room.Label,
			Capacity:   room.Capacity,
			Gender:     room.Gender.Label(),
			Pupils:     pupils,
			Filled:     room.Filled(),
			Spare:      room.Spare(),
		})
	}
	return rows
}

// BuildEvaluationTable lists every pupil of every group with their match status
func BuildEvaluationTable(groups []GroupResult) []EvaluationRow {
	var rows []EvaluationRow
	for _, g := range groups {
		for _, e := range g.Result.Evaluation {
			row := EvaluationRow{
				Gender:      g.Gender.Label(),
				Pupil:       e.Pupil,
				Status:      e.Status,
				MutualCount: e.MutualCount,
				OneWayCount: e.OneWayCount,
				BestRank:    e.BestRank,
			}
			if e.Room >= 0 {
				row.Room = e.Room + 1
				if e.Room < len(g.RoomLabels) {
					row.RoomLabel = g.RoomLabels[e.Room]
				}
			}
			rows = append(rows, row)
		}
	}
	return rows
}

// DisplayHeader returns the allocation table header for the given slot count
func DisplayHeader(slots int) []string {
	if slots <= 0 {
		slots = DefaultSlots
	}
	header := []string{"Room Number", "Capacity", "Gender"}
	for i := 0; i < slots; i++ {
		header = append(header, fmt.Sprintf("Pupil %d", i+1))
	}
	return append(header, "Filled", "Spare")
}

// EvaluationHeader is the evaluation table header
var EvaluationHeader = []string{"Gender", "Pupil", "Room", "Room Number", "Status", "Mutual", "One-way", "Best Rank"}

// Cells returns the row in DisplayHeader column order
func (r DisplayRow) Cells() []any {
	cells := []any{r.RoomNumber, r.Capacity, r.Gender}
	for _, p := range r.Pupils {
		cells = append(cells, p)
	}
	return append(cells, r.Filled, r.Spare)
}

// Cells returns the row in EvaluationHeader column order
func (r EvaluationRow) Cells() []any {
	room := any("")
	if r.Room > 0 {
		room = r.Room
	}
	return []any{r.Gender, r.Pupil, room, r.RoomLabel, string(r.Status), r.MutualCount, r.OneWayCount, r.BestRank}
}

// Tables returns the allocation and evaluation tables for export
func (r *AllocationReport) Tables() []spreadsheet.Table {
	allocation := spreadsheet.Table{Name: "Allocation", Header: DisplayHeader(r.Slots)}
	for _, row := range r.Display {
		allocation.Rows = append(allocation.Rows, row.Cells())
	}

	evaluation := spreadsheet.Table{Name: "Evaluation", Header: EvaluationHeader}
	for _, row := range r.Evaluation {
		evaluation.Rows = append(evaluation.Rows, row.Cells())
	}

	return []spreadsheet.Table{allocation, evaluation}
}

// TabTitle names the published tab after the run
func (r *AllocationReport) TabTitle() string {
	return fmt.Sprintf("Allocation %s (%s)", r.CreatedAt.Format("2006-01-02 15:04"), r.RunID[:8])
}
