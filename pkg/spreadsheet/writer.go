package spreadsheet

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Table is a named grid of cells with a header row
type Table struct {
	Name   string
	Header []string
	Rows   [][]any
}

// Write saves the tables to path. A .xlsx file gets one worksheet per table;
// a .csv file holds only the first table.
func Write(path string, tables ...Table) error {
	if len(tables) == 0 {
		return fmt.Errorf("no tables to write")
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case extXLSX:
		return writeXLSX(path, tables)
	case extCSV:
		return writeCSV(path, tables[0])
	default:
		return fmt.Errorf("unsupported output type %q (want %s or %s)", filepath.Ext(path), extXLSX, extCSV)
	}
}

func writeXLSX(path string, tables []Table) error {
	f := excelize.NewFile()
	defer f.Close()

	defaultSheet := f.GetSheetName(0)
	for i, table := range tables {
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, table.Name); err != nil {
				return fmt.Errorf("failed to name sheet %q: %w", table.Name, err)
			}
		} else if _, err := f.NewSheet(table.Name); err != nil {
			return fmt.Errorf("failed to create sheet %q: %w", table.Name, err)
		}

		if err := writeSheet(f, table); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	return nil
}

func writeSheet(f *excelize.File, table Table) error {
	header := make([]any, len(table.Header))
	for i, h := range table.Header {
		header[i] = h
	}

	for i, row := range append([][]any{header}, table.Rows...) {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(table.Name, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d of sheet %q: %w", i+1, table.Name, err)
		}
	}

	return nil
}

func writeCSV(path string, table Table) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create csv file: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(table.Header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, row := range table.Rows {
		if err := w.Write(Strings(row)); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush csv file: %w", err)
	}

	return file.Close()
}

// Strings formats a row of cells as strings
func Strings(row []any) []string {
	out := make([]string, len(row))
	for i, cell := range row {
		if cell != nil {
			out[i] = fmt.Sprint(cell)
		}
	}
	return out
}
