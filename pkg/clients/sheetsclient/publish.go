package sheetsclient

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/trip-rooms/pkg/spreadsheet"
)

// PublishAllocation writes the tables to a new tab of the spreadsheet, one
// below the other with a blank row between them. Each table is preceded by
// its name.
func (c *Client) PublishAllocation(ctx context.Context, spreadsheetID, tabTitle string, tables ...spreadsheet.Table) error {
	if _, err := c.CreateSheet(ctx, spreadsheetID, tabTitle); err != nil {
		return fmt.Errorf("failed to create tab %q: %w", tabTitle, err)
	}

	if err := c.UpdateValues(ctx, spreadsheetID, fmt.Sprintf("'%s'!A1", tabTitle), tableValues(tables)); err != nil {
		return fmt.Errorf("failed to write tab %q: %w", tabTitle, err)
	}

	c.logger.Info("Published allocation",
		zap.String("spreadsheet_id", spreadsheetID),
		zap.String("tab", tabTitle),
		zap.Int("tables", len(tables)))

	return nil
}

func tableValues(tables []spreadsheet.Table) [][]interface{} {
	var values [][]interface{}
	for i, table := range tables {
		if i > 0 {
			values = append(values, []interface{}{})
		}

		values = append(values, []interface{}{table.Name})

		header := make([]interface{}, len(table.Header))
		for j, h := range table.Header {
			header[j] = h
		}
		values = append(values, header)

		for _, row := range table.Rows {
			values = append(values, row)
		}
	}
	return values
}
