package sheets

import (
	"context"
	"fmt"
	"strings"
	"time"

	sheetsapi "google.golang.org/api/sheets/v4"
)

// SheetTable is a worksheet inside a remote spreadsheet.
type SheetTable struct {
	client *Client
	sheet  string
}

var _ Table = (*SheetTable)(nil)

// Name returns the worksheet title.
func (t *SheetTable) Name() string {
	return t.sheet
}

// Append adds one row after the last non-empty row. Values are parsed as if
// typed by a user, so numbers and dates keep their native cell types.
func (t *SheetTable) Append(ctx context.Context, row []string) error {
	if t.client.spreadsheetID == "" {
		return fmt.Errorf("append %s: spreadsheet not resolved", t.sheet)
	}
	cells := make([]interface{}, len(row))
	for i, v := range row {
		cells[i] = v
	}

	ctx, cancel := t.client.withTimeout(ctx)
	defer cancel()
	_, err := t.client.values.Append(t.client.spreadsheetID, a1Range(t.sheet), &sheetsapi.ValueRange{
		MajorDimension: "ROWS",
		Values:         [][]interface{}{cells},
	}).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append %s: %w", t.sheet, err)
	}
	return nil
}

// ReadAll returns every row of the worksheet, header first. Trailing empty
// cells are omitted by the API, so rows may be shorter than the header.
func (t *SheetTable) ReadAll(ctx context.Context) ([][]string, error) {
	if t.client.spreadsheetID == "" {
		return nil, fmt.Errorf("read %s: spreadsheet not resolved", t.sheet)
	}

	ctx, cancel := t.client.withTimeout(ctx)
	defer cancel()
	resp, err := t.client.values.Get(t.client.spreadsheetID, a1Range(t.sheet)).
		MajorDimension("ROWS").
		ValueRenderOption("FORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", t.sheet, err)
	}

	rows := make([][]string, len(resp.Values))
	for i, row := range resp.Values {
		rows[i] = make([]string, len(row))
		for j, cell := range row {
			rows[i][j] = fmt.Sprint(cell)
		}
	}
	return rows, nil
}

// a1Range quotes a sheet title for use as an A1 range.
func a1Range(sheet string) string {
	return "'" + strings.ReplaceAll(sheet, "'", "''") + "'"
}

// EnsureHeader writes header as the first row of an empty table.
func EnsureHeader(ctx context.Context, t Table, header []string) error {
	rows, err := t.ReadAll(ctx)
	if err != nil {
		return err
	}
	if len(rows) > 0 {
		return nil
	}
	return t.Append(ctx, header)
}

// TimeLayout is the timestamp format written to every table.
const TimeLayout = "2006-01-02 15:04:05"

// FormatTime renders t in TimeLayout.
func FormatTime(t time.Time) string {
	return t.Format(TimeLayout)
}
