package smartsheet

import (
	"fmt"
)

// Sheet is a remote Smartsheet document with its column definitions and rows.
type Sheet struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	Columns       []Column `json:"columns"`
	Rows          []Row    `json:"rows"`
	TotalRowCount int      `json:"totalRowCount"`
}

// Column is a sheet column definition. Column IDs are stable within a sheet
// but are not portable across sheets - a title has to be re-resolved for
// every sheet.
type Column struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// Row is a single sheet row. RowNumber is the human-visible ordinal and is
// informational only.
type Row struct {
	ID        int64  `json:"id"`
	RowNumber int    `json:"rowNumber"`
	Locked    bool   `json:"locked"`
	Cells     []Cell `json:"cells"`
}

// Cell is a single cell value. DisplayValue carries the formatted string
// shown in the UI; Value is the raw typed value.
type Cell struct {
	ColumnID     int64  `json:"columnId"`
	Value        any    `json:"value,omitempty"`
	DisplayValue string `json:"displayValue,omitempty"`
}

// ColumnID resolves a column title to its ID by exact, case-sensitive match.
func (s *Sheet) ColumnID(title string) (int64, bool) {
	for _, column := range s.Columns {
		if column.Title == title {
			return column.ID, true
		}
	}

	return 0, false
}

// Cell returns the row's cell for the given column ID.
func (r Row) Cell(columnID int64) (Cell, bool) {
	for _, cell := range r.Cells {
		if cell.ColumnID == columnID {
			return cell, true
		}
	}

	return Cell{}, false
}

// String returns the cell's display value, falling back to the raw value
// when no display value is set.
func (c Cell) String() string {
	if c.DisplayValue != "" {
		return c.DisplayValue
	}

	if c.Value == nil {
		return ""
	}

	return fmt.Sprintf("%v", c.Value)
}
