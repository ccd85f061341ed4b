package lock

import (
	"time"

	"github.com/opslock/weeklock/metrics"
	"github.com/opslock/weeklock/smartsheet"
)

// rowInfo retains the detail needed to build an audit record after a row's
// lock has been confirmed.
type rowInfo struct {
	number int
	date   string
}

// scan filters a sheet's rows down to the IDs eligible for locking: rows
// that are not already locked and whose week-ending cell parses to a date on
// or before the cutoff. Rows with a missing or unparseable date cell are
// skipped, not fatal.
func scan(sheet *smartsheet.Sheet, columnID int64, cutoff time.Time) ([]int64, map[int64]rowInfo) {
	eligible := []int64{}
	info := map[int64]rowInfo{}

	for _, row := range sheet.Rows {
		metrics.RowsScanned.Inc()

		if row.Locked {
			continue
		}

		cell, ok := row.Cell(columnID)
		if !ok {
			continue
		}

		value := cell.String()
		if value == "" {
			continue
		}

		date, err := ParseDate(value)
		if err != nil {
			warnf("could not parse date '%s' (row %d in %s)", value, row.RowNumber, sheet.Name)
			continue
		}

		if onOrBefore(date, cutoff) {
			eligible = append(eligible, row.ID)
			info[row.ID] = rowInfo{
				number: row.RowNumber,
				date:   value,
			}
		}
	}

	return eligible, info
}
