package lock

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/opslock/weeklock/audit"
	"github.com/opslock/weeklock/metrics"
	"github.com/opslock/weeklock/smartsheet"
)

// API is the subset of the Smartsheet client used by the locking pipeline.
type API interface {
	GetSheet(ctx context.Context, sheetID string) (*smartsheet.Sheet, error)
	LockRows(ctx context.Context, sheetID string, rows []int64) error
}

// Runner executes the scan-and-lock pipeline for a set of sheets across a
// fixed-size worker pool. All configuration is explicit - there are no
// package-level settings.
type Runner struct {
	API        API
	Column     string
	Cutoff     time.Time
	BatchSize  int
	Retries    int
	Backoff    time.Duration
	BatchDelay time.Duration
	Workers    int
	DryRun     bool
}

type result struct {
	sheet   string
	records []audit.Record
	err     error
}

// Run processes every sheet and returns the audit records for all rows that
// were confirmed locked, in sheet completion order. Per-sheet failures are
// logged and contribute zero records - they never abort sibling sheets or
// the run.
func (r *Runner) Run(ctx context.Context, sheets []string) []audit.Record {
	results := make(chan result, len(sheets))

	var g errgroup.Group
	g.SetLimit(r.Workers)

	for _, sheetID := range sheets {
		sheetID := sheetID
		g.Go(func() error {
			records, err := r.process(ctx, sheetID)
			results <- result{sheet: sheetID, records: records, err: err}
			return nil
		})
	}

	g.Wait()
	close(results)

	records := []audit.Record{}
	for v := range results {
		if v.err != nil {
			metrics.SheetsSkipped.Inc()
			warnf("sheet %s: %v", v.sheet, v.err)
			continue
		}

		metrics.SheetsProcessed.Inc()
		records = append(records, v.records...)
	}

	return records
}

// process runs the whole pipeline for one sheet: fetch metadata and rows,
// resolve the week-ending column, filter to eligible rows and lock them in
// batches.
func (r *Runner) process(ctx context.Context, sheetID string) ([]audit.Record, error) {
	sheet, err := r.API.GetSheet(ctx, sheetID)
	if err != nil {
		return nil, err
	}

	columnID, ok := sheet.ColumnID(r.Column)
	if !ok {
		return nil, fmt.Errorf("column '%s' not found in sheet %s", r.Column, sheet.Name)
	}

	infof("found %d rows in sheet %s", len(sheet.Rows), sheet.Name)

	eligible, info := scan(sheet, columnID, r.Cutoff)
	if len(eligible) == 0 {
		infof("no rows to lock in sheet %s", sheet.Name)
		return nil, nil
	}

	if r.DryRun {
		infof("dry run: would lock %d rows in sheet %s", len(eligible), sheet.Name)
		return nil, nil
	}

	locked := r.lockBatches(ctx, sheetID, sheet.Name, eligible)

	records := make([]audit.Record, 0, len(locked))
	for _, id := range locked {
		metrics.RowsLocked.Inc()
		debugf("locked row %d in %s", info[id].number, sheet.Name)

		records = append(records, audit.Record{
			SheetName: sheet.Name,
			RowID:     id,
			RowNumber: info[id].number,
			Date:      info[id].date,
		})
	}

	infof("locked %d of %d eligible rows in sheet %s", len(locked), len(eligible), sheet.Name)

	return records, nil
}
