package lock

import (
	"context"
	"time"

	"github.com/opslock/weeklock/metrics"
)

// lockBatches partitions the eligible row IDs into contiguous batches and
// issues one lock mutation per batch, returning exactly the IDs that were
// confirmed locked. Batches are strictly sequential - the remote service
// rate-limits mutations per sheet - with a short pause between successful
// batches.
func (r *Runner) lockBatches(ctx context.Context, sheetID string, name string, rows []int64) []int64 {
	locked := []int64{}

	for start := 0; start < len(rows); start += r.BatchSize {
		end := min(start+r.BatchSize, len(rows))
		batch := rows[start:end]

		if err := r.lockBatch(ctx, sheetID, batch); err != nil {
			metrics.BatchesAbandoned.Inc()
			warnf("abandoning batch of %d rows in %s (%v)", len(batch), name, err)
			continue
		}

		locked = append(locked, batch...)

		if end < len(rows) {
			sleep(ctx, r.BatchDelay)
		}
	}

	return locked
}

// lockBatch issues the lock mutation for a single batch, retrying with
// exponential backoff (1, 2, 4, ... units) on any network failure or
// non-success status.
func (r *Runner) lockBatch(ctx context.Context, sheetID string, batch []int64) error {
	delay := r.Backoff

	var err error
	for attempt := 1; attempt <= r.Retries; attempt++ {
		if err = r.API.LockRows(ctx, sheetID, batch); err == nil {
			return nil
		}

		if attempt < r.Retries {
			metrics.BatchRetries.Inc()
			warnf("lock attempt %d of %d failed (%v), retrying in %v", attempt, r.Retries, err, delay)
			sleep(ctx, delay)
			delay *= 2
		}
	}

	return err
}

func sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
