package core

import (
	"context"
	"time"
)

// PurgeExpiredEvents removes events whose end lies more than retentionDays
// behind now. Returns the number of purged rows.
func PurgeExpiredEvents(ctx context.Context, repository Repository, retentionDays int, now time.Time) (int64, error) {
	cutoff := now.AddDate(0, 0, -retentionDays)

	return repository.DeleteEventsBefore(ctx, cutoff)
}
