package stats

import (
	"github.com/ymatsuda/deck-ledger/internal/storage/models"
)

// ApplyFilter returns the rows matching the filter criteria, in table order.
// A zero filter returns a copy of the whole table. The input is never
// mutated and the result is always a fresh slice, so callers can filter the
// same snapshot repeatedly; applying the same filter twice is a no-op.
func ApplyFilter(records []*models.MatchRecord, filter models.RecordFilter) []*models.MatchRecord {
	var envSet map[string]bool
	if len(filter.Environments) > 0 {
		envSet = make(map[string]bool, len(filter.Environments))
		for _, env := range filter.Environments {
			envSet[env] = true
		}
	}

	out := make([]*models.MatchRecord, 0, len(records))
	for _, rec := range records {
		if filter.Season != nil && rec.Season != *filter.Season {
			continue
		}
		if envSet != nil && !envSet[rec.Environment] {
			continue
		}
		out = append(out, rec)
	}
	return out
}
