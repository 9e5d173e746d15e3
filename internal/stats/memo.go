package stats

import (
	"sort"

	"github.com/ymatsuda/deck-ledger/internal/storage/models"
)

// MemoRecords returns the rows involving the focus archetype that carry a
// non-empty memo, newest date first with undated rows last. A mirror match
// appears once. deckType narrows to one build; nil means all types.
func MemoRecords(records []*models.MatchRecord, archetype string, deckType *string) []*models.MatchRecord {
	seen := make(map[*models.MatchRecord]bool)
	var out []*models.MatchRecord
	for _, g := range gamesFor(records, archetype, deckType) {
		if g.rec.Memo == "" || seen[g.rec] {
			continue
		}
		seen[g.rec] = true
		out = append(out, g.rec)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Date, out[j].Date
		switch {
		case a != nil && b != nil:
			return a.After(*b)
		case a != nil:
			return true
		default:
			return false
		}
	})

	return out
}
