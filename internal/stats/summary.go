package stats

import (
	"sort"

	"github.com/ymatsuda/deck-ledger/internal/storage/models"
)

// Summary computes the cross-archetype default view: every archetype's
// overall performance plus its average matchup win rate.
//
// The average matchup win rate is the unweighted mean of the per-opponent
// type-agnostic win rates — the mean of rates, not a re-weighted aggregate.
// It rewards consistency across matchups over raw volume, which also means
// a low-sample matchup moves the ranking as much as a well-sampled one.
// That is the intended behavior, preserved as-is.
//
// Sorted descending by average matchup win rate, falling back to overall
// win rate, then appearance count, when the primary key is absent.
func Summary(records []*models.MatchRecord) []*models.ArchetypeSummary {
	archetypes := Archetypes(records)
	rows := make([]*models.ArchetypeSummary, 0, len(archetypes))

	for _, archetype := range archetypes {
		ov := Overview(records, archetype, nil)
		if ov.Appearances == 0 {
			continue
		}

		var rates []float64
		for _, m := range Matchups(records, archetype, nil) {
			if m.OpponentType == nil {
				rates = append(rates, m.WinRate)
			}
		}

		rows = append(rows, &models.ArchetypeSummary{
			Archetype:         archetype,
			Appearances:       ov.Appearances,
			FirstGames:        ov.FirstGames,
			Wins:              ov.Wins,
			Losses:            ov.Losses,
			WinRate:           ov.WinRate,
			AvgMatchupWinRate: meanFloat(rates),
			WinRateFirst:      ov.WinRateFirst,
			WinRateSecond:     ov.WinRateSecond,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		switch {
		case a.AvgMatchupWinRate != nil && b.AvgMatchupWinRate != nil:
			if *a.AvgMatchupWinRate != *b.AvgMatchupWinRate {
				return *a.AvgMatchupWinRate > *b.AvgMatchupWinRate
			}
		case a.AvgMatchupWinRate != nil:
			return true
		case b.AvgMatchupWinRate != nil:
			return false
		}
		if a.WinRate != b.WinRate {
			return a.WinRate > b.WinRate
		}
		return a.Appearances > b.Appearances
	})

	return rows
}
