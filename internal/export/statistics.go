package export

import (
	"fmt"

	"github.com/ymatsuda/deck-ledger/internal/storage/models"
)

// SummaryExportRow represents one archetype in the cross-archetype summary.
type SummaryExportRow struct {
	Archetype         string   `csv:"archetype" json:"archetype"`
	Appearances       int      `csv:"appearances" json:"appearances"`
	FirstGames        int      `csv:"first_games" json:"first_games"`
	Wins              int      `csv:"wins" json:"wins"`
	Losses            int      `csv:"losses" json:"losses"`
	WinRate           float64  `csv:"win_rate" json:"win_rate"`
	AvgMatchupWinRate *float64 `csv:"avg_matchup_win_rate" json:"avg_matchup_win_rate"`
	WinRateFirst      *float64 `csv:"win_rate_first" json:"win_rate_first"`
	WinRateSecond     *float64 `csv:"win_rate_second" json:"win_rate_second"`
}

// MatchupExportRow represents one matchup line for a focus archetype.
type MatchupExportRow struct {
	Archetype         string   `csv:"archetype" json:"archetype"`
	OpponentDeck      string   `csv:"opponent_deck" json:"opponent_deck"`
	OpponentType      *string  `csv:"opponent_type" json:"opponent_type"` // empty cell = all builds
	Games             int      `csv:"games" json:"games"`
	GamesFirst        int      `csv:"games_first" json:"games_first"`
	Wins              int      `csv:"wins" json:"wins"`
	WinRate           float64  `csv:"win_rate" json:"win_rate"`
	WinRateFirst      *float64 `csv:"win_rate_first" json:"win_rate_first"`
	WinRateSecond     *float64 `csv:"win_rate_second" json:"win_rate_second"`
	AvgWinFinishTurn  *float64 `csv:"avg_win_finish_turn" json:"avg_win_finish_turn"`
	AvgLossFinishTurn *float64 `csv:"avg_loss_finish_turn" json:"avg_loss_finish_turn"`
}

// ExportSummary writes the cross-archetype summary to the configured file.
func ExportSummary(summaries []*models.ArchetypeSummary, opts Options) error {
	if len(summaries) == 0 {
		return fmt.Errorf("no summary data to export")
	}

	rows := make([]SummaryExportRow, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, SummaryExportRow{
			Archetype:         s.Archetype,
			Appearances:       s.Appearances,
			FirstGames:        s.FirstGames,
			Wins:              s.Wins,
			Losses:            s.Losses,
			WinRate:           s.WinRate,
			AvgMatchupWinRate: s.AvgMatchupWinRate,
			WinRateFirst:      s.WinRateFirst,
			WinRateSecond:     s.WinRateSecond,
		})
	}

	return NewExporter(opts).Export(rows)
}

// ExportMatchups writes a focus archetype's matchup table to the configured file.
func ExportMatchups(archetype string, matchups []*models.MatchupRow, opts Options) error {
	if len(matchups) == 0 {
		return fmt.Errorf("no matchup data to export")
	}

	rows := make([]MatchupExportRow, 0, len(matchups))
	for _, m := range matchups {
		rows = append(rows, MatchupExportRow{
			Archetype:         archetype,
			OpponentDeck:      m.OpponentDeck,
			OpponentType:      m.OpponentType,
			Games:             m.Games,
			GamesFirst:        m.GamesFirst,
			Wins:              m.Wins,
			WinRate:           m.WinRate,
			WinRateFirst:      m.WinRateFirst,
			WinRateSecond:     m.WinRateSecond,
			AvgWinFinishTurn:  m.AvgWinFinishTurn,
			AvgLossFinishTurn: m.AvgLossFinishTurn,
		})
	}

	return NewExporter(opts).Export(rows)
}
