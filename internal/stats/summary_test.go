package stats

import (
	"math"
	"testing"

	"github.com/ymatsuda/deck-ledger/internal/storage/models"
)

func TestSummary_AverageMatchupRateIsUnweighted(t *testing.T) {
	// X vs Y: 1 game, 1 win (100%). X vs Z: 3 games, 1 win (33.33%).
	// The average matchup win rate is the mean of the two rates, not the
	// volume-weighted 2/4.
	table := []*models.MatchRecord{
		rec("X", "a", "Y", "b", models.ResultWin, models.WentFirst),
		rec("X", "a", "Z", "c", models.ResultWin, models.WentFirst),
		rec("X", "a", "Z", "c", models.ResultLoss, models.WentFirst),
		rec("Z", "c", "X", "a", models.ResultWin, models.WentFirst),
	}

	var x *models.ArchetypeSummary
	for _, row := range Summary(table) {
		if row.Archetype == "X" {
			x = row
		}
	}
	if x == nil {
		t.Fatal("no summary row for X")
	}

	want := (100.0 + 100.0/3.0) / 2.0
	if x.AvgMatchupWinRate == nil {
		t.Fatal("expected an average matchup win rate for X")
	}
	if math.Abs(*x.AvgMatchupWinRate-want) > 1e-9 {
		t.Errorf("avg matchup win rate: got %.4f, want %.4f", *x.AvgMatchupWinRate, want)
	}
	if x.WinRate != 50.0 {
		t.Errorf("overall win rate: got %.1f, want 50.0", x.WinRate)
	}
}

func TestSummary_SortedByAverageMatchupRateDescending(t *testing.T) {
	table := []*models.MatchRecord{
		rec("A", "x", "B", "y", models.ResultWin, models.WentFirst),
		rec("A", "x", "B", "y", models.ResultWin, models.WentFirst),
		rec("B", "y", "C", "z", models.ResultWin, models.WentFirst),
		rec("C", "z", "A", "x", models.ResultLoss, models.WentFirst),
	}

	rows := Summary(table)
	for i := 1; i < len(rows); i++ {
		a, b := rows[i-1].AvgMatchupWinRate, rows[i].AvgMatchupWinRate
		if a != nil && b != nil && *a < *b {
			t.Errorf("rows out of order: %s (%.1f) before %s (%.1f)",
				rows[i-1].Archetype, *a, rows[i].Archetype, *b)
		}
		if a == nil && b != nil {
			t.Errorf("row without average sorted before row with one")
		}
	}
}

func TestSummary_EmptyTable(t *testing.T) {
	if rows := Summary(nil); len(rows) != 0 {
		t.Errorf("empty table: got %d rows, want 0", len(rows))
	}
}

func TestSummary_MirrorOnlyArchetype(t *testing.T) {
	// A table of nothing but mirror matches: the archetype appears twice per
	// row with an even record, but faces no distinct opponent, so the
	// average matchup win rate is absent rather than zero.
	table := []*models.MatchRecord{
		rec("X", "a", "X", "b", models.ResultWin, models.WentFirst),
	}

	rows := Summary(table)
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	x := rows[0]
	if x.Appearances != 2 || x.WinRate != 50.0 {
		t.Errorf("mirror archetype: got %d appearances, %.1f%% win rate", x.Appearances, x.WinRate)
	}
	if x.AvgMatchupWinRate != nil {
		t.Errorf("expected nil average matchup win rate, got %.1f", *x.AvgMatchupWinRate)
	}
}

func TestSummary_FirstGamesComposite(t *testing.T) {
	table := []*models.MatchRecord{
		rec("X", "a", "Y", "b", models.ResultWin, models.WentFirst),
		rec("Y", "b", "X", "a", models.ResultWin, models.WentSecond), // X went first
		rec("X", "a", "Y", "b", models.ResultLoss, models.WentSecond),
	}

	for _, row := range Summary(table) {
		if row.Archetype != "X" {
			continue
		}
		if row.Appearances != 3 || row.FirstGames != 2 {
			t.Errorf("X: got %d appearances with %d first-seat games, want 3 and 2",
				row.Appearances, row.FirstGames)
		}
		return
	}
	t.Fatal("no summary row for X")
}
