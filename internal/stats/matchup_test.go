package stats

import (
	"math"
	"testing"

	"github.com/ymatsuda/deck-ledger/internal/storage/models"
)

func findRow(t *testing.T, rows []*models.MatchupRow, deck string, deckType *string) *models.MatchupRow {
	t.Helper()
	for _, r := range rows {
		if r.OpponentDeck != deck {
			continue
		}
		if deckType == nil && r.OpponentType == nil {
			return r
		}
		if deckType != nil && r.OpponentType != nil && *r.OpponentType == *deckType {
			return r
		}
	}
	t.Fatalf("no matchup row for %s / %v", deck, deckType)
	return nil
}

func TestMatchups_TwoLayersSortedWithAggregateFirst(t *testing.T) {
	table := []*models.MatchRecord{
		rec("X", "a", "Y", "control", models.ResultWin, models.WentFirst),
		rec("X", "a", "Y", "ramp", models.ResultLoss, models.WentSecond),
		rec("Z", "c", "X", "a", models.ResultLoss, models.WentFirst),
	}

	rows := Matchups(table, "X", nil)

	// Y has two typed rows plus the aggregate; Z has one of each.
	if len(rows) != 5 {
		t.Fatalf("got %d rows, want 5", len(rows))
	}

	wantOrder := []struct {
		deck string
		typ  *string
	}{
		{"Y", nil},
		{"Y", strPtr("control")},
		{"Y", strPtr("ramp")},
		{"Z", nil},
		{"Z", strPtr("c")},
	}
	for i, want := range wantOrder {
		got := rows[i]
		if got.OpponentDeck != want.deck {
			t.Errorf("row %d: got deck %s, want %s", i, got.OpponentDeck, want.deck)
		}
		if (got.OpponentType == nil) != (want.typ == nil) {
			t.Errorf("row %d: aggregate placement wrong", i)
		} else if want.typ != nil && *got.OpponentType != *want.typ {
			t.Errorf("row %d: got type %s, want %s", i, *got.OpponentType, *want.typ)
		}
	}

	yAll := findRow(t, rows, "Y", nil)
	if yAll.Games != 2 || yAll.Wins != 1 {
		t.Errorf("X vs Y aggregate: got %d games, %d wins, want 2 and 1", yAll.Games, yAll.Wins)
	}
	if yAll.WinRate != 50.0 {
		t.Errorf("X vs Y aggregate win rate: got %.1f, want 50.0", yAll.WinRate)
	}
}

func TestMatchups_ZeroSumBetweenPerspectives(t *testing.T) {
	table := []*models.MatchRecord{
		rec("A", "x", "B", "y", models.ResultWin, models.WentFirst),
		rec("A", "x", "B", "y", models.ResultWin, models.WentSecond),
		rec("B", "y", "A", "x", models.ResultWin, models.WentFirst),
	}

	aVsB := findRow(t, Matchups(table, "A", nil), "B", nil)
	bVsA := findRow(t, Matchups(table, "B", nil), "A", nil)

	if aVsB.Games != bVsA.Games {
		t.Fatalf("game counts disagree: %d vs %d", aVsB.Games, bVsA.Games)
	}
	if math.Abs(aVsB.WinRate+bVsA.WinRate-100.0) > 1e-9 {
		t.Errorf("win rates not zero-sum: %.2f + %.2f != 100", aVsB.WinRate, bVsA.WinRate)
	}
}

func TestMatchups_SeatingRelativeToFocus(t *testing.T) {
	// Focus X sits on the opponent side of both rows: the recorded second
	// seat is X's first seat, and the recorded result flips.
	table := []*models.MatchRecord{
		rec("Y", "b", "X", "a", models.ResultLoss, models.WentSecond),
		rec("Y", "b", "X", "a", models.ResultWin, models.WentFirst),
	}

	row := findRow(t, Matchups(table, "X", nil), "Y", nil)
	if row.GamesFirst != 1 {
		t.Errorf("focus first-seat games: got %d, want 1", row.GamesFirst)
	}
	if row.WinRateFirst == nil || *row.WinRateFirst != 100.0 {
		t.Errorf("focus first-seat win rate: got %v, want 100.0", row.WinRateFirst)
	}
	if row.WinRateSecond == nil || *row.WinRateSecond != 0.0 {
		t.Errorf("focus second-seat win rate: got %v, want 0.0", row.WinRateSecond)
	}
}

func TestMatchups_ExcludesMirrorAndAbsentOpponents(t *testing.T) {
	table := []*models.MatchRecord{
		rec("X", "a", "X", "b", models.ResultWin, models.WentFirst),
		rec("X", "a", "", "", models.ResultWin, models.WentFirst),
		rec("X", "a", "Y", "b", models.ResultWin, models.WentFirst),
	}

	rows := Matchups(table, "X", nil)
	for _, r := range rows {
		if r.OpponentDeck == "X" || r.OpponentDeck == "" {
			t.Errorf("unexpected matchup row for opponent %q", r.OpponentDeck)
		}
	}
	if len(rows) != 2 { // Y aggregate + Y/b
		t.Errorf("got %d rows, want 2", len(rows))
	}

	// The mirror row still counts toward overall appearances.
	if ov := Overview(table, "X", nil); ov.Appearances != 4 {
		t.Errorf("overall appearances: got %d, want 4", ov.Appearances)
	}
}

func TestMatchups_FinishTurnAverages(t *testing.T) {
	table := []*models.MatchRecord{
		withTurn(rec("X", "a", "Y", "b", models.ResultWin, models.WentFirst), 4),
		withTurn(rec("X", "a", "Y", "b", models.ResultWin, models.WentFirst), 6),
		withTurn(rec("X", "a", "Y", "b", models.ResultLoss, models.WentFirst), 9),
		rec("X", "a", "Y", "b", models.ResultLoss, models.WentFirst), // no turn recorded
	}

	row := findRow(t, Matchups(table, "X", nil), "Y", nil)
	if row.AvgWinFinishTurn == nil || *row.AvgWinFinishTurn != 5.0 {
		t.Errorf("avg win turn: got %v, want 5.0", row.AvgWinFinishTurn)
	}
	if row.AvgLossFinishTurn == nil || *row.AvgLossFinishTurn != 9.0 {
		t.Errorf("avg loss turn: got %v, want 9.0", row.AvgLossFinishTurn)
	}
}

func TestMatchups_TypeNarrowedFocus(t *testing.T) {
	table := []*models.MatchRecord{
		rec("X", "burn", "Y", "b", models.ResultWin, models.WentFirst),
		rec("X", "midrange", "Y", "b", models.ResultLoss, models.WentFirst),
	}

	rows := Matchups(table, "X", strPtr("burn"))
	row := findRow(t, rows, "Y", nil)
	if row.Games != 1 || row.Wins != 1 {
		t.Errorf("burn vs Y: got %d games, %d wins, want 1 and 1", row.Games, row.Wins)
	}
}

func TestMatchups_EmptyTable(t *testing.T) {
	if rows := Matchups(nil, "X", nil); len(rows) != 0 {
		t.Errorf("empty table: got %d rows, want 0", len(rows))
	}
}

func TestMatchups_UntypedOpponentCountsOnlyInAggregate(t *testing.T) {
	table := []*models.MatchRecord{
		rec("X", "a", "Y", "", models.ResultWin, models.WentFirst),
		rec("X", "a", "Y", "control", models.ResultLoss, models.WentFirst),
	}

	rows := Matchups(table, "X", nil)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2 (no row keyed by an empty type)", len(rows))
	}
	for _, r := range rows {
		if r.OpponentType != nil && *r.OpponentType == "" {
			t.Fatal("untyped games should not produce a per-build row")
		}
	}

	agg := findRow(t, rows, "Y", nil)
	if agg.Games != 2 || agg.Wins != 1 {
		t.Errorf("aggregate: got %d games, %d wins, want 2 and 1", agg.Games, agg.Wins)
	}
	typed := findRow(t, rows, "Y", strPtr("control"))
	if typed.Games != 1 || typed.Wins != 0 {
		t.Errorf("typed row: got %d games, %d wins, want 1 and 0", typed.Games, typed.Wins)
	}
}
