package normalize

import (
	"strings"
	"testing"

	"github.com/ymatsuda/deck-ledger/internal/storage/models"
)

func canonicalHeader() []string {
	return append([]string(nil), models.Columns...)
}

func TestTable_WellFormedRow(t *testing.T) {
	rows := [][]string{
		{"2025-spring", "2025-03-14", "store", "Zoo", "burn", "Control", "draw-go", "first", "win", "6", "good draw"},
	}

	res := Table(canonicalHeader(), rows)
	if len(res.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", res.Warnings)
	}
	if len(res.Records) != 1 {
		t.Fatalf("got %d records, want 1", len(res.Records))
	}

	r := res.Records[0]
	if r.Season != "2025-spring" || r.MyDeck != "Zoo" || r.OpponentDeck != "Control" {
		t.Errorf("string fields wrong: %+v", r)
	}
	if r.Date == nil || r.Date.Format("2006-01-02") != "2025-03-14" {
		t.Errorf("date: got %v", r.Date)
	}
	if r.Result != models.ResultWin || r.FirstSecond != models.WentFirst {
		t.Errorf("enums: got %q / %q", r.Result, r.FirstSecond)
	}
	if r.FinishTurn == nil || *r.FinishTurn != 6 {
		t.Errorf("finish turn: got %v", r.FinishTurn)
	}
}

func TestTable_DegradesMalformedCells(t *testing.T) {
	rows := [][]string{
		{"s1", "not a date", "  store  ", "Zoo", "NaN", "Control", "nan", "先攻", "勝ち", "minus two", "  "},
	}

	res := Table(canonicalHeader(), rows)
	if len(res.Records) != 1 {
		t.Fatalf("got %d records, want 1 (warnings: %v)", len(res.Records), res.Warnings)
	}

	r := res.Records[0]
	if r.Date != nil {
		t.Errorf("unparseable date should be nil, got %v", r.Date)
	}
	if r.FinishTurn != nil {
		t.Errorf("unparseable finish turn should be nil, got %v", r.FinishTurn)
	}
	if r.MyDeckType != "" || r.OpponentDeckType != "" {
		t.Errorf("nan-as-text should normalize to empty, got %q / %q", r.MyDeckType, r.OpponentDeckType)
	}
	if r.Environment != "store" {
		t.Errorf("whitespace should be trimmed, got %q", r.Environment)
	}
	if r.Memo != "" {
		t.Errorf("whitespace memo should normalize to empty, got %q", r.Memo)
	}
	// Legacy Japanese enum forms are accepted.
	if r.Result != models.ResultWin || r.FirstSecond != models.WentFirst {
		t.Errorf("legacy enums: got %q / %q", r.Result, r.FirstSecond)
	}
}

func TestTable_SkipsRowsWithUnknownEnums(t *testing.T) {
	rows := [][]string{
		{"s1", "", "store", "Zoo", "a", "Control", "b", "first", "draw", "", ""},
		{"s1", "", "store", "Zoo", "a", "Control", "b", "sideways", "win", "", ""},
		{"s1", "", "store", "Zoo", "a", "Control", "b", "second", "loss", "", ""},
	}

	res := Table(canonicalHeader(), rows)
	if len(res.Records) != 1 {
		t.Fatalf("got %d records, want 1", len(res.Records))
	}
	if len(res.Warnings) != 2 {
		t.Errorf("got %d warnings, want 2: %v", len(res.Warnings), res.Warnings)
	}
}

func TestTable_MissingColumnsFilledAbsent(t *testing.T) {
	header := []string{"season", "my_deck", "opponent_deck", "first_second", "result"}
	rows := [][]string{
		{"s1", "Zoo", "Control", "second", "loss"},
	}

	res := Table(header, rows)
	if len(res.Records) != 1 {
		t.Fatalf("got %d records, want 1", len(res.Records))
	}
	if len(res.Warnings) == 0 {
		t.Error("expected a missing-columns warning")
	}

	r := res.Records[0]
	if r.Date != nil || r.FinishTurn != nil || r.Environment != "" || r.Memo != "" {
		t.Errorf("missing columns should be absent: %+v", r)
	}
}

func TestTable_ForeignHeaderYieldsWarningNotError(t *testing.T) {
	res := Table([]string{"alpha", "beta"}, [][]string{{"1", "2"}})
	if len(res.Records) != 0 {
		t.Errorf("got %d records, want 0", len(res.Records))
	}
	if len(res.Warnings) != 1 || !strings.Contains(res.Warnings[0], "expected columns") {
		t.Errorf("warnings: %v", res.Warnings)
	}
}

func TestTable_ShortRow(t *testing.T) {
	rows := [][]string{
		{"s1", "", "store", "Zoo", "a", "Control", "b", "first", "win"},
	}
	res := Table(canonicalHeader(), rows)
	if len(res.Records) != 1 {
		t.Fatalf("got %d records, want 1", len(res.Records))
	}
	if res.Records[0].FinishTurn != nil || res.Records[0].Memo != "" {
		t.Errorf("truncated cells should be absent: %+v", res.Records[0])
	}
}

func TestParseFinishTurn(t *testing.T) {
	cases := []struct {
		in   string
		want *int
	}{
		{"4", intPtr(4)},
		{"7.0", intPtr(7)},
		{"0", nil},
		{"-3", nil},
		{"four", nil},
		{"", nil},
	}
	for _, tc := range cases {
		got := ParseFinishTurn(tc.in)
		switch {
		case tc.want == nil && got != nil:
			t.Errorf("ParseFinishTurn(%q): got %d, want nil", tc.in, *got)
		case tc.want != nil && (got == nil || *got != *tc.want):
			t.Errorf("ParseFinishTurn(%q): got %v, want %d", tc.in, got, *tc.want)
		}
	}
}

func intPtr(n int) *int {
	return &n
}
