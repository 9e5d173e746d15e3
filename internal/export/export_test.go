package export

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/ymatsuda/deck-ledger/internal/storage/models"
)

func sampleRecord() *models.MatchRecord {
	date := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	turn := 6
	return &models.MatchRecord{
		Season:           "2025-spring",
		Date:             &date,
		Environment:      "store",
		MyDeck:           "Zoo",
		MyDeckType:       "burn",
		OpponentDeck:     "Control",
		OpponentDeckType: "draw-go",
		FirstSecond:      models.WentFirst,
		Result:           models.ResultWin,
		FinishTurn:       &turn,
		Memo:             "good draw",
	}
}

func TestWriteRecordsCSV_CanonicalHeader(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteRecordsCSV(&buf, []*models.MatchRecord{sampleRecord()}); err != nil {
		t.Fatalf("failed to write CSV: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if got, want := lines[0], strings.Join(models.Columns, ","); got != want {
		t.Errorf("header: got %q, want %q", got, want)
	}
	if lines[1] != "2025-spring,2025-03-14,store,Zoo,burn,Control,draw-go,first,win,6,good draw" {
		t.Errorf("row: got %q", lines[1])
	}
}

func TestWriteRecordsCSV_AbsentValuesAsEmptyCells(t *testing.T) {
	rec := sampleRecord()
	rec.Date = nil
	rec.FinishTurn = nil
	rec.Memo = ""

	var buf bytes.Buffer
	if err := WriteRecordsCSV(&buf, []*models.MatchRecord{rec}); err != nil {
		t.Fatalf("failed to write CSV: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if lines[1] != "2025-spring,,store,Zoo,burn,Control,draw-go,first,win,," {
		t.Errorf("row: got %q", lines[1])
	}
}

func TestRecordsCSV_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "records.csv")

	orig := sampleRecord()
	opts := Options{Format: FormatCSV, FilePath: path, Overwrite: true}
	if err := ExportRecords([]*models.MatchRecord{orig}, opts); err != nil {
		t.Fatalf("failed to export records: %v", err)
	}

	res, err := ReadRecordsCSV(path)
	if err != nil {
		t.Fatalf("failed to read records: %v", err)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", res.Warnings)
	}
	if len(res.Records) != 1 {
		t.Fatalf("got %d records, want 1", len(res.Records))
	}

	got := res.Records[0]
	if got.Season != orig.Season || got.MyDeck != orig.MyDeck || got.Memo != orig.Memo {
		t.Errorf("string fields changed: %+v", got)
	}
	if got.Result != orig.Result || got.FirstSecond != orig.FirstSecond {
		t.Errorf("enums changed: %q / %q", got.Result, got.FirstSecond)
	}
	if got.FinishTurn == nil || *got.FinishTurn != *orig.FinishTurn {
		t.Errorf("finish turn changed: %v", got.FinishTurn)
	}
	if got.Date == nil || !got.Date.Equal(*orig.Date) {
		t.Errorf("date changed: %v", got.Date)
	}
}

func TestExportSummary_CSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "summary.csv")

	rate := 62.5
	summaries := []*models.ArchetypeSummary{
		{
			Archetype:         "Zoo",
			Appearances:       8,
			FirstGames:        5,
			Wins:              5,
			Losses:            3,
			WinRate:           62.5,
			AvgMatchupWinRate: &rate,
		},
		{Archetype: "Mill", Appearances: 2, Wins: 0, Losses: 2, WinRate: 0},
	}

	opts := Options{Format: FormatCSV, FilePath: path, Overwrite: true}
	if err := ExportSummary(summaries, opts); err != nil {
		t.Fatalf("failed to export summary: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read export: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	if !strings.HasPrefix(lines[0], "archetype,appearances,") {
		t.Errorf("header: got %q", lines[0])
	}
	if !strings.Contains(lines[1], "62.50") {
		t.Errorf("rates should print with two decimals: %q", lines[1])
	}
	// Mill never faced a distinct opponent: the average cell stays empty.
	if !strings.Contains(lines[2], "Mill,2,0,0,2,0.00,,") {
		t.Errorf("nil averages should export as empty cells: %q", lines[2])
	}
}

func TestExporter_RefusesOverwriteByDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")
	if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
		t.Fatalf("failed to seed file: %v", err)
	}

	err := NewExporter(Options{Format: FormatJSON, FilePath: path}).Export(map[string]int{"a": 1})
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Errorf("expected already-exists error, got %v", err)
	}
}

func TestExportToWriter_CSVTags(t *testing.T) {
	var buf bytes.Buffer
	rows := []MatchupExportRow{
		{Archetype: "Zoo", OpponentDeck: "Control", Games: 3, Wins: 2, WinRate: 66.7},
	}
	if err := ExportToWriter(&buf, FormatCSV, rows, false); err != nil {
		t.Fatalf("failed to export: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	wantHeader := []string{"archetype", "opponent_deck", "opponent_type", "games", "games_first",
		"wins", "win_rate", "win_rate_first", "win_rate_second", "avg_win_finish_turn", "avg_loss_finish_turn"}
	if got := strings.Split(lines[0], ","); !reflect.DeepEqual(got, wantHeader) {
		t.Errorf("header: got %v", got)
	}
}
