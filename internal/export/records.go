package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/ymatsuda/deck-ledger/internal/normalize"
	"github.com/ymatsuda/deck-ledger/internal/storage/models"
)

// recordRow mirrors a MatchRecord for JSON export.
type recordRow struct {
	Season           string  `json:"season"`
	Date             *string `json:"date"`
	Environment      string  `json:"environment"`
	MyDeck           string  `json:"my_deck"`
	MyDeckType       string  `json:"my_deck_type"`
	OpponentDeck     string  `json:"opponent_deck"`
	OpponentDeckType string  `json:"opponent_deck_type"`
	FirstSecond      string  `json:"first_second"`
	Result           string  `json:"result"`
	FinishTurn       *int    `json:"finish_turn"`
	Memo             string  `json:"memo"`
}

func toRecordRow(rec *models.MatchRecord) recordRow {
	row := recordRow{
		Season:           rec.Season,
		Environment:      rec.Environment,
		MyDeck:           rec.MyDeck,
		MyDeckType:       rec.MyDeckType,
		OpponentDeck:     rec.OpponentDeck,
		OpponentDeckType: rec.OpponentDeckType,
		FirstSecond:      string(rec.FirstSecond),
		Result:           string(rec.Result),
		FinishTurn:       rec.FinishTurn,
		Memo:             rec.Memo,
	}
	if rec.Date != nil {
		d := rec.Date.Format("2006-01-02")
		row.Date = &d
	}
	return row
}

// recordCells renders a record in the canonical column order. The header and
// cells are written explicitly rather than through struct reflection: the
// column order is the contract a written table round-trips under.
func recordCells(rec *models.MatchRecord) []string {
	date := ""
	if rec.Date != nil {
		date = rec.Date.Format("2006-01-02")
	}
	finishTurn := ""
	if rec.FinishTurn != nil {
		finishTurn = strconv.Itoa(*rec.FinishTurn)
	}
	return []string{
		rec.Season,
		date,
		rec.Environment,
		rec.MyDeck,
		rec.MyDeckType,
		rec.OpponentDeck,
		rec.OpponentDeckType,
		string(rec.FirstSecond),
		string(rec.Result),
		finishTurn,
		rec.Memo,
	}
}

// WriteRecordsCSV writes records under the canonical header.
func WriteRecordsCSV(w io.Writer, records []*models.MatchRecord) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write(models.Columns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for i, rec := range records {
		if err := writer.Write(recordCells(rec)); err != nil {
			return fmt.Errorf("failed to write CSV row %d: %w", i, err)
		}
	}
	return nil
}

// ExportRecords writes the record table to the configured file.
func ExportRecords(records []*models.MatchRecord, opts Options) (err error) {
	switch opts.Format {
	case FormatCSV:
		e := NewExporter(opts)
		file, fileErr := e.createFile()
		if fileErr != nil {
			return fileErr
		}
		defer func() {
			if closeErr := file.Close(); closeErr != nil && err == nil {
				err = closeErr
			}
		}()
		return WriteRecordsCSV(file, records)
	case FormatJSON:
		rows := make([]recordRow, 0, len(records))
		for _, rec := range records {
			rows = append(rows, toRecordRow(rec))
		}
		return NewExporter(opts).Export(rows)
	default:
		return fmt.Errorf("unsupported format: %s", opts.Format)
	}
}

// ReadRecordsCSV reads a CSV file and normalizes its rows into records.
// Malformed cells degrade rather than fail; structural problems come back
// as warnings on the result.
func ReadRecordsCSV(path string) (*normalize.Result, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer func() { _ = file.Close() }()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // tolerate ragged rows

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("CSV file is empty")
	}

	return normalize.Table(rows[0], rows[1:]), nil
}
