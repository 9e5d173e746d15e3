// Package normalize coerces raw tabular rows into canonical match records.
//
// Raw rows come from spreadsheet-style sources (CSV exports of the legacy
// sheet this tool replaces) where every cell is text and columns may be
// missing, reordered, or carry junk values. Normalization never fails on a
// malformed cell: fields degrade to their absent value and processing
// continues. Only structural problems are reported, as warnings alongside a
// best-effort table.
package normalize

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ymatsuda/deck-ledger/internal/storage/models"
)

// Result is a normalized table plus any structural warnings produced while
// building it. Warnings never prevent the table from being returned.
type Result struct {
	Records  []*models.MatchRecord
	Warnings []string
}

// dateLayouts are tried in order when parsing a date cell.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01/02/2006",
	"2006.01.02",
}

// Table normalizes raw rows under the given header into canonical records.
//
// Cells are matched to canonical columns by header name; columns absent from
// the header are filled with absent values. A header sharing no column with
// the canonical set yields a warning and an empty table rather than an
// error, so a misconfigured source degrades instead of halting the caller.
// Rows whose result or first/second cell cannot be understood are dropped
// with a warning: those two fields have no absent representation once a
// record is typed.
func Table(header []string, rows [][]string) *Result {
	res := &Result{}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[cleanString(name)] = i
	}

	matched := 0
	for _, col := range models.Columns {
		if _, ok := index[col]; ok {
			matched++
		}
	}
	if matched == 0 {
		res.Warnings = append(res.Warnings,
			fmt.Sprintf("header %v contains none of the expected columns %v", header, models.Columns))
		return res
	}
	if matched < len(models.Columns) {
		res.Warnings = append(res.Warnings,
			fmt.Sprintf("header is missing %d of %d expected columns; absent values substituted",
				len(models.Columns)-matched, len(models.Columns)))
	}

	cell := func(row []string, col string) string {
		i, ok := index[col]
		if !ok || i >= len(row) {
			return ""
		}
		return cleanString(row[i])
	}

	for n, row := range rows {
		result, ok := ParseResult(cell(row, "result"))
		if !ok {
			res.Warnings = append(res.Warnings, fmt.Sprintf("row %d: unrecognized result %q, row skipped", n+1, cell(row, "result")))
			continue
		}
		seat, ok := ParseInitiative(cell(row, "first_second"))
		if !ok {
			res.Warnings = append(res.Warnings, fmt.Sprintf("row %d: unrecognized first/second %q, row skipped", n+1, cell(row, "first_second")))
			continue
		}

		res.Records = append(res.Records, &models.MatchRecord{
			Season:           cell(row, "season"),
			Date:             ParseDate(cell(row, "date")),
			Environment:      cell(row, "environment"),
			MyDeck:           cell(row, "my_deck"),
			MyDeckType:       cell(row, "my_deck_type"),
			OpponentDeck:     cell(row, "opponent_deck"),
			OpponentDeckType: cell(row, "opponent_deck_type"),
			FirstSecond:      seat,
			Result:           result,
			FinishTurn:       ParseFinishTurn(cell(row, "finish_turn")),
			Memo:             cell(row, "memo"),
		})
	}

	return res
}

// cleanString trims a raw cell and maps the textual absent forms ("" and
// "nan" in any case, a pandas export artifact) to the empty string.
func cleanString(s string) string {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "nan") {
		return ""
	}
	return s
}

// ParseDate parses a date cell permissively. Unparseable input yields nil,
// never an error.
func ParseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// ParseFinishTurn parses a finish-turn cell. Unparseable or sub-1 values
// yield nil. Trailing ".0" from spreadsheet number formatting is accepted.
func ParseFinishTurn(s string) *int {
	if s == "" {
		return nil
	}
	s = strings.TrimSuffix(s, ".0")
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return nil
	}
	return &n
}

// ParseResult understands the canonical enum values plus the legacy
// Japanese spreadsheet forms.
func ParseResult(s string) (models.Result, bool) {
	switch strings.ToLower(s) {
	case string(models.ResultWin), "勝ち":
		return models.ResultWin, true
	case string(models.ResultLoss), "負け":
		return models.ResultLoss, true
	}
	return "", false
}

// ParseInitiative understands the canonical enum values plus the legacy
// Japanese spreadsheet forms.
func ParseInitiative(s string) (models.Initiative, bool) {
	switch strings.ToLower(s) {
	case string(models.WentFirst), "先攻":
		return models.WentFirst, true
	case string(models.WentSecond), "後攻":
		return models.WentSecond, true
	}
	return "", false
}
