// Package models defines the match record and derived statistic types.
package models

import (
	"fmt"
	"strings"
	"time"
)

// Result is the outcome of a match, recorded from the perspective of the
// player who entered it (the "my deck" side).
type Result string

const (
	// ResultWin means the recording side won.
	ResultWin Result = "win"
	// ResultLoss means the recording side lost.
	ResultLoss Result = "loss"
)

// Valid reports whether r is one of the two defined outcomes.
func (r Result) Valid() bool {
	switch r {
	case ResultWin, ResultLoss:
		return true
	}
	return false
}

// Opposite returns the outcome as seen from the other side of the table.
func (r Result) Opposite() Result {
	switch r {
	case ResultWin:
		return ResultLoss
	case ResultLoss:
		return ResultWin
	}
	return r
}

// Initiative records which turn order the recording side took.
type Initiative string

const (
	// WentFirst means the recording side took the first turn.
	WentFirst Initiative = "first"
	// WentSecond means the recording side took the second turn.
	WentSecond Initiative = "second"
)

// Valid reports whether i is one of the two defined seatings.
func (i Initiative) Valid() bool {
	switch i {
	case WentFirst, WentSecond:
		return true
	}
	return false
}

// Flipped returns the seating as seen from the other side of the table.
func (i Initiative) Flipped() Initiative {
	switch i {
	case WentFirst:
		return WentSecond
	case WentSecond:
		return WentFirst
	}
	return i
}

// Columns is the canonical column order of the record table. Storage,
// normalization and export all share it so that tables written by one
// component round-trip through the others.
var Columns = []string{
	"season",
	"date",
	"environment",
	"my_deck",
	"my_deck_type",
	"opponent_deck",
	"opponent_deck_type",
	"first_second",
	"result",
	"finish_turn",
	"memo",
}

// MatchRecord is one played game, the unit of storage.
//
// MyDeck and OpponentDeck are labels for "the recording side" and "the other
// side" only; archetype-level aggregation treats both sides symmetrically.
type MatchRecord struct {
	ID               int
	Season           string
	Date             *time.Time // Nullable
	Environment      string
	MyDeck           string
	MyDeckType       string
	OpponentDeck     string
	OpponentDeckType string
	FirstSecond      Initiative
	Result           Result
	FinishTurn       *int // Nullable, turn the game ended on (>= 1)
	Memo             string
	CreatedAt        time.Time
}

// Validate checks that a record is complete enough to persist.
// Called before Append so that a rejected record never partially writes.
func (r *MatchRecord) Validate() error {
	var missing []string
	if strings.TrimSpace(r.Season) == "" {
		missing = append(missing, "season")
	}
	if strings.TrimSpace(r.Environment) == "" {
		missing = append(missing, "environment")
	}
	if strings.TrimSpace(r.MyDeck) == "" {
		missing = append(missing, "my_deck")
	}
	if strings.TrimSpace(r.MyDeckType) == "" {
		missing = append(missing, "my_deck_type")
	}
	if strings.TrimSpace(r.OpponentDeck) == "" {
		missing = append(missing, "opponent_deck")
	}
	if strings.TrimSpace(r.OpponentDeckType) == "" {
		missing = append(missing, "opponent_deck_type")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}

	if !r.Result.Valid() {
		return fmt.Errorf("invalid result %q (must be %q or %q)", r.Result, ResultWin, ResultLoss)
	}
	if !r.FirstSecond.Valid() {
		return fmt.Errorf("invalid first/second %q (must be %q or %q)", r.FirstSecond, WentFirst, WentSecond)
	}
	if r.FinishTurn != nil && *r.FinishTurn < 1 {
		return fmt.Errorf("finish turn must be >= 1, got %d", *r.FinishTurn)
	}

	return nil
}

// RecordFilter narrows a table before aggregation.
// A zero filter keeps every row.
type RecordFilter struct {
	Season       *string  // Exact season match, nil means all seasons
	Environments []string // Keep rows whose environment is in the set; empty means all
}

// ArchetypeOverview is the overall performance of one archetype, computed
// symmetrically over both sides of the table.
type ArchetypeOverview struct {
	Archetype string
	DeckType  *string // Nil means all types of the archetype

	Appearances int
	Wins        int
	Losses      int
	WinRate     float64 // Percent; 0 when Appearances is 0

	FirstGames    int
	FirstWins     int
	WinRateFirst  *float64 // Percent; nil when the archetype never went first
	SecondGames   int
	SecondWins    int
	WinRateSecond *float64 // Percent; nil when the archetype never went second

	AvgWinFinishTurn *float64 // Nil when no winning row carries a finish turn
}

// MatchupRow is the focus archetype's record against one opponent.
// OpponentType nil marks the type-agnostic aggregate over every build of
// that opponent.
type MatchupRow struct {
	OpponentDeck string
	OpponentType *string

	Games      int
	GamesFirst int // Games where the focus side held the first turn (display only)
	Wins       int
	WinRate    float64 // Percent

	AvgWinFinishTurn  *float64
	AvgLossFinishTurn *float64

	WinRateFirst  *float64 // Percent, relative to the focus deck's seating
	WinRateSecond *float64
}

// ArchetypeSummary is one row of the cross-archetype default view.
type ArchetypeSummary struct {
	Archetype string

	Appearances int
	FirstGames  int
	Wins        int
	Losses      int
	WinRate     float64 // Percent

	// AvgMatchupWinRate is the unweighted mean of the per-opponent
	// (type-agnostic) win rates. Nil when the archetype faced no opponent.
	AvgMatchupWinRate *float64

	WinRateFirst  *float64
	WinRateSecond *float64
}
