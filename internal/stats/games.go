// Package stats computes win-rate statistics from a table of match records.
//
// Every function here is a pure query over a slice of records: same table
// and parameters, same output. Nothing mutates its input and nothing reads
// state outside its arguments, so callers may run queries concurrently on
// independently loaded snapshots.
package stats

import (
	"github.com/ymatsuda/deck-ledger/internal/storage/models"
)

// sideGame is one match record viewed from a focus archetype's side of the
// table. Results and seating are stored from the recording player's
// perspective, so when the focus deck sits on the opponent side both must be
// flipped. Collapsing the flip into one type keeps every aggregation on a
// single computation path.
type sideGame struct {
	rec  *models.MatchRecord
	mine bool // focus archetype was the recording side
}

// won reports whether the focus side won this game.
func (g sideGame) won() bool {
	if g.mine {
		return g.rec.Result == models.ResultWin
	}
	return g.rec.Result == models.ResultLoss
}

// wentFirst reports whether the focus side took the first turn.
func (g sideGame) wentFirst() bool {
	if g.mine {
		return g.rec.FirstSecond == models.WentFirst
	}
	return g.rec.FirstSecond == models.WentSecond
}

// opponentDeck returns the deck the focus side faced.
func (g sideGame) opponentDeck() string {
	if g.mine {
		return g.rec.OpponentDeck
	}
	return g.rec.MyDeck
}

// opponentType returns the type label of the deck the focus side faced.
func (g sideGame) opponentType() string {
	if g.mine {
		return g.rec.OpponentDeckType
	}
	return g.rec.MyDeckType
}

// gamesFor collects every appearance of the archetype, from both sides of
// the table. A mirror match (same archetype on both sides) contributes two
// appearances, one per side, matching how overall counts are defined.
// deckType narrows to one build of the archetype; nil means all types.
func gamesFor(records []*models.MatchRecord, archetype string, deckType *string) []sideGame {
	var games []sideGame
	for _, rec := range records {
		if rec.MyDeck == archetype && (deckType == nil || rec.MyDeckType == *deckType) {
			games = append(games, sideGame{rec: rec, mine: true})
		}
		if rec.OpponentDeck == archetype && (deckType == nil || rec.OpponentDeckType == *deckType) {
			games = append(games, sideGame{rec: rec, mine: false})
		}
	}
	return games
}

// percent returns wins/games as a percentage, or nil when no games were
// played. Empty subsets are a normal outcome of filtering and must stay
// representable without special cases at call sites.
func percent(wins, games int) *float64 {
	if games == 0 {
		return nil
	}
	rate := float64(wins) / float64(games) * 100
	return &rate
}

// mean returns the arithmetic mean of values, or nil for an empty slice.
func mean(values []int) *float64 {
	if len(values) == 0 {
		return nil
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	avg := float64(sum) / float64(len(values))
	return &avg
}

// meanFloat returns the arithmetic mean of values, or nil for an empty slice.
func meanFloat(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	avg := sum / float64(len(values))
	return &avg
}
