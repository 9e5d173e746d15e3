package stats

import (
	"sort"

	"github.com/ymatsuda/deck-ledger/internal/storage/models"
)

// matchupAcc accumulates one matchup's counters as games stream past. The
// same accumulator backs both the type-specific rows and the type-agnostic
// aggregate, so the two layers cannot drift apart.
type matchupAcc struct {
	games       int
	gamesFirst  int
	wins        int
	firstWins   int
	secondGames int
	secondWins  int
	winTurns    []int
	lossTurns   []int
}

func (a *matchupAcc) add(g sideGame) {
	a.games++
	won := g.won()
	if won {
		a.wins++
	}
	if g.wentFirst() {
		a.gamesFirst++
		if won {
			a.firstWins++
		}
	} else {
		a.secondGames++
		if won {
			a.secondWins++
		}
	}
	if g.rec.FinishTurn != nil {
		if won {
			a.winTurns = append(a.winTurns, *g.rec.FinishTurn)
		} else {
			a.lossTurns = append(a.lossTurns, *g.rec.FinishTurn)
		}
	}
}

func (a *matchupAcc) row(opponent string, opponentType *string) *models.MatchupRow {
	row := &models.MatchupRow{
		OpponentDeck:      opponent,
		OpponentType:      opponentType,
		Games:             a.games,
		GamesFirst:        a.gamesFirst,
		Wins:              a.wins,
		AvgWinFinishTurn:  mean(a.winTurns),
		AvgLossFinishTurn: mean(a.lossTurns),
		WinRateFirst:      percent(a.firstWins, a.gamesFirst),
		WinRateSecond:     percent(a.secondWins, a.secondGames),
	}
	if rate := percent(a.wins, a.games); rate != nil {
		row.WinRate = *rate
	}
	return row
}

type typedOpponent struct {
	deck     string
	deckType string
}

// Matchups computes the focus archetype's record against every opponent it
// has faced, from both sides of the table. Two layers are returned in one
// slice: a row per (opponent, type) pair, plus a type-agnostic aggregate per
// opponent (OpponentType nil). Games against an opponent with an absent type
// label count only toward the aggregate. Rows are sorted by opponent name
// with the aggregate first within each group, then types lexicographically.
//
// Win/loss and first/second are always relative to the focus deck's seating:
// when the focus deck is the recorded opponent, a stored loss is a focus win
// and a stored second is a focus first. Mirror matches and rows with an
// absent opponent name are excluded here even though they count toward the
// overall appearance totals in Overview.
func Matchups(records []*models.MatchRecord, archetype string, deckType *string) []*models.MatchupRow {
	byType := make(map[typedOpponent]*matchupAcc)
	byDeck := make(map[string]*matchupAcc)

	for _, g := range gamesFor(records, archetype, deckType) {
		opp := g.opponentDeck()
		if opp == "" || opp == archetype {
			continue
		}

		// Games against an untyped opponent have no per-build row to
		// live in; they still count toward the aggregate.
		if typ := g.opponentType(); typ != "" {
			key := typedOpponent{deck: opp, deckType: typ}
			if byType[key] == nil {
				byType[key] = &matchupAcc{}
			}
			byType[key].add(g)
		}

		if byDeck[opp] == nil {
			byDeck[opp] = &matchupAcc{}
		}
		byDeck[opp].add(g)
	}

	rows := make([]*models.MatchupRow, 0, len(byType)+len(byDeck))
	for key, acc := range byType {
		t := key.deckType
		rows = append(rows, acc.row(key.deck, &t))
	}
	for deck, acc := range byDeck {
		rows = append(rows, acc.row(deck, nil))
	}

	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.OpponentDeck != b.OpponentDeck {
			return a.OpponentDeck < b.OpponentDeck
		}
		// The all-types aggregate leads its group.
		if (a.OpponentType == nil) != (b.OpponentType == nil) {
			return a.OpponentType == nil
		}
		if a.OpponentType == nil {
			return false
		}
		return *a.OpponentType < *b.OpponentType
	})

	return rows
}
