package stats

import (
	"github.com/ymatsuda/deck-ledger/internal/storage/models"
)

// Overview computes the overall performance of an archetype over the given
// table. deckType narrows the focus to one build; nil aggregates all types.
//
// A match is one row but contributes to both archetypes' counts: the
// archetype's wins are rows it won as the recording side plus rows the
// recording side lost against it. An archetype with no appearances yields
// zero counts and a 0.0 win rate, never an error.
func Overview(records []*models.MatchRecord, archetype string, deckType *string) *models.ArchetypeOverview {
	ov := &models.ArchetypeOverview{
		Archetype: archetype,
		DeckType:  deckType,
	}

	var winTurns []int
	for _, g := range gamesFor(records, archetype, deckType) {
		ov.Appearances++
		if g.wentFirst() {
			ov.FirstGames++
		} else {
			ov.SecondGames++
		}
		if g.won() {
			ov.Wins++
			if g.wentFirst() {
				ov.FirstWins++
			} else {
				ov.SecondWins++
			}
			if g.rec.FinishTurn != nil {
				winTurns = append(winTurns, *g.rec.FinishTurn)
			}
		}
	}

	ov.Losses = ov.Appearances - ov.Wins
	if rate := percent(ov.Wins, ov.Appearances); rate != nil {
		ov.WinRate = *rate
	}
	ov.WinRateFirst = percent(ov.FirstWins, ov.FirstGames)
	ov.WinRateSecond = percent(ov.SecondWins, ov.SecondGames)
	ov.AvgWinFinishTurn = mean(winTurns)

	return ov
}
