package main

import (
	"fmt"

	"github.com/ymatsuda/deck-ledger/internal/display"
	"github.com/ymatsuda/deck-ledger/internal/storage/models"
)

// displayOverview prints one archetype's overall performance.
func displayOverview(o *models.ArchetypeOverview) {
	name := o.Archetype
	if o.DeckType != nil {
		name = fmt.Sprintf("%s (%s)", o.Archetype, *o.DeckType)
	}
	fmt.Printf("\n%s\n", name)
	fmt.Println("====================")
	fmt.Println()

	if o.Appearances == 0 {
		fmt.Println("No games on record.")
		return
	}

	fmt.Printf("Games:           %s\n", display.Games(o.Appearances, o.FirstGames))
	fmt.Printf("Record:          %d-%d (%s)\n", o.Wins, o.Losses, display.PercentValue(o.WinRate))
	fmt.Printf("Going first:     %d games, %s\n", o.FirstGames, display.Percent(o.WinRateFirst))
	fmt.Printf("Going second:    %d games, %s\n", o.SecondGames, display.Percent(o.WinRateSecond))
	fmt.Printf("Avg win turn:    %s\n", display.Turn(o.AvgWinFinishTurn))
}

// displayMatchups prints the per-opponent matchup table. The first row of
// each opponent group covers every build of that opponent; the indented rows
// below it are per-build splits.
func displayMatchups(matchups []*models.MatchupRow) {
	fmt.Println("Matchups")
	fmt.Println("--------")
	fmt.Println()

	if len(matchups) == 0 {
		fmt.Println("No matchups on record.")
		return
	}

	fmt.Printf("%-32s %-14s %-9s %-9s %-9s %-9s %s\n",
		"Opponent", "Games", "Win Rate", "First", "Second", "Win T", "Loss T")
	fmt.Println(display.Rule(100))

	for _, m := range matchups {
		label := m.OpponentDeck
		if m.OpponentType != nil {
			label = fmt.Sprintf("  %s / %s", m.OpponentDeck, *m.OpponentType)
		}
		fmt.Printf("%-32s %-14s %-9s %-9s %-9s %-9s %s\n",
			display.Truncate(label, 32),
			display.Games(m.Games, m.GamesFirst),
			display.PercentValue(m.WinRate),
			display.Percent(m.WinRateFirst),
			display.Percent(m.WinRateSecond),
			display.Turn(m.AvgWinFinishTurn),
			display.Turn(m.AvgLossFinishTurn))
	}
}

// displayMemos prints the archetype's annotated games, newest first.
func displayMemos(records []*models.MatchRecord) {
	fmt.Println("Memos")
	fmt.Println("-----")
	fmt.Println()

	if len(records) == 0 {
		fmt.Println("No memos on record.")
		return
	}
	for _, rec := range records {
		fmt.Printf("%s  %s vs %s (%s, %s): %s\n",
			display.Date(rec.Date), rec.MyDeck, rec.OpponentDeck, rec.Result, rec.FirstSecond, rec.Memo)
	}
}
