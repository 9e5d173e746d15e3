package main

import (
	"fmt"

	"github.com/ymatsuda/deck-ledger/internal/display"
	"github.com/ymatsuda/deck-ledger/internal/storage/models"
)

// displaySummary prints the cross-archetype summary, best average matchup
// win rate first.
func displaySummary(summaries []*models.ArchetypeSummary, season string) {
	title := "Archetype Summary"
	if season != "" {
		title = fmt.Sprintf("Archetype Summary - %s", season)
	}
	fmt.Printf("\n%s\n", title)
	fmt.Println("=================")
	fmt.Println()

	if len(summaries) == 0 {
		fmt.Println("No records yet.")
		return
	}

	fmt.Printf("%-24s %-16s %-9s %-12s %-9s %-9s %s\n",
		"Archetype", "Games", "W-L", "Win Rate", "First", "Second", "Avg Matchup")
	fmt.Println(display.Rule(96))

	for _, s := range summaries {
		fmt.Printf("%-24s %-16s %-9s %-12s %-9s %-9s %s\n",
			display.Truncate(s.Archetype, 24),
			display.Games(s.Appearances, s.FirstGames),
			fmt.Sprintf("%d-%d", s.Wins, s.Losses),
			display.PercentValue(s.WinRate),
			display.Percent(s.WinRateFirst),
			display.Percent(s.WinRateSecond),
			display.Percent(s.AvgMatchupWinRate))
	}
}
