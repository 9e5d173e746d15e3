package main

import (
	"fmt"
	"strconv"

	"github.com/ymatsuda/deck-ledger/internal/display"
	"github.com/ymatsuda/deck-ledger/internal/storage/models"
)

// displayRecords prints stored records in insertion order.
func displayRecords(records []*models.MatchRecord) {
	fmt.Println("\nMatch Records")
	fmt.Println("=============")
	fmt.Println()

	if len(records) == 0 {
		fmt.Println("No records.")
		return
	}

	fmt.Printf("%-5s %-12s %-12s %-12s %-26s %-26s %-7s %-6s %-5s %s\n",
		"ID", "Date", "Season", "Env", "My Deck", "Opponent", "Seat", "Result", "Turn", "Memo")
	fmt.Println(display.Rule(130))

	for _, rec := range records {
		turn := "-"
		if rec.FinishTurn != nil {
			turn = strconv.Itoa(*rec.FinishTurn)
		}
		fmt.Printf("%-5d %-12s %-12s %-12s %-26s %-26s %-7s %-6s %-5s %s\n",
			rec.ID,
			display.Date(rec.Date),
			display.Truncate(rec.Season, 12),
			display.Truncate(rec.Environment, 12),
			display.Truncate(fmt.Sprintf("%s / %s", rec.MyDeck, rec.MyDeckType), 26),
			display.Truncate(fmt.Sprintf("%s / %s", rec.OpponentDeck, rec.OpponentDeckType), 26),
			rec.FirstSecond,
			rec.Result,
			turn,
			display.Truncate(rec.Memo, 30))
	}
	fmt.Printf("\n%d records\n", len(records))
}
