package stats

import (
	"time"

	"github.com/ymatsuda/deck-ledger/internal/storage/models"
)

// rec builds a minimal record for aggregation tests. Result and seating are
// from the recording (myDeck) side, as stored.
func rec(myDeck, myType, oppDeck, oppType string, result models.Result, seat models.Initiative) *models.MatchRecord {
	return &models.MatchRecord{
		Season:           "2025-spring",
		Environment:      "casual",
		MyDeck:           myDeck,
		MyDeckType:       myType,
		OpponentDeck:     oppDeck,
		OpponentDeckType: oppType,
		FirstSecond:      seat,
		Result:           result,
	}
}

func withTurn(r *models.MatchRecord, turn int) *models.MatchRecord {
	r.FinishTurn = &turn
	return r
}

func withSeason(r *models.MatchRecord, season string) *models.MatchRecord {
	r.Season = season
	return r
}

func withEnv(r *models.MatchRecord, env string) *models.MatchRecord {
	r.Environment = env
	return r
}

func withMemo(r *models.MatchRecord, memo string) *models.MatchRecord {
	r.Memo = memo
	return r
}

func withDate(r *models.MatchRecord, date string) *models.MatchRecord {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	r.Date = &t
	return r
}

// swapped returns the table rewritten from the other side's perspective:
// decks exchanged, result and seating flipped. Aggregates must not change
// under this rewrite.
func swapped(records []*models.MatchRecord) []*models.MatchRecord {
	out := make([]*models.MatchRecord, 0, len(records))
	for _, r := range records {
		s := *r
		s.MyDeck, s.OpponentDeck = r.OpponentDeck, r.MyDeck
		s.MyDeckType, s.OpponentDeckType = r.OpponentDeckType, r.MyDeckType
		s.Result = r.Result.Opposite()
		s.FirstSecond = r.FirstSecond.Flipped()
		out = append(out, &s)
	}
	return out
}

func strPtr(s string) *string {
	return &s
}
