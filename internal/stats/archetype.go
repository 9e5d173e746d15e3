package stats

import (
	"sort"

	"github.com/ymatsuda/deck-ledger/internal/storage/models"
)

// Archetypes returns every distinct deck archetype appearing on either side
// of the table, sorted lexicographically. Absent (empty) names are skipped.
func Archetypes(records []*models.MatchRecord) []string {
	seen := make(map[string]bool)
	for _, rec := range records {
		if rec.MyDeck != "" {
			seen[rec.MyDeck] = true
		}
		if rec.OpponentDeck != "" {
			seen[rec.OpponentDeck] = true
		}
	}
	return sortedKeys(seen)
}

// TypesForArchetype returns the distinct type labels seen for an archetype,
// drawn from whichever side of each row the archetype appears on. Sorted
// lexicographically; absent types are skipped.
func TypesForArchetype(records []*models.MatchRecord, archetype string) []string {
	seen := make(map[string]bool)
	for _, rec := range records {
		if rec.MyDeck == archetype && rec.MyDeckType != "" {
			seen[rec.MyDeckType] = true
		}
		if rec.OpponentDeck == archetype && rec.OpponentDeckType != "" {
			seen[rec.OpponentDeckType] = true
		}
	}
	return sortedKeys(seen)
}

// TypesForArchetypeInSeason is TypesForArchetype scoped to one season. Used
// to suggest type labels during data entry, where builds from other seasons
// would be noise.
func TypesForArchetypeInSeason(records []*models.MatchRecord, season, archetype string) []string {
	filtered := ApplyFilter(records, models.RecordFilter{Season: &season})
	return TypesForArchetype(filtered, archetype)
}

// Seasons returns the distinct seasons in the table, sorted.
func Seasons(records []*models.MatchRecord) []string {
	seen := make(map[string]bool)
	for _, rec := range records {
		if rec.Season != "" {
			seen[rec.Season] = true
		}
	}
	return sortedKeys(seen)
}

// Environments returns the distinct environments in the table, sorted.
func Environments(records []*models.MatchRecord) []string {
	seen := make(map[string]bool)
	for _, rec := range records {
		if rec.Environment != "" {
			seen[rec.Environment] = true
		}
	}
	return sortedKeys(seen)
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
