package stats

import (
	"reflect"
	"testing"

	"github.com/ymatsuda/deck-ledger/internal/storage/models"
)

func TestArchetypes_UnionOfBothSidesSorted(t *testing.T) {
	table := []*models.MatchRecord{
		rec("Zoo", "a", "Control", "b", models.ResultWin, models.WentFirst),
		rec("Control", "b", "Mill", "c", models.ResultLoss, models.WentFirst),
		rec("Zoo", "a", "", "", models.ResultWin, models.WentFirst),
	}

	got := Archetypes(table)
	want := []string{"Control", "Mill", "Zoo"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestArchetypes_EmptyTable(t *testing.T) {
	if got := Archetypes(nil); len(got) != 0 {
		t.Errorf("got %v, want empty", got)
	}
}

func TestTypesForArchetype_BothSides(t *testing.T) {
	table := []*models.MatchRecord{
		rec("X", "burn", "Y", "b", models.ResultWin, models.WentFirst),
		rec("Y", "b", "X", "midrange", models.ResultLoss, models.WentFirst),
		rec("X", "", "Y", "b", models.ResultWin, models.WentFirst), // absent type skipped
	}

	got := TypesForArchetype(table, "X")
	want := []string{"burn", "midrange"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestTypesForArchetypeInSeason(t *testing.T) {
	table := []*models.MatchRecord{
		withSeason(rec("X", "burn", "Y", "b", models.ResultWin, models.WentFirst), "s1"),
		withSeason(rec("X", "midrange", "Y", "b", models.ResultWin, models.WentFirst), "s2"),
	}

	got := TypesForArchetypeInSeason(table, "s1", "X")
	want := []string{"burn"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestSeasonsAndEnvironments(t *testing.T) {
	table := []*models.MatchRecord{
		withEnv(withSeason(rec("X", "a", "Y", "b", models.ResultWin, models.WentFirst), "s2"), "store"),
		withEnv(withSeason(rec("X", "a", "Y", "b", models.ResultWin, models.WentFirst), "s1"), "casual"),
	}

	if got, want := Seasons(table), []string{"s1", "s2"}; !reflect.DeepEqual(got, want) {
		t.Errorf("seasons: got %v, want %v", got, want)
	}
	if got, want := Environments(table), []string{"casual", "store"}; !reflect.DeepEqual(got, want) {
		t.Errorf("environments: got %v, want %v", got, want)
	}
}
