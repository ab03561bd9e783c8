package rank

import (
	"fmt"
	"testing"

	"github.com/pdiddy/citegraph/pkg/types"
)

func TestDedupKeepsFirstSeen(t *testing.T) {
	edges := []types.Relationship{
		{SourceID: "a", TargetID: "b", Type: types.RelationAuthor, Strength: 0.3},
		{SourceID: "b", TargetID: "a", Type: types.RelationAuthor, Strength: 0.9},
	}
	got := Dedup(edges)
	if len(got) != 1 {
		t.Fatalf("got %d edges, want 1", len(got))
	}
	// First occurrence wins even when the duplicate is stronger.
	if got[0].Strength != 0.3 {
		t.Errorf("kept strength %f, want 0.3", got[0].Strength)
	}
}

func TestDedupTypesSurviveIndependently(t *testing.T) {
	edges := []types.Relationship{
		{SourceID: "a", TargetID: "b", Type: types.RelationAuthor, Strength: 0.3},
		{SourceID: "a", TargetID: "b", Type: types.RelationVenue, Strength: 0.4},
		{SourceID: "b", TargetID: "a", Type: types.RelationVenue, Strength: 0.4},
	}
	got := Dedup(edges)
	if len(got) != 2 {
		t.Fatalf("got %d edges, want 2 (one per type)", len(got))
	}
}

func TestRankOrdersByTypeWeightTimesStrength(t *testing.T) {
	edges := []types.Relationship{
		{SourceID: "a", TargetID: "b", Type: types.RelationTemporal, Strength: 0.3}, // 0.3
		{SourceID: "c", TargetID: "d", Type: types.RelationCitation, Strength: 0.9}, // 4.5
		{SourceID: "e", TargetID: "f", Type: types.RelationAuthor, Strength: 0.6},   // 2.4
		{SourceID: "g", TargetID: "h", Type: types.RelationVenue, Strength: 0.4},    // 0.8
	}
	got := Rank(edges, 0)

	wantOrder := []types.RelationType{
		types.RelationCitation,
		types.RelationAuthor,
		types.RelationVenue,
		types.RelationTemporal,
	}
	for i, typ := range wantOrder {
		if got[i].Type != typ {
			t.Errorf("position %d = %s, want %s", i, got[i].Type, typ)
		}
	}
}

func TestRankTruncatesToBudget(t *testing.T) {
	var edges []types.Relationship
	for i := 0; i < 500; i++ {
		edges = append(edges, types.Relationship{
			SourceID: fmt.Sprintf("s%03d", i),
			TargetID: fmt.Sprintf("t%03d", i),
			Type:     types.RelationVenue,
			Strength: 0.4,
		})
	}
	got := Rank(edges, 200)
	if len(got) != 200 {
		t.Errorf("got %d edges, want 200", len(got))
	}
}

func TestRankDeterministicOnTies(t *testing.T) {
	edges := []types.Relationship{
		{SourceID: "z", TargetID: "y", Type: types.RelationVenue, Strength: 0.4},
		{SourceID: "a", TargetID: "b", Type: types.RelationVenue, Strength: 0.4},
		{SourceID: "a", TargetID: "a2", Type: types.RelationVenue, Strength: 0.4},
	}
	first := Rank(edges, 0)
	// Reversed input must rank identically.
	reversed := []types.Relationship{edges[2], edges[1], edges[0]}
	second := Rank(reversed, 0)

	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("position %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
	if first[0].SourceID != "a" || first[0].TargetID != "a2" {
		t.Errorf("tie break order wrong: first = %+v", first[0])
	}
}

func TestRankDoesNotMutateInput(t *testing.T) {
	edges := []types.Relationship{
		{SourceID: "a", TargetID: "b", Type: types.RelationTemporal, Strength: 0.3},
		{SourceID: "c", TargetID: "d", Type: types.RelationCitation, Strength: 0.9},
	}
	Rank(edges, 0)
	if edges[0].Type != types.RelationTemporal {
		t.Error("Rank reordered its input slice")
	}
}
