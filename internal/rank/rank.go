// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rank merges duplicate relationship candidates, scores them by
// type priority and strength, and truncates to the global edge budget.
package rank

import (
	"sort"

	"github.com/pdiddy/citegraph/pkg/types"
)

// typeWeights are the static ranking priorities. Citation outranks
// author, which outranks content, venue, and temporal.
var typeWeights = map[types.RelationType]float64{
	types.RelationCitation: 5,
	types.RelationAuthor:   4,
	types.RelationContent:  3,
	types.RelationVenue:    2,
	types.RelationTemporal: 1,
}

// Score returns the ranking score for one edge.
func Score(e types.Relationship) float64 {
	return typeWeights[e.Type] * e.Strength
}

// Dedup removes edges that repeat an already-seen unordered pair and
// type, keeping the first occurrence. Different types for the same pair
// survive independently.
func Dedup(edges []types.Relationship) []types.Relationship {
	seen := make(map[string]bool, len(edges))
	deduped := edges[:0:0]
	for _, e := range edges {
		key := dedupKey(e)
		if seen[key] {
			continue
		}
		seen[key] = true
		deduped = append(deduped, e)
	}
	return deduped
}

// Rank sorts edges by descending score and truncates to budget. Ties
// break on type weight and then the pair IDs, so equal inputs always
// produce identical output order.
func Rank(edges []types.Relationship, budget int) []types.Relationship {
	ranked := make([]types.Relationship, len(edges))
	copy(ranked, edges)

	sort.Slice(ranked, func(i, j int) bool {
		si, sj := Score(ranked[i]), Score(ranked[j])
		if si != sj {
			return si > sj
		}
		wi, wj := typeWeights[ranked[i].Type], typeWeights[ranked[j].Type]
		if wi != wj {
			return wi > wj
		}
		if ranked[i].SourceID != ranked[j].SourceID {
			return ranked[i].SourceID < ranked[j].SourceID
		}
		return ranked[i].TargetID < ranked[j].TargetID
	})

	if budget > 0 && len(ranked) > budget {
		ranked = ranked[:budget]
	}
	return ranked
}

func dedupKey(e types.Relationship) string {
	a, b := e.SourceID, e.TargetID
	if a > b {
		a, b = b, a
	}
	return a + "\x00" + b + "\x00" + string(e.Type)
}
