// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package detect

import (
	"fmt"

	"github.com/pdiddy/citegraph/internal/index"
	"github.com/pdiddy/citegraph/pkg/types"
)

// Each overlapping keyword contributes contentStrengthStep to the edge
// weight, capped at contentStrengthCap.
const (
	contentStrengthStep = 0.1
	contentStrengthCap  = 0.8
)

// Content emits an edge for sampled paper pairs whose extracted keyword
// sets overlap by at least overlapMin tokens. Candidate pairs come from
// the keyword index, so papers with no vocabulary in common are never
// compared.
type Content struct {
	overlapMin int
}

// NewContent returns the keyword-overlap detector.
func NewContent(overlapMin int) *Content {
	return &Content{overlapMin: overlapMin}
}

func (*Content) Name() string { return "content" }

func (c *Content) Detect(papers []types.PaperRecord, idx *index.Index) ([]types.Relationship, error) {
	var edges []types.Relationship
	seen := make(map[string]bool)

	for _, bucket := range idx.Keywords {
		for i := 0; i < len(bucket); i++ {
			for j := i + 1; j < len(bucket); j++ {
				a, b := bucket[i], bucket[j]
				key := pairKey(papers[a].ID, papers[b].ID)
				if seen[key] {
					continue
				}
				seen[key] = true

				overlap := keywordOverlap(idx.PaperKeywords[a], idx.PaperKeywords[b])
				if overlap < c.overlapMin {
					continue
				}
				edges = append(edges, types.Relationship{
					SourceID: papers[a].ID,
					TargetID: papers[b].ID,
					Type:     types.RelationContent,
					Strength: clamp(float64(overlap)*contentStrengthStep, contentStrengthCap),
					Note:     fmt.Sprintf("%d shared keywords", overlap),
				})
			}
		}
	}
	return edges, nil
}

func keywordOverlap(a, b map[string]bool) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	n := 0
	for kw := range a {
		if b[kw] {
			n++
		}
	}
	return n
}
