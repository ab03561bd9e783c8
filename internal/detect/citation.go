// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package detect

import (
	"github.com/pdiddy/citegraph/internal/index"
	"github.com/pdiddy/citegraph/pkg/types"
)

// citationStrength is the fixed weight of a direct citation link. The
// signal is authoritative, so every in-sample link is emitted and never
// subsampled.
const citationStrength = 0.9

// Citation emits an edge whenever one sampled paper cites another
// sampled paper, in either link direction.
type Citation struct{}

// NewCitation returns the citation-link detector.
func NewCitation() Citation { return Citation{} }

func (Citation) Name() string { return "citation" }

func (Citation) Detect(papers []types.PaperRecord, _ *index.Index) ([]types.Relationship, error) {
	inSample := make(map[string]bool, len(papers))
	for _, p := range papers {
		inSample[p.ID] = true
	}

	var edges []types.Relationship
	seen := make(map[string]bool)

	emit := func(source, target string) {
		if source == target || !inSample[target] {
			return
		}
		key := pairKey(source, target)
		if seen[key] {
			return
		}
		seen[key] = true
		edges = append(edges, types.Relationship{
			SourceID: source,
			TargetID: target,
			Type:     types.RelationCitation,
			Strength: citationStrength,
			Note:     "direct citation link",
		})
	}

	for _, p := range papers {
		for _, ref := range p.ReferenceIDs {
			emit(p.ID, ref)
		}
		for _, citer := range p.CitedByIDs {
			emit(p.ID, citer)
		}
	}
	return edges, nil
}
