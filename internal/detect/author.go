// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package detect

import (
	"sort"
	"strings"

	"github.com/pdiddy/citegraph/internal/index"
	"github.com/pdiddy/citegraph/pkg/types"
)

// Each shared author contributes authorStrengthStep to the edge weight,
// capped at authorStrengthCap.
const (
	authorStrengthStep = 0.3
	authorStrengthCap  = 0.9
)

// Author emits an edge for every pair of sampled papers sharing at
// least one author. Volume is bounded naturally by author-index bucket
// size, so no subsampling is applied.
type Author struct{}

// NewAuthor returns the shared-author detector.
func NewAuthor() Author { return Author{} }

func (Author) Name() string { return "author" }

func (Author) Detect(papers []types.PaperRecord, idx *index.Index) ([]types.Relationship, error) {
	var edges []types.Relationship
	seen := make(map[string]bool)

	for _, bucket := range idx.Authors {
		for i := 0; i < len(bucket); i++ {
			for j := i + 1; j < len(bucket); j++ {
				a, b := papers[bucket[i]], papers[bucket[j]]
				key := pairKey(a.ID, b.ID)
				if seen[key] {
					continue
				}
				seen[key] = true

				shared := sharedAuthors(a.Authors, b.Authors)
				edges = append(edges, types.Relationship{
					SourceID: a.ID,
					TargetID: b.ID,
					Type:     types.RelationAuthor,
					Strength: clamp(float64(len(shared))*authorStrengthStep, authorStrengthCap),
					Note:     "shared authors: " + strings.Join(shared, ", "),
				})
			}
		}
	}
	return edges, nil
}

// sharedAuthors returns the normalized author names common to both
// lists, sorted for stable output.
func sharedAuthors(a, b []string) []string {
	inA := make(map[string]bool, len(a))
	for _, name := range a {
		if n := index.NormalizeName(name); n != "" {
			inA[n] = true
		}
	}

	var shared []string
	seen := make(map[string]bool)
	for _, name := range b {
		n := index.NormalizeName(name)
		if inA[n] && !seen[n] {
			seen[n] = true
			shared = append(shared, n)
		}
	}
	sort.Strings(shared)
	return shared
}
