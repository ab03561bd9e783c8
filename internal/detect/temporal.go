// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package detect

import (
	"math/rand"
	"sort"

	"github.com/pdiddy/citegraph/internal/index"
	"github.com/pdiddy/citegraph/pkg/types"
)

const (
	// temporalStrength is the fixed weight of a same-era edge.
	temporalStrength = 0.3

	// temporalWindow is the maximum year gap for a temporal edge.
	temporalWindow = 1
)

// Temporal emits an edge for a random subset of sampled paper pairs
// published within temporalWindow years of each other. Papers without a
// known year are skipped. The signal is the weakest of all detectors,
// so it is both subsampled and capped per source paper.
type Temporal struct {
	keepRate float64
	perPaper int
	rng      *rand.Rand
}

// NewTemporal returns the publication-era detector. keepRate is the
// probability a detected pair is emitted; perPaper caps emitted edges
// per source paper.
func NewTemporal(keepRate float64, perPaper int, rng *rand.Rand) *Temporal {
	return &Temporal{keepRate: keepRate, perPaper: perPaper, rng: rng}
}

func (*Temporal) Name() string { return "temporal" }

func (t *Temporal) Detect(papers []types.PaperRecord, _ *index.Index) ([]types.Relationship, error) {
	byYear := make(map[int][]int)
	for i, p := range papers {
		if p.Year == 0 {
			continue
		}
		byYear[p.Year] = append(byYear[p.Year], i)
	}

	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)

	var edges []types.Relationship
	perSource := make(map[string]int)

	emit := func(a, b int) {
		source := papers[a].ID
		if perSource[source] >= t.perPaper {
			return
		}
		if t.rng.Float64() >= t.keepRate {
			return
		}
		perSource[source]++
		edges = append(edges, types.Relationship{
			SourceID: source,
			TargetID: papers[b].ID,
			Type:     types.RelationTemporal,
			Strength: temporalStrength,
			Note:     "published " + yearLabel(papers[a].Year) + "/" + yearLabel(papers[b].Year),
		})
	}

	for _, y := range years {
		bucket := byYear[y]
		for i := 0; i < len(bucket); i++ {
			for j := i + 1; j < len(bucket); j++ {
				emit(bucket[i], bucket[j])
			}
			// Adjacent-year pairs, forward only so each pair is
			// considered once.
			for _, other := range byYear[y+1] {
				emit(bucket[i], other)
			}
		}
	}
	return edges, nil
}
