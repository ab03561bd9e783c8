// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package detect

import (
	"math/rand"

	"github.com/pdiddy/citegraph/internal/index"
	"github.com/pdiddy/citegraph/pkg/types"
)

// venueStrength is the fixed weight of a shared-venue edge. The signal
// is weak and dense, so pairs are probabilistically subsampled.
const venueStrength = 0.4

// Venue emits an edge for a random subset of sampled paper pairs that
// share a normalized venue.
type Venue struct {
	keepRate float64
	rng      *rand.Rand
}

// NewVenue returns the shared-venue detector. keepRate is the
// probability a detected pair is emitted; rng makes subsampling
// reproducible under test.
func NewVenue(keepRate float64, rng *rand.Rand) *Venue {
	return &Venue{keepRate: keepRate, rng: rng}
}

func (*Venue) Name() string { return "venue" }

func (v *Venue) Detect(papers []types.PaperRecord, idx *index.Index) ([]types.Relationship, error) {
	var edges []types.Relationship
	for venue, bucket := range idx.Venues {
		for i := 0; i < len(bucket); i++ {
			for j := i + 1; j < len(bucket); j++ {
				if v.rng.Float64() >= v.keepRate {
					continue
				}
				edges = append(edges, types.Relationship{
					SourceID: papers[bucket[i]].ID,
					TargetID: papers[bucket[j]].ID,
					Type:     types.RelationVenue,
					Strength: venueStrength,
					Note:     "same venue: " + venue,
				})
			}
		}
	}
	return edges, nil
}
