// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sample reduces an arbitrarily large paper corpus to a bounded,
// temporally stratified subset so downstream detectors stay cheap.
package sample

import (
	"math"
	"sort"
	"time"

	"github.com/pdiddy/citegraph/pkg/types"
)

// TargetSize derives the sampler cap from the global pairwise-comparison
// budget: the largest sample whose full pairwise expansion fits the budget.
func TargetSize(comparisonBudget int) int {
	if comparisonBudget <= 0 {
		return 0
	}
	return int(math.Sqrt(float64(comparisonBudget)))
}

// Papers returns a stratified sample of at most targetSize papers.
//
// Papers are grouped by publication year (unknown years land in the
// current-year bucket), each bucket is ordered by citation count as an
// authority proxy, and an equal share is drawn from every bucket in year
// order. Pure random sampling would under-represent sparse years and
// over-represent recent spikes; stratification keeps temporal diversity
// while favoring higher-authority papers.
func Papers(papers []types.PaperRecord, targetSize int) []types.PaperRecord {
	if targetSize <= 0 || len(papers) == 0 {
		return nil
	}
	if len(papers) <= targetSize {
		out := make([]types.PaperRecord, len(papers))
		copy(out, papers)
		return out
	}

	currentYear := time.Now().Year()
	buckets := make(map[int][]types.PaperRecord)
	for _, p := range papers {
		year := p.Year
		if year == 0 {
			year = currentYear
		}
		buckets[year] = append(buckets[year], p)
	}

	years := make([]int, 0, len(buckets))
	for y := range buckets {
		years = append(years, y)
	}
	sort.Ints(years)

	perBucket := int(math.Ceil(float64(targetSize) / float64(len(buckets))))

	sampled := make([]types.PaperRecord, 0, targetSize)
	for _, y := range years {
		bucket := buckets[y]
		sort.SliceStable(bucket, func(i, j int) bool {
			return bucket[i].CitationCount > bucket[j].CitationCount
		})
		take := perBucket
		if take > len(bucket) {
			take = len(bucket)
		}
		sampled = append(sampled, bucket[:take]...)
	}

	if len(sampled) > targetSize {
		sampled = sampled[:targetSize]
	}
	return sampled
}
