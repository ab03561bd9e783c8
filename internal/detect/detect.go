// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package detect infers typed, weighted relationships between sampled
// papers. Each detector is an independent strategy over the shared
// immutable indexes; a failing detector never prevents the others from
// contributing.
package detect

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/pdiddy/citegraph/internal/index"
	"github.com/pdiddy/citegraph/pkg/types"
)

// Detector finds one category of relationship between sampled papers.
// Implementations are pure: they read the sample and indexes and return
// candidate edges, sharing no mutable state.
type Detector interface {
	Name() string
	Detect(papers []types.PaperRecord, idx *index.Index) ([]types.Relationship, error)
}

// Run executes all detectors concurrently against the same sample and
// indexes and concatenates their edges in detector order. A detector
// that returns an error or panics is logged and skipped; the remaining
// detectors still contribute.
func Run(detectors []Detector, papers []types.PaperRecord, idx *index.Index, log *zap.Logger) []types.Relationship {
	results := make([][]types.Relationship, len(detectors))

	var wg sync.WaitGroup
	for i, d := range detectors {
		wg.Add(1)
		go func(i int, d Detector) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					log.Error("detector panicked",
						zap.String("detector", d.Name()),
						zap.Any("panic", r))
				}
			}()
			edges, err := d.Detect(papers, idx)
			if err != nil {
				log.Warn("detector failed",
					zap.String("detector", d.Name()),
					zap.Error(err))
				return
			}
			results[i] = edges
		}(i, d)
	}
	wg.Wait()

	var all []types.Relationship
	for _, edges := range results {
		all = append(all, edges...)
	}
	return all
}

// pairKey returns an order-insensitive key for a paper pair, used by
// detectors to avoid emitting the same pair twice.
func pairKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + "\x00" + b
}

// clamp limits v to the [0, max] range.
func clamp(v, max float64) float64 {
	if v > max {
		return max
	}
	if v < 0 {
		return 0
	}
	return v
}

func yearLabel(y int) string {
	if y == 0 {
		return "unknown"
	}
	return fmt.Sprintf("%d", y)
}
