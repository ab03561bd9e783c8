package engine

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/citegraph/internal/graphstore"
	"github.com/pdiddy/citegraph/pkg/types"
)

func testConfig() types.EngineConfig {
	cfg := types.DefaultEngineConfig()
	// Disable the probabilistic detectors so assertions are exact.
	cfg.VenueKeepRate = 0
	cfg.TemporalKeepRate = 0
	return cfg
}

func smallCorpus() []types.PaperRecord {
	return []types.PaperRecord{
		{
			ID:      "a",
			Title:   "Graph Attention Networks",
			Authors: []string{"J. Smith", "K. Wong"},
			Year:    2021, Venue: "ICLR",
			ReferenceIDs: []string{"b"},
		},
		{
			ID:      "b",
			Title:   "Graph Convolutional Networks",
			Authors: []string{"J. Smith"},
			Year:    2020, Venue: "ICLR",
		},
		{
			ID:      "c",
			Title:   "Protein Folding Dynamics",
			Authors: []string{"M. Okafor"},
			Year:    2010, Venue: "Nature",
		},
	}
}

func TestBuildGraphEmptyInput(t *testing.T) {
	e := New(testConfig())
	_, err := e.BuildGraph(context.Background(), nil, "anything")

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestBuildGraphMalformedInput(t *testing.T) {
	tests := []struct {
		name   string
		papers []types.PaperRecord
	}{
		{"missing id", []types.PaperRecord{{Title: "untitled"}}},
		{"duplicate id", []types.PaperRecord{{ID: "a"}, {ID: "a"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(testConfig())
			_, err := e.BuildGraph(context.Background(), tt.papers, "t")
			var verr *ValidationError
			assert.ErrorAs(t, err, &verr)
		})
	}
}

func TestBuildGraphSparseValidInputSucceeds(t *testing.T) {
	// A single paper with no links yields a graph with zero edges, not
	// an error.
	e := New(testConfig())
	artifact, err := e.BuildGraph(context.Background(), []types.PaperRecord{{ID: "lonely"}}, "t")
	require.NoError(t, err)
	assert.Len(t, artifact.Nodes, 1)
	assert.Empty(t, artifact.Edges)
	assert.False(t, artifact.Cached)
	assert.NotEmpty(t, artifact.Fingerprint)
}

func TestBuildGraphExpectedEdges(t *testing.T) {
	e := New(testConfig(), WithSeed(7))
	artifact, err := e.BuildGraph(context.Background(), smallCorpus(), "graph learning")
	require.NoError(t, err)

	byType := make(map[types.RelationType]int)
	for _, edge := range artifact.Edges {
		byType[edge.Type]++
		assert.GreaterOrEqual(t, edge.Strength, 0.0)
		assert.LessOrEqual(t, edge.Strength, 1.0)
		assert.NotEqual(t, "c", edge.SourceID)
		assert.NotEqual(t, "c", edge.TargetID)
	}

	// a cites b, and a/b share an author. Venue and temporal are
	// disabled; titles overlap by only two keywords.
	assert.Equal(t, 1, byType[types.RelationCitation])
	assert.Equal(t, 1, byType[types.RelationAuthor])
	assert.Len(t, artifact.Edges, 2)

	// Citation outranks author.
	assert.Equal(t, types.RelationCitation, artifact.Edges[0].Type)
}

func TestBuildGraphIdempotentWithinTTL(t *testing.T) {
	e := New(testConfig(), WithSeed(7))
	papers := smallCorpus()

	first, err := e.BuildGraph(context.Background(), papers, "topic")
	require.NoError(t, err)
	second, err := e.BuildGraph(context.Background(), papers, "topic")
	require.NoError(t, err)

	assert.False(t, first.Cached)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Fingerprint, second.Fingerprint)
	assert.Equal(t, first.Nodes, second.Nodes)
	assert.Equal(t, first.Edges, second.Edges)
}

func TestBuildGraphInputOrderInsensitiveFingerprint(t *testing.T) {
	e := New(testConfig(), WithSeed(7))
	papers := smallCorpus()

	first, err := e.BuildGraph(context.Background(), papers, "topic")
	require.NoError(t, err)

	reordered := []types.PaperRecord{papers[2], papers[0], papers[1]}
	second, err := e.BuildGraph(context.Background(), reordered, "topic")
	require.NoError(t, err)

	assert.Equal(t, first.Fingerprint, second.Fingerprint)
	assert.True(t, second.Cached)
}

func TestBuildGraphLargeCorpusBounded(t *testing.T) {
	// 600 input papers with the default comparison budget: the sample
	// caps at 224 nodes and the edge set at the 200 budget.
	papers := make([]types.PaperRecord, 600)
	for i := range papers {
		papers[i] = types.PaperRecord{
			ID:            fmt.Sprintf("p%03d", i),
			Title:         fmt.Sprintf("Scaling Study Part %d of Large Benchmarks", i),
			Authors:       []string{fmt.Sprintf("Author %d", i%40)},
			Year:          2010 + i%12,
			Venue:         fmt.Sprintf("Venue %d", i%5),
			CitationCount: i % 250,
		}
	}

	cfg := types.DefaultEngineConfig()
	e := New(cfg, WithSeed(42))
	artifact, err := e.BuildGraph(context.Background(), papers, "scaling")
	require.NoError(t, err)

	assert.LessOrEqual(t, len(artifact.Nodes), 224)
	assert.LessOrEqual(t, len(artifact.Edges), 200)
	for _, edge := range artifact.Edges {
		assert.GreaterOrEqual(t, edge.Strength, 0.0)
		assert.LessOrEqual(t, edge.Strength, 1.0)
	}

	// No duplicate (unordered pair, type) survives ranking.
	seen := make(map[string]bool)
	for _, edge := range artifact.Edges {
		a, b := edge.SourceID, edge.TargetID
		if a > b {
			a, b = b, a
		}
		key := a + "|" + b + "|" + string(edge.Type)
		assert.False(t, seen[key], "duplicate edge %s", key)
		seen[key] = true
	}
}

func TestBuildGraphPersistsInBackground(t *testing.T) {
	store := graphstore.NewMemory()
	e := New(testConfig(), WithStore(store), WithSeed(7))

	artifact, err := e.BuildGraph(context.Background(), smallCorpus(), "topic")
	require.NoError(t, err)
	e.Close()

	build, ok := store.Build("topic")
	require.True(t, ok, "build was not persisted")
	assert.Equal(t, artifact.Nodes, build.Nodes)
	assert.Equal(t, artifact.Edges, build.Edges)
}

func TestBuildGraphPersistenceFailureIsInvisible(t *testing.T) {
	store := graphstore.NewMemory()
	store.Err = errors.New("bolt connection refused")
	e := New(testConfig(), WithStore(store), WithSeed(7))

	artifact, err := e.BuildGraph(context.Background(), smallCorpus(), "topic")
	require.NoError(t, err)
	assert.NotEmpty(t, artifact.Nodes)
	e.Close()
}

func TestBuildGraphCacheServedWithoutRecompute(t *testing.T) {
	store := graphstore.NewMemory()
	e := New(testConfig(), WithStore(store), WithSeed(7))

	_, err := e.BuildGraph(context.Background(), smallCorpus(), "topic")
	require.NoError(t, err)
	e.Close()
	require.Equal(t, 1, store.Len())

	// A cache hit skips the pipeline entirely, including persistence.
	_, err = e.BuildGraph(context.Background(), smallCorpus(), "topic")
	require.NoError(t, err)
	e.Close()
	assert.Equal(t, 1, store.Len())
}

func TestCachedArtifact(t *testing.T) {
	e := New(testConfig(), WithSeed(7))
	built, err := e.BuildGraph(context.Background(), smallCorpus(), "topic")
	require.NoError(t, err)

	got, ok := e.CachedArtifact(built.Fingerprint)
	require.True(t, ok)
	assert.True(t, got.Cached)
	assert.Equal(t, built.Edges, got.Edges)

	_, ok = e.CachedArtifact("unknown")
	assert.False(t, ok)
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Reason: "empty paper list"}
	assert.Contains(t, err.Error(), "empty paper list")
	var target *ValidationError
	assert.True(t, errors.As(err, &target))
}

func TestBuildGraphTTLOnArtifact(t *testing.T) {
	cfg := testConfig()
	cfg.CacheTTL = 5 * time.Minute
	e := New(cfg, WithSeed(7))

	artifact, err := e.BuildGraph(context.Background(), smallCorpus(), "topic")
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, artifact.TTL)
	assert.WithinDuration(t, time.Now(), artifact.CreatedAt, time.Minute)
}
