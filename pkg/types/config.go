// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// EngineConfig holds the tunables of the graph build pipeline.
type EngineConfig struct {
	// ComparisonBudget bounds the number of pairwise comparisons the
	// detectors may face. The sampler target size is its square root,
	// so O(n²) detector passes stay bounded regardless of corpus size
	// (default 50176, yielding a sample cap of 224).
	ComparisonBudget int `json:"comparison_budget" yaml:"comparison_budget"`

	// VenueKeepRate is the probability that a detected same-venue pair
	// is emitted (default 0.2). Venue co-occurrence is high-frequency
	// and low-informativeness, so it is subsampled.
	VenueKeepRate float64 `json:"venue_keep_rate" yaml:"venue_keep_rate"`

	// TemporalKeepRate is the probability that a detected same-era pair
	// is emitted (default 0.3).
	TemporalKeepRate float64 `json:"temporal_keep_rate" yaml:"temporal_keep_rate"`

	// TemporalEdgeCap limits temporal edges per source paper (default 3).
	TemporalEdgeCap int `json:"temporal_edge_cap" yaml:"temporal_edge_cap"`

	// ContentOverlapMin is the minimum shared-keyword count before a
	// content edge is emitted (default 3).
	ContentOverlapMin int `json:"content_overlap_min" yaml:"content_overlap_min"`

	// EdgeBudget caps the number of edges in a returned artifact,
	// independent of corpus size (default 200).
	EdgeBudget int `json:"edge_budget" yaml:"edge_budget"`

	// CacheTTL is how long a build result stays valid (default 60m).
	CacheTTL time.Duration `json:"cache_ttl" yaml:"cache_ttl"`

	// CacheMaxEntries bounds the build cache size (default 100).
	CacheMaxEntries int `json:"cache_max_entries" yaml:"cache_max_entries"`
}

// Engine config defaults.
const (
	DefaultComparisonBudget  = 50176
	DefaultVenueKeepRate     = 0.2
	DefaultTemporalKeepRate  = 0.3
	DefaultTemporalEdgeCap   = 3
	DefaultContentOverlapMin = 3
	DefaultEdgeBudget        = 200
	DefaultCacheTTL          = 60 * time.Minute
	DefaultCacheMaxEntries   = 100
)

// WithDefaults returns a copy of the config with zero values replaced
// by the reference defaults. Keep rates are defaulted only when
// negative so that an explicit zero (disable subsampled detectors)
// survives.
func (c EngineConfig) WithDefaults() EngineConfig {
	if c.ComparisonBudget <= 0 {
		c.ComparisonBudget = DefaultComparisonBudget
	}
	if c.VenueKeepRate < 0 {
		c.VenueKeepRate = DefaultVenueKeepRate
	}
	if c.TemporalKeepRate < 0 {
		c.TemporalKeepRate = DefaultTemporalKeepRate
	}
	if c.TemporalEdgeCap <= 0 {
		c.TemporalEdgeCap = DefaultTemporalEdgeCap
	}
	if c.ContentOverlapMin <= 0 {
		c.ContentOverlapMin = DefaultContentOverlapMin
	}
	if c.EdgeBudget <= 0 {
		c.EdgeBudget = DefaultEdgeBudget
	}
	if c.CacheTTL <= 0 {
		c.CacheTTL = DefaultCacheTTL
	}
	if c.CacheMaxEntries <= 0 {
		c.CacheMaxEntries = DefaultCacheMaxEntries
	}
	return c
}

// DefaultEngineConfig returns the reference engine configuration.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		ComparisonBudget:  DefaultComparisonBudget,
		VenueKeepRate:     DefaultVenueKeepRate,
		TemporalKeepRate:  DefaultTemporalKeepRate,
		TemporalEdgeCap:   DefaultTemporalEdgeCap,
		ContentOverlapMin: DefaultContentOverlapMin,
		EdgeBudget:        DefaultEdgeBudget,
		CacheTTL:          DefaultCacheTTL,
		CacheMaxEntries:   DefaultCacheMaxEntries,
	}
}

// GraphStoreConfig holds connection settings for the external graph
// database that mirrors build results.
type GraphStoreConfig struct {
	// URI is the Bolt endpoint (e.g. "neo4j://localhost:7687").
	// Empty disables persistence.
	URI string `json:"uri" yaml:"uri"`

	// Database selects the target database. Empty uses the server default.
	Database string `json:"database" yaml:"database"`

	// Username and Password authenticate the connection. An empty
	// username selects unauthenticated access.
	Username string `json:"username" yaml:"username"`
	Password string `json:"password,omitempty" yaml:"password,omitempty"`

	// MaxConnections bounds the driver connection pool.
	MaxConnections int `json:"max_connections" yaml:"max_connections"`

	// Timeout bounds each background persistence write (default 30s).
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// ServerConfig holds settings for the HTTP API.
type ServerConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `json:"addr" yaml:"addr"`

	// RequestTimeout bounds each build request; the HTTP layer owns
	// the request boundary, the engine itself never blocks on I/O
	// (default 30s).
	RequestTimeout time.Duration `json:"request_timeout" yaml:"request_timeout"`

	// Mode selects the gin/logger mode: "debug" or "release".
	Mode string `json:"mode" yaml:"mode"`
}

// Config groups all component configurations.
type Config struct {
	Engine     EngineConfig     `json:"engine" yaml:"engine"`
	GraphStore GraphStoreConfig `json:"graph_store" yaml:"graph_store"`
	Server     ServerConfig     `json:"server" yaml:"server"`
}
