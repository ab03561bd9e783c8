// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// RelationType categorizes a relationship between two papers.
type RelationType string

const (
	RelationCitation RelationType = "citation"
	RelationAuthor   RelationType = "author"
	RelationVenue    RelationType = "venue"
	RelationContent  RelationType = "content"
	RelationTemporal RelationType = "temporal"
)

// Relationship is a typed, weighted edge between two PaperRecords.
type Relationship struct {
	// SourceID and TargetID identify the connected papers.
	SourceID string `json:"source_id" yaml:"source_id"`
	TargetID string `json:"target_id" yaml:"target_id"`

	// Type categorizes the relationship.
	Type RelationType `json:"type" yaml:"type"`

	// Strength is the edge weight in [0, 1].
	Strength float64 `json:"strength" yaml:"strength"`

	// Note is an optional human-readable explanation of the edge
	// (e.g. the shared author names).
	Note string `json:"note,omitempty" yaml:"note,omitempty"`
}

// GraphArtifact is a complete, size-bounded graph build result, ready
// for visualization or querying.
type GraphArtifact struct {
	// Topic is the research topic the graph was built for.
	Topic string `json:"topic" yaml:"topic"`

	// Nodes holds the sampled paper records included in the graph.
	Nodes []PaperRecord `json:"nodes" yaml:"nodes"`

	// Edges holds the deduplicated, ranked relationships, capped at
	// the configured edge budget.
	Edges []Relationship `json:"edges" yaml:"edges"`

	// Fingerprint is the deterministic cache key derived from the
	// topic and the input paper ID set.
	Fingerprint string `json:"fingerprint" yaml:"fingerprint"`

	// CreatedAt records when the build completed.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`

	// TTL is how long the artifact stays valid in the build cache.
	TTL time.Duration `json:"ttl" yaml:"ttl"`

	// Cached reports whether this artifact was served from the cache.
	Cached bool `json:"cached" yaml:"cached"`
}
