// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package graphstore mirrors finished graph builds to the external
// graph database. Persistence is fire-and-forget from the engine's
// point of view: the store is the durable collaborator, not this
// process.
package graphstore

import (
	"context"
	"errors"

	"github.com/pdiddy/citegraph/pkg/types"
)

// ErrMissingURI indicates no graph database endpoint was configured.
var ErrMissingURI = errors.New("graph store URI is required")

// Store is the minimal contract the engine needs from the external
// graph database.
type Store interface {
	// PersistGraph writes the nodes and edges of one build, keyed by
	// topic, replacing any previous build for the same topic.
	PersistGraph(ctx context.Context, topic string, nodes []types.PaperRecord, edges []types.Relationship) error

	// Close releases the underlying connections.
	Close(ctx context.Context) error
}
