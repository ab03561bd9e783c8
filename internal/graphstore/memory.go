// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package graphstore

import (
	"context"
	"sync"

	"github.com/pdiddy/citegraph/pkg/types"
)

// Memory is an in-process Store used in tests and when no graph
// database is configured for local runs.
type Memory struct {
	mu     sync.Mutex
	builds map[string]MemoryBuild

	// Err, when set, is returned by every PersistGraph call.
	Err error
}

// MemoryBuild records one persisted build.
type MemoryBuild struct {
	Nodes []types.PaperRecord
	Edges []types.Relationship
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{builds: make(map[string]MemoryBuild)}
}

func (m *Memory) PersistGraph(_ context.Context, topic string, nodes []types.PaperRecord, edges []types.Relationship) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.builds[topic] = MemoryBuild{Nodes: nodes, Edges: edges}
	return nil
}

func (m *Memory) Close(context.Context) error { return nil }

// Build returns the last persisted build for topic.
func (m *Memory) Build(topic string) (MemoryBuild, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.builds[topic]
	return b, ok
}

// Len reports how many topics have been persisted.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.builds)
}
