// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package graphstore

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/pdiddy/citegraph/pkg/types"
)

// NewNeo4j connects to a Bolt-compatible graph database and verifies
// connectivity before returning.
func NewNeo4j(ctx context.Context, cfg types.GraphStoreConfig) (Store, error) {
	if cfg.URI == "" {
		return nil, ErrMissingURI
	}

	auth := neo4j.NoAuth()
	if cfg.Username != "" {
		auth = neo4j.BasicAuth(cfg.Username, cfg.Password, "")
	}

	driver, err := neo4j.NewDriverWithContext(cfg.URI, auth, func(c *neo4j.Config) {
		if cfg.MaxConnections > 0 {
			c.MaxConnectionPoolSize = cfg.MaxConnections
		}
	})
	if err != nil {
		return nil, fmt.Errorf("creating graph driver: %w", err)
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("verifying graph connectivity: %w", err)
	}

	return &neo4jStore{driver: driver, database: cfg.Database}, nil
}

type neo4jStore struct {
	driver   neo4j.DriverWithContext
	database string
}

func (s *neo4jStore) PersistGraph(ctx context.Context, topic string, nodes []types.PaperRecord, edges []types.Relationship) error {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{
		DatabaseName: s.database,
		AccessMode:   neo4j.AccessModeWrite,
	})
	defer session.Close(ctx)

	runID := uuid.NewString()

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		// Previous edges for the topic are superseded wholesale; nodes
		// are shared across topics and merged in place.
		if _, err := tx.Run(ctx,
			`MATCH (:Paper)-[r:RELATES_TO {topic: $topic}]->(:Paper) DELETE r`,
			map[string]any{"topic": topic},
		); err != nil {
			return nil, fmt.Errorf("clearing topic edges: %w", err)
		}

		if _, err := tx.Run(ctx,
			`UNWIND $papers AS p
			 MERGE (n:Paper {id: p.id})
			 SET n.title = p.title,
			     n.authors = p.authors,
			     n.year = p.year,
			     n.venue = p.venue,
			     n.citation_count = p.citation_count`,
			map[string]any{"papers": paperParams(nodes)},
		); err != nil {
			return nil, fmt.Errorf("merging paper nodes: %w", err)
		}

		if _, err := tx.Run(ctx,
			`UNWIND $edges AS e
			 MATCH (a:Paper {id: e.source_id}), (b:Paper {id: e.target_id})
			 CREATE (a)-[:RELATES_TO {
			     topic: $topic, type: e.type, strength: e.strength,
			     note: e.note, run_id: $run_id
			 }]->(b)`,
			map[string]any{
				"topic":  topic,
				"run_id": runID,
				"edges":  edgeParams(edges),
			},
		); err != nil {
			return nil, fmt.Errorf("creating relationship edges: %w", err)
		}

		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("persisting graph for topic %q: %w", topic, err)
	}
	return nil
}

func (s *neo4jStore) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}

func paperParams(nodes []types.PaperRecord) []map[string]any {
	params := make([]map[string]any, len(nodes))
	for i, n := range nodes {
		params[i] = map[string]any{
			"id":             n.ID,
			"title":          n.Title,
			"authors":        n.Authors,
			"year":           n.Year,
			"venue":          n.Venue,
			"citation_count": n.CitationCount,
		}
	}
	return params
}

func edgeParams(edges []types.Relationship) []map[string]any {
	params := make([]map[string]any, len(edges))
	for i, e := range edges {
		params[i] = map[string]any{
			"source_id": e.SourceID,
			"target_id": e.TargetID,
			"type":      string(e.Type),
			"strength":  e.Strength,
			"note":      e.Note,
		}
	}
	return params
}
