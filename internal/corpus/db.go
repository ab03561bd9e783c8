// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package corpus

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/citegraph/pkg/types"
)

// DB reads paper records from the acquisition pipeline's SQLite
// database: a papers table plus a paper_links table holding directed
// source-cites-target edges.
type DB struct {
	db *sql.DB
}

// OpenDB opens the corpus database at path, creating the schema if it
// does not exist.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening corpus database: %w", err)
	}

	d := &DB{db: db}
	if err := d.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating corpus schema: %w", err)
	}
	return d, nil
}

// Close releases the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

func (d *DB) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS papers (
			id TEXT PRIMARY KEY,
			title TEXT,
			authors TEXT,
			year INTEGER,
			venue TEXT,
			abstract TEXT,
			citation_count INTEGER DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS paper_links (
			source_id TEXT NOT NULL REFERENCES papers(id),
			target_id TEXT NOT NULL,
			PRIMARY KEY (source_id, target_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_links_target ON paper_links(target_id)`,
	}
	for _, stmt := range statements {
		if _, err := d.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Papers loads every paper with its citation links. Reference lists
// come from outgoing links; cited-by lists from incoming ones.
func (d *DB) Papers(ctx context.Context) ([]types.PaperRecord, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT id, title, authors, year, venue, abstract, citation_count
		 FROM papers ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying papers: %w", err)
	}
	defer rows.Close()

	var papers []types.PaperRecord
	byID := make(map[string]int)
	for rows.Next() {
		var p types.PaperRecord
		var authorsJSON sql.NullString
		var year sql.NullInt64
		var venue, abstract sql.NullString

		if err := rows.Scan(&p.ID, &p.Title, &authorsJSON, &year, &venue, &abstract, &p.CitationCount); err != nil {
			return nil, fmt.Errorf("scanning paper row: %w", err)
		}
		if authorsJSON.Valid && authorsJSON.String != "" {
			if err := json.Unmarshal([]byte(authorsJSON.String), &p.Authors); err != nil {
				return nil, fmt.Errorf("parsing authors for paper %s: %w", p.ID, err)
			}
		}
		p.Year = int(year.Int64)
		p.Venue = venue.String
		p.Abstract = abstract.String

		byID[p.ID] = len(papers)
		papers = append(papers, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating papers: %w", err)
	}

	linkRows, err := d.db.QueryContext(ctx, `SELECT source_id, target_id FROM paper_links`)
	if err != nil {
		return nil, fmt.Errorf("querying paper links: %w", err)
	}
	defer linkRows.Close()

	for linkRows.Next() {
		var source, target string
		if err := linkRows.Scan(&source, &target); err != nil {
			return nil, fmt.Errorf("scanning link row: %w", err)
		}
		if i, ok := byID[source]; ok {
			papers[i].ReferenceIDs = append(papers[i].ReferenceIDs, target)
		}
		if i, ok := byID[target]; ok {
			papers[i].CitedByIDs = append(papers[i].CitedByIDs, source)
		}
	}
	if err := linkRows.Err(); err != nil {
		return nil, fmt.Errorf("iterating paper links: %w", err)
	}

	return papers, nil
}

// InsertPapers stores papers and their reference links, replacing
// records that share an ID. Used by the acquisition pipeline and by
// tests to seed corpus databases.
func (d *DB) InsertPapers(ctx context.Context, papers []types.PaperRecord) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	paperStmt, err := tx.PrepareContext(ctx,
		`INSERT OR REPLACE INTO papers (id, title, authors, year, venue, abstract, citation_count)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing paper insert: %w", err)
	}
	defer paperStmt.Close()

	linkStmt, err := tx.PrepareContext(ctx,
		`INSERT OR IGNORE INTO paper_links (source_id, target_id) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing link insert: %w", err)
	}
	defer linkStmt.Close()

	for _, p := range papers {
		authorsJSON, _ := json.Marshal(p.Authors)
		if _, err := paperStmt.ExecContext(ctx,
			p.ID, p.Title, string(authorsJSON), p.Year, p.Venue, p.Abstract, p.CitationCount,
		); err != nil {
			return fmt.Errorf("inserting paper %s: %w", p.ID, err)
		}
		for _, ref := range p.ReferenceIDs {
			if _, err := linkStmt.ExecContext(ctx, p.ID, ref); err != nil {
				return fmt.Errorf("inserting link %s -> %s: %w", p.ID, ref, err)
			}
		}
	}

	return tx.Commit()
}
