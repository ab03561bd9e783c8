package corpus

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pdiddy/citegraph/pkg/types"
)

func TestLoadFileYAML(t *testing.T) {
	content := `
- id: "2301.07041"
  title: "Graph Attention Networks"
  authors: ["J. Smith", "K. Wong"]
  year: 2021
  venue: "ICLR"
  citation_count: 120
  reference_ids: ["1609.02907"]
- id: "1609.02907"
  title: "Graph Convolutional Networks"
  authors: ["J. Smith"]
  year: 2017
`
	path := filepath.Join(t.TempDir(), "corpus.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	papers, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(papers) != 2 {
		t.Fatalf("loaded %d papers, want 2", len(papers))
	}
	if papers[0].ID != "2301.07041" || papers[0].CitationCount != 120 {
		t.Errorf("first paper = %+v", papers[0])
	}
	if len(papers[0].ReferenceIDs) != 1 || papers[0].ReferenceIDs[0] != "1609.02907" {
		t.Errorf("reference ids = %v", papers[0].ReferenceIDs)
	}
}

func TestLoadFileJSON(t *testing.T) {
	content := `[{"id": "p1", "title": "T", "authors": ["A"], "year": 2020}]`
	path := filepath.Join(t.TempDir(), "corpus.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	papers, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(papers) != 1 || papers[0].ID != "p1" {
		t.Errorf("papers = %+v", papers)
	}
}

func TestLoadFileUnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.csv")
	if err := os.WriteFile(path, []byte("id\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestDBRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.db")
	db, err := OpenDB(path)
	if err != nil {
		t.Fatalf("OpenDB: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	in := []types.PaperRecord{
		{
			ID:            "a",
			Title:         "First",
			Authors:       []string{"J. Smith"},
			Year:          2021,
			Venue:         "ICLR",
			Abstract:      "An abstract.",
			CitationCount: 10,
			ReferenceIDs:  []string{"b"},
		},
		{ID: "b", Title: "Second", Year: 2019},
	}
	if err := db.InsertPapers(ctx, in); err != nil {
		t.Fatalf("InsertPapers: %v", err)
	}

	papers, err := db.Papers(ctx)
	if err != nil {
		t.Fatalf("Papers: %v", err)
	}
	if len(papers) != 2 {
		t.Fatalf("loaded %d papers, want 2", len(papers))
	}

	// Rows come back ordered by ID.
	a, b := papers[0], papers[1]
	if a.ID != "a" || a.Title != "First" || a.Venue != "ICLR" || a.CitationCount != 10 {
		t.Errorf("paper a = %+v", a)
	}
	if len(a.Authors) != 1 || a.Authors[0] != "J. Smith" {
		t.Errorf("paper a authors = %v", a.Authors)
	}
	if len(a.ReferenceIDs) != 1 || a.ReferenceIDs[0] != "b" {
		t.Errorf("paper a references = %v", a.ReferenceIDs)
	}
	// The incoming link shows up as cited-by on the target.
	if len(b.CitedByIDs) != 1 || b.CitedByIDs[0] != "a" {
		t.Errorf("paper b cited-by = %v", b.CitedByIDs)
	}
}

func TestDBInsertReplacesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.db")
	db, err := OpenDB(path)
	if err != nil {
		t.Fatalf("OpenDB: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := db.InsertPapers(ctx, []types.PaperRecord{{ID: "a", Title: "Old"}}); err != nil {
		t.Fatal(err)
	}
	if err := db.InsertPapers(ctx, []types.PaperRecord{{ID: "a", Title: "New"}}); err != nil {
		t.Fatal(err)
	}

	papers, err := db.Papers(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(papers) != 1 || papers[0].Title != "New" {
		t.Errorf("papers = %+v", papers)
	}
}
