package index

import (
	"fmt"
	"strings"
	"testing"

	"github.com/pdiddy/citegraph/pkg/types"
)

func TestExtractKeywords(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "lowercases and strips punctuation",
			text: "Attention Is All You Need!",
			want: []string{"attention", "need"},
		},
		{
			name: "drops stop words and short tokens",
			text: "this paper shows a novel approach with graph neural networks",
			want: []string{"shows", "graph", "neural", "networks"},
		},
		{
			name: "deduplicates tokens",
			text: "graph graph graph embedding embedding",
			want: []string{"graph", "embedding"},
		},
		{
			name: "empty text",
			text: "",
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractKeywords(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("ExtractKeywords(%q) = %v, want %v", tt.text, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("keyword %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestExtractKeywordsCapped(t *testing.T) {
	var words []string
	for i := 0; i < 40; i++ {
		words = append(words, fmt.Sprintf("keyword%02d", i))
	}
	got := ExtractKeywords(strings.Join(words, " "))
	if len(got) != maxKeywordsPerPaper {
		t.Errorf("len = %d, want %d", len(got), maxKeywordsPerPaper)
	}
}

func TestBuildAuthorIndex(t *testing.T) {
	papers := []types.PaperRecord{
		{ID: "a", Authors: []string{"J. Smith", "A. Jones"}},
		{ID: "b", Authors: []string{"j. smith "}},
		{ID: "c", Authors: []string{"B. Lee"}},
	}
	idx := Build(papers)

	bucket := idx.Authors["j. smith"]
	if len(bucket) != 2 || bucket[0] != 0 || bucket[1] != 1 {
		t.Errorf("Authors[%q] = %v, want [0 1]", "j. smith", bucket)
	}
	if len(idx.Authors["a. jones"]) != 1 {
		t.Errorf("Authors[%q] = %v, want one entry", "a. jones", idx.Authors["a. jones"])
	}
}

func TestBuildVenueIndex(t *testing.T) {
	papers := []types.PaperRecord{
		{ID: "a", Venue: "NeurIPS"},
		{ID: "b", Venue: " neurips"},
		{ID: "c"},
	}
	idx := Build(papers)

	if got := idx.Venues["neurips"]; len(got) != 2 {
		t.Errorf("Venues[neurips] = %v, want two entries", got)
	}
	// Papers with no venue never enter the index.
	if len(idx.Venues) != 1 {
		t.Errorf("len(Venues) = %d, want 1", len(idx.Venues))
	}
}

func TestBuildKeywordIndex(t *testing.T) {
	papers := []types.PaperRecord{
		{ID: "a", Title: "Graph Neural Networks", Abstract: "spectral convolution"},
		{ID: "b", Title: "Neural Machine Translation"},
	}
	idx := Build(papers)

	if got := idx.Keywords["neural"]; len(got) != 2 {
		t.Errorf("Keywords[neural] = %v, want two entries", got)
	}
	if !idx.PaperKeywords[0]["spectral"] {
		t.Errorf("PaperKeywords[0] missing %q: %v", "spectral", idx.PaperKeywords[0])
	}
	if idx.PaperKeywords[1]["spectral"] {
		t.Errorf("PaperKeywords[1] unexpectedly contains %q", "spectral")
	}
}
