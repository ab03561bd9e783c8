// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package index builds inverted indexes over a sampled paper set so the
// relationship detectors can replace O(n²) pairwise scans with
// index-bucket lookups.
package index

import (
	"strings"
	"unicode"

	"github.com/pdiddy/citegraph/pkg/types"
)

// maxKeywordsPerPaper caps keyword extraction per paper. Presence-only;
// no frequency weighting.
const maxKeywordsPerPaper = 20

// minTokenLength is the shortest token kept by keyword extraction.
// Tokens of length three or less carry too little signal.
const minTokenLength = 4

// stopWords are discarded during keyword extraction.
var stopWords = map[string]bool{
	"about": true, "above": true, "after": true, "again": true,
	"also": true, "approach": true, "based": true, "been": true,
	"before": true, "being": true, "between": true, "both": true,
	"could": true, "does": true, "down": true, "during": true,
	"each": true, "from": true, "further": true, "have": true,
	"however": true, "into": true, "method": true, "more": true,
	"most": true, "novel": true, "only": true, "other": true,
	"over": true, "paper": true, "propose": true, "proposed": true,
	"results": true, "show": true, "some": true, "such": true,
	"than": true, "that": true, "their": true, "them": true,
	"then": true, "there": true, "these": true, "they": true,
	"this": true, "those": true, "through": true, "under": true,
	"using": true, "very": true, "were": true, "what": true,
	"when": true, "where": true, "which": true, "while": true,
	"with": true, "within": true, "would": true,
}

// Index holds the inverted indexes over one sampled paper set. Bucket
// values are positions into the sampled slice the index was built from.
type Index struct {
	// Authors maps a normalized author name to the papers they wrote.
	Authors map[string][]int

	// Venues maps a normalized venue to the papers published there.
	Venues map[string][]int

	// Keywords maps an extracted keyword to the papers mentioning it.
	Keywords map[string][]int

	// PaperKeywords holds the extracted keyword set per paper, parallel
	// to the sampled slice.
	PaperKeywords []map[string]bool
}

// Build constructs the inverted indexes for the sampled papers.
func Build(papers []types.PaperRecord) *Index {
	idx := &Index{
		Authors:       make(map[string][]int),
		Venues:        make(map[string][]int),
		Keywords:      make(map[string][]int),
		PaperKeywords: make([]map[string]bool, len(papers)),
	}

	for i, p := range papers {
		for _, a := range p.Authors {
			name := NormalizeName(a)
			if name == "" {
				continue
			}
			idx.Authors[name] = append(idx.Authors[name], i)
		}

		if venue := NormalizeName(p.Venue); venue != "" {
			idx.Venues[venue] = append(idx.Venues[venue], i)
		}

		keywords := ExtractKeywords(p.Title + " " + p.Abstract)
		set := make(map[string]bool, len(keywords))
		for _, kw := range keywords {
			set[kw] = true
			idx.Keywords[kw] = append(idx.Keywords[kw], i)
		}
		idx.PaperKeywords[i] = set
	}

	return idx
}

// NormalizeName lowercases and trims an author or venue name so exact
// matching is case-insensitive.
func NormalizeName(s string) string {
	return strings.TrimSpace(strings.ToLower(s))
}

// ExtractKeywords tokenizes free text into at most maxKeywordsPerPaper
// distinct keywords: lowercased, punctuation stripped, stop words and
// short tokens discarded, first-seen order preserved.
func ExtractKeywords(text string) []string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}

	var keywords []string
	seen := make(map[string]bool)
	for _, tok := range strings.Fields(b.String()) {
		if len(tok) < minTokenLength || stopWords[tok] || seen[tok] {
			continue
		}
		seen[tok] = true
		keywords = append(keywords, tok)
		if len(keywords) == maxKeywordsPerPaper {
			break
		}
	}
	return keywords
}
