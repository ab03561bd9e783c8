// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// PaperRecord holds the metadata and citation links for one scholarly
// paper, as supplied by the acquisition pipeline. The engine only reads
// these records; it never mutates or persists them.
type PaperRecord struct {
	// ID is the unique paper identifier (e.g. an arXiv ID or DOI slug).
	ID string `json:"id" yaml:"id"`

	// Title is the paper title.
	Title string `json:"title" yaml:"title"`

	// Authors lists the paper authors in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// Year is the publication year. Zero means unknown.
	Year int `json:"year,omitempty" yaml:"year,omitempty"`

	// Venue is the journal or conference name. Empty means unknown.
	Venue string `json:"venue,omitempty" yaml:"venue,omitempty"`

	// Abstract is the paper abstract. May be empty.
	Abstract string `json:"abstract,omitempty" yaml:"abstract,omitempty"`

	// CitationCount is how many times the paper has been cited.
	CitationCount int `json:"citation_count" yaml:"citation_count"`

	// ReferenceIDs lists the IDs of papers this paper cites.
	ReferenceIDs []string `json:"reference_ids,omitempty" yaml:"reference_ids,omitempty"`

	// CitedByIDs lists the IDs of papers that cite this paper.
	CitedByIDs []string `json:"cited_by_ids,omitempty" yaml:"cited_by_ids,omitempty"`
}
