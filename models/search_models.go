package models

// SearchEntry is one page-section summary in the search index.
// Entries are identified by their anchor and never change after loading.
type SearchEntry struct {
	Title  string `json:"title" yaml:"title"`
	Body   string `json:"body" yaml:"body"`
	Anchor string `json:"anchor" yaml:"anchor"`
}

// SearchState distinguishes "nothing typed yet" from "typed, nothing found"
type SearchState string

const (
	SearchIdle      SearchState = "idle"
	SearchResults   SearchState = "results"
	SearchNoResults SearchState = "no_results"
)

// ShowsEmptyIndicator reports whether the "no results" indicator should be visible
func (s SearchState) ShowsEmptyIndicator() bool {
	return s == SearchNoResults
}

// SearchResponse represents the search endpoint response
type SearchResponse struct {
	BaseResponse
	Query   string        `json:"query"`
	State   SearchState   `json:"state"`
	Results []SearchEntry `json:"results"`
	Count   int           `json:"count"`
}

// RelatedSection is a semantic search hit
type RelatedSection struct {
	SearchEntry
	Similarity float32 `json:"similarity"`
}

// RelatedResponse represents the semantic search endpoint response
type RelatedResponse struct {
	BaseResponse
	Query   string           `json:"query"`
	Results []RelatedSection `json:"results"`
	Count   int              `json:"count"`
}
