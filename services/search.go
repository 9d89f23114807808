package services

import (
	"fmt"
	"os"
	"strings"

	"portfolio/models"

	"gopkg.in/yaml.v3"
)

// Search returns the entries whose title or body contains the query.
// The query is trimmed and compared case-insensitively; an empty query
// matches nothing. Results keep the index order.
func Search(query string, index []models.SearchEntry) []models.SearchEntry {
	results := []models.SearchEntry{}

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return results
	}

	for _, entry := range index {
		if strings.Contains(strings.ToLower(entry.Title), q) ||
			strings.Contains(strings.ToLower(entry.Body), q) {
			results = append(results, entry)
		}
	}
	return results
}

// StateFor classifies a query and its results for rendering
func StateFor(query string, results []models.SearchEntry) models.SearchState {
	switch {
	case strings.TrimSpace(query) == "":
		return models.SearchIdle
	case len(results) == 0:
		return models.SearchNoResults
	default:
		return models.SearchResults
	}
}

// SearchIndex is the immutable list of section summaries loaded at startup
type SearchIndex struct {
	entries  []models.SearchEntry
	byAnchor map[string]int
}

// indexFile is the on-disk layout of a content index
type indexFile struct {
	Entries []models.SearchEntry `yaml:"entries"`
}

// NewSearchIndex validates and copies entries into an index
func NewSearchIndex(entries []models.SearchEntry) (*SearchIndex, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyIndex
	}

	idx := &SearchIndex{
		entries:  make([]models.SearchEntry, len(entries)),
		byAnchor: make(map[string]int, len(entries)),
	}
	copy(idx.entries, entries)

	for i, entry := range idx.entries {
		if strings.TrimSpace(entry.Title) == "" {
			return nil, fmt.Errorf("entry %d: title is required", i)
		}
		if !strings.HasPrefix(entry.Anchor, "#") || len(entry.Anchor) < 2 {
			return nil, fmt.Errorf("entry %d (%s): anchor must look like #section, got %q", i, entry.Title, entry.Anchor)
		}
		if _, dup := idx.byAnchor[entry.Anchor]; dup {
			return nil, fmt.Errorf("entry %d (%s): duplicate anchor %s", i, entry.Title, entry.Anchor)
		}
		idx.byAnchor[entry.Anchor] = i
	}
	return idx, nil
}

// LoadIndex reads a YAML content index:
//
//	entries:
//	  - title: Skills
//	    body: html css javascript
//	    anchor: "#skills"
func LoadIndex(path string) (*SearchIndex, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read index %s: %w", path, err)
	}

	var f indexFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse index %s: %w", path, err)
	}

	idx, err := NewSearchIndex(f.Entries)
	if err != nil {
		return nil, fmt.Errorf("index %s: %w", path, err)
	}
	return idx, nil
}

// DefaultIndex returns the built-in portfolio index
func DefaultIndex() *SearchIndex {
	idx, err := NewSearchIndex(defaultEntries)
	if err != nil {
		panic(err)
	}
	return idx
}

var defaultEntries = []models.SearchEntry{
	{
		Title:  "About Me",
		Body:   "Software developer who enjoys building web applications, backend services and developer tools.",
		Anchor: "#about",
	},
	{
		Title:  "Skills",
		Body:   "HTML CSS JavaScript Go Python SQL Docker Git REST APIs responsive design",
		Anchor: "#skills",
	},
	{
		Title:  "Projects",
		Body:   "Portfolio website with an AI chat assistant, a task tracker, a weather dashboard and open source contributions.",
		Anchor: "#projects",
	},
	{
		Title:  "Experience",
		Body:   "Internships and freelance work on frontend and backend development, testing and deployment.",
		Anchor: "#experience",
	},
	{
		Title:  "Education",
		Body:   "Computer science degree, coursework in algorithms, databases, networking and operating systems.",
		Anchor: "#education",
	},
	{
		Title:  "Contact",
		Body:   "Email, GitHub and LinkedIn links. Open to collaboration and job opportunities.",
		Anchor: "#contact",
	},
}

// Search runs the query against the index
func (i *SearchIndex) Search(query string) []models.SearchEntry {
	return Search(query, i.entries)
}

// Lookup finds an entry by its anchor
func (i *SearchIndex) Lookup(anchor string) (models.SearchEntry, bool) {
	pos, ok := i.byAnchor[anchor]
	if !ok {
		return models.SearchEntry{}, false
	}
	return i.entries[pos], true
}

// Entries returns a copy of the index in insertion order
func (i *SearchIndex) Entries() []models.SearchEntry {
	out := make([]models.SearchEntry, len(i.entries))
	copy(out, i.entries)
	return out
}

// Len returns the number of entries
func (i *SearchIndex) Len() int {
	return len(i.entries)
}
