package services

import (
	"fmt"
	"sync"

	"portfolio/metrics"
	"portfolio/models"
)

// SearchView is the page surface the search widget renders into
type SearchView interface {
	// RenderResults replaces the result list. The "no results" indicator
	// is shown only when state.ShowsEmptyIndicator() is true.
	RenderResults(query string, results []models.SearchEntry, state models.SearchState)
	// Dismiss hides the search surface and clears its input.
	Dismiss()
	// ScrollTo moves the viewport to the section anchor (smoothly, where the view can).
	ScrollTo(anchor string)
}

// SearchWidget owns the live query state of one search surface
type SearchWidget struct {
	index *SearchIndex
	view  SearchView

	mu      sync.Mutex
	query   string
	results []models.SearchEntry
	state   models.SearchState
}

// NewSearchWidget creates a widget over the index rendering into view
func NewSearchWidget(index *SearchIndex, view SearchView) *SearchWidget {
	return &SearchWidget{
		index:   index,
		view:    view,
		results: []models.SearchEntry{},
		state:   models.SearchIdle,
	}
}

// Input handles a keystroke: recompute results and re-render
func (w *SearchWidget) Input(query string) []models.SearchEntry {
	results := w.index.Search(query)
	state := StateFor(query, results)

	w.mu.Lock()
	w.query = query
	w.results = results
	w.state = state
	w.mu.Unlock()

	metrics.ObserveSearch(string(state))
	w.view.RenderResults(query, results, state)
	return results
}

// Select dismisses the search surface, resets the query and scrolls to the entry
func (w *SearchWidget) Select(anchor string) error {
	entry, ok := w.index.Lookup(anchor)
	if !ok {
		return fmt.Errorf("select %q: %w", anchor, ErrUnknownAnchor)
	}

	w.mu.Lock()
	w.query = ""
	w.results = []models.SearchEntry{}
	w.state = models.SearchIdle
	w.mu.Unlock()

	w.view.Dismiss()
	w.view.ScrollTo(entry.Anchor)
	return nil
}

// Query returns the current query text
func (w *SearchWidget) Query() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.query
}

// State returns the current result state
func (w *SearchWidget) State() models.SearchState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Results returns the results of the last query
func (w *SearchWidget) Results() []models.SearchEntry {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]models.SearchEntry, len(w.results))
	copy(out, w.results)
	return out
}
