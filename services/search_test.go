package services

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"portfolio/models"
)

var skillsOnly = []models.SearchEntry{
	{Title: "Skills", Body: "html css javascript", Anchor: "#skills"},
}

func TestSearch_EmptyQuery(t *testing.T) {
	index := DefaultIndex().Entries()
	for _, q := range []string{"", " ", "\t\n", "   "} {
		got := Search(q, index)
		if got == nil {
			t.Fatalf("Search(%q) returned nil, want empty slice", q)
		}
		if len(got) != 0 {
			t.Errorf("Search(%q) = %d entries, want 0", q, len(got))
		}
		if StateFor(q, got).ShowsEmptyIndicator() {
			t.Errorf("Search(%q): empty query must not show the no-results indicator", q)
		}
	}
}

func TestSearch_MatchPredicate(t *testing.T) {
	index := DefaultIndex().Entries()
	for _, q := range []string{"go", "CSS", "  projects ", "open", "zzz-not-there", "a"} {
		got := Search(q, index)
		norm := strings.ToLower(strings.TrimSpace(q))

		included := make(map[string]bool)
		for _, e := range got {
			included[e.Anchor] = true
			if !strings.Contains(strings.ToLower(e.Title), norm) && !strings.Contains(strings.ToLower(e.Body), norm) {
				t.Errorf("Search(%q) included %s which does not match", q, e.Anchor)
			}
		}
		for _, e := range index {
			matches := strings.Contains(strings.ToLower(e.Title), norm) || strings.Contains(strings.ToLower(e.Body), norm)
			if matches && !included[e.Anchor] {
				t.Errorf("Search(%q) missed matching entry %s", q, e.Anchor)
			}
		}
	}
}

func TestSearch_KeepsIndexOrder(t *testing.T) {
	index := DefaultIndex().Entries()
	got := Search("e", index)
	pos := make(map[string]int)
	for i, e := range index {
		pos[e.Anchor] = i
	}
	for i := 1; i < len(got); i++ {
		if pos[got[i-1].Anchor] >= pos[got[i].Anchor] {
			t.Fatalf("results out of index order: %s before %s", got[i-1].Anchor, got[i].Anchor)
		}
	}
}

func TestSearch_Idempotent(t *testing.T) {
	index := DefaultIndex().Entries()
	for _, q := range []string{"go", "and", "", "Contact"} {
		first := Search(q, index)
		second := Search(q, index)
		if !reflect.DeepEqual(first, second) {
			t.Errorf("Search(%q) not idempotent: %v vs %v", q, first, second)
		}
	}
}

func TestSearch_CaseInsensitive(t *testing.T) {
	got := Search("CSS", skillsOnly)
	if len(got) != 1 || got[0] != skillsOnly[0] {
		t.Fatalf("Search(CSS) = %v, want the skills entry", got)
	}
}

func TestStateFor(t *testing.T) {
	tests := []struct {
		query   string
		results []models.SearchEntry
		want    models.SearchState
	}{
		{"", nil, models.SearchIdle},
		{"  ", []models.SearchEntry{}, models.SearchIdle},
		{"rust", []models.SearchEntry{}, models.SearchNoResults},
		{"css", skillsOnly, models.SearchResults},
	}
	for _, tc := range tests {
		if got := StateFor(tc.query, tc.results); got != tc.want {
			t.Errorf("StateFor(%q) = %s, want %s", tc.query, got, tc.want)
		}
	}
}

func TestNewSearchIndex_Validation(t *testing.T) {
	tests := []struct {
		name    string
		entries []models.SearchEntry
	}{
		{"empty", nil},
		{"missing title", []models.SearchEntry{{Body: "x", Anchor: "#a"}}},
		{"anchor without hash", []models.SearchEntry{{Title: "A", Anchor: "a"}}},
		{"bare hash", []models.SearchEntry{{Title: "A", Anchor: "#"}}},
		{"duplicate anchor", []models.SearchEntry{{Title: "A", Anchor: "#a"}, {Title: "B", Anchor: "#a"}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewSearchIndex(tc.entries); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestSearchIndex_EntriesIsACopy(t *testing.T) {
	idx, err := NewSearchIndex(skillsOnly)
	if err != nil {
		t.Fatalf("NewSearchIndex: %v", err)
	}
	entries := idx.Entries()
	entries[0].Title = "changed"

	if e, _ := idx.Lookup("#skills"); e.Title != "Skills" {
		t.Fatalf("index mutated through Entries(): %q", e.Title)
	}
}

func TestLoadIndex(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "index.yml")
	content := `entries:
  - title: Skills
    body: html css javascript
    anchor: "#skills"
  - title: Contact
    body: email me
    anchor: "#contact"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	idx, err := LoadIndex(path)
	if err != nil {
		t.Fatalf("LoadIndex: %v", err)
	}
	if idx.Len() != 2 {
		t.Fatalf("Len = %d, want 2", idx.Len())
	}
	got := idx.Search("css")
	if len(got) != 1 || got[0].Anchor != "#skills" {
		t.Fatalf("Search(css) = %v", got)
	}
	if _, ok := idx.Lookup("#contact"); !ok {
		t.Fatal("Lookup(#contact) not found")
	}
}

func TestLoadIndex_Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadIndex(filepath.Join(dir, "missing.yml")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.yml")
	if err := os.WriteFile(bad, []byte("entries: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadIndex(bad); err == nil {
		t.Error("expected error for malformed yaml")
	}

	empty := filepath.Join(dir, "empty.yml")
	if err := os.WriteFile(empty, []byte("entries: []\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadIndex(empty); err == nil {
		t.Error("expected error for empty index")
	}
}
