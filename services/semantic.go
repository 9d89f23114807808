package services

import (
	"context"
	"fmt"
	"strings"

	"portfolio/models"

	chromem "github.com/philippgille/chromem-go"
	"go.uber.org/zap"
)

const sectionsCollection = "sections"

// EmbeddingConfig selects the embedding backend for related-section search
type EmbeddingConfig struct {
	Provider string // openai, ollama
	Model    string
	BaseURL  string
	APIKey   string
}

// EmbeddingFunc builds a chromem embedding function for the configured provider
func EmbeddingFunc(cfg EmbeddingConfig) (chromem.EmbeddingFunc, error) {
	switch cfg.Provider {
	case "ollama":
		model := cfg.Model
		if model == "" {
			model = "nomic-embed-text"
		}
		// chromem wants the Ollama API root, not the OpenAI-compatible /v1 path
		baseURL := strings.TrimSuffix(strings.TrimSuffix(cfg.BaseURL, "/"), "/v1")
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		return chromem.NewEmbeddingFuncOllama(model, baseURL+"/api"), nil
	case "openai", "":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("openai embeddings need an API key")
		}
		model := cfg.Model
		if model == "" {
			model = string(chromem.EmbeddingModelOpenAI3Small)
		}
		if cfg.BaseURL != "" {
			return chromem.NewEmbeddingFuncOpenAICompat(cfg.BaseURL, cfg.APIKey, model, nil), nil
		}
		return chromem.NewEmbeddingFuncOpenAI(cfg.APIKey, chromem.EmbeddingModelOpenAI(model)), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", cfg.Provider)
	}
}

// SemanticIndex finds sections related to free text by embedding similarity.
// It complements the substring filter, it does not replace it.
type SemanticIndex struct {
	collection *chromem.Collection
	index      *SearchIndex
	logger     *zap.Logger
}

// NewSemanticIndex embeds every entry of index into an in-memory collection
func NewSemanticIndex(ctx context.Context, index *SearchIndex, ef chromem.EmbeddingFunc, logger *zap.Logger) (*SemanticIndex, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if index.Len() == 0 {
		return nil, ErrEmptyIndex
	}

	db := chromem.NewDB()
	col, err := db.GetOrCreateCollection(sectionsCollection, nil, ef)
	if err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}

	entries := index.Entries()
	docs := make([]chromem.Document, len(entries))
	for i, e := range entries {
		docs[i] = chromem.Document{
			ID:       e.Anchor,
			Content:  e.Title + "\n" + e.Body,
			Metadata: map[string]string{"title": e.Title},
		}
	}
	if err := col.AddDocuments(ctx, docs, 1); err != nil {
		return nil, fmt.Errorf("embedding sections: %w", err)
	}

	logger.Info("semantic index ready", zap.Int("sections", col.Count()))
	return &SemanticIndex{collection: col, index: index, logger: logger}, nil
}

// Related returns up to limit sections ordered by similarity to query.
// A blank query returns no sections.
func (s *SemanticIndex) Related(ctx context.Context, query string, limit int) ([]models.RelatedSection, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.RelatedSection{}, nil
	}
	if limit <= 0 {
		limit = 3
	}

	// chromem-go requires nResults <= collection size
	if count := s.collection.Count(); limit > count {
		limit = count
	}

	results, err := s.collection.Query(ctx, query, limit, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("chromem query: %w", err)
	}

	related := make([]models.RelatedSection, 0, len(results))
	for _, r := range results {
		entry, ok := s.index.Lookup(r.ID)
		if !ok {
			s.logger.Warn("semantic result without index entry", zap.String("anchor", r.ID))
			continue
		}
		related = append(related, models.RelatedSection{SearchEntry: entry, Similarity: r.Similarity})
	}
	return related, nil
}

// Len returns the number of embedded sections
func (s *SemanticIndex) Len() int {
	return s.collection.Count()
}
