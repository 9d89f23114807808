package services

import (
	"portfolio/models"
)

// NewLocalCompleter creates a backend for a local model server such as
// Ollama, through its OpenAI-compatible API. No key is needed; it counts
// as available only when the server answers a model listing.
func NewLocalCompleter(cfg CompletionConfig) *OpenAICompleter {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:11434/v1" // Default Ollama URL
	}
	if cfg.Model == "" {
		cfg.Model = "tinyllama:latest"
	}

	c := newOpenAICompleter(string(models.ProviderLocal), cfg)
	c.probe = true
	return c
}
