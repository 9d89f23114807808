package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"portfolio/models"

	openai "github.com/sashabaranov/go-openai"
)

// Completer produces the next assistant message for a transcript
type Completer interface {
	// Complete sends the whole transcript and returns the first choice's text.
	Complete(ctx context.Context, turns []models.ConversationTurn) (string, error)
	// Available reports whether the backend is configured and reachable.
	Available(ctx context.Context) bool
	// Name identifies the provider in logs and metrics.
	Name() string
}

// CompletionConfig holds the settings shared by OpenAI-compatible backends
type CompletionConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	MaxTokens   int
	Timeout     time.Duration // 0 disables the client timeout
}

// OpenAICompleter calls an OpenAI-compatible chat completions endpoint
type OpenAICompleter struct {
	client      *openai.Client
	name        string
	baseURL     string
	apiKey      string
	model       string
	temperature float32
	maxTokens   int
	timeout     time.Duration
	requireKey  bool
	probe       bool
}

// NewChatGPTCompleter creates the hosted ChatGPT backend. It is available
// as soon as an API key is configured.
func NewChatGPTCompleter(cfg CompletionConfig) *OpenAICompleter {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Model == "" {
		cfg.Model = openai.GPT3Dot5Turbo
	}
	c := newOpenAICompleter(string(models.ProviderChatGPT), cfg)
	c.requireKey = true
	return c
}

func newOpenAICompleter(name string, cfg CompletionConfig) *OpenAICompleter {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &OpenAICompleter{
		client:      openai.NewClientWithConfig(clientCfg),
		name:        name,
		baseURL:     clientCfg.BaseURL,
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		timeout:     cfg.Timeout,
	}
}

// Complete implements Completer
func (c *OpenAICompleter) Complete(ctx context.Context, turns []models.ConversationTurn) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(turns))
	for _, turn := range turns {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    string(turn.Role),
			Content: turn.Content,
		})
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("%s chat completion: %w", c.name, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%s chat completion: %w", c.name, ErrNoChoices)
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// Available implements Completer
func (c *OpenAICompleter) Available(ctx context.Context) bool {
	if c.requireKey && c.apiKey == "" {
		return false
	}
	if !c.probe {
		return true
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	_, err := c.client.ListModels(ctx)
	return err == nil
}

// Name implements Completer
func (c *OpenAICompleter) Name() string {
	return c.name
}

// Model returns the configured model
func (c *OpenAICompleter) Model() string {
	return c.model
}

// GetStatus returns the configuration of the backend for the health endpoint
func (c *OpenAICompleter) GetStatus() map[string]interface{} {
	status := map[string]interface{}{
		"base_url":   c.baseURL,
		"model":      c.model,
		"timeout":    c.timeout.String(),
		"max_tokens": c.maxTokens,
	}

	if c.requireKey {
		if c.apiKey == "" {
			status["status"] = "unavailable"
			status["error"] = "OPENAI_API_KEY not set"
		} else {
			status["status"] = "configured"
			status["api_key"] = maskKey(c.apiKey)
		}
	}

	return status
}

// maskKey hides all but the ends of a credential
func maskKey(key string) string {
	if len(key) > 8 {
		return key[:4] + "..." + key[len(key)-4:]
	}
	return "***"
}
