package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.Chat.MaxTokens != 150 || cfg.Chat.Temperature != 0.7 {
		t.Errorf("unexpected sampling defaults: %+v", cfg.Chat)
	}
	if cfg.Theme.Store != "memory" {
		t.Errorf("expected memory theme store, got %q", cfg.Theme.Store)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatalf("missing file should fall back to defaults: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port, got %d", cfg.Server.Port)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.yml")
	data := `
env: prod
server:
  port: 9090
  allowed_origins: ["https://example.dev"]
chat:
  provider: dummy
  model: gpt-4o-mini
  max_tokens: 200
theme:
  store: sqlite
  sqlite_path: /tmp/themes.db
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Env != "prod" || cfg.Server.Port != 9090 {
		t.Errorf("file values not applied: env=%q port=%d", cfg.Env, cfg.Server.Port)
	}
	if len(cfg.Server.AllowedOrigins) != 1 || cfg.Server.AllowedOrigins[0] != "https://example.dev" {
		t.Errorf("unexpected origins: %v", cfg.Server.AllowedOrigins)
	}
	if cfg.Chat.Provider != "dummy" || cfg.Chat.Model != "gpt-4o-mini" || cfg.Chat.MaxTokens != 200 {
		t.Errorf("chat values not applied: %+v", cfg.Chat)
	}
	// untouched keys keep their defaults
	if cfg.Chat.Temperature != 0.7 {
		t.Errorf("expected default temperature, got %g", cfg.Chat.Temperature)
	}
	if cfg.Theme.Store != "sqlite" || cfg.Theme.SQLitePath != "/tmp/themes.db" {
		t.Errorf("theme values not applied: %+v", cfg.Theme)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("PORTFOLIO_CHAT__MODEL", "gpt-4o")
	t.Setenv("PORTFOLIO_SERVER__PORT", "7070")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("DISCORD_BOT_TOKEN", "discord-token")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Chat.Model != "gpt-4o" {
		t.Errorf("expected env model override, got %q", cfg.Chat.Model)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("expected env port override, got %d", cfg.Server.Port)
	}
	if cfg.Chat.APIKey != "sk-test" {
		t.Errorf("expected OPENAI_API_KEY fallback, got %q", cfg.Chat.APIKey)
	}
	if cfg.Search.Semantic.APIKey != "sk-test" {
		t.Errorf("semantic search should reuse the chat key, got %q", cfg.Search.Semantic.APIKey)
	}
	if cfg.Discord.Token != "discord-token" {
		t.Errorf("expected DISCORD_BOT_TOKEN fallback, got %q", cfg.Discord.Token)
	}
}

func TestEnvKey(t *testing.T) {
	tests := map[string]string{
		"PORTFOLIO_ENV":                     "env",
		"PORTFOLIO_CHAT__API_KEY":           "chat.api_key",
		"PORTFOLIO_SEARCH__SEMANTIC__MODEL": "search.semantic.model",
	}
	for in, want := range tests {
		if got := envKey(in); got != want {
			t.Errorf("envKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad env", func(c *Config) { c.Env = "staging" }},
		{"bad port", func(c *Config) { c.Server.Port = 0 }},
		{"bad provider", func(c *Config) { c.Chat.Provider = "claude" }},
		{"bad temperature", func(c *Config) { c.Chat.Temperature = 3 }},
		{"bad max tokens", func(c *Config) { c.Chat.MaxTokens = 0 }},
		{"negative timeout", func(c *Config) { c.Chat.TimeoutSec = -1 }},
		{"write timeout shorter than completion", func(c *Config) {
			c.Server.WriteTimeoutSec = 30
			c.Chat.TimeoutSec = 45
		}},
		{"bad theme store", func(c *Config) { c.Theme.Store = "etcd" }},
		{"redis without addrs", func(c *Config) { c.Theme.Store = "redis" }},
		{"bad embedder", func(c *Config) {
			c.Search.Semantic.Enabled = true
			c.Search.Semantic.Provider = "cohere"
		}},
		{"discord without prefix", func(c *Config) {
			c.Discord.Enabled = true
			c.Discord.CommandPrefix = " "
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}
