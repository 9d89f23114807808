package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes environment overrides: PORTFOLIO_CHAT__MODEL -> chat.model.
const EnvPrefix = "PORTFOLIO_"

// Load reads configuration from the given YAML file, then overlays
// PORTFOLIO_* environment variables and the conventional provider
// variables (OPENAI_API_KEY, DISCORD_BOT_TOKEN, PORT, ...).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	applyConventionalEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// envKey maps PORTFOLIO_SERVER__ALLOWED_ORIGINS to server.allowed_origins.
func envKey(s string) string {
	s = strings.TrimPrefix(s, EnvPrefix)
	return strings.ReplaceAll(strings.ToLower(s), "__", ".")
}

// applyConventionalEnv fills unset values from the variable names the
// OpenAI and Discord tooling already use.
func applyConventionalEnv(cfg *Config) {
	if cfg.Chat.APIKey == "" {
		cfg.Chat.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" && os.Getenv(EnvPrefix+"CHAT__BASE_URL") == "" {
		cfg.Chat.BaseURL = v
	}
	if v := os.Getenv("OPENAI_MODEL"); v != "" && os.Getenv(EnvPrefix+"CHAT__MODEL") == "" {
		cfg.Chat.Model = v
	}
	if cfg.Search.Semantic.APIKey == "" {
		cfg.Search.Semantic.APIKey = cfg.Chat.APIKey
	}
	if cfg.Discord.Token == "" {
		cfg.Discord.Token = os.Getenv("DISCORD_BOT_TOKEN")
	}
	if v := os.Getenv("DISCORD_COMMAND_PREFIX"); v != "" {
		cfg.Discord.CommandPrefix = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(strings.TrimPrefix(v, ":")); err == nil {
			cfg.Server.Port = port
		}
	}
}

var (
	validEnvs           = map[string]bool{"local": true, "dev": true, "prod": true, "test": true}
	validChatProviders  = map[string]bool{"auto": true, "chatgpt": true, "local": true, "dummy": true}
	validThemeStores    = map[string]bool{"memory": true, "redis": true, "sqlite": true}
	validEmbedProviders = map[string]bool{"openai": true, "ollama": true}
)

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if !validEnvs[c.Env] {
		return fmt.Errorf("invalid env %q: must be one of local, dev, prod, test", c.Env)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if !validChatProviders[c.Chat.Provider] {
		return fmt.Errorf("invalid chat.provider %q: must be one of auto, chatgpt, local, dummy", c.Chat.Provider)
	}
	if c.Chat.Temperature < 0 || c.Chat.Temperature > 2 {
		return fmt.Errorf("chat.temperature must be between 0 and 2, got %g", c.Chat.Temperature)
	}
	if c.Chat.MaxTokens <= 0 {
		return fmt.Errorf("chat.max_tokens must be positive, got %d", c.Chat.MaxTokens)
	}
	if c.Chat.TimeoutSec < 0 {
		return fmt.Errorf("chat.timeout_sec must be non-negative")
	}
	if c.Server.WriteTimeoutSec > 0 && c.Chat.TimeoutSec > 0 && c.Server.WriteTimeoutSec <= c.Chat.TimeoutSec {
		return fmt.Errorf("server.write_timeout_sec (%d) must exceed chat.timeout_sec (%d)",
			c.Server.WriteTimeoutSec, c.Chat.TimeoutSec)
	}
	if !validThemeStores[c.Theme.Store] {
		return fmt.Errorf("invalid theme.store %q: must be one of memory, redis, sqlite", c.Theme.Store)
	}
	if c.Theme.Store == "redis" && len(c.Theme.RedisAddrs) == 0 {
		return fmt.Errorf("theme.redis_addrs is required for the redis store")
	}
	if c.Theme.Store == "sqlite" && c.Theme.SQLitePath == "" {
		return fmt.Errorf("theme.sqlite_path is required for the sqlite store")
	}
	if c.Search.Semantic.Enabled && !validEmbedProviders[c.Search.Semantic.Provider] {
		return fmt.Errorf("invalid search.semantic.provider %q: must be openai or ollama", c.Search.Semantic.Provider)
	}
	if c.Discord.Enabled && strings.TrimSpace(c.Discord.CommandPrefix) == "" {
		return fmt.Errorf("discord.command_prefix is required when discord is enabled")
	}
	return nil
}
