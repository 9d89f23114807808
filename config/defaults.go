package config

// DefaultPath is where the CLI looks for a config file.
const DefaultPath = "portfolio.yml"

// DefaultConfig returns a Config with every field set to its default.
func DefaultConfig() *Config {
	return &Config{
		Env: "local",
		Server: ServerConfig{
			Port:               8080,
			ReadTimeoutSec:     10,
			WriteTimeoutSec:    60,
			ShutdownTimeoutSec: 10,
			AllowedOrigins:     []string{"*"},
			SessionIdleMin:     60,
		},
		Search: SearchConfig{
			Semantic: SemanticConfig{
				Provider: "openai",
				Model:    "text-embedding-3-small",
			},
		},
		Chat: ChatConfig{
			Provider:     "auto",
			BaseURL:      "https://api.openai.com/v1",
			Model:        "gpt-3.5-turbo",
			LocalBaseURL: "http://localhost:11434/v1",
			LocalModel:   "tinyllama:latest",
			Temperature:  0.7,
			MaxTokens:    150,
			TimeoutSec:   30,
		},
		Theme: ThemeConfig{
			Store:      "memory",
			KeyPrefix:  "portfolio:",
			SQLitePath: "portfolio.db",
		},
		Discord: DiscordConfig{
			CommandPrefix: "!chat ",
			SearchPrefix:  "!search ",
		},
	}
}
