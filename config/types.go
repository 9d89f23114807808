package config

// Config is the top-level service configuration, corresponding to portfolio.yml.
type Config struct {
	Env     string        `yaml:"env" koanf:"env"`
	Server  ServerConfig  `yaml:"server" koanf:"server"`
	Logging LoggingConfig `yaml:"logging" koanf:"logging"`
	Search  SearchConfig  `yaml:"search" koanf:"search"`
	Chat    ChatConfig    `yaml:"chat" koanf:"chat"`
	Theme   ThemeConfig   `yaml:"theme" koanf:"theme"`
	Discord DiscordConfig `yaml:"discord" koanf:"discord"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port               int      `yaml:"port" koanf:"port"`
	ReadTimeoutSec     int      `yaml:"read_timeout_sec" koanf:"read_timeout_sec"`
	WriteTimeoutSec    int      `yaml:"write_timeout_sec" koanf:"write_timeout_sec"`
	ShutdownTimeoutSec int      `yaml:"shutdown_timeout_sec" koanf:"shutdown_timeout_sec"`
	AllowedOrigins     []string `yaml:"allowed_origins" koanf:"allowed_origins"`
	StaticDir          string   `yaml:"static_dir" koanf:"static_dir"`
	SessionIdleMin     int      `yaml:"session_idle_min" koanf:"session_idle_min"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level" koanf:"level"` // debug, info, warn, error (default: determined by env)
}

// SearchConfig holds content index settings.
type SearchConfig struct {
	IndexPath string         `yaml:"index_path" koanf:"index_path"` // empty = built-in index
	Semantic  SemanticConfig `yaml:"semantic" koanf:"semantic"`
}

// SemanticConfig holds the optional embedding-backed related-section search.
type SemanticConfig struct {
	Enabled  bool   `yaml:"enabled" koanf:"enabled"`
	Provider string `yaml:"provider" koanf:"provider"` // openai, ollama
	Model    string `yaml:"model" koanf:"model"`
	BaseURL  string `yaml:"base_url" koanf:"base_url"`
	APIKey   string `yaml:"api_key" koanf:"api_key"`
}

// ChatConfig holds completion endpoint settings.
type ChatConfig struct {
	Provider        string  `yaml:"provider" koanf:"provider"` // auto, chatgpt, local, dummy
	APIKey          string  `yaml:"api_key" koanf:"api_key"`
	BaseURL         string  `yaml:"base_url" koanf:"base_url"`
	Model           string  `yaml:"model" koanf:"model"`
	LocalBaseURL    string  `yaml:"local_base_url" koanf:"local_base_url"`
	LocalModel      string  `yaml:"local_model" koanf:"local_model"`
	Temperature     float64 `yaml:"temperature" koanf:"temperature"`
	MaxTokens       int     `yaml:"max_tokens" koanf:"max_tokens"`
	TimeoutSec      int     `yaml:"timeout_sec" koanf:"timeout_sec"` // 0 = no client timeout
	SystemPrompt    string  `yaml:"system_prompt" koanf:"system_prompt"`
	FallbackMessage string  `yaml:"fallback_message" koanf:"fallback_message"`
}

// ThemeConfig selects where theme preferences are persisted.
type ThemeConfig struct {
	Store      string   `yaml:"store" koanf:"store"` // memory, redis, sqlite
	RedisAddrs []string `yaml:"redis_addrs" koanf:"redis_addrs"`
	RedisPass  string   `yaml:"redis_password" koanf:"redis_password"`
	KeyPrefix  string   `yaml:"key_prefix" koanf:"key_prefix"`
	SQLitePath string   `yaml:"sqlite_path" koanf:"sqlite_path"`
}

// DiscordConfig holds the Discord front-end settings.
type DiscordConfig struct {
	Enabled       bool   `yaml:"enabled" koanf:"enabled"`
	Token         string `yaml:"token" koanf:"token"`
	CommandPrefix string `yaml:"command_prefix" koanf:"command_prefix"`
	SearchPrefix  string `yaml:"search_prefix" koanf:"search_prefix"`
}
