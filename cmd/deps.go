package cmd

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"portfolio/config"
	"portfolio/logger"
	"portfolio/models"
	"portfolio/services"
	"portfolio/utils"
)

// bootstrap loads .env files and the config, then builds the logger
func bootstrap() (*config.Config, *zap.Logger, error) {
	if err := utils.LoadEnvWithFallback(zap.NewNop()); err != nil {
		return nil, nil, fmt.Errorf("loading .env: %w", err)
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, err
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}

	log, err := logger.NewLogger(cfg.Env, cfg.Logging.Level)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

func buildIndex(cfg *config.Config) (*services.SearchIndex, error) {
	if cfg.Search.IndexPath == "" {
		return services.DefaultIndex(), nil
	}
	return services.LoadIndex(cfg.Search.IndexPath)
}

func buildChatbot(ctx context.Context, cfg *config.Config, log *zap.Logger) *services.Chatbot {
	timeout := time.Duration(cfg.Chat.TimeoutSec) * time.Second

	chatgpt := services.NewChatGPTCompleter(services.CompletionConfig{
		APIKey:      cfg.Chat.APIKey,
		BaseURL:     cfg.Chat.BaseURL,
		Model:       cfg.Chat.Model,
		Temperature: float32(cfg.Chat.Temperature),
		MaxTokens:   cfg.Chat.MaxTokens,
		Timeout:     timeout,
	})
	local := services.NewLocalCompleter(services.CompletionConfig{
		BaseURL:     cfg.Chat.LocalBaseURL,
		Model:       cfg.Chat.LocalModel,
		Temperature: float32(cfg.Chat.Temperature),
		MaxTokens:   cfg.Chat.MaxTokens,
		Timeout:     timeout,
	})

	return services.NewChatbot(ctx, services.ChatbotConfig{
		Preferred:       models.LLMProvider(cfg.Chat.Provider),
		SystemPrompt:    cfg.Chat.SystemPrompt,
		FallbackMessage: cfg.Chat.FallbackMessage,
		Logger:          log.Named("chatbot"),
	}, chatgpt, local)
}

func buildThemeService(cfg *config.Config) (*services.ThemeService, error) {
	var (
		store services.ThemeStore
		err   error
	)
	switch cfg.Theme.Store {
	case "redis":
		store, err = services.NewRedisThemeStore(cfg.Theme.RedisAddrs, cfg.Theme.RedisPass, cfg.Theme.KeyPrefix)
	case "sqlite":
		store, err = services.NewSQLiteThemeStore(cfg.Theme.SQLitePath)
	default:
		store = services.NewMemoryThemeStore()
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s theme store: %w", cfg.Theme.Store, err)
	}
	return services.NewThemeService(store), nil
}

// buildSemantic returns nil when semantic search is disabled or cannot start
func buildSemantic(ctx context.Context, cfg *config.Config, index *services.SearchIndex, log *zap.Logger) *services.SemanticIndex {
	sc := cfg.Search.Semantic
	if !sc.Enabled {
		return nil
	}

	ef, err := services.EmbeddingFunc(services.EmbeddingConfig{
		Provider: sc.Provider,
		Model:    sc.Model,
		BaseURL:  sc.BaseURL,
		APIKey:   sc.APIKey,
	})
	if err != nil {
		log.Warn("semantic search disabled", zap.Error(err))
		return nil
	}

	sem, err := services.NewSemanticIndex(ctx, index, ef, log.Named("semantic"))
	if err != nil {
		log.Warn("semantic search disabled", zap.Error(err))
		return nil
	}
	return sem
}
