package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"portfolio/controllers"
	"portfolio/services"
)

var withDiscord bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP and WebSocket API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}
		defer log.Sync() //nolint:errcheck

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		index, err := buildIndex(cfg)
		if err != nil {
			return fmt.Errorf("loading search index: %w", err)
		}
		bot := buildChatbot(ctx, cfg, log)
		themes, err := buildThemeService(cfg)
		if err != nil {
			return err
		}
		defer themes.Close()

		var discord *services.DiscordService
		if withDiscord || cfg.Discord.Enabled {
			discord = services.NewDiscordService(services.DiscordConfig{
				Token:         cfg.Discord.Token,
				CommandPrefix: cfg.Discord.CommandPrefix,
				SearchPrefix:  cfg.Discord.SearchPrefix,
			}, bot, index, log)
		}

		ctrl := controllers.NewController(controllers.Deps{
			Index:          index,
			Semantic:       buildSemantic(ctx, cfg, index, log),
			Chatbot:        bot,
			Sessions:       services.NewSessionStore("web", bot.NewConversation),
			Themes:         themes,
			Discord:        discord,
			Logger:         log,
			AllowedOrigins: cfg.Server.AllowedOrigins,
		})
		if err := ctrl.StartServices(); err != nil {
			log.Warn("continuing without discord", zap.Error(err))
		}
		defer ctrl.StopServices() //nolint:errcheck

		srv := &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
			Handler:      controllers.NewRouter(ctrl, cfg.Server.StaticDir),
			ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSec) * time.Second,
			WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSec) * time.Second,
		}

		go pruneSessions(ctx, ctrl.Sessions(), time.Duration(cfg.Server.SessionIdleMin)*time.Minute, log)

		errCh := make(chan error, 1)
		go func() {
			log.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err, ok := <-errCh:
			if ok {
				return fmt.Errorf("server: %w", err)
			}
			return nil
		case <-ctx.Done():
		}

		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeoutSec)*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

func pruneSessions(ctx context.Context, sessions *services.SessionStore, maxIdle time.Duration, log *zap.Logger) {
	if maxIdle <= 0 {
		return
	}
	ticker := time.NewTicker(maxIdle / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := sessions.Prune(maxIdle); n > 0 {
				log.Debug("pruned idle chat sessions", zap.Int("removed", n))
			}
		}
	}
}

func init() {
	serveCmd.Flags().BoolVar(&withDiscord, "discord", false, "also run the Discord bot")
	rootCmd.AddCommand(serveCmd)
}
