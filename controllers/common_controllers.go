package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"portfolio/logger"
	"portfolio/models"
	"portfolio/services"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	visitorCookie = "portfolio_visitor"
	visitorMaxAge = 365 * 24 * time.Hour
)

// Deps are the services the HTTP layer is built from
type Deps struct {
	Index    *services.SearchIndex
	Semantic *services.SemanticIndex // nil when semantic search is disabled
	Chatbot  *services.Chatbot
	Sessions *services.SessionStore
	Themes   *services.ThemeService
	Discord  *services.DiscordService // nil when the Discord front-end is off
	Logger   *zap.Logger

	AllowedOrigins []string
}

// Controller handles the API requests
type Controller struct {
	index          *services.SearchIndex
	semantic       *services.SemanticIndex
	chatbot        *services.Chatbot
	sessions       *services.SessionStore
	themes         *services.ThemeService
	discordService *services.DiscordService
	logger         *zap.Logger
	allowedOrigins []string
	startTime      time.Time
}

// NewController creates a new controller instance
func NewController(d Deps) *Controller {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Sessions == nil {
		d.Sessions = services.NewSessionStore("web", d.Chatbot.NewConversation)
	}
	return &Controller{
		index:          d.Index,
		semantic:       d.Semantic,
		chatbot:        d.Chatbot,
		sessions:       d.Sessions,
		themes:         d.Themes,
		discordService: d.Discord,
		logger:         d.Logger,
		allowedOrigins: d.AllowedOrigins,
		startTime:      time.Now(),
	}
}

// StartServices starts the background front-ends (the Discord bot)
func (c *Controller) StartServices() error {
	if c.discordService == nil {
		c.logger.Info("discord service disabled")
		return nil
	}
	if !c.discordService.IsEnabled() {
		c.logger.Warn("discord service requested but not configured (missing bot token)")
		return nil
	}
	if err := c.discordService.Start(); err != nil {
		c.logger.Error("failed to start discord service", zap.Error(err))
		return err
	}
	return nil
}

// StopServices stops the background front-ends
func (c *Controller) StopServices() error {
	if c.discordService != nil {
		return c.discordService.Stop()
	}
	return nil
}

// Sessions exposes the session store so the server can prune it
func (c *Controller) Sessions() *services.SessionStore {
	return c.sessions
}

// requestLogger stores a request-scoped logger in the context
func (c *Controller) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)

		l := c.logger.With(
			zap.String("request_id", requestID),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
		)
		next.ServeHTTP(w, r.WithContext(logger.ContextWithLogger(r.Context(), l)))
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, models.ErrorResponse(message))
}

// writeServiceError maps service errors to HTTP statuses
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var storeErr *services.StoreError
	switch {
	case errors.Is(err, services.ErrInvalidTheme):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrUnknownAnchor):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrSubmitInFlight):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrSemanticDisabled):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	case errors.As(err, &storeErr):
		logger.FromContext(r.Context()).Error("store failure", zap.String("op", storeErr.Op), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "preference store unavailable")
	default:
		logger.FromContext(r.Context()).Error("request failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// visitorID returns the visitor cookie, issuing a new one when absent
func visitorID(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(visitorCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     visitorCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   int(visitorMaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}
