package controllers

import (
	"net/http"

	"portfolio/metrics"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

// NewRouter wires the API routes. staticDir, when set, serves the
// portfolio page itself.
func NewRouter(c *Controller, staticDir string) http.Handler {
	r := mux.NewRouter()
	r.Use(metrics.Middleware)
	r.Use(c.requestLogger)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/search", c.SearchHandler).Methods("GET")
	api.HandleFunc("/search/semantic", c.SemanticHandler).Methods("GET")
	api.HandleFunc("/chat", c.ChatHandler).Methods("POST")
	api.HandleFunc("/chat/{session}/history", c.HistoryHandler).Methods("GET")
	api.HandleFunc("/theme", c.GetThemeHandler).Methods("GET")
	api.HandleFunc("/theme", c.PutThemeHandler).Methods("PUT")
	api.HandleFunc("/theme/toggle", c.ToggleThemeHandler).Methods("POST")
	api.HandleFunc("/sections/active", c.ActiveSectionHandler).Methods("POST")

	r.HandleFunc("/ws", c.WebSocketHandler).Methods("GET")
	r.HandleFunc("/health", c.HealthHandler).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	if staticDir != "" {
		r.PathPrefix("/").Handler(http.FileServer(http.Dir(staticDir))).Methods("GET")
	}

	origins := c.allowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}).Handler(r)
}
