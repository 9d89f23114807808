package controllers

import (
	"net/http"
	"time"
)

// HealthHandler reports the state of every component
func (c *Controller) HealthHandler(w http.ResponseWriter, r *http.Request) {
	health := map[string]interface{}{
		"status":   "healthy",
		"uptime":   time.Since(c.startTime).String(),
		"chatbot":  c.chatbot.GetStatus(),
		"sessions": c.sessions.Len(),
		"search": map[string]interface{}{
			"sections": c.index.Len(),
			"semantic": c.semantic != nil,
		},
		"endpoints": []string{
			"/api/search", "/api/search/semantic", "/api/chat", "/api/chat/{session}/history",
			"/api/theme", "/api/theme/toggle", "/api/sections/active", "/ws", "/health", "/metrics",
		},
	}
	if c.discordService != nil {
		health["discord"] = c.discordService.GetStatus()
	}

	writeJSON(w, http.StatusOK, health)
}
