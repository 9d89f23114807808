package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"portfolio/logger"
	"portfolio/models"
	"portfolio/services"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// ChatHandler forwards a visitor message to the completion endpoint.
// A blank message is ignored with 204 No Content.
func (c *Controller) ChatHandler(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	if strings.TrimSpace(req.Message) == "" {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	sessionID, conv := c.sessions.GetOrCreate(req.SessionID)
	ctx, _ := logger.WithSession(r.Context(), sessionID)

	// A second request for a busy session is refused rather than queued, so
	// no caller waits past the server's write timeout. The reply is appended
	// to the transcript even if the caller goes away.
	reply, ok, err := c.chatbot.TrySubmit(context.WithoutCancel(ctx), conv, req.Message)
	if err != nil {
		writeServiceError(w, r.WithContext(ctx), err)
		return
	}
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	status := models.StatusSuccess
	if reply.Failed {
		status = models.StatusFallback
	}

	writeJSON(w, http.StatusOK, models.ChatResponse{
		BaseResponse: models.NewBaseResponse(status),
		SessionID:    sessionID,
		Message:      reply.Turn.Content,
		HTML:         renderReply(ctx, reply),
	})
}

// HistoryHandler returns a session's transcript
func (c *Controller) HistoryHandler(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["session"]

	conv, ok := c.sessions.Get(sessionID)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown session")
		return
	}

	writeJSON(w, http.StatusOK, models.HistoryResponse{
		BaseResponse: models.NewBaseResponse(models.StatusSuccess),
		SessionID:    sessionID,
		Turns:        conv.Turns(),
	})
}

// renderReply converts a successful reply to HTML; the fallback stays plain text
func renderReply(ctx context.Context, reply services.Reply) string {
	if reply.Failed {
		return ""
	}
	html, err := services.RenderMarkdown(reply.Turn.Content)
	if err != nil {
		logger.FromContext(ctx).Warn("rendering reply markdown", zap.Error(err))
		return ""
	}
	return html
}
