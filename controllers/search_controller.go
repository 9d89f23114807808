package controllers

import (
	"net/http"
	"strconv"

	"portfolio/logger"
	"portfolio/metrics"
	"portfolio/models"
	"portfolio/services"

	"go.uber.org/zap"
)

const maxRelatedLimit = 20

// SearchHandler filters the section index by the q parameter
func (c *Controller) SearchHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	results := c.index.Search(query)
	state := services.StateFor(query, results)
	metrics.ObserveSearch(string(state))

	writeJSON(w, http.StatusOK, models.SearchResponse{
		BaseResponse: models.NewBaseResponse(models.StatusSuccess),
		Query:        query,
		State:        state,
		Results:      results,
		Count:        len(results),
	})
}

// SemanticHandler returns sections related to q by embedding similarity
func (c *Controller) SemanticHandler(w http.ResponseWriter, r *http.Request) {
	if c.semantic == nil {
		writeServiceError(w, r, services.ErrSemanticDisabled)
		return
	}

	query := r.URL.Query().Get("q")
	limit := 3
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > maxRelatedLimit {
			writeError(w, http.StatusBadRequest, "limit must be between 1 and 20")
			return
		}
		limit = n
	}

	results, err := c.semantic.Related(r.Context(), query, limit)
	if err != nil {
		logger.FromContext(r.Context()).Warn("semantic search failed", zap.Error(err))
		writeError(w, http.StatusBadGateway, "embedding provider unavailable")
		return
	}

	writeJSON(w, http.StatusOK, models.RelatedResponse{
		BaseResponse: models.NewBaseResponse(models.StatusSuccess),
		Query:        query,
		Results:      results,
		Count:        len(results),
	})
}
