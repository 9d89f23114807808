package controllers

import (
	"encoding/json"
	"net/http"

	"portfolio/models"
	"portfolio/services"
)

// ActiveSectionHandler computes which nav link to highlight for a scroll position
func (c *Controller) ActiveSectionHandler(w http.ResponseWriter, r *http.Request) {
	var req models.ActiveSectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	offset := services.DefaultHighlightOffset
	if req.Offset != nil {
		offset = *req.Offset
	}

	current := services.ActiveSection(req.Sections, req.ScrollY, offset)
	writeJSON(w, http.StatusOK, models.ActiveSectionResponse{
		BaseResponse: models.NewBaseResponse(models.StatusSuccess),
		Current:      current,
		Links:        services.NavLinks(req.Sections, current),
	})
}
