package controllers

import (
	"encoding/json"
	"net/http"

	"portfolio/models"
	"portfolio/services"
)

// GetThemeHandler returns the visitor's theme (dark until one is chosen)
func (c *Controller) GetThemeHandler(w http.ResponseWriter, r *http.Request) {
	theme, err := c.themes.Current(r.Context(), visitorID(w, r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeThemeResponse(w, theme)
}

// PutThemeHandler stores an explicit theme choice
func (c *Controller) PutThemeHandler(w http.ResponseWriter, r *http.Request) {
	var req models.ThemeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	theme, err := services.ParseTheme(req.Theme)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if err := c.themes.Set(r.Context(), visitorID(w, r), theme); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeThemeResponse(w, theme)
}

// ToggleThemeHandler flips between light and dark
func (c *Controller) ToggleThemeHandler(w http.ResponseWriter, r *http.Request) {
	theme, err := c.themes.Toggle(r.Context(), visitorID(w, r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeThemeResponse(w, theme)
}

func writeThemeResponse(w http.ResponseWriter, theme models.Theme) {
	writeJSON(w, http.StatusOK, models.ThemeResponse{
		BaseResponse: models.NewBaseResponse(models.StatusSuccess),
		Theme:        theme,
	})
}
