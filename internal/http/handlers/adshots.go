package handlers

import (
	"net/http"

	"product-studio/internal/batch"
	"product-studio/internal/media"
	"product-studio/internal/request"
)

type adShotsRequest struct {
	Sources []request.Source `json:"sources"`
	StyleID string           `json:"style_id"`
	Prompt  string           `json:"prompt"`
}

// AdShots renders a styled advertisement for each selected variant, or for
// the uploaded original when nothing is selected.
func (a *App) AdShots(w http.ResponseWriter, r *http.Request) {
	var req adShotsRequest
	if err := decode(r, &req); err != nil {
		a.fail(w, err)
		return
	}
	sources, err := batch.SourcesOrOriginal(req.Sources, a.History)
	if err != nil {
		a.fail(w, err)
		return
	}
	gens, err := a.Builder.AdShots(sources, req.StyleID, req.Prompt)
	if err != nil {
		a.fail(w, err)
		return
	}
	a.runPanel(w, r, panelAdShots, "Creating advertisement shots", gens)
}

// ClearAdShots removes the generated advertisements.
func (a *App) ClearAdShots(w http.ResponseWriter, r *http.Request) {
	removed := a.History.ClearKind(media.KindAdShot)
	a.json(w, http.StatusOK, map[string]int{"removed": removed})
}
