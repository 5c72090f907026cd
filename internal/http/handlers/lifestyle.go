package handlers

import (
	"net/http"

	"product-studio/internal/batch"
	"product-studio/internal/media"
	"product-studio/internal/request"
)

type lifestyleRequest struct {
	Sources    []request.Source `json:"sources"`
	CategoryID string           `json:"category_id"`
	StyleID    string           `json:"style_id"`
	Scenarios  []string         `json:"scenarios"`
}

// Lifestyle stages every selected variant in the chosen scenarios.
func (a *App) Lifestyle(w http.ResponseWriter, r *http.Request) {
	var req lifestyleRequest
	if err := decode(r, &req); err != nil {
		a.fail(w, err)
		return
	}
	sources, err := batch.SourcesOrOriginal(req.Sources, a.History)
	if err != nil {
		a.fail(w, err)
		return
	}
	gens, err := a.Builder.Lifestyle(sources, req.CategoryID, req.StyleID, req.Scenarios)
	if err != nil {
		a.fail(w, err)
		return
	}
	a.runPanel(w, r, panelLifestyle, "Shooting lifestyle scenarios", gens)
}

// ClearLifestyle removes the lifestyle shots.
func (a *App) ClearLifestyle(w http.ResponseWriter, r *http.Request) {
	removed := a.History.ClearKind(media.KindLifestyle)
	a.json(w, http.StatusOK, map[string]int{"removed": removed})
}
