package handlers

import (
	"net/http"

	"product-studio/internal/media"
	"product-studio/internal/request"
)

type variationsRequest struct {
	Source          request.Source           `json:"source"`
	Colors          []request.ColorSelection `json:"colors"`
	PreserveDetails bool                     `json:"preserve_details"`
}

// ColorVariations generates one recolored variant per selected swatch.
func (a *App) ColorVariations(w http.ResponseWriter, r *http.Request) {
	var req variationsRequest
	if err := decode(r, &req); err != nil {
		a.fail(w, err)
		return
	}
	src, err := a.singleSource(req.Source)
	if err != nil {
		a.fail(w, err)
		return
	}
	gens, err := a.Builder.ColorVariants(src, req.Colors, req.PreserveDetails)
	if err != nil {
		a.fail(w, err)
		return
	}
	a.runPanel(w, r, panelVariations, "Generating color variants", gens)
}

// ClearVariations removes the color variants, leaving other tools' output.
func (a *App) ClearVariations(w http.ResponseWriter, r *http.Request) {
	removed := a.History.ClearKind(media.KindVariant)
	a.json(w, http.StatusOK, map[string]int{"removed": removed})
}
