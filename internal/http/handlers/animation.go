package handlers

import (
	"net/http"

	"product-studio/internal/request"
)

type animationRequest struct {
	Source     request.Source         `json:"source"`
	Prompt     string                 `json:"prompt"`
	CategoryID string                 `json:"category_id"`
	StyleID    string                 `json:"style_id"`
	Knobs      request.AnimationKnobs `json:"knobs"`
}

// Animate produces a short product video from the selected image.
func (a *App) Animate(w http.ResponseWriter, r *http.Request) {
	var req animationRequest
	if err := decode(r, &req); err != nil {
		a.fail(w, err)
		return
	}
	src, err := a.singleSource(req.Source)
	if err != nil {
		a.fail(w, err)
		return
	}
	gen, err := a.Builder.Animation(src, req.Prompt, req.CategoryID, req.StyleID, req.Knobs)
	if err != nil {
		a.fail(w, err)
		return
	}
	a.runPanel(w, r, panelAnimation, gen.Label, []request.Generation{gen})
}
