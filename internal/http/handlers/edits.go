package handlers

import (
	"net/http"

	"product-studio/internal/request"
)

type editRequest struct {
	Source   request.Source `json:"source"`
	PresetID string         `json:"preset_id"`
	Prompt   string         `json:"prompt"`
	Strength float64        `json:"strength"`
}

// AIEdit applies a preset or custom-prompt edit to the selected image.
func (a *App) AIEdit(w http.ResponseWriter, r *http.Request) {
	var req editRequest
	if err := decode(r, &req); err != nil {
		a.fail(w, err)
		return
	}
	src, err := a.singleSource(req.Source)
	if err != nil {
		a.fail(w, err)
		return
	}
	gen, err := a.Builder.Edit(src, req.PresetID, req.Prompt, req.Strength)
	if err != nil {
		a.fail(w, err)
		return
	}
	a.runPanel(w, r, panelEdits, gen.Label, []request.Generation{gen})
}
