package handlers

import (
	"net/http"

	"product-studio/internal/request"
)

type basicEditRequest struct {
	Source    request.Source `json:"source"`
	Operation string         `json:"operation"`
	Value     float64        `json:"value"`
}

// BasicEdit forwards a deterministic adjustment (brightness, contrast,
// saturation, rotate, flip) to the remote endpoint.
func (a *App) BasicEdit(w http.ResponseWriter, r *http.Request) {
	var req basicEditRequest
	if err := decode(r, &req); err != nil {
		a.fail(w, err)
		return
	}
	src, err := a.singleSource(req.Source)
	if err != nil {
		a.fail(w, err)
		return
	}
	gen, err := a.Builder.BasicEdit(src, req.Operation, req.Value)
	if err != nil {
		a.fail(w, err)
		return
	}
	a.runPanel(w, r, panelBasicEdits, gen.Label, []request.Generation{gen})
}
