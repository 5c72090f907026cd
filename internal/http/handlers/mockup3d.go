package handlers

import (
	"net/http"

	"product-studio/internal/request"
)

type mockupRequest struct {
	Source   request.Source `json:"source"`
	Model    string         `json:"model"`
	Angle    string         `json:"angle"`
	Lighting string         `json:"lighting"`
}

// Mockup3D renders the image onto a device mockup.
func (a *App) Mockup3D(w http.ResponseWriter, r *http.Request) {
	var req mockupRequest
	if err := decode(r, &req); err != nil {
		a.fail(w, err)
		return
	}
	src, err := a.singleSource(req.Source)
	if err != nil {
		a.fail(w, err)
		return
	}
	gen, err := a.Builder.Mockup3D(src, req.Model, req.Angle, req.Lighting)
	if err != nil {
		a.fail(w, err)
		return
	}
	a.runPanel(w, r, panelMockups, gen.Label, []request.Generation{gen})
}
