package handlers

import (
	"net/http"
	"strings"

	"product-studio/internal/media"
)

type uploadRequest struct {
	Name    string `json:"name"`
	Payload string `json:"payload"`
}

// Upload validates an image and seeds the history with it as an original.
func (a *App) Upload(w http.ResponseWriter, r *http.Request) {
	var req uploadRequest
	if err := decode(r, &req); err != nil {
		a.fail(w, err)
		return
	}
	width, height, err := media.ValidateImagePayload(req.Payload)
	if err != nil {
		a.fail(w, err)
		return
	}

	payload := req.Payload
	if !strings.HasPrefix(payload, "data:") {
		payload = media.DataURI("image/png", payload)
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = "Original"
	}

	item := media.NewItem(media.KindOriginal, payload, name, "")
	index, added := a.History.Append(item)
	a.json(w, http.StatusCreated, map[string]any{
		"item":   item,
		"index":  index,
		"added":  added,
		"width":  width,
		"height": height,
	})
}
