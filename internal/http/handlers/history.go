package handlers

import (
	"net/http"

	"product-studio/internal/domain"
)

// HistoryList returns the full session history and the displayed pointer.
func (a *App) HistoryList(w http.ResponseWriter, r *http.Request) {
	items := a.History.Items()
	_, index, ok := a.History.Current()
	resp := map[string]any{"items": items, "count": len(items)}
	if ok {
		resp["current"] = index
	}
	a.json(w, http.StatusOK, resp)
}

// HistoryClear wipes the whole session history.
func (a *App) HistoryClear(w http.ResponseWriter, r *http.Request) {
	a.History.Clear()
	a.json(w, http.StatusOK, map[string]string{"status": "cleared"})
}

type selectRequest struct {
	Index int `json:"index"`
}

// HistorySelect moves the displayed pointer to an absolute index.
func (a *App) HistorySelect(w http.ResponseWriter, r *http.Request) {
	var req selectRequest
	if err := decode(r, &req); err != nil {
		a.fail(w, err)
		return
	}
	if err := a.History.Select(req.Index); err != nil {
		a.fail(w, err)
		return
	}
	item, index, _ := a.History.Current()
	a.json(w, http.StatusOK, map[string]any{"current": index, "item": item})
}

type navigateRequest struct {
	Direction string `json:"direction"`
}

// HistoryNavigate steps the pointer with wraparound.
func (a *App) HistoryNavigate(w http.ResponseWriter, r *http.Request) {
	var req navigateRequest
	if err := decode(r, &req); err != nil {
		a.fail(w, err)
		return
	}
	index := a.History.Navigate(req.Direction)
	item, _, ok := a.History.Current()
	resp := map[string]any{"current": index}
	if ok {
		resp["item"] = item
	}
	a.json(w, http.StatusOK, resp)
}

// ProgressSnapshot returns the live progress state; the WebSocket stream
// carries the same data push-style.
func (a *App) ProgressSnapshot(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, a.Progress.Snapshot())
}

type cancelRequest struct {
	Panel string `json:"panel"`
}

// CancelBatch aborts the running batch on the named panel.
func (a *App) CancelBatch(w http.ResponseWriter, r *http.Request) {
	var req cancelRequest
	if err := decode(r, &req); err != nil {
		a.fail(w, err)
		return
	}
	o, ok := a.panels[req.Panel]
	if !ok {
		a.fail(w, domain.ErrInvalidParameter)
		return
	}
	o.Cancel()
	a.json(w, http.StatusOK, map[string]string{"status": "canceled", "panel": req.Panel})
}
