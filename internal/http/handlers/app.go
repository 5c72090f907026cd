package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"golang.org/x/sync/semaphore"

	"product-studio/internal/batch"
	"product-studio/internal/catalog"
	"product-studio/internal/domain"
	"product-studio/internal/events"
	"product-studio/internal/infra"
	"product-studio/internal/media"
	"product-studio/internal/progress"
	"product-studio/internal/request"
	"product-studio/internal/storage"
)

// Panel identifiers. Each panel owns one orchestrator so batches on
// different tools never trip over each other's busy state.
const (
	panelEdits      = "edits"
	panelBasicEdits = "basic-edits"
	panelVariations = "variations"
	panelAdShots    = "ad-shots"
	panelLifestyle  = "lifestyle"
	panelAnimation  = "animation"
	panelMockups    = "mockups"
)

// Observed pacing between consecutive ad shot requests; the other batch
// panels use the configured inter-request delay.
const adShotDelay = 500 * time.Millisecond

type App struct {
	Config   *infra.Config
	Logger   *infra.Logger
	Catalog  *catalog.Catalog
	Builder  *request.Builder
	History  *media.History
	Progress *progress.Estimator
	Bus      *events.Bus
	Store    *storage.FileStore

	panels map[string]*batch.Orchestrator
}

// Options wires the app. Client is the generation backend; tests inject a
// stub.
type Options struct {
	Config   *infra.Config
	Logger   *infra.Logger
	Catalog  *catalog.Catalog
	Client   batch.Client
	History  *media.History
	Progress *progress.Estimator
	Bus      *events.Bus
	Store    *storage.FileStore
}

func NewApp(opts Options) *App {
	sem := semaphore.NewWeighted(int64(opts.Config.MaxInFlight))
	delays := map[string]time.Duration{
		panelVariations: opts.Config.InterRequestDelay,
		panelLifestyle:  opts.Config.InterRequestDelay,
		panelAdShots:    adShotDelay,
	}
	panels := make(map[string]*batch.Orchestrator)
	for _, panel := range []string{
		panelEdits, panelBasicEdits, panelVariations, panelAdShots,
		panelLifestyle, panelAnimation, panelMockups,
	} {
		panels[panel] = batch.New(batch.Options{
			Panel:    panel,
			Client:   opts.Client,
			History:  opts.History,
			Progress: opts.Progress,
			Bus:      opts.Bus,
			Sem:      sem,
			Delay:    delays[panel],
			Logger:   opts.Logger,
		})
	}
	return &App{
		Config:   opts.Config,
		Logger:   opts.Logger,
		Catalog:  opts.Catalog,
		Builder:  request.NewBuilder(opts.Catalog),
		History:  opts.History,
		Progress: opts.Progress,
		Bus:      opts.Bus,
		Store:    opts.Store,
		panels:   panels,
	}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, slug, message string) {
	a.json(w, code, map[string]string{"error": slug, "message": message})
}

// fail maps domain errors onto HTTP statuses.
func (a *App) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrEmptyPrompt),
		errors.Is(err, domain.ErrNoImageSelected),
		errors.Is(err, domain.ErrInvalidParameter),
		errors.Is(err, domain.ErrUnknownPreset),
		errors.Is(err, domain.ErrIndexOutOfRange):
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, domain.ErrBatchBusy):
		a.error(w, http.StatusConflict, "busy", err.Error())
	case batch.ErrCanceled(err):
		a.error(w, http.StatusConflict, "canceled", err.Error())
	case errors.Is(err, domain.ErrAllItemsFailed),
		errors.Is(err, domain.ErrProviderFailure):
		a.error(w, http.StatusBadGateway, "upstream", err.Error())
	default:
		a.error(w, http.StatusInternalServerError, "internal", err.Error())
	}
}

// runPanel executes a batch on the named panel and writes the outcome.
func (a *App) runPanel(w http.ResponseWriter, r *http.Request, panel, label string, gens []request.Generation) {
	outcome, err := a.panels[panel].Run(r.Context(), label, gens)
	if err != nil {
		a.fail(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"panel":     panel,
		"succeeded": outcome.Succeeded,
		"results":   outcome.Results,
	})
}

// singleSource resolves an explicit source or falls back to the uploaded
// original.
func (a *App) singleSource(src request.Source) (request.Source, error) {
	var selected []request.Source
	if src.Payload != "" {
		selected = []request.Source{src}
	}
	sources, err := batch.SourcesOrOriginal(selected, a.History)
	if err != nil {
		return request.Source{}, err
	}
	return sources[0], nil
}

func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.Join(domain.ErrInvalidParameter, err)
	}
	return nil
}
