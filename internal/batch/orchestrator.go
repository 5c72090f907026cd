// Package batch drives multi-item generation runs: sequential dispatch with
// an inter-request delay, per-item failure tolerance, progress reporting and
// history bookkeeping.
package batch

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"product-studio/internal/domain"
	"product-studio/internal/events"
	"product-studio/internal/genclient"
	"product-studio/internal/infra"
	"product-studio/internal/media"
	"product-studio/internal/progress"
	"product-studio/internal/request"
)

// Client is the single-request surface the orchestrator dispatches through.
type Client interface {
	Generate(ctx context.Context, gen request.Generation) (*genclient.Result, error)
}

// ItemResult records the outcome of one batch item, in enumeration order.
type ItemResult struct {
	Index       int    `json:"index"`
	DisplayName string `json:"display_name"`
	ItemID      string `json:"item_id,omitempty"`
	Error       string `json:"error,omitempty"`
}

// Outcome summarizes a finished batch.
type Outcome struct {
	Results   []ItemResult `json:"results"`
	Succeeded int          `json:"succeeded"`
}

// Orchestrator runs one panel's batches. At most one batch per orchestrator
// is in flight; the semaphore additionally bounds dispatch across all panels
// sharing it, so the remote service sees a controlled number of concurrent
// requests (one, by default).
type Orchestrator struct {
	panel    string
	client   Client
	history  *media.History
	progress *progress.Estimator
	bus      *events.Bus
	sem      *semaphore.Weighted
	delay    time.Duration
	logger   *infra.Logger

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
}

// Options wires an orchestrator. Sem is shared service-wide; Delay is the
// pause between consecutive items of one batch.
type Options struct {
	Panel    string
	Client   Client
	History  *media.History
	Progress *progress.Estimator
	Bus      *events.Bus
	Sem      *semaphore.Weighted
	Delay    time.Duration
	Logger   *infra.Logger
}

// New constructs an orchestrator for one tool panel.
func New(opts Options) *Orchestrator {
	sem := opts.Sem
	if sem == nil {
		sem = semaphore.NewWeighted(1)
	}
	return &Orchestrator{
		panel:    opts.Panel,
		client:   opts.Client,
		history:  opts.History,
		progress: opts.Progress,
		bus:      opts.Bus,
		sem:      sem,
		delay:    opts.Delay,
		logger:   opts.Logger,
	}
}

// Running reports whether a batch is currently in flight.
func (o *Orchestrator) Running() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.running
}

// Cancel aborts the in-flight batch, if any. Items already appended to the
// history stay.
func (o *Orchestrator) Cancel() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.cancel != nil {
		o.cancel()
	}
}

// Run dispatches the generations in order, appending each success to the
// history. Individual failures are tolerated; Run returns ErrAllItemsFailed
// only when nothing succeeded, and ErrBatchBusy when a batch is already in
// flight on this orchestrator.
func (o *Orchestrator) Run(ctx context.Context, label string, gens []request.Generation) (Outcome, error) {
	if len(gens) == 0 {
		return Outcome{}, fmt.Errorf("empty batch: %w", domain.ErrInvalidParameter)
	}

	o.mu.Lock()
	if o.running {
		o.mu.Unlock()
		return Outcome{}, domain.ErrBatchBusy
	}
	ctx, cancel := context.WithCancel(ctx)
	o.running = true
	o.cancel = cancel
	o.mu.Unlock()

	defer func() {
		cancel()
		o.mu.Lock()
		o.running = false
		o.cancel = nil
		o.mu.Unlock()
	}()

	o.progress.Start(label)

	outcome := Outcome{Results: make([]ItemResult, 0, len(gens))}
	total := len(gens)
	for i, gen := range gens {
		res, err := o.dispatch(ctx, gen)
		if err != nil {
			if ctx.Err() != nil {
				o.progress.Abort()
				o.publish(events.TypeBatchFailed, outcome, "canceled")
				return outcome, ctx.Err()
			}
			o.logf(gen, err)
			outcome.Results = append(outcome.Results, ItemResult{
				Index:       i,
				DisplayName: gen.DisplayName,
				Error:       err.Error(),
			})
		} else {
			item := media.NewItem(gen.Kind, res.Payload, gen.DisplayName, gen.ColorTag)
			o.history.Append(item)
			outcome.Succeeded++
			outcome.Results = append(outcome.Results, ItemResult{
				Index:       i,
				DisplayName: gen.DisplayName,
				ItemID:      item.ID,
			})
		}
		o.progress.Advance(float64(i+1)/float64(total)*90, gen.Label)

		if i < total-1 && o.delay > 0 {
			select {
			case <-ctx.Done():
				o.progress.Abort()
				o.publish(events.TypeBatchFailed, outcome, "canceled")
				return outcome, ctx.Err()
			case <-time.After(o.delay):
			}
		}
	}

	if outcome.Succeeded == 0 {
		o.progress.Abort()
		o.publish(events.TypeBatchFailed, outcome, "all items failed")
		return outcome, fmt.Errorf("%s batch: %w", o.panel, domain.ErrAllItemsFailed)
	}
	o.progress.Complete()
	o.publish(events.TypeBatchCompleted, outcome, "")
	return outcome, nil
}

// dispatch performs one generation under the shared in-flight limit.
func (o *Orchestrator) dispatch(ctx context.Context, gen request.Generation) (*genclient.Result, error) {
	if err := o.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer o.sem.Release(1)
	o.progress.SetLabel(gen.Label)
	return o.client.Generate(ctx, gen)
}

func (o *Orchestrator) publish(typ string, outcome Outcome, reason string) {
	if o.bus == nil {
		return
	}
	data := map[string]any{
		"panel":     o.panel,
		"succeeded": outcome.Succeeded,
		"total":     len(outcome.Results),
	}
	if reason != "" {
		data["reason"] = reason
	}
	o.bus.Publish(typ, data)
}

func (o *Orchestrator) logf(gen request.Generation, err error) {
	if o.logger == nil {
		return
	}
	o.logger.Warn().
		Str("panel", o.panel).
		Str("item", gen.DisplayName).
		Err(err).
		Msg("batch item failed")
}

// SourcesOrOriginal returns the selected sources, or falls back to the most
// recently uploaded original when nothing is selected. The error is
// ErrNoImageSelected when the history holds no original either.
func SourcesOrOriginal(selected []request.Source, history *media.History) ([]request.Source, error) {
	if len(selected) > 0 {
		return selected, nil
	}
	originals := history.ItemsOfKind(media.KindOriginal)
	if len(originals) == 0 {
		return nil, domain.ErrNoImageSelected
	}
	latest := originals[len(originals)-1]
	name := latest.DisplayName
	if name == "" {
		name = "Original"
	}
	return []request.Source{{Name: name, Payload: latest.Payload}}, nil
}

var _ Client = (*genclient.Client)(nil)

// ErrCanceled reports whether a Run error came from cancellation rather than
// item failures.
func ErrCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
