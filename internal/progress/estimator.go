// Package progress maintains the synthetic progress signal shown while a
// generation request is in flight. The percentage is cosmetic: timers raise
// it while the outcome is unknown, and only request resolution moves it to
// 100. No control flow depends on the exact value.
package progress

import (
	"sync"
	"time"

	"product-studio/internal/events"
)

// tickCeiling is the highest value timer ticks may reach on their own.
// Only Complete is allowed to touch 100.
const tickCeiling = 95.0

// Snapshot is the externally visible progress state.
type Snapshot struct {
	Percent float64 `json:"percent"`
	Label   string  `json:"label"`
	Running bool    `json:"running"`
}

// Estimator produces a monotonically advancing, capped progress value
// between Start and Complete/Abort. It is safe for concurrent use.
type Estimator struct {
	mu      sync.Mutex
	percent float64
	label   string
	running bool
	stop    chan struct{}
	reset   *time.Timer

	tick time.Duration
	hold time.Duration
	bus  *events.Bus
}

// NewEstimator builds an estimator that ticks every tick interval and holds
// the 100% state for hold before resetting to 0. The bus is optional.
func NewEstimator(tick, hold time.Duration, bus *events.Bus) *Estimator {
	if tick <= 0 {
		tick = 250 * time.Millisecond
	}
	if hold <= 0 {
		hold = 400 * time.Millisecond
	}
	return &Estimator{tick: tick, hold: hold, bus: bus}
}

// Start resets the percentage to 0 and begins timer-driven advancement.
func (e *Estimator) Start(label string) {
	e.mu.Lock()
	if e.reset != nil {
		e.reset.Stop()
		e.reset = nil
	}
	if e.stop != nil {
		close(e.stop)
	}
	e.stop = make(chan struct{})
	e.percent = 0
	e.label = label
	e.running = true
	stop := e.stop
	e.mu.Unlock()

	e.publish()
	go e.loop(stop)
}

func (e *Estimator) loop(stop chan struct{}) {
	ticker := time.NewTicker(e.tick)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			e.mu.Lock()
			if !e.running {
				e.mu.Unlock()
				return
			}
			// Diminishing increments so the bar creeps toward the
			// ceiling without ever reaching it on its own.
			step := (tickCeiling - e.percent) / 25
			if step < 0.2 {
				step = 0.2
			}
			if e.percent+step > tickCeiling {
				e.percent = tickCeiling
			} else {
				e.percent += step
			}
			e.mu.Unlock()
			e.publish()
		}
	}
}

// Advance raises the percentage to at least p. Values above the tick
// ceiling are clamped; the estimator never moves backwards while running.
func (e *Estimator) Advance(p float64, label string) {
	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		return
	}
	if p > tickCeiling {
		p = tickCeiling
	}
	if p > e.percent {
		e.percent = p
	}
	if label != "" {
		e.label = label
	}
	e.mu.Unlock()
	e.publish()
}

// SetLabel updates the stage description without touching the percentage.
func (e *Estimator) SetLabel(label string) {
	e.mu.Lock()
	e.label = label
	e.mu.Unlock()
	e.publish()
}

// Complete forces the percentage to 100, then resets to 0 after the display
// hold so the finished state stays visible for a beat.
func (e *Estimator) Complete() {
	e.mu.Lock()
	e.stopLocked()
	e.percent = 100
	e.reset = time.AfterFunc(e.hold, e.Reset)
	e.mu.Unlock()
	e.publish()
}

// Abort resets the percentage to 0 immediately, without passing through 100.
func (e *Estimator) Abort() {
	e.mu.Lock()
	e.stopLocked()
	e.percent = 0
	e.label = ""
	e.mu.Unlock()
	e.publish()
}

// Reset returns the estimator to its idle zero state.
func (e *Estimator) Reset() {
	e.mu.Lock()
	e.stopLocked()
	if e.reset != nil {
		e.reset.Stop()
		e.reset = nil
	}
	e.percent = 0
	e.label = ""
	e.mu.Unlock()
	e.publish()
}

// stopLocked halts the tick loop. Callers hold e.mu.
func (e *Estimator) stopLocked() {
	e.running = false
	if e.stop != nil {
		close(e.stop)
		e.stop = nil
	}
}

// Percent returns the current percentage in [0, 100].
func (e *Estimator) Percent() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.percent
}

// Snapshot returns the current state.
func (e *Estimator) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Snapshot{Percent: e.percent, Label: e.label, Running: e.running}
}

func (e *Estimator) publish() {
	if e.bus == nil {
		return
	}
	e.bus.Publish(events.TypeProgress, e.Snapshot())
}
