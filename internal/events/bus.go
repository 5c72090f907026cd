// Package events carries the publish/subscribe channel between the tool
// panels and the UI-facing surfaces. Panels publish media and progress
// events; the websocket layer fans them out to connected clients. This is
// the explicit replacement for the cross-component callback the browser
// client kept on the window object.
package events

import (
	"sync"
	"time"
)

const (
	TypeMediaAdded     = "media.added"
	TypeMediaCleared   = "media.cleared"
	TypeProgress       = "progress"
	TypeBatchCompleted = "batch.completed"
	TypeBatchFailed    = "batch.failed"
)

// Event is a single notification delivered to every subscriber.
type Event struct {
	Type string    `json:"type"`
	At   time.Time `json:"at"`
	Data any       `json:"data,omitempty"`
}

// Bus is an in-process fan-out channel. Publish never blocks: slow
// subscribers drop events rather than stalling a running batch.
type Bus struct {
	mu   sync.RWMutex
	subs map[int]chan Event
	next int
}

func NewBus() *Bus {
	return &Bus{subs: make(map[int]chan Event)}
}

// Subscribe registers a new subscriber and returns its channel together with
// a cancel function. The channel is closed on cancel.
func (b *Bus) Subscribe() (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.next
	b.next++
	ch := make(chan Event, 64)
	b.subs[id] = ch
	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Publish delivers the event to every current subscriber.
func (b *Bus) Publish(eventType string, data any) {
	ev := Event{Type: eventType, At: time.Now(), Data: data}
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Subscribers reports the current subscriber count.
func (b *Bus) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
