package media

import (
	"sync"

	"github.com/cespare/xxhash/v2"

	"product-studio/internal/domain"
	"product-studio/internal/events"
)

// History is the ordered, de-duplicated collection of media produced or
// uploaded during the session, together with the currently displayed
// pointer. Insertion order is the only ordering. Two items never share the
// same payload: equality is tracked by a content hash of the encoded
// payload, so re-adding identical content is a no-op.
//
// History is safe for concurrent use; tool handlers and batch goroutines
// mutate it from different goroutines.
type History struct {
	mu      sync.RWMutex
	items   []Item
	seen    map[uint64]struct{}
	current int
	bus     *events.Bus
}

// NewHistory creates an empty history. The bus is optional; when present,
// appends and clears publish events for the gallery surfaces.
func NewHistory(bus *events.Bus) *History {
	return &History{seen: make(map[uint64]struct{}), bus: bus}
}

// Append adds the item at the end and moves the displayed pointer to it.
// Re-appending a payload already in the collection is a silent no-op; the
// returned position is then the existing item's index.
func (h *History) Append(item Item) (int, bool) {
	sum := xxhash.Sum64String(item.Payload)

	h.mu.Lock()
	if _, dup := h.seen[sum]; dup {
		pos := h.indexOfPayloadLocked(item.Payload)
		h.mu.Unlock()
		return pos, false
	}
	h.seen[sum] = struct{}{}
	h.items = append(h.items, item)
	pos := len(h.items) - 1
	h.current = pos
	h.mu.Unlock()

	if h.bus != nil {
		h.bus.Publish(events.TypeMediaAdded, map[string]any{
			"item":  itemSummary(item),
			"index": pos,
		})
	}
	return pos, true
}

func (h *History) indexOfPayloadLocked(payload string) int {
	for i := range h.items {
		if h.items[i].Payload == payload {
			return i
		}
	}
	return -1
}

// Len reports the number of items.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.items)
}

// Items returns a copy of the collection in insertion order.
func (h *History) Items() []Item {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]Item, len(h.items))
	copy(out, h.items)
	return out
}

// ItemsOfKind returns the items of one kind, in insertion order.
func (h *History) ItemsOfKind(kind Kind) []Item {
	h.mu.RLock()
	defer h.mu.RUnlock()
	var out []Item
	for _, it := range h.items {
		if it.Kind == kind {
			out = append(out, it)
		}
	}
	return out
}

// ByID looks an item up by its identifier.
func (h *History) ByID(id string) (Item, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, it := range h.items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

// Current returns the displayed item and its index.
func (h *History) Current() (Item, int, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if len(h.items) == 0 {
		return Item{}, 0, false
	}
	return h.items[h.current], h.current, true
}

// Select moves the displayed pointer to the given index.
func (h *History) Select(index int) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if index < 0 || index >= len(h.items) {
		return domain.ErrIndexOutOfRange
	}
	h.current = index
	return nil
}

// Navigate moves the pointer by one position with wraparound. It is a no-op
// when fewer than two items exist. Direction is "prev" or "next"; anything
// else is treated as "next".
func (h *History) Navigate(direction string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.items) <= 1 {
		return h.current
	}
	if direction == "prev" {
		if h.current > 0 {
			h.current--
		} else {
			h.current = len(h.items) - 1
		}
	} else {
		if h.current < len(h.items)-1 {
			h.current++
		} else {
			h.current = 0
		}
	}
	return h.current
}

// Clear empties the whole collection and resets the pointer.
func (h *History) Clear() {
	h.mu.Lock()
	h.items = nil
	h.seen = make(map[uint64]struct{})
	h.current = 0
	h.mu.Unlock()

	if h.bus != nil {
		h.bus.Publish(events.TypeMediaCleared, map[string]any{"scope": "all"})
	}
}

// ClearKind removes only the items of one kind, leaving media produced by
// other tools untouched. The pointer is clamped to the remaining items.
func (h *History) ClearKind(kind Kind) int {
	h.mu.Lock()
	kept := h.items[:0]
	removed := 0
	for _, it := range h.items {
		if it.Kind == kind {
			delete(h.seen, xxhash.Sum64String(it.Payload))
			removed++
			continue
		}
		kept = append(kept, it)
	}
	h.items = kept
	if h.current >= len(h.items) {
		h.current = 0
	}
	h.mu.Unlock()

	if removed > 0 && h.bus != nil {
		h.bus.Publish(events.TypeMediaCleared, map[string]any{"scope": string(kind), "removed": removed})
	}
	return removed
}

// itemSummary is the event payload for a new item. The full media payload is
// deliberately omitted; subscribers fetch bytes over HTTP when needed.
func itemSummary(item Item) map[string]any {
	return map[string]any{
		"id":           item.ID,
		"kind":         item.Kind,
		"display_name": item.DisplayName,
		"mime":         item.MIME(),
		"color_tag":    item.ColorTag,
		"created_at":   item.CreatedAt,
	}
}
