package media

import (
	"errors"
	"fmt"
	"testing"

	"product-studio/internal/domain"
	"product-studio/internal/events"
)

func imageItem(kind Kind, name, body string) Item {
	return NewItem(kind, DataURI("image/png", body), name, "")
}

func TestHistoryAppendDeduplicatesByPayload(t *testing.T) {
	h := NewHistory(nil)

	pos, added := h.Append(imageItem(KindOriginal, "Original", "AAAA"))
	if !added || pos != 0 {
		t.Fatalf("first append: pos=%d added=%v", pos, added)
	}
	pos, added = h.Append(imageItem(KindEdit, "Edit", "AAAA"))
	if added {
		t.Fatalf("duplicate payload should be a no-op")
	}
	if pos != 0 {
		t.Fatalf("duplicate append pos = %d, want existing index 0", pos)
	}
	if h.Len() != 1 {
		t.Fatalf("len = %d, want 1", h.Len())
	}
}

func TestHistoryAppendMovesPointer(t *testing.T) {
	h := NewHistory(nil)
	h.Append(imageItem(KindOriginal, "A", "a"))
	h.Append(imageItem(KindVariant, "v1", "1"))
	h.Append(imageItem(KindVariant, "v2", "2"))
	h.Append(imageItem(KindVariant, "v3", "3"))

	if h.Len() != 4 {
		t.Fatalf("len = %d, want 4", h.Len())
	}
	items := h.Items()
	for i, want := range []string{"A", "v1", "v2", "v3"} {
		if items[i].DisplayName != want {
			t.Fatalf("items[%d] = %q, want %q", i, items[i].DisplayName, want)
		}
	}
	cur, idx, ok := h.Current()
	if !ok || idx != 3 || cur.DisplayName != "v3" {
		t.Fatalf("current = %q at %d, want v3 at 3", cur.DisplayName, idx)
	}
}

func TestHistorySelectRejectsOutOfRange(t *testing.T) {
	h := NewHistory(nil)
	h.Append(imageItem(KindOriginal, "A", "a"))

	if err := h.Select(1); !errors.Is(err, domain.ErrIndexOutOfRange) {
		t.Fatalf("Select(1) err = %v, want ErrIndexOutOfRange", err)
	}
	if err := h.Select(-1); !errors.Is(err, domain.ErrIndexOutOfRange) {
		t.Fatalf("Select(-1) err = %v, want ErrIndexOutOfRange", err)
	}
	if err := h.Select(0); err != nil {
		t.Fatalf("Select(0) err = %v", err)
	}
}

func TestHistoryNavigateWrapsAround(t *testing.T) {
	h := NewHistory(nil)
	h.Append(imageItem(KindOriginal, "A", "a"))
	if got := h.Navigate("next"); got != 0 {
		t.Fatalf("navigate with single item moved pointer to %d", got)
	}

	h.Append(imageItem(KindEdit, "B", "b"))
	h.Append(imageItem(KindEdit, "C", "c"))

	// Pointer sits at the last index after appends.
	if got := h.Navigate("next"); got != 0 {
		t.Fatalf("next from last index = %d, want wrap to 0", got)
	}
	if got := h.Navigate("prev"); got != 2 {
		t.Fatalf("prev from index 0 = %d, want wrap to 2", got)
	}
}

func TestHistoryClearKindKeepsOtherTools(t *testing.T) {
	h := NewHistory(nil)
	h.Append(imageItem(KindOriginal, "A", "a"))
	h.Append(imageItem(KindVariant, "v1", "1"))
	h.Append(imageItem(KindAdShot, "ad", "x"))
	h.Append(imageItem(KindVariant, "v2", "2"))

	removed := h.ClearKind(KindVariant)
	if removed != 2 {
		t.Fatalf("removed = %d, want 2", removed)
	}
	items := h.Items()
	if len(items) != 2 || items[0].Kind != KindOriginal || items[1].Kind != KindAdShot {
		t.Fatalf("unexpected remaining items: %#v", items)
	}
	// A cleared payload may be re-added.
	if _, added := h.Append(imageItem(KindVariant, "v1 again", "1")); !added {
		t.Fatalf("payload cleared from history should append again")
	}
}

func TestHistoryClearResetsPointer(t *testing.T) {
	h := NewHistory(nil)
	h.Append(imageItem(KindOriginal, "A", "a"))
	h.Append(imageItem(KindEdit, "B", "b"))

	h.Clear()
	if h.Len() != 0 {
		t.Fatalf("len after clear = %d", h.Len())
	}
	if _, idx, ok := h.Current(); ok || idx != 0 {
		t.Fatalf("current after clear = (%d, %v), want (0, false)", idx, ok)
	}
}

func TestHistoryPublishesAppendEvents(t *testing.T) {
	bus := events.NewBus()
	ch, cancel := bus.Subscribe()
	defer cancel()

	h := NewHistory(bus)
	for i := 0; i < 3; i++ {
		h.Append(imageItem(KindVariant, fmt.Sprintf("v%d", i), fmt.Sprintf("%d", i)))
	}

	for i := 0; i < 3; i++ {
		ev := <-ch
		if ev.Type != events.TypeMediaAdded {
			t.Fatalf("event %d type = %q", i, ev.Type)
		}
		data := ev.Data.(map[string]any)
		if data["index"].(int) != i {
			t.Fatalf("event %d index = %v, want %d", i, data["index"], i)
		}
	}
}
