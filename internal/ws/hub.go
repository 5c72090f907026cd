// Package ws exposes the event bus to browser clients over WebSocket. Each
// connection gets its own bus subscription; the hub holds no shared state
// beyond the upgrader.
package ws

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"product-studio/internal/events"
	"product-studio/internal/infra"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
)

// Hub upgrades connections and relays bus events to them.
type Hub struct {
	bus      *events.Bus
	logger   *infra.Logger
	upgrader websocket.Upgrader
}

// NewHub builds a hub over the given bus. Origins are checked by the CORS
// middleware on the rest of the API; the studio serves a local UI, so the
// upgrader accepts any origin.
func NewHub(bus *events.Bus, logger *infra.Logger) *Hub {
	return &Hub{
		bus:    bus,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// ServeHTTP upgrades the request and streams events until the client goes
// away.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	stream, cancel := h.bus.Subscribe()
	defer cancel()
	defer conn.Close()

	h.logger.Debug().Str("remote", conn.RemoteAddr().String()).Msg("event stream connected")

	// Reader goroutine: the client sends nothing meaningful, but reading is
	// required to notice close frames.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()
	for {
		select {
		case <-done:
			return
		case ev, ok := <-stream:
			if !ok {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(ev); err != nil {
				return
			}
		case <-ping.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
