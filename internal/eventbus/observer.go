package eventbus

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/entryrt/engine/internal/logging"
)

const (
	// WebSocketEndpoint is the path external debug tools connect to.
	WebSocketEndpoint = "/engine-events"
	writeWait         = 10 * time.Second
	pongWait          = 60 * time.Second
	pingPeriod        = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Observer is an optional WebSocket server that mirrors every bus
// event to connected clients as JSON frames, per SPEC_FULL.md §4.8.
// It never influences scheduling — it is a read-only tap.
type Observer struct {
	bus  *Bus
	log  *logging.Logger
	subs sync.Map // *websocket.Conn -> SubscriptionID
}

func NewObserver(bus *Bus, log *logging.Logger) *Observer {
	return &Observer{bus: bus, log: log}
}

func (o *Observer) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			if o.log != nil {
				o.log.Warn("observer upgrade failed", map[string]any{"err": err.Error()})
			}
			return
		}
		o.serve(conn)
	}
}

func (o *Observer) serve(conn *websocket.Conn) {
	defer conn.Close()
	var writeMu sync.Mutex
	subID := o.bus.Subscribe("", func(e Event) {
		writeMu.Lock()
		defer writeMu.Unlock()
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		data, err := json.Marshal(e)
		if err != nil {
			return
		}
		_ = conn.WriteMessage(websocket.TextMessage, data)
	})
	defer o.bus.Unsubscribe(subID)

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	go func() {
		for range ticker.C {
			writeMu.Lock()
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				writeMu.Unlock()
				return
			}
			writeMu.Unlock()
		}
	}()

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
