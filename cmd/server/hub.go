package main

import (
	"net/http"
	"sync"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/hexclash/engine/internal/logger"
)

// hub forwards current_event prompts to connected clients as the
// engine's persistent-event stack changes. This is pure push plumbing:
// the hub never calls into the engine itself, it only relays what api.go
// already computed after each Execute.
//
// Grounded on the teacher's internal/delivery/websocket Hub (register/
// unregister/broadcast channels draining in one goroutine) and on
// niceyeti-tabular's gorilla/mux registration of the upgrade route
// (tabular/server), which this wrapper mirrors by routing the upgrade
// handshake through its own mux.Router rather than gin's.
type hub struct {
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[string]map[*websocket.Conn]bool // gameID -> connections

	register   chan registration
	unregister chan registration
	broadcast  chan broadcastMsg
}

type registration struct {
	gameID string
	conn   *websocket.Conn
}

type broadcastMsg struct {
	gameID  string
	payload []byte
}

func newHub() *hub {
	return &hub{
		upgrader:   websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }},
		clients:    make(map[string]map[*websocket.Conn]bool),
		register:   make(chan registration),
		unregister: make(chan registration),
		broadcast:  make(chan broadcastMsg, 16),
	}
}

// run drains the hub's channels until the process exits, matching the
// teacher's Hub.Run started as its own goroutine from main.
func (h *hub) run() {
	for {
		select {
		case r := <-h.register:
			h.mu.Lock()
			if h.clients[r.gameID] == nil {
				h.clients[r.gameID] = map[*websocket.Conn]bool{}
			}
			h.clients[r.gameID][r.conn] = true
			h.mu.Unlock()
		case r := <-h.unregister:
			h.mu.Lock()
			delete(h.clients[r.gameID], r.conn)
			h.mu.Unlock()
			r.conn.Close()
		case m := <-h.broadcast:
			h.mu.Lock()
			conns := h.clients[m.gameID]
			for c := range conns {
				if err := c.WriteMessage(websocket.TextMessage, m.payload); err != nil {
					logger.Get().Warn("websocket push failed")
				}
			}
			h.mu.Unlock()
		}
	}
}

// push enqueues payload for every client watching gameID. Non-blocking:
// a full buffer drops the push rather than stalling the dispatcher, since
// the engine's own call must never wait on transport.
func (h *hub) push(gameID string, payload []byte) {
	select {
	case h.broadcast <- broadcastMsg{gameID: gameID, payload: payload}:
	default:
	}
}

// router builds the gorilla/mux router that serves the upgrade handshake,
// mounted into the gin engine via gin.WrapH.
func (h *hub) router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/ws/games/{id}", func(w http.ResponseWriter, r *http.Request) {
		gameID := mux.Vars(r)["id"]
		conn, err := h.upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Get().Warn("websocket upgrade failed")
			return
		}
		reg := registration{gameID: gameID, conn: conn}
		h.register <- reg
		go h.readLoop(reg)
	})
	return r
}

// readLoop drains (and discards) client frames purely to detect
// disconnects; this channel is push-only from the engine's perspective.
func (h *hub) readLoop(reg registration) {
	defer func() { h.unregister <- reg }()
	for {
		if _, _, err := reg.conn.ReadMessage(); err != nil {
			return
		}
	}
}
