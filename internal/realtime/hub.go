// internal/realtime/hub.go

// Package realtime fans order events out to connected admin dashboard
// sessions over websockets. The session map is transient broadcast state;
// nothing reads it for business decisions.
package realtime

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	writeWait       = 10 * time.Second
	defaultPongWait = 60 * time.Second
)

type Event struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// OrderEvent is pushed to admin sessions when a new order arrives.
type OrderEvent struct {
	OrderID      string    `json:"orderId"`
	CustomerName string    `json:"customerName"`
	TotalPrice   float64   `json:"totalPrice"`
	ItemCount    int       `json:"itemCount"`
	CreatedAt    time.Time `json:"createdAt"`
	Message      string    `json:"message"`
}

type session struct {
	conn    *websocket.Conn
	adminID string
	send    chan Event
}

type Hub struct {
	mu       sync.RWMutex
	sessions map[*session]struct{}
	upgrader websocket.Upgrader

	// pings must arrive well inside the pong window or idle browser
	// sessions get reaped, since browsers cannot initiate pings.
	pongWait   time.Duration
	pingPeriod time.Duration
}

func NewHub(allowedOrigins []string) *Hub {
	origins := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		origins[o] = struct{}{}
	}

	return &Hub{
		sessions:   make(map[*session]struct{}),
		pongWait:   defaultPongWait,
		pingPeriod: defaultPongWait * 9 / 10,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				_, ok := origins[origin]
				return ok
			},
		},
	}
}

// Serve upgrades the request and keeps the session registered until the
// client disconnects.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, adminID string) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	s := &session{
		conn:    conn,
		adminID: adminID,
		send:    make(chan Event, 16),
	}

	h.mu.Lock()
	h.sessions[s] = struct{}{}
	h.mu.Unlock()

	logrus.WithField("admin_id", adminID).Info("Admin session connected")

	go h.writeLoop(s)
	go h.readLoop(s)

	return nil
}

// Broadcast delivers an event to every connected session. Slow sessions
// are dropped rather than blocking the caller.
func (h *Hub) Broadcast(event string, data interface{}) {
	h.mu.RLock()
	sessions := make([]*session, 0, len(h.sessions))
	for s := range h.sessions {
		sessions = append(sessions, s)
	}
	h.mu.RUnlock()

	for _, s := range sessions {
		select {
		case s.send <- Event{Event: event, Data: data}:
		default:
			h.remove(s)
		}
	}
}

// SessionCount reports the number of connected admin sessions.
func (h *Hub) SessionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

func (h *Hub) writeLoop(s *session) {
	ticker := time.NewTicker(h.pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-s.send:
			if !ok {
				s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteJSON(event); err != nil {
				h.remove(s)
				return
			}
		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.remove(s)
				return
			}
		}
	}
}

func (h *Hub) readLoop(s *session) {
	defer h.remove(s)

	s.conn.SetReadLimit(512)
	s.conn.SetReadDeadline(time.Now().Add(h.pongWait))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(h.pongWait))
		return nil
	})

	// Clients only send pongs/close frames; discard anything else.
	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			return
		}
		s.conn.SetReadDeadline(time.Now().Add(h.pongWait))
	}
}

func (h *Hub) remove(s *session) {
	h.mu.Lock()
	_, ok := h.sessions[s]
	if ok {
		delete(h.sessions, s)
		close(s.send)
	}
	h.mu.Unlock()

	if ok {
		s.conn.Close()
		logrus.WithField("admin_id", s.adminID).Info("Admin session disconnected")
	}
}
