package handler

import (
	"sync"
	"time"

	"signal-desk/internal/session"

	"github.com/gorilla/websocket"
)

const writeWait = 5 * time.Second

// Observable is the part of *session.Session the hub subscribes to.
type Observable interface {
	ID() string
	Observe(fn func(session.Snapshot)) func()
}

type client struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *client) writeJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(v)
}

type room struct {
	clients map[*client]struct{}
	stop    func()
}

// Hub fans session snapshots out to the websocket clients of each session.
// A session is observed only while it has at least one client.
type Hub struct {
	mu    sync.Mutex
	rooms map[string]*room
}

func NewHub() *Hub {
	return &Hub{rooms: make(map[string]*room)}
}

func (h *Hub) add(sess Observable, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := sess.ID()
	r, ok := h.rooms[id]
	if !ok {
		r = &room{clients: make(map[*client]struct{})}
		r.stop = sess.Observe(func(snap session.Snapshot) { h.Broadcast(id, snap) })
		h.rooms[id] = r
	}
	r.clients[c] = struct{}{}
}

func (h *Hub) remove(id string, c *client) {
	h.mu.Lock()
	r, ok := h.rooms[id]
	var stop func()
	if ok {
		delete(r.clients, c)
		if len(r.clients) == 0 {
			stop = r.stop
			delete(h.rooms, id)
		}
	}
	h.mu.Unlock()

	if stop != nil {
		stop()
	}
	_ = c.conn.Close()
}

// Broadcast writes v to every client of session id, dropping clients whose
// write fails.
func (h *Hub) Broadcast(id string, v any) {
	h.mu.Lock()
	r, ok := h.rooms[id]
	var clients []*client
	if ok {
		clients = make([]*client, 0, len(r.clients))
		for c := range r.clients {
			clients = append(clients, c)
		}
	}
	h.mu.Unlock()

	for _, c := range clients {
		if err := c.writeJSON(v); err != nil {
			h.remove(id, c)
		}
	}
}

// Clients reports how many connections follow session id.
func (h *Hub) Clients(id string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	if r, ok := h.rooms[id]; ok {
		return len(r.clients)
	}
	return 0
}
