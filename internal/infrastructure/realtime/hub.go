// Package realtime pushes newly posted chat messages to websocket clients
// watching a listing's conversation.
package realtime

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	sendBuffer = 16
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// Event is the envelope written to subscribers.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

type subscriber struct {
	conn *websocket.Conn
	send chan []byte
	once sync.Once
}

func (s *subscriber) close() {
	s.once.Do(func() { close(s.send) })
}

// Hub keeps the live subscribers of every cat conversation. A subscriber
// that cannot keep up is dropped instead of blocking publishers.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*subscriber]struct{}
	log   zerolog.Logger
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		rooms: make(map[string]map[*subscriber]struct{}),
		log:   log,
	}
}

// Publish sends a "message" event to every subscriber of catID.
func (h *Hub) Publish(catID string, payload any) {
	data, err := json.Marshal(Event{Type: "message", Data: payload})
	if err != nil {
		h.log.Error().Err(err).Str("cat_id", catID).Msg("failed to marshal chat event")
		return
	}

	h.mu.RLock()
	var slow []*subscriber
	for sub := range h.rooms[catID] {
		select {
		case sub.send <- data:
		default:
			slow = append(slow, sub)
		}
	}
	h.mu.RUnlock()

	for _, sub := range slow {
		h.log.Warn().Str("cat_id", catID).Msg("dropping slow chat subscriber")
		h.remove(catID, sub)
	}
}

// Subscribers reports how many clients are watching catID.
func (h *Hub) Subscribers(catID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[catID])
}

// Serve attaches conn to catID and blocks until the client goes away.
func (h *Hub) Serve(catID string, conn *websocket.Conn) {
	sub := &subscriber{conn: conn, send: make(chan []byte, sendBuffer)}
	h.add(catID, sub)
	h.log.Info().Str("cat_id", catID).Msg("chat subscriber connected")

	done := make(chan struct{})
	go func() {
		defer close(done)
		h.writePump(sub)
	}()

	h.readPump(sub)
	h.remove(catID, sub)
	<-done
	_ = conn.Close()
	h.log.Info().Str("cat_id", catID).Msg("chat subscriber disconnected")
}

func (h *Hub) add(catID string, sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	room, ok := h.rooms[catID]
	if !ok {
		room = make(map[*subscriber]struct{})
		h.rooms[catID] = room
	}
	room[sub] = struct{}{}
}

func (h *Hub) remove(catID string, sub *subscriber) {
	h.mu.Lock()
	if room, ok := h.rooms[catID]; ok {
		delete(room, sub)
		if len(room) == 0 {
			delete(h.rooms, catID)
		}
	}
	h.mu.Unlock()
	sub.close()
}

// readPump discards client frames; it exists to observe pongs and closes.
func (h *Hub) readPump(sub *subscriber) {
	sub.conn.SetReadLimit(512)
	_ = sub.conn.SetReadDeadline(time.Now().Add(pongWait))
	sub.conn.SetPongHandler(func(string) error {
		return sub.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := sub.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Debug().Err(err).Msg("chat subscriber read error")
			}
			return
		}
	}
}

func (h *Hub) writePump(sub *subscriber) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-sub.send:
			_ = sub.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = sub.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := sub.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				_ = sub.conn.Close()
				return
			}
		case <-ticker.C:
			_ = sub.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := sub.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				_ = sub.conn.Close()
				return
			}
		}
	}
}
