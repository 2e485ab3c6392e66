// Package progress serves a single websocket endpoint that broadcasts
// trial-completion counters to any connected observer, so a long run can
// be watched live from a browser tab instead of only a terminal.
package progress

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const sendBufSize = 16

// Frame is one progress update, broadcast as JSON to every connected
// client.
type Frame struct {
	Completed int   `json:"completed"`
	Total     int   `json:"total"`
	ElapsedMs int64 `json:"elapsed_ms"`
}

// conn wraps one observer's websocket connection with its outbound queue.
type conn struct {
	ws   *websocket.Conn
	send chan []byte
}

// Hub tracks every connected observer and broadcasts Frames to all of
// them. There is no per-game subscription model and no replay buffer: a
// client that connects late only misses earlier frames.
type Hub struct {
	mu    sync.RWMutex
	conns map[*conn]bool
	start time.Time
}

// NewHub creates a Hub. start is the run's start time, used to compute
// each frame's elapsed duration.
func NewHub(start time.Time) *Hub {
	return &Hub{conns: make(map[*conn]bool), start: start}
}

// Publish broadcasts a {completed, total, elapsed_ms} frame to every
// connected client. Called only from the orchestrator's collector
// goroutine, never from a batch worker.
func (h *Hub) Publish(completed, total int) {
	frame := Frame{
		Completed: completed,
		Total:     total,
		ElapsedMs: time.Since(h.start).Milliseconds(),
	}
	data, err := json.Marshal(frame)
	if err != nil {
		log.Error().Err(err).Msg("progress: failed to marshal frame")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.conns {
		select {
		case c.send <- data:
		default:
			log.Warn().Msg("progress: dropping frame, client buffer full")
		}
	}
}

func (h *Hub) register(c *conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[c] = true
}

func (h *Hub) unregister(c *conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.conns[c]; ok {
		delete(h.conns, c)
		close(c.send)
	}
}

// ConnectionCount returns the number of currently connected observers.
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}
