// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package push broadcasts entity changes of the note graph to connected
// WebSocket clients.
package push

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/MKhiriev/go-note-keeper/internal/becca"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/models"
)

const (
	frameTypeEntityChange = "entity-change"

	sendBufferSize = 256
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
)

// Frame is the JSON message sent for every entity change.
type Frame struct {
	Type           string            `json:"type"`
	EntityName     models.EntityName `json:"entityName"`
	EntityID       string            `json:"entityId"`
	Hash           string            `json:"hash"`
	IsDeleted      bool              `json:"isDeleted"`
	UTCDateChanged string            `json:"utcDateChanged"`
}

// Hub keeps the connected clients and implements becca.ChangeListener.
type Hub struct {
	mu      sync.RWMutex
	clients map[*client]struct{}

	upgrader websocket.Upgrader
	logger   *logger.Logger
}

var _ becca.ChangeListener = (*Hub)(nil)

func NewHub(logger *logger.Logger) *Hub {
	return &Hub{
		clients: make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger: logger,
	}
}

// ServeHTTP upgrades the request and keeps the connection registered until
// the client goes away.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Err(err).Str("func", "Hub.ServeHTTP").Msg("websocket upgrade failed")
		return
	}

	c := &client{hub: h, conn: conn, send: make(chan []byte, sendBufferSize)}
	h.register(c)

	go c.writeLoop()
	go c.readLoop()
}

// EntityChanged broadcasts changed and deleted events. Created events are
// always followed by a changed event and are not sent on their own.
func (h *Hub) EntityChanged(ctx context.Context, event becca.EntityEvent) {
	if event.Kind == becca.EntityCreated {
		return
	}

	payload, err := json.Marshal(Frame{
		Type:           frameTypeEntityChange,
		EntityName:     event.EntityName,
		EntityID:       event.EntityID,
		Hash:           event.Hash,
		IsDeleted:      event.IsDeleted,
		UTCDateChanged: event.UTCDateChanged,
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "Hub.EntityChanged").Msg("frame encoding failed")
		return
	}

	h.broadcast(payload)
}

func (h *Hub) broadcast(payload []byte) {
	h.mu.RLock()
	var slow []*client
	for c := range h.clients {
		select {
		case c.send <- payload:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		h.logger.Warn().Str("remote", c.conn.RemoteAddr().String()).Msg("dropping slow websocket client")
		h.unregister(c)
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.clients)
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	clients := h.clients
	h.clients = make(map[*client]struct{})
	h.mu.Unlock()

	for c := range clients {
		close(c.send)
	}
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[c] = struct{}{}
	h.logger.Debug().Int("clients", len(h.clients)).Msg("websocket client connected")
}

// unregister removes c once. Closing send stops its write loop, which then
// closes the connection.
func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
	h.logger.Debug().Int("clients", len(h.clients)).Msg("websocket client disconnected")
}

type client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// readLoop discards incoming messages and notices when the peer leaves.
func (c *client) readLoop() {
	defer c.hub.unregister(c)

	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *client) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
