package server

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/iwvelando/outbreak-forecast/internal/controller"
	"go.uber.org/zap"
)

// Hub fans controller snapshots out to every connected live feed client.
// Publishing never blocks the controller: only the newest snapshot is kept,
// and one that arrives with an older version than the last published is
// dropped.
type Hub struct {
	logger     *zap.Logger
	ctrl       *controller.Controller
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	pending    chan struct{}
	done       chan struct{}

	mu      sync.Mutex
	latest  []byte
	version uint64
}

// NewHub initializes a hub primed with the controller's current snapshot.
func NewHub(logger *zap.Logger, ctrl *controller.Controller) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Hub{
		logger:     logger,
		ctrl:       ctrl,
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		pending:    make(chan struct{}, 1),
		done:       make(chan struct{}),
	}
	h.Publish(ctrl.Snapshot())
	return h
}

// Run handles client registration and broadcasts until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			for client := range h.clients {
				delete(h.clients, client)
				close(client.send)
			}
			h.logger.Debug("live feed hub shutting down", zap.String("op", "server.Hub.Run"))
			return
		case client := <-h.register:
			h.clients[client] = true
			if payload := h.latestPayload(); payload != nil {
				h.deliver(client, payload)
			}
			h.logger.Debug("live feed client connected",
				zap.String("op", "server.Hub.Run"),
				zap.Int("clients", len(h.clients)),
			)
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.logger.Debug("live feed client disconnected",
					zap.String("op", "server.Hub.Run"),
					zap.Int("clients", len(h.clients)),
				)
			}
		case <-h.pending:
			payload := h.latestPayload()
			for client := range h.clients {
				h.deliver(client, payload)
			}
		}
	}
}

// deliver queues payload for client, dropping a client that cannot keep up.
func (h *Hub) deliver(client *Client, payload []byte) {
	select {
	case client.send <- payload:
	default:
		delete(h.clients, client)
		close(client.send)
		h.logger.Warn("dropping slow live feed client", zap.String("op", "server.Hub.deliver"))
	}
}

// Publish records snap as the newest snapshot and wakes the hub.
func (h *Hub) Publish(snap controller.Snapshot) {
	payload, err := json.Marshal(snap)
	if err != nil {
		h.logger.Error("failed to serialize snapshot for live feed",
			zap.String("op", "server.Hub.Publish"),
			zap.Error(err),
		)
		return
	}

	h.mu.Lock()
	if h.latest != nil && snap.Version <= h.version {
		h.mu.Unlock()
		return
	}
	h.latest = payload
	h.version = snap.Version
	h.mu.Unlock()

	select {
	case h.pending <- struct{}{}:
	default:
	}
}

func (h *Hub) latestPayload() []byte {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.latest
}
