package stream

import (
	"context"
	"encoding/json"
	"sync/atomic"

	"repo-pulse/internal/model"
	"repo-pulse/pkg/log"
)

// DefaultBufferSize bounds the number of events waiting to be broadcast.
const DefaultBufferSize = 64

// Hub fans stored events out to connected websocket clients. Publish never
// blocks: events are dropped when the broadcast buffer is full.
type Hub struct {
	l log.Logger

	clients    map[*Client]bool
	broadcast  chan broadcastMessage
	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	connected atomic.Int64
	dropped   atomic.Int64
}

type broadcastMessage struct {
	eventType string
	data      []byte
}

// NewHub creates a Hub. Call Run to start delivering.
func NewHub(l log.Logger, bufferSize int) *Hub {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	return &Hub{
		l:          l,
		clients:    make(map[*Client]bool),
		broadcast:  make(chan broadcastMessage, bufferSize),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run delivers broadcasts until ctx is cancelled, then disconnects every client.
func (h *Hub) Run(ctx context.Context) {
	defer func() {
		close(h.done)
		for client := range h.clients {
			h.remove(client)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case client := <-h.register:
			h.clients[client] = true
			h.connected.Add(1)
		case client := <-h.unregister:
			h.remove(client)
		case message := <-h.broadcast:
			for client := range h.clients {
				if !client.subscribedTo(message.eventType) {
					continue
				}
				select {
				case client.send <- message.data:
				default:
					h.l.Warnf(ctx, "stream.Hub: client %s too slow, disconnecting", client.conn.RemoteAddr())
					h.remove(client)
				}
			}
		}
	}
}

func (h *Hub) remove(client *Client) {
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
		h.connected.Add(-1)
	}
}

// Publish queues event for broadcast. It satisfies webhook.Publisher.
func (h *Hub) Publish(event model.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.l.Errorf(context.Background(), "stream.Hub.Publish: marshal event %s: %v", event.ID, err)
		return
	}

	select {
	case h.broadcast <- broadcastMessage{eventType: event.Type, data: data}:
	default:
		h.dropped.Add(1)
		h.l.Warnf(context.Background(), "stream.Hub.Publish: broadcast dropped event=%s delivery=%s", event.Type, event.DeliveryID)
	}
}

// ClientCount returns the number of registered clients.
func (h *Hub) ClientCount() int {
	return int(h.connected.Load())
}

// Dropped returns how many events were discarded on a full buffer.
func (h *Hub) Dropped() int64 {
	return h.dropped.Load()
}

// join registers client unless the hub has stopped.
func (h *Hub) join(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) leave(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}
