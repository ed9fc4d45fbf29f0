package stream

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/Domenick1991/flightboard/internal/domain"
	"github.com/Domenick1991/flightboard/internal/logger"
	"github.com/Domenick1991/flightboard/internal/metrics"
	"github.com/google/uuid"
)

const (
	FrameConnected    = "connected"
	FrameFlightUpdate = "flight-update"
	FrameHeartbeat    = "heartbeat"
)

// Frame is one named event on the push stream.
type Frame struct {
	Event string
	Data  []byte
}

// Connection is the handle for one subscribed client. Frames are delivered
// through a bounded queue; the transport layer drains Frames() until it is
// closed.
type Connection struct {
	ID     string
	frames chan Frame
	once   sync.Once
}

func (c *Connection) Frames() <-chan Frame {
	return c.frames
}

func (c *Connection) close() {
	c.once.Do(func() { close(c.frames) })
}

// Hub fans applied events out to every live connection. The connection set
// is mutated from subscriber goroutines and iterated from the broadcaster,
// so all access goes through the mutex. A slow client never blocks the
// broadcast loop: its queue fills up and that one client is disconnected.
type Hub struct {
	mu         sync.RWMutex
	conns      map[string]*Connection
	bufferSize int
	heartbeat  time.Duration
	log        logger.Logger
	metrics    *metrics.Metrics
}

func NewHub(bufferSize int, heartbeat time.Duration, log logger.Logger, m *metrics.Metrics) *Hub {
	return &Hub{
		conns:      make(map[string]*Connection),
		bufferSize: bufferSize,
		heartbeat:  heartbeat,
		log:        log,
		metrics:    m,
	}
}

// Subscribe registers a new connection and immediately queues the connected
// acknowledgment frame.
func (h *Hub) Subscribe() *Connection {
	conn := &Connection{
		ID:     uuid.NewString(),
		frames: make(chan Frame, h.bufferSize),
	}

	ack, _ := json.Marshal(map[string]string{
		"client_id":    conn.ID,
		"connected_at": time.Now().UTC().Format(time.RFC3339),
	})

	h.mu.Lock()
	h.conns[conn.ID] = conn
	conn.frames <- Frame{Event: FrameConnected, Data: ack}
	h.mu.Unlock()

	if h.metrics != nil {
		h.metrics.StreamClients.Inc()
	}
	h.log.Info("stream client connected", "client_id", conn.ID)
	return conn
}

// Unsubscribe removes a connection and releases its queue. Safe to call more
// than once; the transport calls it when the client goes away.
func (h *Hub) Unsubscribe(conn *Connection) {
	h.mu.Lock()
	_, ok := h.conns[conn.ID]
	if ok {
		delete(h.conns, conn.ID)
		conn.close()
	}
	h.mu.Unlock()

	if ok {
		if h.metrics != nil {
			h.metrics.StreamClients.Dec()
		}
		h.log.Info("stream client disconnected", "client_id", conn.ID)
	}
}

// Broadcast delivers an applied event to every live connection. Only
// committed, enriched events reach this call. Delivery to each connection is
// independent: a full queue marks that connection dead and it is dropped
// after the iteration, without affecting the others.
func (h *Hub) Broadcast(event *domain.FlightEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		h.log.Error("marshal flight event for broadcast", "error", err, "flight_number", event.FlightNumber)
		return
	}
	h.send(Frame{Event: FrameFlightUpdate, Data: data})
}

// Run drives the heartbeat until the context is canceled, then closes every
// connection. Heartbeats keep idle connections and proxies alive and surface
// half-closed clients through the same full-queue path as broadcasts.
func (h *Hub) Run(ctx context.Context) {
	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			data, _ := json.Marshal(map[string]string{"timestamp": time.Now().UTC().Format(time.RFC3339)})
			h.send(Frame{Event: FrameHeartbeat, Data: data})
		case <-ctx.Done():
			h.closeAll()
			return
		}
	}
}

func (h *Hub) send(frame Frame) {
	var dead []*Connection

	h.mu.RLock()
	for _, conn := range h.conns {
		select {
		case conn.frames <- frame:
		default:
			dead = append(dead, conn)
		}
	}
	h.mu.RUnlock()

	for _, conn := range dead {
		if h.metrics != nil {
			h.metrics.DroppedFrames.Inc()
		}
		h.log.Warn("dropping slow stream client", "client_id", conn.ID, "event", frame.Event)
		h.Unsubscribe(conn)
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	conns := make([]*Connection, 0, len(h.conns))
	for _, conn := range h.conns {
		conns = append(conns, conn)
	}
	h.conns = make(map[string]*Connection)
	h.mu.Unlock()

	for _, conn := range conns {
		conn.close()
		if h.metrics != nil {
			h.metrics.StreamClients.Dec()
		}
	}
}

// Len reports the number of live connections.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}
