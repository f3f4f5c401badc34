package events

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/zhouzirui/dexter-show/backend/internal/model/catalog"
)

// Event types published on catalog mutations.
const (
	TypeCharacterCreated = "character.created"
	TypeCharacterUpdated = "character.updated"
	TypeCharacterDeleted = "character.deleted"
)

// Event describes a single change to the character collection.
type Event struct {
	ID         string            `json:"id"`
	Type       string            `json:"type"`
	Character  catalog.Character `json:"personagem"`
	OccurredAt time.Time         `json:"occurredAt"`
}

// NewEvent stamps a change with a fresh id and the current time.
func NewEvent(eventType string, character catalog.Character) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		Character:  character,
		OccurredAt: time.Now().UTC(),
	}
}

// Hub fans events out to subscribers. Publish never blocks: a subscriber
// whose buffer is full misses the event.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[uint64]chan Event
	nextID      uint64
	buffer      int
	closed      bool
	logger      *zap.Logger
}

// NewHub creates a hub whose subscriber channels hold up to buffer events.
func NewHub(buffer int, logger *zap.Logger) *Hub {
	if buffer < 1 {
		buffer = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		subscribers: make(map[uint64]chan Event),
		buffer:      buffer,
		logger:      logger,
	}
}

// Subscribe registers a new listener. The returned function unsubscribes and
// closes the channel; it is safe to call more than once.
func (h *Hub) Subscribe() (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, h.buffer)
	if h.closed {
		close(ch)
		return ch, func() {}
	}

	id := h.nextID
	h.nextID++
	h.subscribers[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() { h.remove(id) })
	}
}

// Publish delivers event to every current subscriber.
func (h *Hub) Publish(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for id, ch := range h.subscribers {
		select {
		case ch <- event:
		default:
			h.logger.Warn("dropping event for slow subscriber",
				zap.Uint64("subscriber", id),
				zap.String("event_id", event.ID),
				zap.String("event_type", event.Type),
			)
		}
	}
}

// Subscribers reports the number of active listeners.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

// Close disconnects every subscriber. Later subscriptions receive a closed channel.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	for id, ch := range h.subscribers {
		close(ch)
		delete(h.subscribers, id)
	}
}

func (h *Hub) remove(id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if ch, ok := h.subscribers[id]; ok {
		close(ch)
		delete(h.subscribers, id)
	}
}
