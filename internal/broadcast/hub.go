package broadcast

import (
	"sync"

	"github.com/Domenick1991/tablebook/internal/domain"
	"go.uber.org/zap"
)

const subscriberBuffer = 16

// Subscriber is one live viewer. Events arrive on Events() from the moment
// of subscription onward; there is no backfill.
type Subscriber struct {
	events chan domain.Event
}

func (s *Subscriber) Events() <-chan domain.Event {
	return s.events
}

// Hub fans session events out to all connected viewers. The subscriber set
// has its own lock and never contends with booking mutation.
type Hub struct {
	mu     sync.RWMutex
	subs   map[*Subscriber]struct{}
	logger *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		subs:   make(map[*Subscriber]struct{}),
		logger: logger,
	}
}

func (h *Hub) Subscribe() *Subscriber {
	sub := &Subscriber{events: make(chan domain.Event, subscriberBuffer)}
	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()
	h.logger.Debug("viewer subscribed", zap.Int("subscribers", h.Count()))
	return sub
}

// Unsubscribe removes the subscriber and closes its channel. Safe to call
// more than once.
func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	if _, ok := h.subs[sub]; ok {
		delete(h.subs, sub)
		close(sub.events)
	}
	h.mu.Unlock()
}

// Emit delivers the event to every current subscriber and returns
// immediately. A subscriber whose buffer is full loses this event; it never
// delays delivery to anyone else.
func (h *Hub) Emit(event domain.Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.subs {
		select {
		case sub.events <- event:
		default:
			h.logger.Warn("dropping event for slow viewer",
				zap.String("type", event.Type),
				zap.Int64("session_id", event.SessionID))
		}
	}
}

func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
