// Package events provides a small in-process pub/sub emitter used for
// cross-cutting notifications (currently: learning-space stats
// invalidation after practice activity).
//
// The emitter is an explicit dependency: one instance is constructed in app
// wiring at process start and injected where needed. There is no ambient
// global and no teardown — subscribers live for the life of the process.
package events

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Topic identifies an event stream.
type Topic string

// TopicSpaceStatsChanged fires whenever practice activity changes the
// aggregate stats of a learning space (result submitted, session finished).
const TopicSpaceStatsChanged Topic = "gym.space_stats_changed"

// Event is the payload delivered to subscribers.
type Event struct {
	Topic   Topic
	UserID  uuid.UUID
	SpaceID uuid.UUID
	At      time.Time
}

// Handler receives published events. Handlers run synchronously on the
// publisher's goroutine and must not block.
type Handler func(Event)

// Emitter dispatches events to subscribed handlers by topic.
type Emitter struct {
	mu       sync.RWMutex
	handlers map[Topic][]Handler
}

// NewEmitter creates an empty emitter.
func NewEmitter() *Emitter {
	return &Emitter{handlers: make(map[Topic][]Handler)}
}

// Subscribe registers a handler for a topic.
func (e *Emitter) Subscribe(topic Topic, h Handler) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.handlers[topic] = append(e.handlers[topic], h)
}

// Publish delivers the event to all handlers subscribed to its topic.
func (e *Emitter) Publish(event Event) {
	e.mu.RLock()
	hs := e.handlers[event.Topic]
	e.mu.RUnlock()

	for _, h := range hs {
		h(event)
	}
}
