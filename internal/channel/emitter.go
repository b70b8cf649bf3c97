package channel

import (
	"encoding/json"
	"sync"
)

// Handler receives the data part of an envelope.
type Handler func(data json.RawMessage)

type subscription struct {
	id uint64
	fn Handler
}

// Emitter is a per-instance registry of handlers keyed by event type.
type Emitter struct {
	mu       sync.Mutex
	nextID   uint64
	handlers map[string][]subscription
}

func NewEmitter() *Emitter {
	return &Emitter{handlers: make(map[string][]subscription)}
}

// Subscribe registers fn under eventType and returns its disposer.
// Calling the disposer more than once is a no-op.
func (e *Emitter) Subscribe(eventType string, fn Handler) func() {
	e.mu.Lock()
	e.nextID++
	id := e.nextID
	e.handlers[eventType] = append(e.handlers[eventType], subscription{id: id, fn: fn})
	e.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { e.unsubscribe(eventType, id) })
	}
}

func (e *Emitter) unsubscribe(eventType string, id uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	subs := e.handlers[eventType]
	for i, s := range subs {
		if s.id == id {
			e.handlers[eventType] = append(subs[:i:i], subs[i+1:]...)
			break
		}
	}
	if len(e.handlers[eventType]) == 0 {
		delete(e.handlers, eventType)
	}
}

// Emit calls every handler of eventType in registration order. Handlers
// registered or removed during the call take effect on the next Emit.
func (e *Emitter) Emit(eventType string, data json.RawMessage) {
	e.mu.Lock()
	subs := append([]subscription(nil), e.handlers[eventType]...)
	e.mu.Unlock()

	for _, s := range subs {
		s.fn(data)
	}
}

func (e *Emitter) Count(eventType string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.handlers[eventType])
}

func (e *Emitter) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.handlers = make(map[string][]subscription)
}
