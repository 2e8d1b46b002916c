// Package events carries fire-and-forget signals between otherwise unrelated
// parts of the console, replacing any ambient global notification channel.
package events

import "sync"

// Event identifies a broadcast signal.
type Event string

// EventUnauthorized is published when the server rejects the stored session.
// Subscribers are expected to abandon authenticated work and prompt re-login.
const EventUnauthorized Event = "unauthorized"

// Bus is a minimal synchronous observer registry. Handlers run on the
// publisher's goroutine, in subscription order.
type Bus struct {
	mu   sync.Mutex
	subs []func(Event)
}

func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a handler for every published event.
func (b *Bus) Subscribe(handler func(Event)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = append(b.subs, handler)
}

// Publish delivers the event to every subscriber.
func (b *Bus) Publish(event Event) {
	b.mu.Lock()
	handlers := make([]func(Event), len(b.subs))
	copy(handlers, b.subs)
	b.mu.Unlock()

	for _, handler := range handlers {
		handler(event)
	}
}
