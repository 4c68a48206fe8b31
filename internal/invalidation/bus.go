// Package invalidation carries "your cached view is stale" messages from
// the services that mutate data to the views that cache it.
package invalidation

import (
	"slices"
	"sync"
)

// Topic names the kind of data that changed.
type Topic string

const (
	TopicHabits Topic = "habits"
	TopicSpaces Topic = "spaces"
)

// Message reports that a user's data for the given topics changed.
type Message struct {
	UserID string
	Topics []Topic
}

// Has reports whether the message covers topic.
func (m Message) Has(topic Topic) bool {
	return slices.Contains(m.Topics, topic)
}

// Handler receives published messages.
type Handler func(Message)

// Bus fans messages out to subscribers. Delivery is synchronous: Publish
// returns after every subscriber has handled the message.
type Bus struct {
	mu     sync.RWMutex
	nextID int
	subs   []subscription
}

type subscription struct {
	id int
	fn Handler
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers fn and returns a function that removes it.
func (b *Bus) Subscribe(fn Handler) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			b.subs = slices.DeleteFunc(b.subs, func(s subscription) bool { return s.id == id })
		})
	}
}

// Publish delivers msg to all current subscribers in subscription order.
func (b *Bus) Publish(msg Message) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.subs))
	for i, s := range b.subs {
		handlers[i] = s.fn
	}
	b.mu.RUnlock()

	for _, fn := range handlers {
		fn(msg)
	}
}
