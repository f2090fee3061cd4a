// Package notify carries the "registry of kind X changed" broadcast.
// Subscribers re-query on receipt; the event itself is not a delta.
package notify

import (
	"sync"
	"time"

	"github.com/Rethinkk/pam-registry/internal/models"
)

// Event announces a mutation of one registry kind.
type Event struct {
	Kind models.Kind `json:"kind"`
	Op   string      `json:"op"` // "upsert" or "delete"
	ID   string      `json:"id,omitempty"`
	At   time.Time   `json:"at"`
}

const (
	OpUpsert = "upsert"
	OpDelete = "delete"
)

const subscriberBuffer = 16

// Bus is a process-wide, per-kind broadcast channel with no persisted state.
type Bus struct {
	mu     sync.Mutex
	nextID int
	subs   map[models.Kind]map[int]chan Event
}

func NewBus() *Bus {
	return &Bus{subs: make(map[models.Kind]map[int]chan Event)}
}

// Subscribe registers for events of one kind. The returned cancel func must
// be called when the subscriber goes away; a subscription must not outlive
// its view.
func (b *Bus) Subscribe(kind models.Kind) (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	ch := make(chan Event, subscriberBuffer)
	if b.subs[kind] == nil {
		b.subs[kind] = make(map[int]chan Event)
	}
	b.subs[kind][id] = ch

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subs[kind][id]; ok {
			delete(b.subs[kind], id)
			close(sub)
		}
	}
	return ch, cancel
}

// Publish fans the event out to the kind's subscribers. A subscriber whose
// buffer is full misses the event; it will catch up on its next re-query.
func (b *Bus) Publish(ev Event) {
	if ev.At.IsZero() {
		ev.At = time.Now()
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs[ev.Kind] {
		select {
		case ch <- ev:
		default:
		}
	}
}
