package services

import (
	"sync"
)

// Event names emitted by the order state machine.
const (
	EventNewOrder     = "new_order"
	EventOrderUpdated = "order_updated"
)

// Event is one broadcast message. Branch is the hex id of the branch
// the event belongs to, empty for global-only events.
type Event struct {
	Name    string      `json:"name"`
	Branch  string      `json:"branch,omitempty"`
	Payload interface{} `json:"payload"`
}

type subscriber struct {
	id     int
	branch string
	ch     chan Event
}

// EventBus fans events out to all subscribers plus the branch-scoped
// group. Emits never block: a subscriber that is not draining its
// channel misses events.
type EventBus struct {
	mu   sync.Mutex
	next int
	subs map[int]*subscriber
}

func NewEventBus() *EventBus {
	return &EventBus{subs: make(map[int]*subscriber)}
}

// Subscribe registers a listener. branch scopes the subscription to one
// branch; an empty branch receives everything. The returned cancel
// function removes the subscription and closes the channel.
func (b *EventBus) Subscribe(branch string, buffer int) (<-chan Event, func()) {
	if buffer <= 0 {
		buffer = 16
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.next++
	sub := &subscriber{id: b.next, branch: branch, ch: make(chan Event, buffer)}
	b.subs[sub.id] = sub
	id := sub.id
	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if s, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(s.ch)
		}
	}
	return sub.ch, cancel
}

// Emit broadcasts the event to global subscribers and to subscribers of
// the event's branch.
func (b *EventBus) Emit(name, branch string, payload interface{}) {
	ev := Event{Name: name, Branch: branch, Payload: payload}
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, sub := range b.subs {
		if sub.branch != "" && sub.branch != branch {
			continue
		}
		select {
		case sub.ch <- ev:
		default:
		}
	}
}
