package events

import (
	"sync"
	"time"
)

// Event kinds published by the billing workflow.
const (
	KindBillCreated          = "bill.created"
	KindBillUpdated          = "bill.updated"
	KindBillDeleted          = "bill.deleted"
	KindBillSubmitted        = "bill.submitted"
	KindBillPaid             = "bill.paid"
	KindOwnerRegistered      = "owner.registered"
	KindConfirmationCreated  = "confirmation.created"
	KindConfirmationApproved = "confirmation.approved"
)

// Event is a change notification from one of the record collections.
type Event struct {
	Kind       string    `json:"kind"`
	EntityID   int       `json:"entity_id"`
	FlatNumber string    `json:"flat_number,omitempty"`
	OwnerName  string    `json:"owner_name,omitempty"`
	Amount     int       `json:"amount,omitempty"`
	At         time.Time `json:"at"`
}

// Hub fans change events out to subscribers. Subscriptions must be
// closed by the subscriber when the observing side is torn down;
// a leaked subscription keeps receiving (and eventually dropping)
// events forever.
type Hub struct {
	mu   sync.Mutex
	subs map[*Subscription]struct{}
}

// Subscription is a live feed of events. Read from C until Close.
type Subscription struct {
	C    chan Event
	hub  *Hub
	once sync.Once
}

func NewHub() *Hub {
	return &Hub{subs: make(map[*Subscription]struct{})}
}

// Subscribe registers a new subscriber with the given channel buffer.
// Events that arrive while the buffer is full are dropped for that
// subscriber rather than blocking the publisher.
func (h *Hub) Subscribe(buffer int) *Subscription {
	if buffer <= 0 {
		buffer = 16
	}
	sub := &Subscription{C: make(chan Event, buffer), hub: h}

	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()

	return sub
}

// Publish delivers the event to every live subscriber without blocking.
func (h *Hub) Publish(e Event) {
	if e.At.IsZero() {
		e.At = time.Now()
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for sub := range h.subs {
		select {
		case sub.C <- e:
		default:
			// slow consumer, drop
		}
	}
}

// SubscriberCount returns the number of live subscriptions.
func (h *Hub) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Close terminates the subscription and releases it from the hub.
// Safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.mu.Lock()
		delete(s.hub.subs, s)
		s.hub.mu.Unlock()
		close(s.C)
	})
}
