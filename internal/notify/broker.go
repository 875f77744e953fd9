// Package notify implements the store's change-notification channel as an
// explicit publish/subscribe broker. Subscribers receive an empty signal and
// are expected to re-fetch; events carry no payload.
package notify

import (
	"sync"

	"github.com/google/uuid"
)

// Broker fans a payload-free change signal out to registered subscribers.
// The zero value is not usable; call NewBroker.
type Broker struct {
	mu   sync.RWMutex
	subs map[string]chan struct{}
}

// NewBroker creates an empty broker.
func NewBroker() *Broker {
	return &Broker{subs: make(map[string]chan struct{})}
}

// Subscribe registers a new subscriber and returns its token and channel.
// The channel has a buffer of one; signals arriving while a previous signal
// is still pending are coalesced.
func (b *Broker) Subscribe() (string, <-chan struct{}) {
	id := uuid.New().String()
	ch := make(chan struct{}, 1)

	b.mu.Lock()
	b.subs[id] = ch
	b.mu.Unlock()

	return id, ch
}

// Unsubscribe removes the subscriber. Safe to call with an unknown token.
func (b *Broker) Unsubscribe(id string) {
	b.mu.Lock()
	delete(b.subs, id)
	b.mu.Unlock()
}

// Publish signals every subscriber without blocking. A subscriber with a
// pending undelivered signal is skipped; one signal is enough to re-fetch.
func (b *Broker) Publish() {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
