package notify

import (
	"sync"
	"testing"
)

func signaled(ch <-chan struct{}) bool {
	select {
	case <-ch:
		return true
	default:
		return false
	}
}

func TestBrokerFanOut(t *testing.T) {
	b := NewBroker()

	_, ch1 := b.Subscribe()
	_, ch2 := b.Subscribe()

	b.Publish()

	if !signaled(ch1) || !signaled(ch2) {
		t.Error("publish did not reach all subscribers")
	}
}

func TestBrokerCoalesces(t *testing.T) {
	b := NewBroker()
	_, ch := b.Subscribe()

	b.Publish()
	b.Publish()
	b.Publish()

	if !signaled(ch) {
		t.Fatal("no signal delivered")
	}
	if signaled(ch) {
		t.Error("signals were queued instead of coalesced")
	}
}

func TestBrokerUnsubscribe(t *testing.T) {
	b := NewBroker()

	id, ch := b.Subscribe()
	b.Unsubscribe(id)
	b.Publish()

	if signaled(ch) {
		t.Error("unsubscribed channel received a signal")
	}

	// Unknown tokens are a no-op.
	b.Unsubscribe("not-a-token")
}

func TestBrokerConcurrentPublish(t *testing.T) {
	b := NewBroker()
	_, ch := b.Subscribe()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b.Publish()
		}()
	}
	wg.Wait()

	if !signaled(ch) {
		t.Error("no signal after concurrent publishes")
	}
}
