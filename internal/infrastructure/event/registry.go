package event

import (
	"maps"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/surgishop/backend/internal/domain/shared"
)

// subscriptions is an immutable snapshot of who listens to what. The empty
// key holds handlers that receive every event.
type subscriptions map[string][]shared.EventHandler

const anyEvent = ""

// subscriptionTable swaps whole snapshots on change so publishers read
// without locking. Writers serialize on mu.
type subscriptionTable struct {
	mu      sync.Mutex
	current atomic.Pointer[subscriptions]
}

func (t *subscriptionTable) snapshot() subscriptions {
	if s := t.current.Load(); s != nil {
		return *s
	}
	return nil
}

func (t *subscriptionTable) update(mutate func(next subscriptions)) {
	t.mu.Lock()
	defer t.mu.Unlock()

	next := make(subscriptions)
	for k, hs := range t.snapshot() {
		next[k] = slices.Clone(hs)
	}
	mutate(next)
	t.current.Store(&next)
}

func (t *subscriptionTable) add(handler shared.EventHandler, eventTypes ...string) {
	if len(eventTypes) == 0 {
		eventTypes = []string{anyEvent}
	}
	t.update(func(next subscriptions) {
		for _, et := range eventTypes {
			next[et] = append(next[et], handler)
		}
	})
}

func (t *subscriptionTable) remove(handler shared.EventHandler) {
	t.update(func(next subscriptions) {
		for _, et := range slices.Collect(maps.Keys(next)) {
			rest := slices.DeleteFunc(next[et], func(h shared.EventHandler) bool { return h == handler })
			if len(rest) == 0 {
				delete(next, et)
				continue
			}
			next[et] = rest
		}
	})
}

// handlersFor lists the handlers for eventType, type-specific ones first.
func (t *subscriptionTable) handlersFor(eventType string) []shared.EventHandler {
	s := t.snapshot()
	if eventType == anyEvent {
		return s[anyEvent]
	}
	return slices.Concat(s[eventType], s[anyEvent])
}
