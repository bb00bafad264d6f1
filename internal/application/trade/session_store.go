package trade

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/surgishop/backend/internal/domain/shared"
	"golang.org/x/sync/singleflight"
)

// ErrSessionNotFound is returned when no open edit session exists for a document
var ErrSessionNotFound = shared.NewDomainError("SESSION_NOT_FOUND", "No open edit session for this document")

type closer interface {
	Close()
}

type sessionEntry[T any] struct {
	value    T
	lastSeen time.Time
}

// SessionStore keeps open document edit sessions and expires idle ones
type SessionStore[T any] struct {
	mu      sync.Mutex
	ttl     time.Duration
	items   map[uuid.UUID]*sessionEntry[T]
	now     func() time.Time
	reopens singleflight.Group
}

// NewSessionStore creates a store. A zero ttl disables expiry.
func NewSessionStore[T any](ttl time.Duration) *SessionStore[T] {
	return &SessionStore[T]{
		ttl:   ttl,
		items: make(map[uuid.UUID]*sessionEntry[T]),
		now:   time.Now,
	}
}

// Put registers a session, replacing any previous one for the same id
func (s *SessionStore[T]) Put(id uuid.UUID, value T) {
	s.mu.Lock()
	old, ok := s.items[id]
	s.items[id] = &sessionEntry[T]{value: value, lastSeen: s.now()}
	s.mu.Unlock()

	if ok {
		closeValue(old.value)
	}
}

// Get returns the session and refreshes its idle timer
func (s *SessionStore[T]) Get(id uuid.UUID) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.items[id]
	if !ok {
		var zero T
		return zero, ErrSessionNotFound
	}
	entry.lastSeen = s.now()
	return entry.value, nil
}

// GetOrCreate returns the open session for id, calling create only when none
// exists. Concurrent callers for the same id share one create call and all
// receive the same session.
func (s *SessionStore[T]) GetOrCreate(id uuid.UUID, create func() (T, error)) (T, error) {
	if v, err := s.Get(id); err == nil {
		return v, nil
	}

	v, err, _ := s.reopens.Do(id.String(), func() (any, error) {
		if v, err := s.Get(id); err == nil {
			return v, nil
		}
		created, err := create()
		if err != nil {
			return nil, err
		}
		return s.putIfAbsent(id, created), nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

// putIfAbsent stores value unless a session for id appeared meanwhile, in
// which case value is closed and the stored session wins.
func (s *SessionStore[T]) putIfAbsent(id uuid.UUID, value T) T {
	s.mu.Lock()
	if entry, ok := s.items[id]; ok {
		entry.lastSeen = s.now()
		s.mu.Unlock()
		closeValue(value)
		return entry.value
	}
	s.items[id] = &sessionEntry[T]{value: value, lastSeen: s.now()}
	s.mu.Unlock()
	return value
}

// Delete removes and closes a session
func (s *SessionStore[T]) Delete(id uuid.UUID) {
	s.mu.Lock()
	entry, ok := s.items[id]
	delete(s.items, id)
	s.mu.Unlock()

	if ok {
		closeValue(entry.value)
	}
}

// Len returns the number of open sessions
func (s *SessionStore[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Sweep closes and removes sessions idle for longer than the ttl
func (s *SessionStore[T]) Sweep() int {
	if s.ttl <= 0 {
		return 0
	}

	cutoff := s.now().Add(-s.ttl)
	var expired []T

	s.mu.Lock()
	for id, entry := range s.items {
		if entry.lastSeen.Before(cutoff) {
			expired = append(expired, entry.value)
			delete(s.items, id)
		}
	}
	s.mu.Unlock()

	for _, v := range expired {
		closeValue(v)
	}
	return len(expired)
}

// Run sweeps on every interval until ctx is done
func (s *SessionStore[T]) Run(ctx context.Context, interval time.Duration) {
	if s.ttl <= 0 || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

func closeValue(v any) {
	if c, ok := v.(closer); ok {
		c.Close()
	}
}
