package services

import (
	"sync"

	"github.com/dmitrijs2005/staffkeeper/internal/client/models"
)

// Observable holds a value and pushes every published value to its
// subscribers. A new subscriber immediately receives the current value.
// Callbacks run synchronously on the publishing goroutine and must not
// subscribe or publish themselves.
type Observable[T any] struct {
	deliver sync.Mutex // serializes publication with replay to new subscribers

	mu    sync.Mutex
	value T
	subs  map[int]func(T)
	next  int
}

func NewObservable[T any](initial T) *Observable[T] {
	return &Observable[T]{value: initial, subs: map[int]func(T){}}
}

// Value returns the latest value.
func (o *Observable[T]) Value() T {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.value
}

// Subscribe registers fn, replays the current value to it and returns a
// function that cancels the subscription.
func (o *Observable[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	o.deliver.Lock()
	defer o.deliver.Unlock()

	o.mu.Lock()
	id := o.next
	o.next++
	o.subs[id] = fn
	v := o.value
	o.mu.Unlock()

	fn(v)

	return func() {
		o.mu.Lock()
		delete(o.subs, id)
		o.mu.Unlock()
	}
}

func (o *Observable[T]) publish(v T) {
	o.deliver.Lock()
	defer o.deliver.Unlock()

	o.mu.Lock()
	o.value = v
	subs := make([]func(T), 0, len(o.subs))
	for i := 0; i < o.next; i++ {
		if fn, ok := o.subs[i]; ok {
			subs = append(subs, fn)
		}
	}
	o.mu.Unlock()

	for _, fn := range subs {
		fn(v)
	}
}

// SessionState is the process-wide source of truth for who is signed in.
// Only AuthService publishes to it.
type SessionState struct {
	pub sync.Mutex

	mu      sync.RWMutex
	current models.Session

	identity      *Observable[*models.Identity]
	authenticated *Observable[bool]
}

func NewSessionState() *SessionState {
	return &SessionState{
		current:       models.AnonymousSession(),
		identity:      NewObservable[*models.Identity](nil),
		authenticated: NewObservable(false),
	}
}

// Current returns a snapshot of the session.
func (s *SessionState) Current() models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// HasRole reports whether the current identity holds role. It is false
// when nobody is signed in.
func (s *SessionState) HasRole(role models.Role) bool {
	return s.Current().HasRole(role)
}

// SubscribeIdentity delivers the latest identity, nil when anonymous. Each
// delivery is a fresh copy.
func (s *SessionState) SubscribeIdentity(fn func(*models.Identity)) func() {
	return s.identity.Subscribe(func(id *models.Identity) {
		if id == nil {
			fn(nil)
			return
		}
		c := *id
		fn(&c)
	})
}

func (s *SessionState) SubscribeAuthenticated(fn func(bool)) func() {
	return s.authenticated.Subscribe(fn)
}

// publish replaces the session. The snapshot is updated before any
// subscriber is notified.
func (s *SessionState) publish(session models.Session) {
	s.pub.Lock()
	defer s.pub.Unlock()

	s.mu.Lock()
	s.current = session
	s.mu.Unlock()

	var idp *models.Identity
	if id, ok := session.Identity(); ok {
		idp = &id
	}
	s.identity.publish(idp)
	s.authenticated.publish(session.Authenticated())
}
