// Package session holds the current authenticated identity and exposes
// change notifications. The store is constructor-injected into every
// collaborator that needs identity; there is no ambient singleton.
package session

import (
	"context"
	"sync"

	"github.com/coursehub-io/coursehub/internal/domain/entity"
)

// subscriberBuffer bounds how many un-consumed notifications a slow
// subscriber can hold before further ones are dropped.
const subscriberBuffer = 8

// Store is the single source of truth for "who is logged in". Mutation
// is always a full-value replace under the lock; identity notifications
// are ordered, and every change opens a fresh session context so work
// tied to a superseded session can be abandoned.
type Store struct {
	mu      sync.Mutex
	current *entity.User
	gen     uint64
	ctx     context.Context
	cancel  context.CancelFunc
	subs    map[chan *entity.User]struct{}
}

// NewStore creates an empty session store (nobody logged in).
func NewStore() *Store {
	ctx, cancel := context.WithCancel(context.Background())
	return &Store{
		ctx:    ctx,
		cancel: cancel,
		subs:   make(map[chan *entity.User]struct{}),
	}
}

// Supersede invalidates the current session before a new login attempt:
// the generation advances and the old session context is cancelled, so
// an earlier in-flight attempt can no longer publish. It returns the
// generation a subsequent SetAt must present.
func (s *Store) Supersede() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.advanceLocked()
	return s.gen
}

// SetAt publishes user as the current identity if gen is still the
// latest generation. It reports whether the publish was applied; a
// false return means the caller's session was superseded and the stale
// result has been discarded.
func (s *Store) SetAt(gen uint64, user *entity.User) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return false
	}
	s.current = user
	s.broadcastLocked(user)
	return true
}

// Set unconditionally publishes user, superseding whatever session was
// active.
func (s *Store) Set(user *entity.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.advanceLocked()
	s.current = user
	s.broadcastLocked(user)
}

// Clear drops the current identity and cancels the session context.
// Always succeeds.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.advanceLocked()
	if s.current == nil {
		return
	}
	s.current = nil
	s.broadcastLocked(nil)
}

// Current returns the last-published identity, or nil.
func (s *Store) Current(ctx context.Context) *entity.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// IsAdmin reports whether the current identity has the admin role.
func (s *Store) IsAdmin(ctx context.Context) bool {
	return s.Current(ctx).IsAdmin()
}

// IsStudent reports whether the current identity has the student role.
func (s *Store) IsStudent(ctx context.Context) bool {
	return s.Current(ctx).IsStudent()
}

// Context returns the context of the current session. It is cancelled
// when the session is cleared or superseded, so a fetch started under
// it cannot apply its result to a later session's state.
func (s *Store) Context() context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctx
}

// Subscribe registers a change listener. The latest value is replayed
// immediately, then every subsequent change is delivered in order.
func (s *Store) Subscribe() chan *entity.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch := make(chan *entity.User, subscriberBuffer)
	s.subs[ch] = struct{}{}
	ch <- s.current
	return ch
}

// Unsubscribe removes and closes a listener channel.
func (s *Store) Unsubscribe(ch chan *entity.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.subs[ch]; ok {
		delete(s.subs, ch)
		close(ch)
	}
}

func (s *Store) advanceLocked() {
	s.gen++
	s.cancel()
	s.ctx, s.cancel = context.WithCancel(context.Background())
}

func (s *Store) broadcastLocked(user *entity.User) {
	for ch := range s.subs {
		select {
		case ch <- user:
		default:
			// Slow subscriber; it will still observe the latest value
			// from a later delivery or a fresh Subscribe.
		}
	}
}
