package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coursehub-io/coursehub/internal/domain/entity"
)

func student(id string) *entity.User {
	return &entity.User{ID: id, Email: id + "@example.com", Role: entity.UserRoleStudent}
}

func admin(id string) *entity.User {
	return &entity.User{ID: id, Email: id + "@example.com", Role: entity.UserRoleAdmin}
}

func TestStoreStartsEmpty(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	assert.Nil(t, s.Current(ctx))
	assert.False(t, s.IsAdmin(ctx))
	assert.False(t, s.IsStudent(ctx))
}

func TestSetAndClear(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	s.Set(student("alice"))
	require.NotNil(t, s.Current(ctx))
	assert.Equal(t, "alice", s.Current(ctx).ID)
	assert.True(t, s.IsStudent(ctx))
	assert.False(t, s.IsAdmin(ctx))

	s.Clear()
	assert.Nil(t, s.Current(ctx))
	assert.False(t, s.IsStudent(ctx))
}

func TestRolePredicatesMutuallyExclusive(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	s.Set(admin("root"))
	assert.True(t, s.IsAdmin(ctx))
	assert.False(t, s.IsStudent(ctx))
}

func TestSubscribeReplaysLatestValue(t *testing.T) {
	s := NewStore()
	s.Set(student("alice"))

	ch := s.Subscribe()
	defer s.Unsubscribe(ch)

	select {
	case got := <-ch:
		require.NotNil(t, got)
		assert.Equal(t, "alice", got.ID)
	case <-time.After(time.Second):
		t.Fatal("no replay of current value")
	}
}

func TestSubscribeDeliversChangesInOrder(t *testing.T) {
	s := NewStore()
	ch := s.Subscribe()
	defer s.Unsubscribe(ch)

	assert.Nil(t, <-ch) // initial replay: empty session

	s.Set(student("alice"))
	s.Set(student("bob"))
	s.Clear()

	got := <-ch
	require.NotNil(t, got)
	assert.Equal(t, "alice", got.ID)

	got = <-ch
	require.NotNil(t, got)
	assert.Equal(t, "bob", got.ID)

	assert.Nil(t, <-ch)
}

func TestSetAtDiscardsStaleGeneration(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	// First login attempt starts...
	gen1 := s.Supersede()
	// ...then a second attempt supersedes it before it publishes.
	gen2 := s.Supersede()

	assert.False(t, s.SetAt(gen1, student("late")))
	assert.Nil(t, s.Current(ctx))

	assert.True(t, s.SetAt(gen2, student("current")))
	require.NotNil(t, s.Current(ctx))
	assert.Equal(t, "current", s.Current(ctx).ID)
}

func TestClearCancelsSessionContext(t *testing.T) {
	s := NewStore()
	s.Set(student("alice"))

	sessionCtx := s.Context()
	s.Clear()

	select {
	case <-sessionCtx.Done():
	case <-time.After(time.Second):
		t.Fatal("session context not cancelled on clear")
	}

	// The fresh session has a live context.
	select {
	case <-s.Context().Done():
		t.Fatal("new session context already cancelled")
	default:
	}
}

func TestSupersedeCancelsPreviousContext(t *testing.T) {
	s := NewStore()
	gen := s.Supersede()
	stale := s.Context()

	s.Supersede()

	select {
	case <-stale.Done():
	case <-time.After(time.Second):
		t.Fatal("superseded session context not cancelled")
	}

	assert.False(t, s.SetAt(gen, student("late")))
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	s := NewStore()
	ch := s.Subscribe()
	<-ch // drain replay

	s.Unsubscribe(ch)
	_, open := <-ch
	assert.False(t, open)

	// Double unsubscribe must not panic.
	s.Unsubscribe(ch)
}

func TestContextResolver(t *testing.T) {
	r := NewContextResolver()
	ctx := context.Background()

	assert.Nil(t, r.Current(ctx))
	assert.False(t, r.IsAdmin(ctx))
	assert.False(t, r.IsStudent(ctx))

	ctx = WithUser(ctx, admin("root"))
	require.NotNil(t, r.Current(ctx))
	assert.True(t, r.IsAdmin(ctx))
	assert.False(t, r.IsStudent(ctx))
}
