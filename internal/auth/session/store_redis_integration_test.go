//go:build integration

package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/internal/auth/session"
	"github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/pkg/testutil/containers"
)

type RedisSessionSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *session.RedisStore
}

func TestRedisSessionSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisSessionSuite))
}

func (s *RedisSessionSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
	s.store = session.NewRedis(s.redis.Client)
}

func (s *RedisSessionSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisSessionSuite) newSession(ttl time.Duration) session.Session {
	now := time.Now().Truncate(time.Second)
	return session.Session{
		ID:        "session-1",
		UserID:    "user-1",
		Roles:     []string{"estudiante"},
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

func (s *RedisSessionSuite) TestRoundTrip() {
	ctx := context.Background()
	sess := s.newSession(time.Hour)
	s.Require().NoError(s.store.Create(ctx, sess))

	got, err := s.store.Get(ctx, sess.ID)
	s.Require().NoError(err)
	s.Equal(sess.UserID, got.UserID)
	s.Equal(sess.Roles, got.Roles)
	s.True(got.Active(time.Now()))
}

func (s *RedisSessionSuite) TestMissingSession() {
	_, err := s.store.Get(context.Background(), "unknown")
	s.ErrorIs(err, session.ErrNotFound)
}

func (s *RedisSessionSuite) TestDelete() {
	ctx := context.Background()
	sess := s.newSession(time.Hour)
	s.Require().NoError(s.store.Create(ctx, sess))
	s.Require().NoError(s.store.Delete(ctx, sess.ID))

	_, err := s.store.Get(ctx, sess.ID)
	s.ErrorIs(err, session.ErrNotFound)

	// Deleting a dead session is not an error.
	s.NoError(s.store.Delete(ctx, sess.ID))
}

func (s *RedisSessionSuite) TestExpiryEvictsKey() {
	ctx := context.Background()
	sess := s.newSession(time.Second)
	s.Require().NoError(s.store.Create(ctx, sess))

	s.Require().Eventually(func() bool {
		_, err := s.store.Get(ctx, sess.ID)
		return err != nil
	}, 5*time.Second, 200*time.Millisecond)
}
