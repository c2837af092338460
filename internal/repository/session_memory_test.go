package repository

import (
	"context"
	"testing"
	"time"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySessionRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Stores and returns a copy", func(t *testing.T) {
		// Given: a stored session
		sessionRepo := NewMemorySessionRepository(time.Hour)
		session := newTestSession("123")
		require.NoError(t, sessionRepo.CreateOrUpdate(ctx, session))

		// When: the caller mutates its own session afterwards
		session.History[1] = entity.Board{entity.PlayerO}
		session.Step = 2

		// Then: the stored session is unaffected
		retrieved, err := sessionRepo.GetByID(ctx, "123")
		require.NoError(t, err)
		assert.Equal(t, entity.Board{entity.PlayerX}, retrieved.History[1])
		assert.Equal(t, 1, retrieved.Step)
	})

	t.Run("Unknown ID is not found", func(t *testing.T) {
		sessionRepo := NewMemorySessionRepository(time.Hour)

		_, err := sessionRepo.GetByID(ctx, "missing")
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)

		err = sessionRepo.DeleteByID(ctx, "missing")
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})

	t.Run("Delete removes the session", func(t *testing.T) {
		sessionRepo := NewMemorySessionRepository(time.Hour)
		require.NoError(t, sessionRepo.CreateOrUpdate(ctx, newTestSession("123")))

		require.NoError(t, sessionRepo.DeleteByID(ctx, "123"))

		_, err := sessionRepo.GetByID(ctx, "123")
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})

	t.Run("Sessions expire after the ttl", func(t *testing.T) {
		// Given: a repository with a controllable clock
		now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
		sessionRepo := &memSession{
			ttl:      time.Minute,
			now:      func() time.Time { return now },
			sessions: make(map[string]memEntry),
		}
		require.NoError(t, sessionRepo.CreateOrUpdate(ctx, newTestSession("123")))

		// When: less than the ttl passes
		now = now.Add(30 * time.Second)

		// Then: the session is still there
		_, err := sessionRepo.GetByID(ctx, "123")
		require.NoError(t, err)

		// When: the ttl passes
		now = now.Add(time.Minute)

		// Then: the session is gone
		_, err = sessionRepo.GetByID(ctx, "123")
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})
}
