package repository

import (
	"context"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
)

type memSession struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]memEntry
}

type memEntry struct {
	session   entity.Session
	expiresAt time.Time
}

// NewMemorySessionRepository keeps sessions in process memory. Entries older
// than ttl since their last write are treated as missing; ttl <= 0 disables expiry.
func NewMemorySessionRepository(ttl time.Duration) SessionRepository {
	return &memSession{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]memEntry),
	}
}

func (that *memSession) CreateOrUpdate(_ context.Context, session *entity.Session) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.evictExpired()

	entry := memEntry{session: cloneSession(session)}
	if that.ttl > 0 {
		entry.expiresAt = that.now().Add(that.ttl)
	}
	that.sessions[session.ID] = entry

	return nil
}

func (that *memSession) GetByID(_ context.Context, id string) (*entity.Session, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	entry, ok := that.sessions[id]
	if !ok || that.expired(entry) {
		return nil, apperror.ErrSessionNotFound
	}

	session := cloneSession(&entry.session)

	return &session, nil
}

func (that *memSession) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	entry, ok := that.sessions[id]
	if !ok || that.expired(entry) {
		return apperror.ErrSessionNotFound
	}

	delete(that.sessions, id)

	return nil
}

func (that *memSession) expired(entry memEntry) bool {
	return !entry.expiresAt.IsZero() && !that.now().Before(entry.expiresAt)
}

func (that *memSession) evictExpired() {
	for id, entry := range that.sessions {
		if that.expired(entry) {
			delete(that.sessions, id)
		}
	}
}

func cloneSession(session *entity.Session) entity.Session {
	clone := *session
	clone.History = append([]entity.Board(nil), session.History...)
	return clone
}
