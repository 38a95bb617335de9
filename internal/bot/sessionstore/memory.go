package sessionstore

import (
	"context"
	"sync"
	"time"

	"vet-clinic-booking/internal/bot"
)

// Memory guarda sesiones en el proceso; se pierden al reiniciar el bot.
type Memory struct {
	mu  sync.RWMutex
	ttl time.Duration
	now func() time.Time
	m   map[int64]bot.Session
}

// NewMemory: ttl <= 0 significa sin expiración.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		ttl: ttl,
		now: time.Now,
		m:   make(map[int64]bot.Session),
	}
}

func (s *Memory) Get(ctx context.Context, chatID int64) (bot.Session, error) {
	s.mu.RLock()
	sess, ok := s.m[chatID]
	s.mu.RUnlock()

	if !ok || s.expired(sess) {
		return bot.Session{}, bot.ErrSessionNotFound
	}
	return sess, nil
}

func (s *Memory) Save(ctx context.Context, sess bot.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[sess.ChatID] = sess
	return nil
}

func (s *Memory) Delete(ctx context.Context, chatID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, chatID)
	return nil
}

func (s *Memory) expired(sess bot.Session) bool {
	return s.ttl > 0 && s.now().Sub(sess.UpdatedAt) > s.ttl
}
