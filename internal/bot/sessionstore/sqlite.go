package sessionstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"vet-clinic-booking/internal/bot"
)

// SQLite persiste sesiones en un archivo local; útil cuando el bot corre sin Redis.
type SQLite struct {
	db  *sql.DB
	ttl time.Duration
	now func() time.Time
}

func OpenSQLite(path string, ttl time.Duration) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// un solo escritor
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	s := &SQLite{db: db, ttl: ttl, now: time.Now}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite migrate: %w", err)
	}
	return s, nil
}

func (s *SQLite) migrate() error {
	if _, err := s.db.Exec(`PRAGMA journal_mode=WAL`); err != nil {
		return fmt.Errorf("set WAL mode: %w", err)
	}
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS bot_sessions (
			chat_id    INTEGER PRIMARY KEY,
			data       TEXT    NOT NULL,
			updated_at INTEGER NOT NULL
		)`)
	return err
}

func (s *SQLite) Get(ctx context.Context, chatID int64) (bot.Session, error) {
	var (
		raw       string
		updatedAt int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT data, updated_at FROM bot_sessions WHERE chat_id = ?`, chatID,
	).Scan(&raw, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return bot.Session{}, bot.ErrSessionNotFound
	}
	if err != nil {
		return bot.Session{}, fmt.Errorf("sqlite get session: %w", err)
	}

	if s.ttl > 0 && s.now().Sub(time.Unix(updatedAt, 0)) > s.ttl {
		_ = s.Delete(ctx, chatID)
		return bot.Session{}, bot.ErrSessionNotFound
	}

	var sess bot.Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		return bot.Session{}, fmt.Errorf("decode session: %w", err)
	}
	return sess, nil
}

func (s *SQLite) Save(ctx context.Context, sess bot.Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO bot_sessions (chat_id, data, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(chat_id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		sess.ChatID, string(raw), s.now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("sqlite save session: %w", err)
	}
	return nil
}

func (s *SQLite) Delete(ctx context.Context, chatID int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM bot_sessions WHERE chat_id = ?`, chatID); err != nil {
		return fmt.Errorf("sqlite delete session: %w", err)
	}
	return nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
