package store

import (
	"database/sql"
	"errors"
	"time"
)

// Session records one completed game round.
type Session struct {
	ID         string
	Mode       string
	Score      int
	Gestures   int
	DurationMS int64
	StartedAt  time.Time
	EndedAt    time.Time
}

// SessionRepository provides access to recorded game sessions.
type SessionRepository struct {
	db *sql.DB
}

// Sessions returns the session repository for this store.
func (s *Store) Sessions() *SessionRepository {
	return &SessionRepository{db: s.db}
}

// Create inserts a completed session.
func (r *SessionRepository) Create(sess *Session) error {
	_, err := r.db.Exec(
		`INSERT INTO sessions (id, mode, score, gestures, duration_ms, started_at, ended_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		sess.ID, sess.Mode, sess.Score, sess.Gestures, sess.DurationMS,
		sess.StartedAt, sess.EndedAt,
	)
	return err
}

// GetByID retrieves a session by its ID.
func (r *SessionRepository) GetByID(id string) (*Session, error) {
	sess := &Session{}

	err := r.db.QueryRow(
		`SELECT id, mode, score, gestures, duration_ms, started_at, ended_at
		 FROM sessions WHERE id = ?`,
		id,
	).Scan(&sess.ID, &sess.Mode, &sess.Score, &sess.Gestures,
		&sess.DurationMS, &sess.StartedAt, &sess.EndedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return sess, nil
}

// Recent retrieves the most recent sessions, newest first.
func (r *SessionRepository) Recent(limit int) ([]*Session, error) {
	rows, err := r.db.Query(
		`SELECT id, mode, score, gestures, duration_ms, started_at, ended_at
		 FROM sessions ORDER BY ended_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*Session
	for rows.Next() {
		sess := &Session{}
		err := rows.Scan(&sess.ID, &sess.Mode, &sess.Score, &sess.Gestures,
			&sess.DurationMS, &sess.StartedAt, &sess.EndedAt)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, sess)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}
