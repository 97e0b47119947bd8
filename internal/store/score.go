package store

import (
	"database/sql"
	"errors"
	"time"
)

// HighScore is the best recorded score for a mode and player.
type HighScore struct {
	ID         string
	Mode       string
	Player     string
	Score      int
	SessionID  sql.NullString
	AchievedAt time.Time
}

// ScoreRepository provides access to high scores.
type ScoreRepository struct {
	db *sql.DB
}

// Scores returns the high-score repository for this store.
func (s *Store) Scores() *ScoreRepository {
	return &ScoreRepository{db: s.db}
}

// Submit records a score and returns true when it sets a new high score for
// the mode and player. Lower or equal scores leave the table unchanged.
func (r *ScoreRepository) Submit(hs *HighScore) (bool, error) {
	current, err := r.Best(hs.Mode, hs.Player)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return false, err
	}
	if current != nil && current.Score >= hs.Score {
		return false, nil
	}

	hs.AchievedAt = time.Now()
	_, err = r.db.Exec(
		`INSERT INTO high_scores (id, mode, player, score, session_id, achieved_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(mode, player) DO UPDATE SET
			id = excluded.id,
			score = excluded.score,
			session_id = excluded.session_id,
			achieved_at = excluded.achieved_at`,
		hs.ID, hs.Mode, hs.Player, hs.Score, hs.SessionID, hs.AchievedAt,
	)
	if err != nil {
		return false, err
	}

	return true, nil
}

// Best retrieves the high score for a mode and player.
func (r *ScoreRepository) Best(mode, player string) (*HighScore, error) {
	hs := &HighScore{}

	err := r.db.QueryRow(
		`SELECT id, mode, player, score, session_id, achieved_at
		 FROM high_scores WHERE mode = ? AND player = ?`,
		mode, player,
	).Scan(&hs.ID, &hs.Mode, &hs.Player, &hs.Score, &hs.SessionID, &hs.AchievedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return hs, nil
}

// List retrieves all high scores ordered by mode then score descending.
func (r *ScoreRepository) List() ([]*HighScore, error) {
	rows, err := r.db.Query(
		`SELECT id, mode, player, score, session_id, achieved_at
		 FROM high_scores ORDER BY mode, score DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scores []*HighScore
	for rows.Next() {
		hs := &HighScore{}
		err := rows.Scan(&hs.ID, &hs.Mode, &hs.Player, &hs.Score,
			&hs.SessionID, &hs.AchievedAt)
		if err != nil {
			return nil, err
		}
		scores = append(scores, hs)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return scores, nil
}
