package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Sessions table - one row per completed game round
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			mode TEXT NOT NULL CHECK(mode IN ('counting', 'rhythm')),
			score INTEGER NOT NULL DEFAULT 0,
			gestures INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			started_at DATETIME NOT NULL,
			ended_at DATETIME NOT NULL
		)`,

		// High scores table - best score per game mode and player
		`CREATE TABLE IF NOT EXISTS high_scores (
			id TEXT PRIMARY KEY,
			mode TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT '',
			score INTEGER NOT NULL,
			session_id TEXT REFERENCES sessions(id) ON DELETE SET NULL,
			achieved_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(mode, player)
		)`,

		// Settings table - application settings as key-value pairs
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_sessions_mode ON sessions(mode)`,
		`CREATE INDEX IF NOT EXISTS idx_high_scores_mode ON high_scores(mode, score)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
