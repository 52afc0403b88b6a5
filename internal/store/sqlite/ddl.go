package sqlite

import "database/sql"

// EnsureSchema creates the core tables if they do not exist. Postgres
// deployments manage schema out of band; SQLite bootstraps itself so a
// local build target works from an empty file.
func EnsureSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS profiles (
            actor_id TEXT PRIMARY KEY,
            space_id TEXT NOT NULL,
            display_name TEXT,
            partner_id TEXT,
            language TEXT,
            time_zone TEXT NOT NULL,
            created_at TIMESTAMP NOT NULL,
            updated_at TIMESTAMP NOT NULL,
            last_seen_at TIMESTAMP
        );`,
		`CREATE TABLE IF NOT EXISTS lists (
            space_id TEXT NOT NULL,
            list_id TEXT NOT NULL,
            name TEXT NOT NULL,
            description TEXT,
            manual BOOLEAN NOT NULL DEFAULT 0,
            created_at TIMESTAMP NOT NULL,
            PRIMARY KEY(space_id, list_id),
            UNIQUE(space_id, name)
        );`,
		`CREATE TABLE IF NOT EXISTS notes (
            space_id TEXT NOT NULL,
            note_id TEXT NOT NULL,
            original_input TEXT NOT NULL,
            summary TEXT,
            category TEXT,
            due_date TIMESTAMP,
            reminder_time TIMESTAMP,
            recurrence_frequency TEXT,
            recurrence_interval INTEGER,
            completed BOOLEAN NOT NULL DEFAULT 0,
            priority TEXT NOT NULL DEFAULT '',
            owner TEXT NOT NULL,
            list_id TEXT,
            author_id TEXT NOT NULL,
            reminders_sent TEXT NOT NULL DEFAULT '[]',
            created_at TIMESTAMP NOT NULL,
            updated_at TIMESTAMP NOT NULL,
            PRIMARY KEY(space_id, note_id)
        );`,
		`CREATE INDEX IF NOT EXISTS idx_notes_space_due ON notes(space_id, due_date);`,
		`CREATE INDEX IF NOT EXISTS idx_notes_space_list ON notes(space_id, list_id);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}
