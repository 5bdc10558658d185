// Package punishlog persists applied punishments in a sqlite audit log.
package punishlog

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// Init opens the database and ensures the punishments table exists.
func Init(dbPath string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	schema := `CREATE TABLE IF NOT EXISTS punishments (
	          punishment_id INTEGER PRIMARY KEY AUTOINCREMENT,
	          user_id TEXT NOT NULL,
	          user_name TEXT NOT NULL,
	          room_id TEXT NOT NULL,
	          action TEXT NOT NULL,
	          rule TEXT NOT NULL,
	          reason TEXT NOT NULL,
	          points INTEGER NOT NULL,
	          timestamp INTEGER NOT NULL
	      );`
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to create punishments table: %w", err)
	}

	return db, nil
}
