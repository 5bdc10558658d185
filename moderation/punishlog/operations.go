package punishlog

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"showdown-bot/model"
)

// Add inserts a new punishment record and returns its ID.
func Add(db *sqlx.DB, record model.PunishmentRecord) (int64, error) {
	query := `INSERT INTO punishments (user_id, user_name, room_id, action, rule, reason, points, timestamp)
			  VALUES (:user_id, :user_name, :room_id, :action, :rule, :reason, :points, :timestamp)`

	result, err := db.NamedExec(query, record)
	if err != nil {
		return 0, fmt.Errorf("failed to insert punishment record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID: %w", err)
	}
	return id, nil
}

// ByUser retrieves punishment records for a user, oldest first, optionally
// filtered by a start time.
func ByUser(db *sqlx.DB, userID string, since *time.Time) ([]model.PunishmentRecord, error) {
	var records []model.PunishmentRecord
	query := "SELECT * FROM punishments WHERE user_id = ?"
	args := []interface{}{userID}

	if since != nil {
		query += " AND timestamp >= ?"
		args = append(args, since.UnixMilli())
	}
	query += " ORDER BY timestamp ASC"

	if err := db.Select(&records, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get punishment records for user %s: %w", userID, err)
	}
	return records, nil
}

// CountSince returns the number of punishments applied in a room since the
// given time.
func CountSince(db *sqlx.DB, roomID string, since time.Time) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM punishments WHERE room_id = ? AND timestamp >= ?`
	if err := db.Get(&count, query, roomID, since.UnixMilli()); err != nil {
		return 0, fmt.Errorf("failed to count punishments for room %s: %w", roomID, err)
	}
	return count, nil
}

// ByRule returns the number of punishments for a user triggered by a specific
// rule since the given time.
func ByRule(db *sqlx.DB, userID, rule string, since time.Time) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM punishments WHERE user_id = ? AND rule = ? AND timestamp >= ?`
	if err := db.Get(&count, query, userID, rule, since.UnixMilli()); err != nil {
		return 0, fmt.Errorf("failed to count punishments for user %s rule %s: %w", userID, rule, err)
	}
	return count, nil
}
