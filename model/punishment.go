package model

// PunishmentRecord is a single applied punishment in the audit log database.
// The table is named 'punishments'.
type PunishmentRecord struct {
	PunishmentID int64  `db:"punishment_id"` // Primary Key, Auto-increment
	UserID       string `db:"user_id"`
	UserName     string `db:"user_name"`
	RoomID       string `db:"room_id"`
	Action       string `db:"action"`
	Rule         string `db:"rule"` // rule that fired (e.g. "flood", "caps")
	Reason       string `db:"reason"`
	Points       int    `db:"points"`
	Timestamp    int64  `db:"timestamp"`
}
