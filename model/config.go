package model

// Config stores the application's configuration. File-backed fields carry
// mapstructure tags for viper; hook fields are wired in code and never loaded
// from a file.
type Config struct {
	Username         string   `mapstructure:"username"`
	Password         string   `mapstructure:"-"`
	Server           string   `mapstructure:"server"`
	LoginServer      string   `mapstructure:"login_server"`
	Rooms            []string `mapstructure:"rooms"`
	CommandCharacter string   `mapstructure:"command_character"`

	// ModerationRank is the minimum rank the bot itself must hold in a room
	// before it moderates there. ExemptRank is the minimum rank that exempts
	// a speaker from moderation.
	ModerationRank string `mapstructure:"moderation_rank"`
	ExemptRank     string `mapstructure:"exempt_rank"`

	// AllowModeration enables moderation everywhere; RoomModeration enables
	// it for individual rooms when the global switch is off.
	AllowModeration bool            `mapstructure:"allow_moderation"`
	RoomModeration  map[string]bool `mapstructure:"room_moderation"`

	// PunishmentPoints maps an action to its severity. PunishmentActions is
	// the escalation ladder, keyed by accumulated point count (stringified
	// integer). PunishmentReasons overrides the default reason per rule.
	PunishmentPoints  map[string]int    `mapstructure:"punishment_points"`
	PunishmentActions map[string]string `mapstructure:"punishment_actions"`
	PunishmentReasons map[string]string `mapstructure:"punishment_reasons"`

	// PunishLogPath points at the sqlite punishment audit log. Empty disables
	// the audit log entirely.
	PunishLogPath string `mapstructure:"punish_log_path"`

	// ParseMessage, when set, runs before type dispatch for every inbound
	// message. Returning false suppresses the message.
	ParseMessage func(roomID, msgType string, fields []string) bool `mapstructure:"-"`

	// Moderate, when set, contributes extra punishment candidates during
	// moderation, ahead of the built-in rules.
	Moderate func(message, roomID, userID string) []PunishmentCandidate `mapstructure:"-"`
}

// PunishmentCandidate is one rule's proposed punishment for a message.
type PunishmentCandidate struct {
	Action string
	Rule   string
	Reason string
}
