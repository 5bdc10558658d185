package model

// Sender puts one raw message on the wire. Implemented by the bot's outbound
// queue; injected into rooms and engines to avoid circular dependencies.
type Sender interface {
	Send(text string)
}

// ConfigProvider returns the current configuration. The bot swaps the config
// atomically on reload, so callers must not cache the result.
type ConfigProvider interface {
	GetConfig() *Config
}

// Target is a destination for outbound chat: either a multi-user room or, for
// private messages, a single user.
type Target interface {
	TargetID() string
	Send(text string)
	IsPM() bool
}
