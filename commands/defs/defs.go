// Package defs registers the bot's built-in commands.
package defs

import (
	"time"

	"github.com/jmoiron/sqlx"

	"showdown-bot/commands"
	"showdown-bot/formats"
	"showdown-bot/model"
)

// Deps bundles everything the built-in commands touch.
type Deps struct {
	Config  model.ConfigProvider
	Users   *model.UserRegistry
	Rooms   *model.RoomRegistry
	Formats *formats.Catalog
	Sender  model.Sender
	// Await registers a one-shot listener for the bot's own next message
	// matching the given token. Used to confirm self-issued actions.
	Await func(token string, fn func())
	// ModLog is the punishment audit log; nil when disabled.
	ModLog *sqlx.DB
	Start  time.Time
}

// Register installs the built-in command set and its aliases.
func Register(reg *commands.Registry, d *Deps) {
	reg.Register("about", commands.Handler(d.about))
	reg.Register("git", commands.Alias("about"))
	reg.Register("help", commands.Alias("about"))
	reg.Register("uptime", commands.Handler(d.uptime))
	reg.Register("sysinfo", commands.Handler(d.sysinfo))
	reg.Register("rank", commands.Handler(d.rank))
	reg.Register("format", commands.Handler(d.format))
	reg.Register("tier", commands.Alias("format"))
	reg.Register("say", commands.Handler(d.say))
	reg.Register("modlog", commands.Handler(d.modlog))
	reg.Register("ml", commands.Alias("modlog"))
	reg.Register("joinroom", commands.Handler(d.joinRoom))
	reg.Register("leaveroom", commands.Handler(d.leaveRoom))
}
