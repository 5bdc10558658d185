// Package bot wires the decoder, registries and transport into one client.
package bot

import (
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"showdown-bot/commands"
	"showdown-bot/formats"
	"showdown-bot/handlers"
	"showdown-bot/model"
	"showdown-bot/moderation"
)

// Bot is the running chat client. All inbound processing is single-threaded:
// each line is decoded to completion before the next one is read.
type Bot struct {
	Users      *model.UserRegistry
	Rooms      *model.RoomRegistry
	Formats    *formats.Catalog
	Commands   *commands.Registry
	Parser     *handlers.Parser
	Moderation *moderation.Engine
	DB         *sqlx.DB

	config  atomic.Value // *model.Config
	conn    *websocket.Conn
	send    chan string
	done    chan struct{}
	started time.Time
}

func New(cfg *model.Config, db *sqlx.DB) *Bot {
	b := &Bot{
		DB:      db,
		send:    make(chan string, 128),
		done:    make(chan struct{}),
		started: time.Now(),
	}
	b.config.Store(cfg)

	b.Users = model.NewUserRegistry()
	b.Rooms = model.NewRoomRegistry(b, b.Users)
	b.Formats = formats.New()
	b.Commands = commands.NewRegistry()
	b.Moderation = moderation.NewEngine(b, b.Users, db)

	b.Parser = handlers.New(handlers.Deps{
		Config:     b,
		Users:      b.Users,
		Rooms:      b.Rooms,
		Commands:   commands.NewParser(b, b.Commands),
		Moderation: b.Moderation,
		Formats:    b.Formats,
		Sender:     b,
		Login:      b.login,
	})
	return b
}

// GetConfig returns the current configuration.
func (b *Bot) GetConfig() *model.Config {
	return b.config.Load().(*model.Config)
}

// StoreConfig swaps in a new configuration atomically.
func (b *Bot) StoreConfig(cfg *model.Config) {
	b.config.Store(cfg)
}

// Started reports when the bot process came up.
func (b *Bot) Started() time.Time {
	return b.started
}

func (b *Bot) Close() {
	log.Info().Str("module", "bot").Msg("shutting down")
	close(b.done)
	if b.conn != nil {
		b.conn.Close()
	}
	if b.DB != nil {
		b.DB.Close()
	}
}
