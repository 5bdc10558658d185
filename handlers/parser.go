// Package handlers decodes the server's pipe-delimited line protocol and
// routes each message to the right subsystem.
package handlers

import (
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"showdown-bot/commands"
	"showdown-bot/formats"
	"showdown-bot/model"
	"showdown-bot/moderation"
	"showdown-bot/utils"
)

// Deps are the collaborators the decoder drives. Everything is injected so
// the decoder can be exercised in isolation.
type Deps struct {
	Config     model.ConfigProvider
	Users      *model.UserRegistry
	Rooms      *model.RoomRegistry
	Commands   *commands.Parser
	Moderation *moderation.Engine
	Formats    *formats.Catalog
	Sender     model.Sender
	// Login is invoked with the key and challenge from a challstr message.
	Login func(key, challenge string)
	// Exit terminates the process on the one unrecoverable condition (failed
	// login). Overridable for tests.
	Exit func()
}

// Parser is the inbound message decoder. One Parse call runs to completion
// before the next line is handled; there is no internal locking.
type Parser struct {
	deps    Deps
	pending map[string]func()
}

func New(deps Deps) *Parser {
	if deps.Exit == nil {
		deps.Exit = func() { os.Exit(1) }
	}
	if deps.Login == nil {
		deps.Login = func(key, challenge string) {}
	}
	return &Parser{deps: deps, pending: make(map[string]func())}
}

// Parse decodes one raw protocol line arriving on room. Lines look like
// |TYPE|field1|field2|...; the empty segment before the first delimiter is
// discarded. Unrecognized types are ignored.
func (p *Parser) Parse(line string, room *model.Room) {
	if !strings.HasPrefix(line, "|") {
		return
	}
	parts := strings.Split(line[1:], "|")
	msgType := parts[0]
	fields := parts[1:]

	cfg := p.deps.Config.GetConfig()
	if cfg.ParseMessage != nil {
		roomID := ""
		if room != nil {
			roomID = room.ID
		}
		if !cfg.ParseMessage(roomID, msgType, fields) {
			return
		}
	}

	switch msgType {
	case "challstr":
		p.handleChallstr(fields)
	case "updateuser":
		p.handleUpdateUser(cfg, fields)
	case "init":
		p.handleInit(cfg, room)
	case "noinit", "deinit":
		if room != nil {
			p.deps.Rooms.Destroy(room.ID)
		}
	case "users":
		p.handleUsers(fields, room)
	case "formats":
		p.deps.Formats.Parse(fields)
	case "J", "j":
		p.handleJoin(fields, room)
	case "L", "l":
		p.handleLeave(fields, room)
	case "N", "n":
		p.handleRename(fields, room)
	case "c":
		p.handleChat(cfg, fields, room, false)
	case "c:":
		p.handleChat(cfg, fields, room, true)
	case "pm":
		p.handlePM(cfg, fields)
	case "raw":
		p.handleRaw(fields)
	}
}

func (p *Parser) handleChallstr(fields []string) {
	if len(fields) < 2 {
		return
	}
	log.Info().Str("module", "parser").Msg("received challstr, logging in")
	p.deps.Login(fields[0], fields[1])
}

// handleUpdateUser confirms the login handshake. A name mismatch is ignored;
// a failure flag is the single fatal condition in the pipeline. On success
// every configured room is joined, in configured order.
func (p *Parser) handleUpdateUser(cfg *model.Config, fields []string) {
	if len(fields) < 2 {
		return
	}
	if utils.ToID(fields[0]) != utils.ToID(cfg.Username) {
		return
	}
	if fields[1] != "1" {
		log.Error().Str("module", "parser").Str("username", cfg.Username).Msg("login failed")
		p.deps.Exit()
		return
	}
	log.Info().Str("module", "parser").Str("username", cfg.Username).Msg("logged in")
	for _, room := range cfg.Rooms {
		p.deps.Sender.Send("|/join " + room)
	}
}

func (p *Parser) handleInit(cfg *model.Config, room *model.Room) {
	if room == nil {
		return
	}
	self := p.deps.Users.Add(cfg.Username)
	if self == nil {
		return
	}
	room.SetRank(self, " ")
	log.Info().Str("module", "parser").Str("room", room.ID).Msg("joined room")
}

// Await registers a one-shot listener keyed by the normalized form of token.
// It fires when the bot sees that exact message echoed back from itself.
func (p *Parser) Await(token string, fn func()) {
	id := utils.ToID(token)
	if id == "" || fn == nil {
		return
	}
	p.pending[id] = fn
}

// dispatchSelf routes an echoed self-message to its pending listener, if one
// is registered. Each listener fires exactly once.
func (p *Parser) dispatchSelf(message string) {
	id := utils.ToID(message)
	if fn, ok := p.pending[id]; ok {
		delete(p.pending, id)
		fn()
	}
}

func (p *Parser) handleRaw(fields []string) {
	html := strings.Join(fields, "|")
	switch {
	case strings.Contains(html, "The server is restarting soon"):
		p.deps.Rooms.Lockdown = true
		log.Warn().Str("module", "parser").Msg("server lockdown announced")
	case strings.Contains(html, "The server restart was canceled"):
		p.deps.Rooms.Lockdown = false
		log.Info().Str("module", "parser").Msg("server lockdown canceled")
	}
}
