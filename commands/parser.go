package commands

import (
	"strings"
	"time"

	"showdown-bot/model"
)

// Parser turns chat lines into command invocations.
type Parser struct {
	cfg      model.ConfigProvider
	registry *Registry
}

func NewParser(cfg model.ConfigProvider, registry *Registry) *Parser {
	return &Parser{cfg: cfg, registry: registry}
}

// Registry exposes the underlying command table.
func (p *Parser) Registry() *Registry {
	return p.registry
}

// ParseCommand inspects a chat message and, when it carries the command
// prefix and resolves to a handler, executes it. Plain chat, unknown commands
// and failed resolutions are all silently dropped; a false return does not
// distinguish between them.
func (p *Parser) ParseCommand(message string, room model.Target, user *model.User, t time.Time) bool {
	prefix := p.cfg.GetConfig().CommandCharacter
	if prefix == "" {
		return false
	}
	message = strings.TrimSpace(message)
	if !strings.HasPrefix(message, prefix) || len(message) <= len(prefix) {
		return false
	}

	body := message[len(prefix):]
	name, target := body, ""
	if i := strings.Index(body, " "); i >= 0 {
		name, target = body[:i], strings.TrimSpace(body[i+1:])
	}

	handler, id, ok := p.registry.Resolve(name)
	if !ok {
		return false
	}

	if t.IsZero() {
		t = time.Now()
	}

	ctx := &Context{
		Target:  target,
		Room:    room,
		User:    user,
		Command: id,
		Time:    t,
		handler: handler,
	}
	return ctx.Run().OK
}
