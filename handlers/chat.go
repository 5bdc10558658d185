package handlers

import (
	"strconv"
	"strings"
	"time"

	"showdown-bot/model"
	"showdown-bot/utils"
)

// handleChat processes a room chat line. For 'c:' the first field is an
// explicit unix-seconds timestamp; plain 'c' uses decode time.
func (p *Parser) handleChat(cfg *model.Config, fields []string, room *model.Room, stamped bool) {
	if room == nil {
		return
	}
	t := time.Now()
	if stamped {
		if len(fields) < 1 {
			return
		}
		secs, err := strconv.ParseInt(fields[0], 10, 64)
		if err != nil {
			return
		}
		t = time.UnixMilli(secs * 1000)
		fields = fields[1:]
	}
	if len(fields) < 2 {
		return
	}

	by := fields[0]
	message := strings.Join(fields[1:], "|")

	u := p.deps.Users.Add(by)
	if u == nil {
		return
	}
	rank := by[:1]
	if u.RankIn(room.ID) != rank {
		room.SetRank(u, rank)
	}

	// The bot's own messages are acknowledgment tokens for self-issued
	// actions, never chat: no command parsing, no moderation.
	if u.ID == utils.ToID(cfg.Username) {
		p.dispatchSelf(message)
		return
	}

	p.deps.Commands.ParseCommand(message, room, u, t)

	if !utils.RankAtLeast(u.RankIn(room.ID), cfg.ExemptRank) {
		p.deps.Moderation.Evaluate(message, room, u, t)
	}
}

// handlePM processes a private message: the sender acts as both the addressed
// target and the speaker. PMs are never moderated; self-PMs are dropped.
func (p *Parser) handlePM(cfg *model.Config, fields []string) {
	if len(fields) < 3 {
		return
	}
	u := p.deps.Users.Add(fields[0])
	if u == nil {
		return
	}
	if u.ID == utils.ToID(cfg.Username) {
		return
	}
	message := strings.Join(fields[2:], "|")
	target := model.NewPMTarget(u, p.deps.Sender)
	p.deps.Commands.ParseCommand(message, target, u, time.Now())
}
