// Package moderation watches room chat and applies escalating punishments.
package moderation

import (
	"sort"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"showdown-bot/model"
	"showdown-bot/moderation/punishlog"
	"showdown-bot/utils"
)

const (
	// cooldown suppresses re-punishing the same burst: lagged or queued
	// duplicates of one offense arrive within this window.
	cooldown = 5 * time.Second

	floodCount  = 5
	floodWindow = 5 * time.Second
	stretchLen  = 20
	capsLimit   = 30

	// historyCap bounds per-user history. Only the floodCount most recent
	// messages are ever inspected, so a small ring is enough.
	historyCap = 20

	verbalWarnAction = "verbalwarn"
)

type message struct {
	text string
	time time.Time
}

// record is the rolling moderation state for one (user, room) pair. messages
// is newest first; points only ever grows.
type record struct {
	messages   []message
	points     int
	lastAction time.Time
}

// Engine evaluates abuse rules against chat traffic. All state is in-memory
// and lives for the process lifetime; the optional audit DB only receives
// write-through copies of applied punishments.
type Engine struct {
	cfg     model.ConfigProvider
	users   *model.UserRegistry
	records map[string]*record
	db      *sqlx.DB
}

func NewEngine(cfg model.ConfigProvider, users *model.UserRegistry, db *sqlx.DB) *Engine {
	return &Engine{
		cfg:     cfg,
		users:   users,
		records: make(map[string]*record),
		db:      db,
	}
}

// Evaluate observes one chat message and applies at most one punishment.
func (e *Engine) Evaluate(msg string, room *model.Room, user *model.User, t time.Time) {
	cfg := e.cfg.GetConfig()

	self := e.users.Get(cfg.Username)
	if self == nil || !utils.RankAtLeast(self.RankIn(room.ID), cfg.ModerationRank) {
		return
	}
	if !cfg.AllowModeration && !cfg.RoomModeration[room.ID] {
		return
	}
	if len(cfg.PunishmentPoints) == 0 || len(cfg.PunishmentActions) == 0 {
		return
	}

	normalized := normalize(msg)

	rec := e.recordFor(user.ID, room.ID)
	rec.push(message{text: normalized, time: t})

	if !rec.lastAction.IsZero() && t.Sub(rec.lastAction) < cooldown {
		return
	}

	candidates := e.collect(cfg, normalized, rec, room, user)
	if len(candidates) == 0 {
		return
	}

	// Highest configured severity wins; the stable sort keeps rule order as
	// the tie break.
	sort.SliceStable(candidates, func(i, j int) bool {
		return cfg.PunishmentPoints[candidates[i].Action] > cfg.PunishmentPoints[candidates[j].Action]
	})
	chosen := candidates[0]

	points := cfg.PunishmentPoints[chosen.Action]
	reason := chosen.Reason
	if override, ok := cfg.PunishmentReasons[chosen.Rule]; ok {
		reason = override
	}

	action := chosen.Action
	if rec.points >= points {
		// Repeat offense at or above this tier: climb the escalation ladder.
		rec.points++
		if stronger, ok := cfg.PunishmentActions[strconv.Itoa(rec.points)]; ok {
			action = stronger
		}
	} else {
		rec.points = points
	}

	e.apply(rec, chosen.Rule, action, reason, room, user, self, t)
}

// collect runs every detector in fixed order: the pluggable hook first, then
// flood, stretching, caps.
func (e *Engine) collect(cfg *model.Config, normalized string, rec *record, room *model.Room, user *model.User) []model.PunishmentCandidate {
	var candidates []model.PunishmentCandidate
	if cfg.Moderate != nil {
		candidates = append(candidates, cfg.Moderate(normalized, room.ID, user.ID)...)
	}
	if c, ok := detectFlood(rec); ok {
		candidates = append(candidates, c)
	}
	if c, ok := detectStretching(normalized); ok {
		candidates = append(candidates, c)
	}
	if c, ok := detectCaps(normalized); ok {
		candidates = append(candidates, c)
	}
	return candidates
}

func (e *Engine) apply(rec *record, rule, action, reason string, room *model.Room, user *model.User, self *model.User, t time.Time) {
	if action == verbalWarnAction {
		// A verbal warning is plain chat and never starts the cooldown.
		room.Send(user.Name + ", " + reason)
	} else {
		if action == "roomban" && !utils.RankAtLeast(self.RankIn(room.ID), "@") {
			action = "hourmute"
		}
		room.Send("/" + action + " " + user.ID + ", " + reason)
		rec.lastAction = t
	}

	log.Info().
		Str("module", "moderation").
		Str("room", room.ID).
		Str("user", user.ID).
		Str("action", action).
		Str("rule", rule).
		Int("points", rec.points).
		Msg("punishment applied")

	if e.db != nil {
		pr := model.PunishmentRecord{
			UserID:    user.ID,
			UserName:  user.Name,
			RoomID:    room.ID,
			Action:    action,
			Rule:      rule,
			Reason:    reason,
			Points:    rec.points,
			Timestamp: t.UnixMilli(),
		}
		if _, err := punishlog.Add(e.db, pr); err != nil {
			log.Error().Err(err).Str("module", "moderation").Msg("failed to record punishment")
		}
	}
}

func (e *Engine) recordFor(userID, roomID string) *record {
	key := userID + "|" + roomID
	rec, ok := e.records[key]
	if !ok {
		rec = &record{}
		e.records[key] = rec
	}
	return rec
}

// push prepends a message, keeping the ring bounded.
func (rec *record) push(m message) {
	rec.messages = append([]message{m}, rec.messages...)
	if len(rec.messages) > historyCap {
		rec.messages = rec.messages[:historyCap]
	}
}
