package defs

import (
	"fmt"
	"time"

	"showdown-bot/commands"
	"showdown-bot/moderation/punishlog"
	"showdown-bot/utils"
)

// modlog summarizes recent punishments for a user, staff only.
func (d *Deps) modlog(ctx *commands.Context) error {
	if ctx.Room.IsPM() || !utils.RankAtLeast(ctx.User.RankIn(ctx.Room.TargetID()), "%") {
		return nil
	}
	if d.ModLog == nil {
		ctx.Say("The punishment log is disabled.")
		return nil
	}
	if ctx.Target == "" {
		return nil
	}

	since := ctx.Time.Add(-30 * 24 * time.Hour)
	records, err := punishlog.ByUser(d.ModLog, utils.ToID(ctx.Target), &since)
	if err != nil {
		return fmt.Errorf("reading punishment log: %w", err)
	}
	if len(records) == 0 {
		ctx.Say("No punishments on record for " + ctx.Target + " in the last 30 days.")
		return nil
	}

	latest := records[len(records)-1]
	ctx.Say(fmt.Sprintf("%d punishment(s) for %s in the last 30 days; latest: %s (%s) on %s",
		len(records), ctx.Target, latest.Action, latest.Rule,
		time.UnixMilli(latest.Timestamp).Format("2006-01-02")))
	return nil
}
