package defs

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"showdown-bot/commands"
	"showdown-bot/utils"
)

func (d *Deps) about(ctx *commands.Context) error {
	prefix := d.Config.GetConfig().CommandCharacter
	ctx.Say(fmt.Sprintf("Chat bot for the Showdown protocol, written in Go. Commands start with %q; try %suptime or %ssysinfo.", prefix, prefix, prefix))
	return nil
}

func (d *Deps) uptime(ctx *commands.Context) error {
	up := time.Since(d.Start).Round(time.Second)
	ctx.Say(fmt.Sprintf("Uptime: %s (%d rooms, %d users tracked)", up, d.Rooms.Len(), d.Users.Len()))
	return nil
}

func (d *Deps) rank(ctx *commands.Context) error {
	if ctx.Room.IsPM() {
		ctx.Say("Ranks are room-local; ask in a room.")
		return nil
	}
	rank := ctx.User.RankIn(ctx.Room.TargetID())
	if rank == " " {
		ctx.Say(ctx.User.Name + " holds no rank here.")
	} else {
		ctx.Say(ctx.User.Name + " holds rank '" + rank + "' here.")
	}
	return nil
}

func (d *Deps) format(ctx *commands.Context) error {
	if ctx.Target == "" {
		return nil
	}
	entry, ok := d.Formats.Resolve(ctx.Target)
	if !ok {
		ctx.Say("No format matching '" + ctx.Target + "'.")
		return nil
	}
	var surfaces []string
	if entry.SearchShow {
		surfaces = append(surfaces, "search")
	}
	if entry.ChallengeShow {
		surfaces = append(surfaces, "challenge")
	}
	if entry.TournamentShow {
		surfaces = append(surfaces, "tournaments")
	}
	ctx.Say(fmt.Sprintf("%s (%s) — visible in: %s", entry.Name, entry.Section, strings.Join(surfaces, ", ")))
	return nil
}

// say repeats the target text in the room, staff only. Delivery is confirmed
// through the self-message listener table.
func (d *Deps) say(ctx *commands.Context) error {
	if ctx.Room.IsPM() || ctx.Target == "" {
		return nil
	}
	if !utils.RankAtLeast(ctx.User.RankIn(ctx.Room.TargetID()), "%") {
		return nil
	}
	text := ctx.Target
	if strings.HasPrefix(text, "/") || strings.HasPrefix(text, "!") {
		return fmt.Errorf("refusing to relay a command: %q", text)
	}
	d.Await(utils.ToID(text), func() {
		log.Debug().Str("module", "commands").Str("room", ctx.Room.TargetID()).Msg("say delivered")
	})
	ctx.Say(text)
	return nil
}

func (d *Deps) joinRoom(ctx *commands.Context) error {
	if ctx.Target == "" || !utils.RankAtLeast(ctx.User.RankIn(ctx.Room.TargetID()), "@") {
		return nil
	}
	d.Sender.Send("|/join " + ctx.Target)
	return nil
}

func (d *Deps) leaveRoom(ctx *commands.Context) error {
	if ctx.Room.IsPM() || !utils.RankAtLeast(ctx.User.RankIn(ctx.Room.TargetID()), "@") {
		return nil
	}
	d.Sender.Send("|/leave " + ctx.Room.TargetID())
	return nil
}
