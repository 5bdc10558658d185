package commands

import (
	"fmt"
	"runtime/debug"
	"time"

	"github.com/rs/zerolog/log"

	"showdown-bot/model"
)

// Context carries one command invocation. It is created per invocation and
// discarded after Run returns.
type Context struct {
	Target  string
	Room    model.Target
	User    *model.User
	Command string
	Time    time.Time

	handler Handler
}

// RunResult reports whether a command invocation succeeded and why not.
type RunResult struct {
	OK  bool
	Err error
}

// Run invokes the resolved handler. Failures never propagate: both returned
// errors and panics are contained here, logged with full context, and
// reported through the result so the decoder keeps processing lines.
func (c *Context) Run() (res RunResult) {
	defer func() {
		if r := recover(); r != nil {
			res = RunResult{Err: fmt.Errorf("panic: %v", r)}
			c.logFailure(res.Err, debug.Stack())
		}
	}()

	if err := c.handler(c); err != nil {
		c.logFailure(err, nil)
		return RunResult{Err: err}
	}
	return RunResult{OK: true}
}

func (c *Context) logFailure(err error, stack []byte) {
	where := "in PM"
	if !c.Room.IsPM() {
		where = c.Room.TargetID()
	}
	evt := log.Error().
		Err(err).
		Str("module", "commands").
		Str("command", c.Command).
		Str("target", c.Target).
		Str("user", c.User.ID).
		Str("room", where).
		Str("time", c.Time.Format(time.RFC3339))
	if stack != nil {
		evt = evt.Bytes("stack", stack)
	}
	evt.Msg("command execution failed")
}

// Say replies to wherever the command came from.
func (c *Context) Say(text string) {
	c.Room.Send(text)
}
