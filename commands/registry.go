// Package commands resolves and executes user-issued chat commands.
package commands

import (
	"showdown-bot/utils"
)

// Entry is one command table entry: either a Handler or an Alias pointing at
// another entry's identifier.
type Entry interface {
	isEntry()
}

// Handler is an executable command.
type Handler func(ctx *Context) error

func (Handler) isEntry() {}

// Alias redirects to another registry key. Exactly one hop is followed; an
// alias pointing at another alias never resolves.
type Alias string

func (Alias) isEntry() {}

// Registry maps normalized command identifiers to entries.
type Registry struct {
	entries map[string]Entry
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Entry)}
}

// Register adds an entry under the normalized form of name.
func (r *Registry) Register(name string, e Entry) {
	r.entries[utils.ToID(name)] = e
}

// Resolve normalizes name and follows at most one alias hop. It returns the
// handler and the identifier it was finally found under.
func (r *Registry) Resolve(name string) (Handler, string, bool) {
	id := utils.ToID(name)
	switch e := r.entries[id].(type) {
	case Handler:
		return e, id, true
	case Alias:
		target := utils.ToID(string(e))
		if h, ok := r.entries[target].(Handler); ok {
			return h, target, true
		}
	}
	return nil, "", false
}

// Len returns the number of registered entries, aliases included.
func (r *Registry) Len() int {
	return len(r.entries)
}
