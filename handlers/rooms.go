package handlers

import (
	"strings"

	"showdown-bot/model"
)

// handleUsers ingests a full membership snapshot: a comma-joined list whose
// first element is a count, every other element a rank character followed by
// a name. A snapshot of exactly "0" means no change.
func (p *Parser) handleUsers(fields []string, room *model.Room) {
	if len(fields) == 0 || room == nil {
		return
	}
	snapshot := fields[0]
	if snapshot == "0" {
		return
	}
	entries := strings.Split(snapshot, ",")
	for _, entry := range entries[1:] {
		if entry == "" {
			continue
		}
		u := p.deps.Users.Add(entry)
		if u == nil {
			continue
		}
		room.SetRank(u, entry[:1])
	}
}

func (p *Parser) handleJoin(fields []string, room *model.Room) {
	if len(fields) == 0 || room == nil {
		return
	}
	u := p.deps.Users.Add(fields[0])
	if u == nil {
		return
	}
	room.SetRank(u, fields[0][:1])
}

func (p *Parser) handleLeave(fields []string, room *model.Room) {
	if len(fields) == 0 || room == nil {
		return
	}
	u := p.deps.Users.Get(fields[0])
	if u == nil {
		return
	}
	room.RemoveUser(u)
	if len(u.Rooms) == 0 {
		p.deps.Users.Destroy(u.ID)
	}
}

// handleRename re-keys a user: fields[0] is the rank-prefixed new name,
// fields[1] the old identifier. Unresolvable old identifiers abort silently.
func (p *Parser) handleRename(fields []string, room *model.Room) {
	if len(fields) < 2 || room == nil {
		return
	}
	u := p.deps.Users.Get(fields[1])
	if u == nil {
		return
	}
	oldID := u.ID
	if !p.deps.Users.Rename(u, fields[0]) {
		return
	}
	// Re-key the room-side half of every membership relation.
	for roomID := range u.Rooms {
		if r := p.deps.Rooms.Get(roomID); r != nil {
			if rank, ok := r.Users[oldID]; ok {
				delete(r.Users, oldID)
				r.Users[u.ID] = rank
			}
		}
	}
	room.SetRank(u, fields[0][:1])
}
