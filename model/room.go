package model

// Room is one chat room the bot occupies. Users maps user ID to rank; it is
// the room-side half of the membership relation.
type Room struct {
	ID    string
	Users map[string]string

	sender Sender
}

func (r *Room) TargetID() string { return r.ID }
func (r *Room) IsPM() bool       { return false }

// Send posts text (or a slash command) to the room.
func (r *Room) Send(text string) {
	r.sender.Send(r.ID + "|" + text)
}

// SetRank records u's rank in the room, updating both sides of the relation.
func (r *Room) SetRank(u *User, rank string) {
	r.Users[u.ID] = rank
	u.Rooms[r.ID] = rank
}

// RemoveUser drops the membership relation on both sides.
func (r *Room) RemoveUser(u *User) {
	delete(r.Users, u.ID)
	delete(u.Rooms, r.ID)
}

// RoomRegistry tracks the rooms the bot is in. Lockdown is set while the
// server has announced an imminent restart.
type RoomRegistry struct {
	rooms    map[string]*Room
	users    *UserRegistry
	sender   Sender
	Lockdown bool
}

func NewRoomRegistry(sender Sender, users *UserRegistry) *RoomRegistry {
	return &RoomRegistry{
		rooms:  make(map[string]*Room),
		users:  users,
		sender: sender,
	}
}

// Add returns the room with the given ID, creating it if needed.
func (reg *RoomRegistry) Add(id string) *Room {
	id = roomID(id)
	if r, ok := reg.rooms[id]; ok {
		return r
	}
	r := &Room{ID: id, Users: make(map[string]string), sender: reg.sender}
	reg.rooms[id] = r
	return r
}

// Get looks a room up without creating it.
func (reg *RoomRegistry) Get(id string) *Room {
	return reg.rooms[roomID(id)]
}

// Destroy tears a room down, detaching every member relation. Users left with
// no rooms at all are dropped from the user registry.
func (reg *RoomRegistry) Destroy(id string) {
	r, ok := reg.rooms[roomID(id)]
	if !ok {
		return
	}
	for uid := range r.Users {
		if u := reg.users.Get(uid); u != nil {
			delete(u.Rooms, r.ID)
			if len(u.Rooms) == 0 {
				reg.users.Destroy(uid)
			}
		}
	}
	delete(reg.rooms, r.ID)
}

// Len returns the number of active rooms.
func (reg *RoomRegistry) Len() int {
	return len(reg.rooms)
}

// roomID normalizes a room name. Unlike user IDs, room IDs keep hyphens.
func roomID(name string) string {
	out := make([]byte, 0, len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9', c == '-':
			out = append(out, c)
		case c >= 'A' && c <= 'Z':
			out = append(out, c+('a'-'A'))
		}
	}
	return string(out)
}
