package model

import "showdown-bot/utils"

// User is one known user. Rooms maps room ID to the user's rank there; it is
// the user-side half of the membership relation and is kept in sync with the
// room-side map on every change.
type User struct {
	ID    string
	Name  string
	Rooms map[string]string
}

// RankIn returns the user's rank in a room, or " " when the user is not known
// to be in it.
func (u *User) RankIn(roomID string) string {
	if rank, ok := u.Rooms[roomID]; ok {
		return rank
	}
	return " "
}

// UserRegistry tracks every user the bot has seen, keyed by normalized ID.
type UserRegistry struct {
	users map[string]*User
}

func NewUserRegistry() *UserRegistry {
	return &UserRegistry{users: make(map[string]*User)}
}

// Add returns the user for name, creating it on first sight. Names that
// normalize to an empty identifier yield nil.
func (reg *UserRegistry) Add(name string) *User {
	id := utils.ToID(name)
	if id == "" {
		return nil
	}
	if u, ok := reg.users[id]; ok {
		return u
	}
	u := &User{ID: id, Name: trimRank(name), Rooms: make(map[string]string)}
	reg.users[id] = u
	return u
}

// Get looks a user up without creating it.
func (reg *UserRegistry) Get(name string) *User {
	return reg.users[utils.ToID(name)]
}

// Rename re-keys a user under a new name, carrying all room relations along.
// Returns false when the new name does not normalize to an identifier.
func (reg *UserRegistry) Rename(u *User, newName string) bool {
	id := utils.ToID(newName)
	if id == "" {
		return false
	}
	delete(reg.users, u.ID)
	u.ID = id
	u.Name = trimRank(newName)
	reg.users[id] = u
	return true
}

// Destroy drops a user from the registry.
func (reg *UserRegistry) Destroy(id string) {
	delete(reg.users, id)
}

// Len returns the number of known users.
func (reg *UserRegistry) Len() int {
	return len(reg.users)
}

// trimRank strips a leading rank character from a server-supplied name.
func trimRank(name string) string {
	if name != "" && utils.RankIndex(name[:1]) >= 0 {
		return name[1:]
	}
	return name
}
