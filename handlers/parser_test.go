package handlers

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"showdown-bot/commands"
	"showdown-bot/formats"
	"showdown-bot/model"
	"showdown-bot/moderation"
)

type sentRecorder struct {
	msgs []string
}

func (s *sentRecorder) Send(text string) {
	s.msgs = append(s.msgs, text)
}

type fakeConfig struct {
	cfg *model.Config
}

func (f *fakeConfig) GetConfig() *model.Config { return f.cfg }

type fixture struct {
	parser   *Parser
	users    *model.UserRegistry
	rooms    *model.RoomRegistry
	registry *commands.Registry
	catalog  *formats.Catalog
	sent     *sentRecorder
	cfg      *model.Config
	exited   bool
	logins   []string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		sent: &sentRecorder{},
		cfg: &model.Config{
			Username:         "TestBot",
			Rooms:            []string{"lobby", "techcode", "gamecorner"},
			CommandCharacter: ".",
			ModerationRank:   "%",
			ExemptRank:       "+",
			AllowModeration:  true,
			PunishmentPoints: map[string]int{
				"verbalwarn": 1,
				"mute":       3,
			},
			PunishmentActions: map[string]string{"5": "roomban"},
		},
	}
	provider := &fakeConfig{cfg: f.cfg}
	f.users = model.NewUserRegistry()
	f.rooms = model.NewRoomRegistry(f.sent, f.users)
	f.registry = commands.NewRegistry()
	f.catalog = formats.New()

	f.parser = New(Deps{
		Config:     provider,
		Users:      f.users,
		Rooms:      f.rooms,
		Commands:   commands.NewParser(provider, f.registry),
		Moderation: moderation.NewEngine(provider, f.users, nil),
		Formats:    f.catalog,
		Sender:     f.sent,
		Login:      func(key, challenge string) { f.logins = append(f.logins, key+"|"+challenge) },
		Exit:       func() { f.exited = true },
	})
	return f
}

// joinedRoom sets up a room the bot occupies at the given rank.
func (f *fixture) joinedRoom(t *testing.T, id, botRank string) *model.Room {
	t.Helper()
	room := f.rooms.Add(id)
	self := f.users.Add(f.cfg.Username)
	require.NotNil(t, self)
	room.SetRank(self, botRank)
	return room
}

func TestChallstrTriggersLogin(t *testing.T) {
	f := newFixture(t)
	f.parser.Parse("|challstr|4|deadbeef", nil)
	assert.Equal(t, []string{"4|deadbeef"}, f.logins)
}

func TestUpdateUserMismatchIgnored(t *testing.T) {
	f := newFixture(t)
	f.parser.Parse("|updateuser|SomebodyElse|1|102", nil)
	assert.False(t, f.exited)
	assert.Empty(t, f.sent.msgs)
}

func TestUpdateUserFailureIsFatal(t *testing.T) {
	f := newFixture(t)
	f.parser.Parse("|updateuser|TestBot|0|102", nil)
	assert.True(t, f.exited)
	assert.Empty(t, f.sent.msgs)
}

func TestUpdateUserSuccessJoinsConfiguredRooms(t *testing.T) {
	f := newFixture(t)
	f.parser.Parse("|updateuser| TestBot|1|102", nil)
	assert.False(t, f.exited)
	assert.Equal(t, []string{"|/join lobby", "|/join techcode", "|/join gamecorner"}, f.sent.msgs)
}

func TestInitMarksSelfJoined(t *testing.T) {
	f := newFixture(t)
	room := f.rooms.Add("lobby")
	f.parser.Parse("|init|chat", room)

	self := f.users.Get("testbot")
	require.NotNil(t, self)
	assert.Equal(t, " ", self.RankIn("lobby"))
}

func TestDeinitDestroysRoom(t *testing.T) {
	f := newFixture(t)
	room := f.rooms.Add("lobby")
	f.parser.Parse("|deinit", room)
	assert.Nil(t, f.rooms.Get("lobby"))
}

func TestUsersSnapshotIdempotent(t *testing.T) {
	f := newFixture(t)
	room := f.rooms.Add("lobby")
	line := "|users|3, Alice,+Bob,@Carol"

	f.parser.Parse(line, room)
	require.Equal(t, map[string]string{"alice": " ", "bob": "+", "carol": "@"}, room.Users)

	f.parser.Parse(line, room)
	assert.Equal(t, map[string]string{"alice": " ", "bob": "+", "carol": "@"}, room.Users)
	assert.Equal(t, "+", f.users.Get("bob").RankIn("lobby"))
}

func TestUsersSnapshotRankChange(t *testing.T) {
	f := newFixture(t)
	room := f.rooms.Add("lobby")

	f.parser.Parse("|users|2, Alice,+Bob", room)
	f.parser.Parse("|users|2,%Alice,+Bob", room)
	assert.Equal(t, "%", f.users.Get("alice").RankIn("lobby"))
	assert.Equal(t, "+", f.users.Get("bob").RankIn("lobby"))
}

func TestUsersEmptySnapshotSkipped(t *testing.T) {
	f := newFixture(t)
	room := f.rooms.Add("lobby")
	f.parser.Parse("|users|0", room)
	assert.Empty(t, room.Users)
}

func TestJoinLeaveRename(t *testing.T) {
	f := newFixture(t)
	room := f.rooms.Add("lobby")

	f.parser.Parse("|J|+Alice", room)
	require.NotNil(t, f.users.Get("alice"))
	assert.Equal(t, "+", f.users.Get("alice").RankIn("lobby"))

	f.parser.Parse("|N|%Alicia|alice", room)
	assert.Nil(t, f.users.Get("alice"))
	renamed := f.users.Get("alicia")
	require.NotNil(t, renamed)
	assert.Equal(t, "Alicia", renamed.Name)
	assert.Equal(t, "%", renamed.RankIn("lobby"))
	_, stale := room.Users["alice"]
	assert.False(t, stale)

	f.parser.Parse("|L|%Alicia", room)
	assert.Nil(t, f.users.Get("alicia"))
	assert.Empty(t, room.Users)
}

func TestLeaveUnknownUserIgnored(t *testing.T) {
	f := newFixture(t)
	room := f.rooms.Add("lobby")
	f.parser.Parse("|L|Ghost", room)
	assert.Empty(t, room.Users)
}

func TestFormatsFeedCatalog(t *testing.T) {
	f := newFixture(t)
	f.parser.Parse("|formats|,1|SectionA|Abc,8|Def", nil)

	require.Equal(t, 2, f.catalog.Len())
	e, ok := f.catalog.Get("abc")
	require.True(t, ok)
	assert.Equal(t, "SectionA", e.Section)
}

func TestChatRunsCommandsAndModeration(t *testing.T) {
	f := newFixture(t)
	room := f.joinedRoom(t, "lobby", "%")

	var invocations []string
	f.registry.Register("ping", commands.Handler(func(ctx *commands.Context) error {
		invocations = append(invocations, ctx.User.ID)
		ctx.Say("pong")
		return nil
	}))

	f.parser.Parse("|c| Alice|.ping", room)
	assert.Equal(t, []string{"alice"}, invocations)
	require.Len(t, f.sent.msgs, 1)
	assert.Equal(t, "lobby|pong", f.sent.msgs[0])

	// Unranked speakers are moderated.
	f.parser.Parse("|c| Alice|"+strings.Repeat("a", 25), room)
	require.Len(t, f.sent.msgs, 2)
	assert.Contains(t, f.sent.msgs[1], "stretch")
}

func TestChatElevatedRankSkipsModeration(t *testing.T) {
	f := newFixture(t)
	room := f.joinedRoom(t, "lobby", "%")

	f.parser.Parse("|c|+Alice|"+strings.Repeat("a", 25), room)
	assert.Empty(t, f.sent.msgs)
}

func TestChatUpdatesStaleRank(t *testing.T) {
	f := newFixture(t)
	room := f.rooms.Add("lobby")
	f.parser.Parse("|users|1, Alice", room)

	f.parser.Parse("|c|+Alice|hello", room)
	assert.Equal(t, "+", f.users.Get("alice").RankIn("lobby"))
}

func TestChatStampedTimestamp(t *testing.T) {
	f := newFixture(t)
	room := f.rooms.Add("lobby")

	var got time.Time
	f.registry.Register("when", commands.Handler(func(ctx *commands.Context) error {
		got = ctx.Time
		return nil
	}))

	f.parser.Parse("|c:|1700000000| Alice|.when", room)
	assert.Equal(t, time.UnixMilli(1_700_000_000_000), got)
}

func TestSelfChatDispatchesListenerExactlyOnce(t *testing.T) {
	f := newFixture(t)
	room := f.joinedRoom(t, "lobby", "*")

	fired := 0
	f.parser.Await("Announcement Text!", func() { fired++ })

	var invoked bool
	f.registry.Register("announcementtext", commands.Handler(func(ctx *commands.Context) error {
		invoked = true
		return nil
	}))

	f.parser.Parse("|c|*TestBot|Announcement Text!", room)
	assert.Equal(t, 1, fired)
	assert.False(t, invoked, "self messages must not reach command execution")
	assert.Empty(t, f.sent.msgs, "self messages must not be moderated")

	// Second echo of the same token: listener is already consumed.
	f.parser.Parse("|c|*TestBot|Announcement Text!", room)
	assert.Equal(t, 1, fired)
}

func TestPMRunsCommandWithSenderAsTarget(t *testing.T) {
	f := newFixture(t)

	f.registry.Register("ping", commands.Handler(func(ctx *commands.Context) error {
		require.True(t, ctx.Room.IsPM())
		ctx.Say("pong")
		return nil
	}))

	f.parser.Parse("|pm| Alice| TestBot|.ping", nil)
	require.Len(t, f.sent.msgs, 1)
	assert.Equal(t, "|/pm alice, pong", f.sent.msgs[0])
}

func TestPMFromSelfIgnored(t *testing.T) {
	f := newFixture(t)

	invoked := false
	f.registry.Register("ping", commands.Handler(func(ctx *commands.Context) error {
		invoked = true
		return nil
	}))

	f.parser.Parse("|pm| TestBot| Alice|.ping", nil)
	assert.False(t, invoked)
}

func TestRawTogglesLockdown(t *testing.T) {
	f := newFixture(t)

	f.parser.Parse(`|raw|<div class="broadcast-red"><b>The server is restarting soon.</b></div>`, nil)
	assert.True(t, f.rooms.Lockdown)

	f.parser.Parse(`|raw|<div class="broadcast-green"><b>The server restart was canceled.</b></div>`, nil)
	assert.False(t, f.rooms.Lockdown)
}

func TestParseMessageHookVetoes(t *testing.T) {
	f := newFixture(t)
	f.cfg.ParseMessage = func(roomID, msgType string, fields []string) bool {
		return msgType != "users"
	}

	room := f.rooms.Add("lobby")
	f.parser.Parse("|users|1, Alice", room)
	assert.Empty(t, room.Users)

	f.cfg.ParseMessage = nil
	f.parser.Parse("|users|1, Alice", room)
	assert.Len(t, room.Users, 1)
}

func TestUnknownTypeIgnored(t *testing.T) {
	f := newFixture(t)
	f.parser.Parse("|queryresponse|roomlist|{}", nil)
	f.parser.Parse("not a protocol line", nil)
	assert.Empty(t, f.sent.msgs)
}
