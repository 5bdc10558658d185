package defs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"showdown-bot/commands"
	"showdown-bot/formats"
	"showdown-bot/model"
)

type nopSender struct{}

func (nopSender) Send(string) {}

type fakeConfig struct {
	cfg *model.Config
}

func (f *fakeConfig) GetConfig() *model.Config { return f.cfg }

type fixture struct {
	deps    *Deps
	parser  *commands.Parser
	users   *model.UserRegistry
	rooms   *model.RoomRegistry
	awaited []string
}

func newFixture() *fixture {
	f := &fixture{}
	provider := &fakeConfig{cfg: &model.Config{Username: "TestBot", CommandCharacter: "."}}
	f.users = model.NewUserRegistry()
	f.rooms = model.NewRoomRegistry(nopSender{}, f.users)

	catalog := formats.New()
	catalog.Parse([]string{"", "SectionA", "Abc,8", "Def"})

	reg := commands.NewRegistry()
	f.deps = &Deps{
		Config:  provider,
		Users:   f.users,
		Rooms:   f.rooms,
		Formats: catalog,
		Sender:  nopSender{},
		Await:   func(token string, fn func()) { f.awaited = append(f.awaited, token) },
		Start:   time.Now().Add(-time.Hour),
	}
	Register(reg, f.deps)
	f.parser = commands.NewParser(provider, reg)
	return f
}

type fakeTarget struct {
	id   string
	pm   bool
	sent []string
}

func (t *fakeTarget) TargetID() string { return t.id }
func (t *fakeTarget) IsPM() bool       { return t.pm }
func (t *fakeTarget) Send(text string) { t.sent = append(t.sent, text) }

func (f *fixture) speaker(rank string) (*model.User, *fakeTarget) {
	room := f.rooms.Add("lobby")
	u := f.users.Add("Speaker")
	room.SetRank(u, rank)
	return u, &fakeTarget{id: "lobby"}
}

func TestAboutViaAlias(t *testing.T) {
	f := newFixture()
	u, target := f.speaker(" ")

	require.True(t, f.parser.ParseCommand(".help", target, u, time.Now()))
	require.Len(t, target.sent, 1)
	assert.Contains(t, target.sent[0], "Showdown")
}

func TestUptimeReportsCounts(t *testing.T) {
	f := newFixture()
	u, target := f.speaker(" ")

	require.True(t, f.parser.ParseCommand(".uptime", target, u, time.Now()))
	require.Len(t, target.sent, 1)
	assert.Contains(t, target.sent[0], "Uptime:")
}

func TestFormatLookup(t *testing.T) {
	f := newFixture()
	u, target := f.speaker(" ")

	require.True(t, f.parser.ParseCommand(".format abc", target, u, time.Now()))
	require.Len(t, target.sent, 1)
	assert.Contains(t, target.sent[0], "Abc")
	assert.Contains(t, target.sent[0], "tournaments")
	assert.NotContains(t, target.sent[0], "search")
}

func TestSayRequiresStaffAndRegistersListener(t *testing.T) {
	f := newFixture()

	u, target := f.speaker(" ")
	require.True(t, f.parser.ParseCommand(".say hello room", target, u, time.Now()))
	assert.Empty(t, target.sent)
	assert.Empty(t, f.awaited)

	_, target2 := f.speaker("%")
	require.True(t, f.parser.ParseCommand(".say hello room", target2, f.users.Get("speaker"), time.Now()))
	require.Len(t, target2.sent, 1)
	assert.Equal(t, "hello room", target2.sent[0])
	assert.Equal(t, []string{"helloroom"}, f.awaited)
}

func TestSayRefusesSlashCommands(t *testing.T) {
	f := newFixture()
	_, target := f.speaker("%")

	ok := f.parser.ParseCommand(".say /ban everyone", target, f.users.Get("speaker"), time.Now())
	assert.False(t, ok)
	assert.Empty(t, target.sent)
}

func TestRankReportsRoomRank(t *testing.T) {
	f := newFixture()
	_, target := f.speaker("+")

	require.True(t, f.parser.ParseCommand(".rank", target, f.users.Get("speaker"), time.Now()))
	require.Len(t, target.sent, 1)
	assert.Contains(t, target.sent[0], "'+'")
}

func TestModlogDisabledWithoutDB(t *testing.T) {
	f := newFixture()
	_, target := f.speaker("%")

	require.True(t, f.parser.ParseCommand(".modlog someone", target, f.users.Get("speaker"), time.Now()))
	require.Len(t, target.sent, 1)
	assert.Contains(t, target.sent[0], "disabled")
}
