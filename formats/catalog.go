// Package formats parses the server's format list into a lookup catalog.
package formats

import (
	"strconv"
	"strings"

	"showdown-bot/utils"
)

// Entry is one playable format. Section is the header the format appeared
// under; the Show flags control which matchmaking surfaces list it.
type Entry struct {
	Name           string
	ID             string
	Section        string
	SearchShow     bool
	ChallengeShow  bool
	TournamentShow bool
}

// Catalog holds the parsed format table plus the raw descriptor list it came
// from. Resolve results are memoized until the next Parse.
type Catalog struct {
	raw     []string
	entries map[string]Entry
	cache   map[string]string
}

func New() *Catalog {
	return &Catalog{
		entries: make(map[string]Entry),
		cache:   make(map[string]string),
	}
}

// parse states: a section header marker flags that the next element is the
// section name rather than a descriptor.
const (
	awaitingEntry = iota
	awaitingSectionName
)

// Parse consumes the full descriptor list, replacing the previous catalog
// wholesale and invalidating all memoized lookups.
func (c *Catalog) Parse(list []string) {
	entries := make(map[string]Entry, len(list))
	section := ""
	state := awaitingEntry

	for _, item := range list {
		if state == awaitingSectionName {
			section = item
			state = awaitingEntry
			continue
		}
		if isSectionHeader(item) {
			state = awaitingSectionName
			continue
		}

		name := item
		searchShow, challengeShow, tournamentShow := true, true, true

		if i := strings.LastIndex(name, ","); i >= 0 {
			if code, err := strconv.ParseUint(name[i+1:], 16, 32); err == nil && i+1 < len(name) {
				name = name[:i]
				searchShow = code&2 != 0
				challengeShow = code&4 != 0
				tournamentShow = code&8 != 0
			} else if strings.HasSuffix(name, ",#") {
				// legacy tournament-only marker
				name = name[:len(name)-2]
				searchShow = false
				challengeShow = false
			} else if strings.HasSuffix(name, ",") {
				// legacy unsearchable marker
				name = name[:len(name)-1]
				searchShow = false
			}
		}

		id := utils.ToID(name)
		if id == "" {
			continue
		}
		entries[id] = Entry{
			Name:           name,
			ID:             id,
			Section:        section,
			SearchShow:     searchShow,
			ChallengeShow:  challengeShow,
			TournamentShow: tournamentShow,
		}
	}

	c.raw = append([]string(nil), list...)
	c.entries = entries
	c.cache = make(map[string]string)
}

// isSectionHeader matches the three header spellings: an empty element, the
// ',LL' sentinel, or a comma-prefixed small integer.
func isSectionHeader(item string) bool {
	if item == "" || item == ",LL" {
		return true
	}
	if !strings.HasPrefix(item, ",") {
		return false
	}
	n, err := strconv.Atoi(item[1:])
	return err == nil && n >= 0 && n < 100
}

// Get returns the entry with the exact identifier.
func (c *Catalog) Get(id string) (Entry, bool) {
	e, ok := c.entries[utils.ToID(id)]
	return e, ok
}

// Resolve finds a format by user-supplied name: exact identifier first, then
// unique identifier prefix. Results are cached per query until the catalog is
// replaced.
func (c *Catalog) Resolve(query string) (Entry, bool) {
	id := utils.ToID(query)
	if id == "" {
		return Entry{}, false
	}
	if hit, ok := c.cache[id]; ok {
		e, ok := c.entries[hit]
		return e, ok
	}
	if e, ok := c.entries[id]; ok {
		c.cache[id] = id
		return e, true
	}
	match := ""
	for key := range c.entries {
		if strings.HasPrefix(key, id) {
			if match != "" {
				return Entry{}, false // ambiguous
			}
			match = key
		}
	}
	if match == "" {
		return Entry{}, false
	}
	c.cache[id] = match
	return c.entries[match], true
}

// Len returns the number of catalog entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Raw returns the descriptor list the catalog was parsed from.
func (c *Catalog) Raw() []string {
	return c.raw
}
