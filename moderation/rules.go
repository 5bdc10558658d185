package moderation

import (
	"strings"
	"unicode"

	"showdown-bot/model"
)

// normalize trims the message and strips whitespace runs, control characters
// and zero-width codepoints so padding cannot dodge the detectors.
func normalize(msg string) string {
	msg = strings.TrimSpace(msg)
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || unicode.IsControl(r) || isZeroWidth(r) {
			return -1
		}
		return r
	}, msg)
}

func isZeroWidth(r rune) bool {
	switch r {
	case '\u200b', '\u200c', '\u200d', '\u200e', '\u200f', '\u2060', '\ufeff':
		return true
	}
	return false
}

// detectFlood fires when the floodCount most recent messages, the current one
// included, all fall inside the flood window. History is newest first.
func detectFlood(rec *record) (model.PunishmentCandidate, bool) {
	if len(rec.messages) < floodCount {
		return model.PunishmentCandidate{}, false
	}
	newest := rec.messages[0].time
	oldest := rec.messages[floodCount-1].time
	if newest.Sub(oldest) > floodWindow {
		return model.PunishmentCandidate{}, false
	}
	return model.PunishmentCandidate{
		Action: "mute",
		Rule:   "flood",
		Reason: "please don't flood the chat",
	}, true
}

// detectStretching fires when the message contains an immediately repeated
// substring whose full match spans stretchLen characters or more.
func detectStretching(normalized string) (model.PunishmentCandidate, bool) {
	if longestRepeatRun(normalized) < stretchLen {
		return model.PunishmentCandidate{}, false
	}
	return model.PunishmentCandidate{
		Action: "verbalwarn",
		Rule:   "stretching",
		Reason: "please don't stretch letters",
	}, true
}

// longestRepeatRun returns the length of the longest region of the string
// that is a repetition of some period: a substring immediately repeated one
// or more times. RE2 has no backreferences, so this scans each period length
// directly.
func longestRepeatRun(s string) int {
	r := []rune(s)
	n := len(r)
	best := 0
	for period := 1; period <= n/2; period++ {
		run := 0
		for i := period; i < n; i++ {
			if r[i] == r[i-period] {
				run++
				if run >= period && run+period > best {
					best = run + period
				}
			} else {
				run = 0
			}
		}
	}
	return best
}

// detectCaps fires on capsLimit or more uppercase letters after normalization.
func detectCaps(normalized string) (model.PunishmentCandidate, bool) {
	count := 0
	for _, r := range normalized {
		if unicode.IsUpper(r) {
			count++
		}
	}
	if count < capsLimit {
		return model.PunishmentCandidate{}, false
	}
	return model.PunishmentCandidate{
		Action: "verbalwarn",
		Rule:   "caps",
		Reason: "please don't abuse caps",
	}, true
}
