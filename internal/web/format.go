package web

import (
	"strings"
	"unicode/utf8"

	"github.com/Marga-Ghale/ora-project-dashboard/internal/types"
)

// visibleMembers is how many member avatars a table row shows.
const visibleMembers = 2

// Initials takes the first letter of every word, so "Maria P." is "MP".
func Initials(member string) string {
	var b strings.Builder
	for _, word := range strings.Fields(member) {
		r, _ := utf8.DecodeRuneInString(word)
		b.WriteRune(r)
	}
	return b.String()
}

// MemberBadges returns the avatars to draw for a team and the size of the
// "+N" overflow badge.
func MemberBadges(members []string) (badges []string, overflow int) {
	n := min(len(members), visibleMembers)
	badges = make([]string, n)
	for i := 0; i < n; i++ {
		badges[i] = Initials(members[i])
	}
	return badges, len(members) - n
}

// ProgressColor picks the progress bar color.
func ProgressColor(progress int) string {
	switch {
	case progress == 100:
		return "green"
	case progress >= 50:
		return "blue"
	default:
		return "yellow"
	}
}

// StatusColor picks the status badge color.
func StatusColor(status types.Status) string {
	switch status {
	case types.StatusCompleted:
		return "green"
	case types.StatusOngoing:
		return "blue"
	default:
		return "yellow"
	}
}
