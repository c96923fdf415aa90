package components

import "strings"

// maxCachedPad bounds the widths served from padCache.
const maxCachedPad = 120

var padCache = strings.Repeat(" ", maxCachedPad)

// Pad returns a string of n spaces. Widths up to maxCachedPad slice a
// shared string instead of allocating.
func Pad(n int) string {
	switch {
	case n <= 0:
		return ""
	case n <= maxCachedPad:
		return padCache[:n]
	default:
		return strings.Repeat(" ", n)
	}
}
