// Package dateutils provides the date and time normalization used when
// converting raw point-of-sale rows into canonical sort and grouping keys.
package dateutils

import "strings"

// DateKeyLength is the length of a canonical date key (YYYY-MM-DD).
const DateKeyLength = 10

// MidnightTime is the time-of-day substituted when a line carries no time.
const MidnightTime = "00:00:00"

// ToDateKey converts a raw date cell into a canonical YYYY-MM-DD key.
// Slashes become dashes and anything past the date part is cut off. Values
// shorter than a full date are returned as-is rather than guessed at.
func ToDateKey(v string) string {
	s := strings.ReplaceAll(strings.TrimSpace(v), "/", "-")
	if r := []rune(s); len(r) >= DateKeyLength {
		return string(r[:DateKeyLength])
	}
	return s
}

// NormalizeTime converts a raw time cell into HH:MM:SS.
//
// Colon-separated values are padded per part, with missing minutes and
// seconds defaulting to "00". Bare digit runs are interpreted by length:
// HHMMSS, HHMM or HH. Anything else normalizes to the empty string, which
// callers treat as unparsable.
func NormalizeTime(v string) string {
	t := strings.TrimSpace(v)
	if t == "" {
		return ""
	}

	if strings.Contains(t, ":") {
		parts := strings.SplitN(t, ":", 3)
		for len(parts) < 3 {
			parts = append(parts, "00")
		}
		for i, p := range parts {
			for len(p) < 2 {
				p = "0" + p
			}
			parts[i] = p
		}
		return strings.Join(parts, ":")
	}

	digits := keepDigits(t)
	switch len(digits) {
	case 6:
		return digits[0:2] + ":" + digits[2:4] + ":" + digits[4:6]
	case 4:
		return digits[0:2] + ":" + digits[2:4] + ":00"
	case 2:
		return digits + ":00:00"
	default:
		return ""
	}
}

// DateTimeKey combines a date key and a normalized time into a single
// lexicographically sortable key. An empty time sorts as midnight.
func DateTimeKey(dateKey, timeOfDay string) string {
	if timeOfDay == "" {
		timeOfDay = MidnightTime
	}
	return dateKey + "T" + timeOfDay
}

// keepDigits strips every non-digit byte from s.
func keepDigits(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
