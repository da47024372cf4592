package utils

import (
	"strconv"
	"strings"
)

const exitCommand = "exit"

// IsExitCommand reports whether the console input asks to end the session.
func IsExitCommand(input string) bool {
	return strings.EqualFold(strings.TrimSpace(input), exitCommand)
}

// ParseStationPair splits "A B" into its origin and destination names.
func ParseStationPair(input string) (origin, destination string, ok bool) {
	parts := strings.Fields(input)
	if len(parts) != 2 {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// FormatDuration prints a trip duration the way the console always has,
// keeping at least one decimal place ("9.0", "2.25").
func FormatDuration(minutes float64) string {
	s := strconv.FormatFloat(minutes, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}
