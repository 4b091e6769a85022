package format

import (
	"strconv"
	"strings"

	"patina/internal/morphospace"
)

// Float formats v with four decimals, trailing zeros trimmed.
func Float(v float64) string {
	s := strconv.FormatFloat(morphospace.Round(v, 4), 'f', 4, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// Coordinate formats c as its axis values in axis order, "/"-separated.
func Coordinate(c morphospace.Coordinate) string {
	parts := make([]string, morphospace.NumAxes)
	for i, v := range c {
		parts[i] = Float(v)
	}
	return strings.Join(parts, "/")
}

// CoordinateHeader is the column title matching Coordinate.
func CoordinateHeader() string {
	return "exp/agt/res/int/aes"
}

// Truncate shortens s to maxLen runes, appending "..." if truncated.
func Truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
