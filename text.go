package obeviz

import (
	"strconv"
	"strings"
)

// BreakText splits text into two trimmed lines when it is longer than max,
// breaking at the last space before the limit, or mid-word when the first
// word alone exceeds it.
func BreakText(text string, max int) string {
	if len(text) <= max {
		return text
	}
	idx := strings.LastIndex(text[:max], " ")
	if idx < 0 {
		idx = max
	}
	var (
		fst = strings.TrimSpace(text[:idx])
		lst = strings.TrimSpace(text[idx:])
	)
	return fst + "\n" + lst
}

func formatCount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
