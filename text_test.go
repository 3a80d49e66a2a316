package obeviz

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBreakText(t *testing.T) {
	cases := []struct {
		text string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly ten", 11, "exactly ten"},
		{
			"Heatmap for Insufficient Weight by Age group",
			20,
			"Heatmap for\nInsufficient Weight by Age group",
		},
		{"abcdefghij", 4, "abcd\nefghij"},
		{"one two", 6, "one\ntwo"},
	}
	for _, c := range cases {
		require.Equal(t, c.want, BreakText(c.text, c.max), "text %q max %d", c.text, c.max)
	}
}
