package mcp

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
)

func TestFormatPayload_TruncatesOnRuneBoundary(t *testing.T) {
	// Shift the cut by one byte per case so it lands inside a two-byte rune at least once.
	for prefix := 0; prefix < 4; prefix++ {
		title := strings.Repeat("a", prefix) + strings.Repeat("Größe ändern ", 300)
		out := formatPayload(map[string]string{"title": title})

		require.True(t, utf8.ValidString(out), "prefix %d", prefix)
		require.True(t, strings.HasSuffix(out, "…"))
		require.LessOrEqual(t, len(out), maxLoggedPayload+len("…"))
	}

	require.Equal(t, `{"title":"Küche"}`, formatPayload(map[string]string{"title": "Küche"}))
	require.Equal(t, "<nil>", formatPayload(nil))
}
