package tui

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "exactly10!", truncate("exactly10!", 10))
	assert.Equal(t, "overflowi…", truncate("overflowing", 10))

	// Multi-byte text is cut on rune boundaries, never mid-rune.
	assert.Equal(t, "héllo", truncate("héllo", 5))
	assert.Equal(t, "caffè la…", truncate("caffè latte macchiato", 9))

	got := truncate("crème brûlée délicieuse", 12)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, "crème brûlé…", got)
}
