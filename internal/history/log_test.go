package history

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 120))
	assert.Equal(t, "abc…", truncate("abcdef", 3))
	assert.Equal(t, "héé", truncate("héé", 3))

	long := strings.Repeat("é", 119) + "日本語"
	got := truncate(long, previewRunes)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("é", 119)+"日…", got)
}
