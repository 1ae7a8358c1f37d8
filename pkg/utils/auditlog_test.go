package utils

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncateKeepsValidUTF8(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 200))

	// 199 ASCII bytes followed by a 3-byte rune straddles the limit
	ua := strings.Repeat("a", 199) + "€" + "tail"
	got := truncate(ua, 200)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("a", 199), got)

	got = truncate(strings.Repeat("é", 150), 200)
	assert.True(t, utf8.ValidString(got))
	assert.Len(t, got, 200)

	got = truncate("Mozilla\xff\xfe/5.0", 200)
	assert.Equal(t, "Mozilla/5.0", got)
}
