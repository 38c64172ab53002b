package outboxrepo

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncateUTF8(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		limit int
		want  string
	}{
		{"shorter than limit", "timeout", 10, "timeout"},
		{"exact limit", "timeout", 7, "timeout"},
		{"ascii cut", "connection refused", 10, "connection"},
		{"does not split two byte rune", "abé", 3, "ab"},
		{"does not split four byte rune", "x🚲", 4, "x"},
		{"keeps whole rune at boundary", "ab🚲", 6, "ab🚲"},
		{"zero limit", "é", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncateUTF8(tt.in, tt.limit)

			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
			assert.LessOrEqual(t, len(got), tt.limit)
		})
	}
}

func TestTruncateUTF8_LongErrorFitsColumn(t *testing.T) {
	message := "kafka: " + strings.Repeat("ошибка ", 300)

	got := truncateUTF8(message, maxErrorLength)

	assert.True(t, utf8.ValidString(got))
	assert.LessOrEqual(t, len(got), maxErrorLength)
	assert.True(t, strings.HasPrefix(message, got))
}
