package tagging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		ms   int64
		want string
	}{
		{18_484_832, "05:08:04"}, // seconds truncate, never round
		{0, "00:00:00"},
		{999, "00:00:00"},
		{1_000, "00:00:01"},
		{61_000, "00:01:01"},
		{3_600_000, "01:00:00"},
		{360_000_000, "100:00:00"}, // hours beyond two digits stay intact
		{-5, "00:00:00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDuration(tt.ms), "ms=%d", tt.ms)
	}
}
