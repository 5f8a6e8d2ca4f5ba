package engagement

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(n int) *int { return &n }

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected Counts
	}{
		{
			name:     "all counts",
			text:     "All reactions: \n 1,234 reactions \n 56 comments \n 7 shares",
			expected: Counts{Reactions: intPtr(1234), Comments: intPtr(56), Shares: intPtr(7)},
		},
		{
			name:     "suffixes",
			text:     "1.2K likes · 3K comments · 1M shares",
			expected: Counts{Reactions: intPtr(1200), Comments: intPtr(3000), Shares: intPtr(1000000)},
		},
		{
			name:     "singular",
			text:     "1 like 1 comment 1 share",
			expected: Counts{Reactions: intPtr(1), Comments: intPtr(1), Shares: intPtr(1)},
		},
		{
			name:     "missing counts",
			text:     "Like Comment Share",
			expected: Counts{},
		},
		{
			name:     "dot thousands separator",
			text:     "12.500 reactions",
			expected: Counts{Reactions: intPtr(12500)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Parse(tt.text))
		})
	}
}

func TestParseCount(t *testing.T) {
	tests := []struct {
		input string
		n     int
		ok    bool
	}{
		{"42", 42, true},
		{"1,234", 1234, true},
		{"2.5k", 2500, true},
		{"1,5K", 1500, true},
		{"", 0, false},
		{"K", 0, false},
		{"abc", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			n, ok := ParseCount(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.n, n)
		})
	}
}
