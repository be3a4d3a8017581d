package pegtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePosition(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		offset int
		want   Location
	}{
		{
			name:   "start of input",
			input:  "hello\nworld",
			offset: 0,
			want:   Location{Line: 0, Column: 0, Offset: 0},
		},
		{
			name:   "mid first line",
			input:  "hello\nworld",
			offset: 3,
			want:   Location{Line: 0, Column: 3, Offset: 3},
		},
		{
			name:   "exactly on a newline",
			input:  "hello\nworld",
			offset: 5,
			want:   Location{Line: 0, Column: 5, Offset: 5},
		},
		{
			name:   "just after the newline",
			input:  "hello\nworld",
			offset: 6,
			want:   Location{Line: 1, Column: 0, Offset: 6},
		},
		{
			name:   "multiple newlines",
			input:  "a\nbb\nccc",
			offset: 7,
			want:   Location{Line: 2, Column: 2, Offset: 7},
		},
		{
			name:   "offset past end clamps to input length",
			input:  "abc",
			offset: 99,
			want:   Location{Line: 0, Column: 3, Offset: 3},
		},
		{
			name:   "empty input",
			input:  "",
			offset: 0,
			want:   Location{Line: 0, Column: 0, Offset: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolvePosition([]rune(tt.input), tt.offset)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLocation_String(t *testing.T) {
	assert.Equal(t, "0:0", Location{}.String())
	assert.Equal(t, "2:5", Location{Line: 2, Column: 5}.String())
}

func TestSpan_String(t *testing.T) {
	same := Location{Line: 1, Column: 2, Offset: 3}
	require.Equal(t, "1:2", Span{Start: same, End: same}.String())

	s := Span{Start: Location{Line: 0, Column: 0}, End: Location{Line: 0, Column: 3}}
	assert.Equal(t, "0:0..0:3", s.String())
}

func TestSpanFrom(t *testing.T) {
	input := []rune("ab\ncd")
	span := spanFrom(input, 1, 4)
	assert.Equal(t, Location{Line: 0, Column: 1, Offset: 1}, span.Start)
	assert.Equal(t, Location{Line: 1, Column: 1, Offset: 4}, span.End)
}
