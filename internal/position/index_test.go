package position_test

import (
	"testing"
	"unicode/utf8"

	"bennypowers.dev/tokenlint/internal/position"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexPosition(t *testing.T) {
	text := ":root {\n  --a: 1px;\n}\n"
	x := position.NewIndex(text)

	cases := []struct {
		name      string
		offset    int
		line, col uint32
	}{
		{"start", 0, 0, 0},
		{"end of first line", 7, 0, 7},
		{"start of second line", 8, 1, 0},
		{"declaration", 10, 1, 2},
		{"closing brace", 20, 2, 0},
		{"past end clamps", 500, 3, 0},
		{"negative clamps", -3, 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			line, col := x.Position(tc.offset)
			assert.Equal(t, tc.line, line)
			assert.Equal(t, tc.col, col)
		})
	}
}

func TestIndexCountsUTF16Units(t *testing.T) {
	// "é" is 2 bytes / 1 unit, "😀" is 4 bytes / 2 units
	text := "é😀--x"
	x := position.NewIndex(text)

	line, col := x.Position(len("é😀"))
	assert.Equal(t, uint32(0), line)
	assert.Equal(t, uint32(3), col)
}

func TestUTF16Len(t *testing.T) {
	assert.Equal(t, 0, position.UTF16Len(""))
	assert.Equal(t, 5, position.UTF16Len("hello"))
	assert.Equal(t, 2, position.UTF16Len("😀"))
	assert.Equal(t, 1, position.UTF16Len("\xff"))
}

func TestOffset(t *testing.T) {
	text := "a\n日本x\n\nlast"
	x := position.NewIndex(text)

	tests := []struct {
		name      string
		line, ch  uint32
		want      int
		wantError bool
	}{
		{"start", 0, 0, 0, false},
		{"end of first line", 0, 1, 1, false},
		{"past line end clamps", 0, 9, 1, false},
		{"after wide runes", 1, 2, 8, false},
		{"empty line", 2, 0, 10, false},
		{"last line", 3, 4, 15, false},
		{"line out of range", 4, 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := x.Offset(tt.line, tt.ch)
			if tt.wantError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
	assert.Equal(t, 4, x.Lines())
}

func TestOffsetInvertsPosition(t *testing.T) {
	text := ":root {\n  --a: 1;\n  --ü: 2;\n}"
	x := position.NewIndex(text)
	for offset := 0; offset <= len(text); offset++ {
		line, ch := x.Position(offset)
		got, err := x.Offset(line, ch)
		require.NoError(t, err)
		if utf8.RuneStart(text[min(offset, len(text)-1)]) || offset == len(text) {
			assert.Equal(t, offset, got, "offset %d", offset)
		}
	}
}
