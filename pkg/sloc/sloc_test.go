package sloc

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cddtools/icp/pkg/models"
)

func TestCount(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected models.SlocMetrics
	}{
		{
			name:     "empty input",
			text:     "",
			expected: models.SlocMetrics{},
		},
		{
			name: "code only",
			text: "int x = 1;\nint y = 2;",
			expected: models.SlocMetrics{
				Total: 2, CodeOnly: 2, WithComments: 2,
			},
		},
		{
			name: "line comments",
			text: "// header\nint x = 1;\n// trailer",
			expected: models.SlocMetrics{
				Total: 3, CodeOnly: 1, WithComments: 3, Comments: 2,
			},
		},
		{
			name: "blank lines",
			text: "int x;\n\n\nint y;",
			expected: models.SlocMetrics{
				Total: 4, CodeOnly: 2, WithComments: 2, BlankLines: 2,
			},
		},
		{
			name: "block comment spanning lines",
			text: "/*\n * docs\n */\nint x;",
			expected: models.SlocMetrics{
				Total: 4, CodeOnly: 1, WithComments: 4, Comments: 3,
			},
		},
		{
			name: "block comment closed on same line",
			text: "/* inline */\nint x;",
			expected: models.SlocMetrics{
				Total: 2, CodeOnly: 1, WithComments: 2, Comments: 1,
			},
		},
		{
			name: "blank line inside block comment counts as comment",
			text: "/*\n\n*/",
			expected: models.SlocMetrics{
				Total: 3, WithComments: 3, Comments: 3,
			},
		},
		{
			name: "crlf input",
			text: "int x;\r\n// c\r\n",
			expected: models.SlocMetrics{
				Total: 3, CodeOnly: 1, WithComments: 2, Comments: 1, BlankLines: 1,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Count(tt.text)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestCountInvariants(t *testing.T) {
	text := "package demo;\n\n// comment\n/*\nblock\n*/\nclass A {\n}\n"
	m := Count(text)

	assert.Equal(t, m.Total, m.CodeOnly+m.Comments+m.BlankLines)
	assert.Equal(t, m.WithComments, m.CodeOnly+m.Comments)
}

func TestCountRange(t *testing.T) {
	text := "a\nb\nc\nd\ne"

	t.Run("middle range", func(t *testing.T) {
		m := CountRange(text, 2, 4)
		assert.Equal(t, 3, m.Total)
		assert.Equal(t, 3, m.CodeOnly)
	})

	t.Run("range clamped to file end", func(t *testing.T) {
		m := CountRange(text, 4, 100)
		assert.Equal(t, 2, m.Total)
	})

	t.Run("start clamped to first line", func(t *testing.T) {
		m := CountRange(text, -3, 2)
		assert.Equal(t, 2, m.Total)
	})

	t.Run("inverted range is empty", func(t *testing.T) {
		assert.Equal(t, models.SlocMetrics{}, CountRange(text, 4, 2))
	})

	t.Run("whole file matches Count", func(t *testing.T) {
		assert.Equal(t, Count(text), CountRange(text, 1, 5))
	})
}

func TestCountRangeBlockCommentState(t *testing.T) {
	// A range starting inside a block comment does not know it; the
	// classification is per-range, so the opening line must be included.
	text := "/*\nbody\n*/\nint x;"

	m := CountRange(text, 1, 3)
	assert.Equal(t, 3, m.Comments)
	assert.Equal(t, 0, m.CodeOnly)
}
