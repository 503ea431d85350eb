// Package sloc classifies physical source lines into code, comment, and
// blank lines for C-style comment syntax (//, /* */), which covers both
// analyzed languages.
package sloc

import (
	"strings"

	"github.com/cddtools/icp/pkg/models"
)

// Count classifies every line of text. Equivalent to CountRange over the
// whole file.
func Count(text string) models.SlocMetrics {
	lines := splitLines(text)
	return countLines(lines)
}

// CountRange classifies the inclusive 1-based line range [start, end].
// An empty or inverted range yields all-zero metrics.
func CountRange(text string, start, end int) models.SlocMetrics {
	if start < 1 {
		start = 1
	}
	lines := splitLines(text)
	if end > len(lines) {
		end = len(lines)
	}
	if end < start {
		return models.SlocMetrics{}
	}
	return countLines(lines[start-1 : end])
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}

func countLines(lines []string) models.SlocMetrics {
	var m models.SlocMetrics
	inBlockComment := false

	for _, line := range lines {
		m.Total++
		trimmed := strings.TrimSpace(line)

		switch {
		case inBlockComment:
			m.Comments++
			if strings.Contains(trimmed, "*/") {
				inBlockComment = false
			}
		case trimmed == "":
			m.BlankLines++
		case strings.HasPrefix(trimmed, "//"):
			m.Comments++
		case strings.HasPrefix(trimmed, "/*"):
			m.Comments++
			// A block comment that closes on its own line stays closed.
			if !strings.Contains(trimmed[2:], "*/") {
				inBlockComment = true
			}
		default:
			m.CodeOnly++
		}
	}

	m.WithComments = m.CodeOnly + m.Comments
	return m
}
