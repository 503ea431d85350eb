package output

import (
	"encoding/json"
	"encoding/xml"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cddtools/icp/pkg/models"
)

func sampleAggregate() *models.AggregatedAnalysis {
	return &models.AggregatedAnalysis{
		TotalFiles:     2,
		TotalClasses:   3,
		TotalIcp:       21.5,
		AverageIcp:     7.166666,
		MedianClassIcp: 6.5,
		P90ClassIcp:    15,
		IcpDistribution: map[models.IcpType]int{
			models.IcpCodeBranch:        8,
			models.IcpCondition:         10,
			models.IcpExternalCoupling:  3,
			models.IcpExceptionHandling: 1,
		},
		ClassesOverLimit: []models.ClassSummary{
			{File: "Big.java", Class: "com.example.Big", TotalIcp: 15, Limit: 12, CodeLines: 120},
		},
		LargestClasses: []models.ClassSummary{
			{File: "Big.java", Class: "com.example.Big", TotalIcp: 15, Limit: 12, CodeLines: 120},
			{File: "Small.kt", Class: "com.example.Small", TotalIcp: 4, Limit: 12, CodeLines: 30},
		},
		Sloc: models.SlocStatistics{
			TotalLines: 200, CodeLines: 150, CommentLines: 30, BlankLines: 20,
			AverageClassCode: 50, AverageMethodCode: 12,
		},
		IcpSlocCorrelation: 0.87,
		MethodsOverSlocLimit: []models.MethodSummary{
			{File: "Big.java", Class: "com.example.Big", Method: "everything", CodeLines: 64},
		},
		Suggestions: []models.Suggestion{
			{Target: "com.example.Big", Action: "extract_class", Message: "split it up"},
		},
		Errors: []models.AnalysisError{
			{File: "Bad.java", Message: "syntax error", Severity: models.SeverityWarning},
		},
	}
}

func renderToFile(t *testing.T, format Format) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "report")

	f, err := NewFormatter(format, path)
	require.NoError(t, err)
	require.NoError(t, f.Render(sampleAggregate()))
	require.NoError(t, f.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(content)
}

func TestParseFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, ParseFormat("json"))
	assert.Equal(t, FormatJSON, ParseFormat("JSON"))
	assert.Equal(t, FormatXML, ParseFormat("xml"))
	assert.Equal(t, FormatMarkdown, ParseFormat("markdown"))
	assert.Equal(t, FormatMarkdown, ParseFormat("md"))
	assert.Equal(t, FormatConsole, ParseFormat("console"))
	assert.Equal(t, FormatConsole, ParseFormat(""))
	assert.Equal(t, FormatConsole, ParseFormat("bogus"))
}

func TestRenderJSON(t *testing.T) {
	content := renderToFile(t, FormatJSON)

	var decoded models.AggregatedAnalysis
	require.NoError(t, json.Unmarshal([]byte(content), &decoded))

	assert.Equal(t, 2, decoded.TotalFiles)
	assert.Equal(t, 21.5, decoded.TotalIcp)
	assert.Equal(t, 6.5, decoded.MedianClassIcp)
	assert.Equal(t, 8, decoded.IcpDistribution[models.IcpCodeBranch])
	require.Len(t, decoded.ClassesOverLimit, 1)
	assert.Equal(t, "com.example.Big", decoded.ClassesOverLimit[0].Class)
}

func TestRenderXML(t *testing.T) {
	content := renderToFile(t, FormatXML)

	assert.Contains(t, content, "<?xml")
	assert.Contains(t, content, "<icpReport>")
	assert.Contains(t, content, `type="CODE_BRANCH" count="8"`)
	assert.Contains(t, content, `name="com.example.Big"`)
	assert.Contains(t, content, "<medianClassIcp>6.5</medianClassIcp>")

	// The whole document must stay well-formed.
	type reportDoc struct {
		XMLName      xml.Name `xml:"icpReport"`
		TotalClasses int      `xml:"totalClasses"`
	}
	var doc reportDoc
	require.NoError(t, xml.Unmarshal([]byte(content[len(xml.Header):]), &doc))
	assert.Equal(t, 3, doc.TotalClasses)
}

func TestRenderMarkdown(t *testing.T) {
	content := renderToFile(t, FormatMarkdown)

	assert.Contains(t, content, "# ICP Analysis")
	assert.Contains(t, content, "- Median class ICP: 6.5 (p90 15.0)")
	assert.Contains(t, content, "| CODE_BRANCH | 8 |")
	assert.Contains(t, content, "## Violations")
	assert.Contains(t, content, "`com.example.Big`")
	assert.Contains(t, content, "`com.example.Big.everything`")
	assert.Contains(t, content, "**extract_class**")
}

func TestRenderConsole(t *testing.T) {
	content := renderToFile(t, FormatConsole)

	assert.Contains(t, content, "ICP Analysis")
	assert.Contains(t, content, "Files:        2")
	assert.Contains(t, content, "Total ICP:    21.5")
	assert.Contains(t, content, "Median ICP:   6.5 (p90 15.0)")
	assert.Contains(t, content, "Largest classes")
	assert.Contains(t, content, "1 class(es) over the ICP limit")
	assert.Contains(t, content, "com.example.Big")
	assert.Contains(t, content, "WARNING: Bad.java: syntax error")
	// File output is never colored.
	assert.NotContains(t, content, "\x1b[")
}

func TestRenderEmptyAggregate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report")
	f, err := NewFormatter(FormatConsole, path)
	require.NoError(t, err)
	require.NoError(t, f.Render(models.Aggregate(nil)))
	require.NoError(t, f.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Files:        0")
}

func TestNewFormatterBadPath(t *testing.T) {
	_, err := NewFormatter(FormatJSON, filepath.Join(t.TempDir(), "missing", "deep", "report"))
	assert.Error(t, err)
}
