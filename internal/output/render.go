package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/cddtools/icp/pkg/models"
)

func renderConsole(w io.Writer, agg *models.AggregatedAnalysis, colored bool) error {
	title := "ICP Analysis"
	if colored {
		color.New(color.Bold).Fprintln(w, title)
	} else {
		fmt.Fprintln(w, title)
	}
	fmt.Fprintln(w, strings.Repeat("=", len(title)))
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Files:        %d\n", agg.TotalFiles)
	fmt.Fprintf(w, "Classes:      %d\n", agg.TotalClasses)
	fmt.Fprintf(w, "Total ICP:    %s\n", formatIcp(agg.TotalIcp))
	fmt.Fprintf(w, "Average ICP:  %s\n", formatIcp(agg.AverageIcp))
	fmt.Fprintf(w, "Median ICP:   %s (p90 %s)\n", formatIcp(agg.MedianClassIcp), formatIcp(agg.P90ClassIcp))
	fmt.Fprintf(w, "ICP/SLOC corr: %.2f\n", agg.IcpSlocCorrelation)
	fmt.Fprintf(w, "Code lines:   %d (comments %d, blank %d)\n",
		agg.Sloc.CodeLines, agg.Sloc.CommentLines, agg.Sloc.BlankLines)
	fmt.Fprintln(w)

	if len(agg.IcpDistribution) > 0 {
		rows := make([][]string, 0, len(agg.IcpDistribution))
		for _, t := range models.AllIcpTypes {
			if count := agg.IcpDistribution[t]; count > 0 {
				rows = append(rows, []string{string(t), strconv.Itoa(count)})
			}
		}
		writeTable(w, []string{"Construct", "Instances"}, rows)
	}

	if len(agg.LargestClasses) > 0 {
		rows := make([][]string, 0, len(agg.LargestClasses))
		for _, class := range agg.LargestClasses {
			icp := formatIcp(class.TotalIcp)
			if colored && class.Limit > 0 && class.TotalIcp > class.Limit {
				icp = color.RedString(icp)
			}
			rows = append(rows, []string{class.Class, class.File, icp, strconv.Itoa(class.CodeLines)})
		}
		fmt.Fprintln(w, "Largest classes")
		writeTable(w, []string{"Class", "File", "ICP", "Code Lines"}, rows)
	}

	if len(agg.ClassesOverLimit) > 0 {
		header := fmt.Sprintf("%d class(es) over the ICP limit", len(agg.ClassesOverLimit))
		if colored {
			color.Red(header)
		} else {
			fmt.Fprintln(w, header)
		}
		for _, class := range agg.ClassesOverLimit {
			fmt.Fprintf(w, "  %s (%s): %s > %s\n",
				class.Class, class.File, formatIcp(class.TotalIcp), formatIcp(class.Limit))
		}
		fmt.Fprintln(w)
	}

	if len(agg.MethodsOverSlocLimit) > 0 {
		fmt.Fprintf(w, "%d method(s) over the SLOC limit\n", len(agg.MethodsOverSlocLimit))
		for _, method := range agg.MethodsOverSlocLimit {
			fmt.Fprintf(w, "  %s.%s (%s): %d code lines\n",
				method.Class, method.Method, method.File, method.CodeLines)
		}
		fmt.Fprintln(w)
	}

	if len(agg.Suggestions) > 0 {
		fmt.Fprintln(w, "Suggestions")
		for _, s := range agg.Suggestions {
			fmt.Fprintf(w, "  [%s] %s\n", s.Action, s.Message)
		}
		fmt.Fprintln(w)
	}

	for _, analysisErr := range agg.Errors {
		msg := fmt.Sprintf("%s: %s: %s", analysisErr.Severity, analysisErr.File, analysisErr.Message)
		if colored && analysisErr.Severity == models.SeverityError {
			color.Yellow(msg)
		} else {
			fmt.Fprintln(w, msg)
		}
	}

	return nil
}

func writeTable(w io.Writer, headers []string, rows [][]string) {
	table := tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Header: tw.CellConfig{
				Alignment: tw.CellAlignment{Global: tw.AlignLeft},
				Formatting: tw.CellFormatting{
					AutoFormat: tw.On,
				},
			},
			Row: tw.CellConfig{
				Alignment: tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.Border{
				Left:   tw.Off,
				Right:  tw.Off,
				Top:    tw.Off,
				Bottom: tw.Off,
			},
			Settings: tw.Settings{
				Separators: tw.Separators{
					BetweenColumns: tw.Off,
				},
			},
		}),
	)

	table.Header(headers)
	for _, row := range rows {
		table.Append(row)
	}
	table.Render()
	fmt.Fprintln(w)
}

func renderMarkdown(w io.Writer, agg *models.AggregatedAnalysis) error {
	fmt.Fprintln(w, "# ICP Analysis")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "- Files: %d\n", agg.TotalFiles)
	fmt.Fprintf(w, "- Classes: %d\n", agg.TotalClasses)
	fmt.Fprintf(w, "- Total ICP: %s\n", formatIcp(agg.TotalIcp))
	fmt.Fprintf(w, "- Average ICP: %s\n", formatIcp(agg.AverageIcp))
	fmt.Fprintf(w, "- Median class ICP: %s (p90 %s)\n", formatIcp(agg.MedianClassIcp), formatIcp(agg.P90ClassIcp))
	fmt.Fprintf(w, "- ICP/SLOC correlation: %.2f\n", agg.IcpSlocCorrelation)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "## Distribution")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "| Construct | Instances |")
	fmt.Fprintln(w, "| --- | --- |")
	for _, t := range models.AllIcpTypes {
		fmt.Fprintf(w, "| %s | %d |\n", t, agg.IcpDistribution[t])
	}
	fmt.Fprintln(w)

	if len(agg.LargestClasses) > 0 {
		fmt.Fprintln(w, "## Largest classes")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "| Class | File | ICP | Code lines |")
		fmt.Fprintln(w, "| --- | --- | --- | --- |")
		for _, class := range agg.LargestClasses {
			fmt.Fprintf(w, "| %s | %s | %s | %d |\n",
				class.Class, class.File, formatIcp(class.TotalIcp), class.CodeLines)
		}
		fmt.Fprintln(w)
	}

	if len(agg.ClassesOverLimit) > 0 {
		fmt.Fprintln(w, "## Violations")
		fmt.Fprintln(w)
		for _, class := range agg.ClassesOverLimit {
			fmt.Fprintf(w, "- `%s` (%s): %s over limit %s\n",
				class.Class, class.File, formatIcp(class.TotalIcp), formatIcp(class.Limit))
		}
		fmt.Fprintln(w)
	}

	if len(agg.MethodsOverSlocLimit) > 0 {
		fmt.Fprintln(w, "## Methods over SLOC limit")
		fmt.Fprintln(w)
		for _, method := range agg.MethodsOverSlocLimit {
			fmt.Fprintf(w, "- `%s.%s` (%s): %d code lines\n",
				method.Class, method.Method, method.File, method.CodeLines)
		}
		fmt.Fprintln(w)
	}

	if len(agg.Suggestions) > 0 {
		fmt.Fprintln(w, "## Suggestions")
		fmt.Fprintln(w)
		for _, s := range agg.Suggestions {
			fmt.Fprintf(w, "- **%s**: %s\n", s.Action, s.Message)
		}
		fmt.Fprintln(w)
	}

	return nil
}
