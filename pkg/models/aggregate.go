package models

import (
	"fmt"
	"sort"

	"github.com/cddtools/icp/pkg/stats"
)

// TopClassCount is how many classes appear in the largest-classes list.
const TopClassCount = 10

// ClassSummary is a flattened reference to a scored class, used in the
// violation and largest-classes lists.
type ClassSummary struct {
	File      string  `json:"file"`
	Class     string  `json:"class"`
	TotalIcp  float64 `json:"totalIcp"`
	Limit     float64 `json:"limit,omitempty"`
	CodeLines int     `json:"codeLines"`
}

// MethodSummary is a flattened reference to a method over the SLOC limit.
type MethodSummary struct {
	File      string `json:"file"`
	Class     string `json:"class"`
	Method    string `json:"method"`
	CodeLines int    `json:"codeLines"`
}

// Suggestion is a refactoring hint derived from a violation.
type Suggestion struct {
	Target  string `json:"target"`
	Action  string `json:"action"`
	Message string `json:"message"`
}

// AggregatedAnalysis is the project-wide report payload. It is derived,
// read-only, and recomputed in full on every call to Aggregate.
type AggregatedAnalysis struct {
	TotalFiles           int             `json:"totalFiles"`
	TotalClasses         int             `json:"totalClasses"`
	TotalIcp             float64         `json:"totalIcp"`
	AverageIcp           float64         `json:"averageIcp"`
	MedianClassIcp       float64         `json:"medianClassIcp"`
	P90ClassIcp          float64         `json:"p90ClassIcp"`
	ClassesOverLimit     []ClassSummary  `json:"classesOverLimit"`
	IcpDistribution      map[IcpType]int `json:"icpDistribution"`
	LargestClasses       []ClassSummary  `json:"largestClasses"`
	Sloc                 SlocStatistics  `json:"sloc"`
	IcpSlocCorrelation   float64         `json:"icpSlocCorrelation"`
	MethodsOverSlocLimit []MethodSummary `json:"methodsOverSlocLimit"`
	Suggestions          []Suggestion    `json:"suggestions"`
	Errors               []AnalysisError `json:"errors,omitempty"`
}

// Aggregate reduces all per-file results into project statistics. It is a
// pure single-pass reducer: an empty input yields an all-zero report.
func Aggregate(results []AnalysisResult) *AggregatedAnalysis {
	agg := &AggregatedAnalysis{
		TotalFiles:           len(results),
		IcpDistribution:      make(map[IcpType]int),
		ClassesOverLimit:     []ClassSummary{},
		LargestClasses:       []ClassSummary{},
		MethodsOverSlocLimit: []MethodSummary{},
		Suggestions:          []Suggestion{},
	}

	var allClasses []ClassSummary
	var icpSeries, slocSeries, methodCodeSeries []float64

	for _, result := range results {
		agg.Errors = append(agg.Errors, result.Errors...)
		agg.TotalIcp += result.TotalIcp

		for i := range result.Classes {
			class := &result.Classes[i]
			agg.TotalClasses++
			agg.Sloc.TotalLines += class.Sloc.Total
			agg.Sloc.CodeLines += class.Sloc.CodeOnly
			agg.Sloc.CommentLines += class.Sloc.Comments
			agg.Sloc.BlankLines += class.Sloc.BlankLines

			// Distribution counts instances, not weight.
			for t, instances := range class.Breakdown {
				agg.IcpDistribution[t] += len(instances)
			}

			summary := ClassSummary{
				File:      result.File,
				Class:     class.QualifiedName(),
				TotalIcp:  class.TotalIcp,
				Limit:     class.Limit,
				CodeLines: class.Sloc.CodeOnly,
			}
			allClasses = append(allClasses, summary)
			icpSeries = append(icpSeries, class.TotalIcp)
			slocSeries = append(slocSeries, float64(class.Sloc.CodeOnly))

			if class.IsOverLimit {
				agg.ClassesOverLimit = append(agg.ClassesOverLimit, summary)
			}

			for _, method := range class.Methods {
				methodCodeSeries = append(methodCodeSeries, float64(method.Sloc.CodeOnly))
				if method.IsOverSlocLimit {
					agg.MethodsOverSlocLimit = append(agg.MethodsOverSlocLimit, MethodSummary{
						File:      result.File,
						Class:     class.QualifiedName(),
						Method:    method.Name,
						CodeLines: method.Sloc.CodeOnly,
					})
				}
			}
		}
	}

	if agg.TotalClasses > 0 {
		agg.AverageIcp = agg.TotalIcp / float64(agg.TotalClasses)
	}
	agg.Sloc.AverageClassCode = stats.Mean(slocSeries)
	agg.Sloc.AverageMethodCode = stats.Mean(methodCodeSeries)

	sortedIcp := append([]float64(nil), icpSeries...)
	sort.Float64s(sortedIcp)
	agg.MedianClassIcp = stats.Percentile(sortedIcp, 50)
	agg.P90ClassIcp = stats.Percentile(sortedIcp, 90)

	agg.IcpSlocCorrelation = stats.Correlation(slocSeries, icpSeries)

	sort.SliceStable(allClasses, func(i, j int) bool {
		return allClasses[i].TotalIcp > allClasses[j].TotalIcp
	})
	if len(allClasses) > TopClassCount {
		allClasses = allClasses[:TopClassCount]
	}
	agg.LargestClasses = allClasses

	agg.Suggestions = buildSuggestions(agg)

	return agg
}

// buildSuggestions derives refactoring hints from the violation lists.
func buildSuggestions(agg *AggregatedAnalysis) []Suggestion {
	suggestions := []Suggestion{}

	for _, class := range agg.ClassesOverLimit {
		suggestions = append(suggestions, Suggestion{
			Target: class.Class,
			Action: "extract_class",
			Message: fmt.Sprintf("%s has %.1f ICP (limit %.1f); split responsibilities into smaller collaborators",
				class.Class, class.TotalIcp, class.Limit),
		})
	}

	for _, method := range agg.MethodsOverSlocLimit {
		suggestions = append(suggestions, Suggestion{
			Target: method.Class + "." + method.Method,
			Action: "extract_method",
			Message: fmt.Sprintf("%s.%s spans %d code lines; extract cohesive blocks into named methods",
				method.Class, method.Method, method.CodeLines),
		})
	}

	if t, count := dominantType(agg.IcpDistribution); count > 0 {
		switch t {
		case IcpCondition:
			suggestions = append(suggestions, Suggestion{
				Target:  "project",
				Action:  "simplify_conditions",
				Message: "conditions dominate the ICP distribution; consider guard clauses and predicate methods",
			})
		case IcpInternalCoupling, IcpExternalCoupling:
			suggestions = append(suggestions, Suggestion{
				Target:  "project",
				Action:  "reduce_coupling",
				Message: "coupling dominates the ICP distribution; consider interfaces and dependency inversion",
			})
		}
	}

	return suggestions
}

// dominantType returns the most frequent ICP type, breaking ties in
// reporting order so the result is deterministic.
func dominantType(distribution map[IcpType]int) (IcpType, int) {
	var best IcpType
	var bestCount int
	for _, t := range AllIcpTypes {
		if distribution[t] > bestCount {
			best = t
			bestCount = distribution[t]
		}
	}
	return best, bestCount
}
