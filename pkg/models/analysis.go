package models

// Severity grades an analysis error.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityWarning Severity = "WARNING"
)

// AnalysisError records a per-file failure (typically a front-end parse
// error). Failures are isolated: the file contributes zero classes and the
// run continues.
type AnalysisError struct {
	File     string   `json:"file"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// Breakdown groups instances by ICP type.
type Breakdown map[IcpType][]IcpInstance

// TotalWeight sums the weights of all instances across all types.
func (b Breakdown) TotalWeight() float64 {
	var total float64
	for _, instances := range b {
		for _, inst := range instances {
			total += inst.Weight
		}
	}
	return total
}

// MethodAnalysis is the scored view of a single named function. Nested and
// local functions are attributed to their innermost enclosing named function.
type MethodAnalysis struct {
	Name            string      `json:"name"`
	ClassName       string      `json:"className"`
	StartLine       uint32      `json:"startLine"`
	EndLine         uint32      `json:"endLine"`
	TotalIcp        float64     `json:"totalIcp"`
	Breakdown       Breakdown   `json:"breakdown"`
	Sloc            SlocMetrics `json:"sloc"`
	IsOverSlocLimit bool        `json:"isOverSlocLimit"`
}

// ClassAnalysis is the scored view of one declared type. Nested types
// produce separate instances.
type ClassAnalysis struct {
	Name        string           `json:"name"`
	Package     string           `json:"package"`
	StartLine   uint32           `json:"startLine"`
	EndLine     uint32           `json:"endLine"`
	TotalIcp    float64          `json:"totalIcp"`
	Breakdown   Breakdown        `json:"breakdown"`
	Methods     []MethodAnalysis `json:"methods"`
	IsOverLimit bool             `json:"isOverLimit"`
	Limit       float64          `json:"limit"`
	Sloc        SlocMetrics      `json:"sloc"`
}

// QualifiedName returns package.Name, or just Name for the default package.
func (c *ClassAnalysis) QualifiedName() string {
	if c.Package == "" {
		return c.Name
	}
	return c.Package + "." + c.Name
}

// InstanceCount returns the number of instances of the given type.
func (c *ClassAnalysis) InstanceCount(t IcpType) int {
	return len(c.Breakdown[t])
}

// AnalysisResult is the immutable per-file outcome consumed by the
// aggregator.
type AnalysisResult struct {
	File     string          `json:"file"`
	Language string          `json:"language"`
	Classes  []ClassAnalysis `json:"classes"`
	TotalIcp float64         `json:"totalIcp"`
	Errors   []AnalysisError `json:"errors,omitempty"`
}
