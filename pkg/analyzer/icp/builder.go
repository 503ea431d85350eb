package icp

import (
	"github.com/cddtools/icp/pkg/config"
	"github.com/cddtools/icp/pkg/models"
	"github.com/cddtools/icp/pkg/parser"
	"github.com/cddtools/icp/pkg/sloc"
)

// buildFileResult assembles the per-file analysis from the facade view of a
// parsed file: one ClassAnalysis per declared type, instances partitioned
// onto methods by innermost line-range containment, and SLOC computed
// independently per class and method range.
func buildFileResult(file *parser.FileInfo, cfg *config.Config) models.AnalysisResult {
	result := models.AnalysisResult{
		File:     file.Path,
		Language: string(file.Language),
		Classes:  make([]models.ClassAnalysis, 0, len(file.Types)),
	}

	if file.HasSyntaxError {
		result.Errors = append(result.Errors, models.AnalysisError{
			File:     file.Path,
			Message:  "source contains syntax errors; analysis may be partial",
			Severity: models.SeverityWarning,
		})
	}

	text := string(file.Source)
	weights := cfg.WeightsFor(string(file.Language), file.Path)
	limit := cfg.LimitFor(string(file.Language), file.Path)
	resolver := newCouplingResolver(&cfg.InternalCoupling, file)

	for i := range file.Types {
		decl := &file.Types[i]
		instances := scanType(file, decl, weights, resolver)
		class := buildClass(decl, instances, text, limit, cfg.Sloc.MethodLimit)
		result.TotalIcp += class.TotalIcp
		result.Classes = append(result.Classes, class)
	}

	return result
}

func buildClass(decl *parser.TypeDecl, instances []models.IcpInstance, text string, limit float64, methodSlocLimit int) models.ClassAnalysis {
	class := models.ClassAnalysis{
		Name:      decl.Name,
		Package:   decl.Package,
		StartLine: decl.StartLine,
		EndLine:   decl.EndLine,
		Breakdown: groupByType(instances),
		Sloc:      sloc.CountRange(text, int(decl.StartLine), int(decl.EndLine)),
	}
	class.TotalIcp = class.Breakdown.TotalWeight()
	class.IsOverLimit = class.TotalIcp > limit
	if limit != config.UnboundedLimit {
		class.Limit = limit
	}

	// Partition instances onto methods by innermost containing range;
	// instances outside every method stay class-level only.
	perMethod := make([][]models.IcpInstance, len(decl.Methods))
	for _, inst := range instances {
		if idx := innermostMethod(decl.Methods, inst.Line); idx >= 0 {
			perMethod[idx] = append(perMethod[idx], inst)
		}
	}

	class.Methods = make([]models.MethodAnalysis, 0, len(decl.Methods))
	for i := range decl.Methods {
		m := &decl.Methods[i]
		method := models.MethodAnalysis{
			Name:      m.Name,
			ClassName: decl.Name,
			StartLine: m.StartLine,
			EndLine:   m.EndLine,
			Breakdown: groupByType(perMethod[i]),
			Sloc:      sloc.CountRange(text, int(m.StartLine), int(m.EndLine)),
		}
		method.TotalIcp = method.Breakdown.TotalWeight()
		method.IsOverSlocLimit = methodSlocLimit > 0 && method.Sloc.CodeOnly > methodSlocLimit
		class.Methods = append(class.Methods, method)
	}

	return class
}

// innermostMethod returns the index of the tightest method range containing
// the line, or -1. Nested local functions are not named declarations, so
// their instances land on the innermost enclosing named function.
func innermostMethod(methods []parser.FunctionDecl, line uint32) int {
	best := -1
	var bestSpan uint32
	for i := range methods {
		m := &methods[i]
		if line < m.StartLine || line > m.EndLine {
			continue
		}
		span := m.EndLine - m.StartLine
		if best == -1 || span < bestSpan {
			best = i
			bestSpan = span
		}
	}
	return best
}

func groupByType(instances []models.IcpInstance) models.Breakdown {
	breakdown := make(models.Breakdown)
	for _, inst := range instances {
		breakdown[inst.Type] = append(breakdown[inst.Type], inst)
	}
	return breakdown
}
