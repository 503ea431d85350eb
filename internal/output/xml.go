package output

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/cddtools/icp/pkg/models"
)

// xmlReport is the XML projection of the aggregate. The distribution map is
// flattened into ordered entries because encoding/xml cannot marshal maps.
type xmlReport struct {
	XMLName              xml.Name               `xml:"icpReport"`
	TotalFiles           int                    `xml:"totalFiles"`
	TotalClasses         int                    `xml:"totalClasses"`
	TotalIcp             float64                `xml:"totalIcp"`
	AverageIcp           float64                `xml:"averageIcp"`
	MedianClassIcp       float64                `xml:"medianClassIcp"`
	P90ClassIcp          float64                `xml:"p90ClassIcp"`
	IcpSlocCorrelation   float64                `xml:"icpSlocCorrelation"`
	Distribution         []xmlDistributionEntry `xml:"distribution>construct"`
	Sloc                 models.SlocStatistics  `xml:"sloc"`
	LargestClasses       []xmlClass             `xml:"largestClasses>class"`
	ClassesOverLimit     []xmlClass             `xml:"violations>class"`
	MethodsOverSlocLimit []xmlMethod            `xml:"methodsOverSlocLimit>method"`
	Suggestions          []xmlSuggestion        `xml:"suggestions>suggestion"`
	Errors               []xmlError             `xml:"errors>error,omitempty"`
}

type xmlDistributionEntry struct {
	Type  string `xml:"type,attr"`
	Count int    `xml:"count,attr"`
}

type xmlClass struct {
	Name      string  `xml:"name,attr"`
	File      string  `xml:"file,attr"`
	TotalIcp  float64 `xml:"icp,attr"`
	Limit     float64 `xml:"limit,attr,omitempty"`
	CodeLines int     `xml:"codeLines,attr"`
}

type xmlMethod struct {
	Class     string `xml:"class,attr"`
	Name      string `xml:"name,attr"`
	File      string `xml:"file,attr"`
	CodeLines int    `xml:"codeLines,attr"`
}

type xmlSuggestion struct {
	Target  string `xml:"target,attr"`
	Action  string `xml:"action,attr"`
	Message string `xml:",chardata"`
}

type xmlError struct {
	File     string `xml:"file,attr"`
	Severity string `xml:"severity,attr"`
	Message  string `xml:",chardata"`
}

func renderXML(w io.Writer, agg *models.AggregatedAnalysis) error {
	report := xmlReport{
		TotalFiles:         agg.TotalFiles,
		TotalClasses:       agg.TotalClasses,
		TotalIcp:           agg.TotalIcp,
		AverageIcp:         agg.AverageIcp,
		MedianClassIcp:     agg.MedianClassIcp,
		P90ClassIcp:        agg.P90ClassIcp,
		IcpSlocCorrelation: agg.IcpSlocCorrelation,
		Sloc:               agg.Sloc,
	}

	for _, t := range models.AllIcpTypes {
		if count, ok := agg.IcpDistribution[t]; ok {
			report.Distribution = append(report.Distribution, xmlDistributionEntry{
				Type:  string(t),
				Count: count,
			})
		}
	}
	for _, class := range agg.LargestClasses {
		report.LargestClasses = append(report.LargestClasses, xmlClassOf(class))
	}
	for _, class := range agg.ClassesOverLimit {
		report.ClassesOverLimit = append(report.ClassesOverLimit, xmlClassOf(class))
	}
	for _, method := range agg.MethodsOverSlocLimit {
		report.MethodsOverSlocLimit = append(report.MethodsOverSlocLimit, xmlMethod{
			Class:     method.Class,
			Name:      method.Method,
			File:      method.File,
			CodeLines: method.CodeLines,
		})
	}
	for _, s := range agg.Suggestions {
		report.Suggestions = append(report.Suggestions, xmlSuggestion{
			Target:  s.Target,
			Action:  s.Action,
			Message: s.Message,
		})
	}
	for _, analysisErr := range agg.Errors {
		report.Errors = append(report.Errors, xmlError{
			File:     analysisErr.File,
			Severity: string(analysisErr.Severity),
			Message:  analysisErr.Message,
		})
	}

	if _, err := fmt.Fprint(w, xml.Header); err != nil {
		return err
	}
	encoder := xml.NewEncoder(w)
	encoder.Indent("", "  ")
	if err := encoder.Encode(report); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w)
	return err
}

func xmlClassOf(class models.ClassSummary) xmlClass {
	return xmlClass{
		Name:      class.Class,
		File:      class.File,
		TotalIcp:  class.TotalIcp,
		Limit:     class.Limit,
		CodeLines: class.CodeLines,
	}
}
