package models

// SlocMetrics holds the physical line classification for a source range.
// Total always equals CodeOnly + Comments + BlankLines, and WithComments
// equals CodeOnly + Comments.
type SlocMetrics struct {
	Total        int `json:"total"`
	CodeOnly     int `json:"codeOnly"`
	WithComments int `json:"withComments"`
	Comments     int `json:"comments"`
	BlankLines   int `json:"blankLines"`
}

// Add returns the element-wise sum of two metrics.
func (s SlocMetrics) Add(other SlocMetrics) SlocMetrics {
	return SlocMetrics{
		Total:        s.Total + other.Total,
		CodeOnly:     s.CodeOnly + other.CodeOnly,
		WithComments: s.WithComments + other.WithComments,
		Comments:     s.Comments + other.Comments,
		BlankLines:   s.BlankLines + other.BlankLines,
	}
}

// SlocStatistics summarizes SLOC across all analyzed classes.
type SlocStatistics struct {
	TotalLines        int     `json:"totalLines"`
	CodeLines         int     `json:"codeLines"`
	CommentLines      int     `json:"commentLines"`
	BlankLines        int     `json:"blankLines"`
	AverageClassCode  float64 `json:"averageClassCode"`
	AverageMethodCode float64 `json:"averageMethodCode"`
}
