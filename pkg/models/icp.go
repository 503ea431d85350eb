// Package models defines the data model shared by the scanners, the
// aggregator, and the renderers: ICP instances, SLOC metrics, per-class and
// per-method analyses, and the project-wide aggregate.
package models

import "strings"

// IcpType classifies a scored construct.
type IcpType string

const (
	IcpCodeBranch        IcpType = "CODE_BRANCH"
	IcpCondition         IcpType = "CONDITION"
	IcpExceptionHandling IcpType = "EXCEPTION_HANDLING"
	IcpInternalCoupling  IcpType = "INTERNAL_COUPLING"
	IcpExternalCoupling  IcpType = "EXTERNAL_COUPLING"
)

// AllIcpTypes lists every ICP type in reporting order.
var AllIcpTypes = []IcpType{
	IcpCodeBranch,
	IcpCondition,
	IcpExceptionHandling,
	IcpInternalCoupling,
	IcpExternalCoupling,
}

// DefaultWeight returns the built-in weight used when no configured weight
// matches the file.
func (t IcpType) DefaultWeight() float64 {
	if t == IcpExternalCoupling {
		return 0.5
	}
	return 1.0
}

// MetricKey is the lower-cased configuration key for this type, as used in
// the metrics section of the config file.
func (t IcpType) MetricKey() string {
	return strings.ToLower(string(t))
}

// IcpInstance is a single scored construct occurrence. Instances are created
// by the language scanners with their weight already resolved and are never
// mutated afterwards.
type IcpInstance struct {
	Type        IcpType `json:"type"`
	Line        uint32  `json:"line"`
	Column      uint32  `json:"column"`
	Description string  `json:"description"`
	Weight      float64 `json:"weight"`
}
