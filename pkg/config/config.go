// Package config holds the analyzer configuration: per-construct weights and
// per-class ICP limits keyed by language and file pattern, coupling settings,
// SLOC settings, discovery patterns, and reporting settings.
package config

import (
	"math"

	"github.com/cddtools/icp/pkg/models"
)

// UnboundedLimit is the sentinel ceiling used when no ICP limit matches.
const UnboundedLimit = math.MaxFloat64

// CatchAllPattern matches every file; the defaults are registered under it.
const CatchAllPattern = ".*"

// DefaultIcpLimit is the built-in per-class ICP ceiling.
const DefaultIcpLimit = 12

// DefaultMethodSlocLimit is the built-in per-method code-line ceiling.
const DefaultMethodSlocLimit = 30

// WeightMap maps a metric key (lower-cased ICP type name) to its weight.
type WeightMap map[string]float64

// PatternWeights maps a file regex pattern to a weight map.
type PatternWeights map[string]WeightMap

// PatternLimits maps a file regex pattern to an ICP limit.
type PatternLimits map[string]float64

// Config is the root configuration document. It is loaded once per run and
// shared read-only by all scanners.
type Config struct {
	// Metrics is language -> file pattern -> metric -> weight.
	Metrics map[string]PatternWeights `koanf:"metrics"`

	// IcpLimits is language -> file pattern -> per-class ICP ceiling.
	IcpLimits map[string]PatternLimits `koanf:"icp-limits"`

	// InternalCoupling controls the internal/external reference heuristic.
	InternalCoupling CouplingConfig `koanf:"internal_coupling"`

	// Include/Exclude are glob patterns applied during file discovery.
	Include []string `koanf:"include"`
	Exclude []string `koanf:"exclude"`

	// Sloc holds physical-line settings.
	Sloc SlocConfig `koanf:"sloc"`

	// Reporting controls the output renderer.
	Reporting ReportingConfig `koanf:"reporting"`
}

// CouplingConfig controls internal-package resolution.
type CouplingConfig struct {
	// AutoDetect asks the caller to seed Packages from the declared
	// packages of the scanned tree before analysis begins.
	AutoDetect bool `koanf:"auto_detect"`

	// Packages lists package prefixes considered project-internal.
	Packages []string `koanf:"packages"`

	// TrackExternal enables EXTERNAL_COUPLING instances for references
	// that resolve as neither internal nor built-in.
	TrackExternal bool `koanf:"track_external"`
}

// SlocConfig holds line-count limits.
type SlocConfig struct {
	MethodLimit int `koanf:"methodLimit"`
}

// ReportingConfig selects the output format and destination.
type ReportingConfig struct {
	Format     string `koanf:"format"` // console, json, xml, markdown
	OutputFile string `koanf:"outputFile"`
}

// SupportedLanguages are the language keys recognized in the metrics and
// icp-limits sections.
var SupportedLanguages = []string{"java", "kotlin"}

// Default returns the built-in configuration: weight 1.0 for every metric
// (0.5 for external coupling) and an ICP limit of 12, both under the
// catch-all pattern, for every supported language.
func Default() *Config {
	metrics := make(map[string]PatternWeights, len(SupportedLanguages))
	limits := make(map[string]PatternLimits, len(SupportedLanguages))
	for _, lang := range SupportedLanguages {
		weights := make(WeightMap, len(models.AllIcpTypes))
		for _, t := range models.AllIcpTypes {
			weights[t.MetricKey()] = t.DefaultWeight()
		}
		metrics[lang] = PatternWeights{CatchAllPattern: weights}
		limits[lang] = PatternLimits{CatchAllPattern: DefaultIcpLimit}
	}

	return &Config{
		Metrics:   metrics,
		IcpLimits: limits,
		InternalCoupling: CouplingConfig{
			AutoDetect:    true,
			Packages:      []string{},
			TrackExternal: true,
		},
		Include: []string{},
		Exclude: []string{
			"**/build/**",
			"**/target/**",
			"**/.git/**",
			"**/generated/**",
		},
		Sloc: SlocConfig{MethodLimit: DefaultMethodSlocLimit},
		Reporting: ReportingConfig{
			Format:     "console",
			OutputFile: "",
		},
	}
}
