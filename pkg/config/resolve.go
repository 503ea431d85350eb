package config

import (
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// WeightsFor resolves the per-construct weights applying to a file. Patterns
// configured for the language are tried in order and the first match against
// the file's base name or absolute path wins; the catch-all pattern is
// always tried last. A malformed pattern is skipped, not fatal. When nothing
// matches, an empty map is returned and callers fall back to each
// construct's built-in default weight.
func (c *Config) WeightsFor(language, path string) WeightMap {
	patterns := c.Metrics[strings.ToLower(language)]
	for _, pattern := range orderedPatterns(mapKeys(patterns)) {
		if matchesFile(pattern, path) {
			return patterns[pattern]
		}
	}
	return WeightMap{}
}

// LimitFor resolves the per-class ICP ceiling applying to a file, or
// UnboundedLimit when no pattern matches.
func (c *Config) LimitFor(language, path string) float64 {
	patterns := c.IcpLimits[strings.ToLower(language)]
	for _, pattern := range orderedPatterns(mapKeysLimits(patterns)) {
		if matchesFile(pattern, path) {
			return patterns[pattern]
		}
	}
	return UnboundedLimit
}

// orderedPatterns sorts patterns lexically with the catch-all pattern last,
// so specific rules always win over the default. Configuration documents are
// parsed into unordered maps, which makes this ordering the deterministic
// stand-in for declaration order.
func orderedPatterns(patterns []string) []string {
	sort.Slice(patterns, func(i, j int) bool {
		if patterns[i] == CatchAllPattern {
			return false
		}
		if patterns[j] == CatchAllPattern {
			return true
		}
		return patterns[i] < patterns[j]
	})
	return patterns
}

func matchesFile(pattern, path string) bool {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return false
	}
	if re.MatchString(filepath.Base(path)) {
		return true
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return re.MatchString(abs)
}

func mapKeys(m PatternWeights) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

func mapKeysLimits(m PatternLimits) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}
