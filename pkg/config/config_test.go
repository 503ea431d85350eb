package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	for _, lang := range SupportedLanguages {
		weights := cfg.Metrics[lang][CatchAllPattern]
		require.NotNil(t, weights, "missing default weights for %s", lang)
		assert.Equal(t, 1.0, weights["code_branch"])
		assert.Equal(t, 1.0, weights["condition"])
		assert.Equal(t, 1.0, weights["exception_handling"])
		assert.Equal(t, 1.0, weights["internal_coupling"])
		assert.Equal(t, 0.5, weights["external_coupling"])

		assert.Equal(t, float64(DefaultIcpLimit), cfg.IcpLimits[lang][CatchAllPattern])
	}

	assert.True(t, cfg.InternalCoupling.AutoDetect)
	assert.True(t, cfg.InternalCoupling.TrackExternal)
	assert.Equal(t, DefaultMethodSlocLimit, cfg.Sloc.MethodLimit)
	assert.Equal(t, "console", cfg.Reporting.Format)
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	cfg := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Equal(t, Default(), cfg)
}

func TestLoadEmptyDocumentKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "icp.yaml", "{}\n")
	cfg := Load(path)
	assert.Equal(t, Default(), cfg)
}

func TestLoadMergesMetricsRecursively(t *testing.T) {
	path := writeConfig(t, "icp.yaml", `
metrics:
  java:
    ".*":
      code_branch: 2.5
`)
	cfg := Load(path)

	javaWeights := cfg.Metrics["java"][CatchAllPattern]
	assert.Equal(t, 2.5, javaWeights["code_branch"])
	// Untouched metrics in the same pattern keep their defaults.
	assert.Equal(t, 1.0, javaWeights["condition"])
	assert.Equal(t, 0.5, javaWeights["external_coupling"])
	// The other language is untouched entirely.
	assert.Equal(t, Default().Metrics["kotlin"], cfg.Metrics["kotlin"])
}

func TestLoadAddsNewPatternAlongsideCatchAll(t *testing.T) {
	path := writeConfig(t, "icp.yaml", `
metrics:
  kotlin:
    ".*Test\\.kt":
      internal_coupling: 0.0
icp-limits:
  kotlin:
    ".*Test\\.kt": 40
`)
	cfg := Load(path)

	assert.Len(t, cfg.Metrics["kotlin"], 2)
	assert.Equal(t, 0.0, cfg.Metrics["kotlin"][`.*Test\.kt`]["internal_coupling"])
	assert.Equal(t, float64(DefaultIcpLimit), cfg.IcpLimits["kotlin"][CatchAllPattern])
	assert.Equal(t, 40.0, cfg.IcpLimits["kotlin"][`.*Test\.kt`])
}

func TestLoadNormalizesKeyCase(t *testing.T) {
	path := writeConfig(t, "icp.yaml", `
metrics:
  Java:
    ".*":
      CODE_BRANCH: 3.0
`)
	cfg := Load(path)
	assert.Equal(t, 3.0, cfg.Metrics["java"][CatchAllPattern]["code_branch"])
}

func TestLoadScalarOverrides(t *testing.T) {
	path := writeConfig(t, "icp.yaml", `
internal_coupling:
  auto_detect: false
  packages: ["com.example"]
  track_external: false
sloc:
  methodLimit: 50
reporting:
  format: json
  outputFile: out.json
exclude: ["**/vendor/**"]
`)
	cfg := Load(path)

	assert.False(t, cfg.InternalCoupling.AutoDetect)
	assert.False(t, cfg.InternalCoupling.TrackExternal)
	assert.Equal(t, []string{"com.example"}, cfg.InternalCoupling.Packages)
	assert.Equal(t, 50, cfg.Sloc.MethodLimit)
	assert.Equal(t, "json", cfg.Reporting.Format)
	assert.Equal(t, "out.json", cfg.Reporting.OutputFile)
	assert.Equal(t, []string{"**/vendor/**"}, cfg.Exclude)
}

func TestLoadReporterAlias(t *testing.T) {
	path := writeConfig(t, "icp.yaml", `
reporter:
  format: markdown
`)
	cfg := Load(path)
	assert.Equal(t, "markdown", cfg.Reporting.Format)
}

func TestLoadJSON(t *testing.T) {
	path := writeConfig(t, "icp.json", `{"sloc": {"methodLimit": 10}}`)
	cfg := Load(path)
	assert.Equal(t, 10, cfg.Sloc.MethodLimit)
}

func TestLoadTOML(t *testing.T) {
	path := writeConfig(t, "icp.toml", `
[sloc]
methodLimit = 25
`)
	cfg := Load(path)
	assert.Equal(t, 25, cfg.Sloc.MethodLimit)
}

func TestLoadRejectsNegativeValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "negative weight",
			content: `
metrics:
  java:
    ".*":
      condition: -1.0
`,
		},
		{
			name: "negative limit",
			content: `
icp-limits:
  java:
    ".*": -5
`,
		},
		{
			name: "negative method sloc limit",
			content: `
sloc:
  methodLimit: -1
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, "icp.yaml", tt.content)
			// Invalid documents are rejected wholesale, not partially applied.
			assert.Equal(t, Default(), Load(path))
		})
	}
}

func TestLoadMalformedDocumentFallsBack(t *testing.T) {
	path := writeConfig(t, "icp.yaml", "metrics: [not: a: map\n")
	assert.Equal(t, Default(), Load(path))
}

func TestWeightsFor(t *testing.T) {
	cfg := Default()
	cfg.Metrics["java"][`.*Controller\.java`] = WeightMap{"code_branch": 2.0}

	t.Run("specific pattern wins over catch-all", func(t *testing.T) {
		w := cfg.WeightsFor("java", "/src/UserController.java")
		assert.Equal(t, 2.0, w["code_branch"])
	})

	t.Run("catch-all applies otherwise", func(t *testing.T) {
		w := cfg.WeightsFor("java", "/src/User.java")
		assert.Equal(t, 1.0, w["code_branch"])
	})

	t.Run("unknown language yields empty map", func(t *testing.T) {
		assert.Empty(t, cfg.WeightsFor("ruby", "app.rb"))
	})

	t.Run("malformed pattern never matches", func(t *testing.T) {
		cfg := Default()
		cfg.Metrics["java"]["[invalid"] = WeightMap{"code_branch": 9.0}
		w := cfg.WeightsFor("java", "Anything.java")
		assert.Equal(t, 1.0, w["code_branch"])
	})
}

func TestLimitFor(t *testing.T) {
	cfg := Default()
	cfg.IcpLimits["kotlin"][`Legacy.*\.kt`] = 100

	assert.Equal(t, 100.0, cfg.LimitFor("kotlin", "LegacyService.kt"))
	assert.Equal(t, float64(DefaultIcpLimit), cfg.LimitFor("kotlin", "Fresh.kt"))

	t.Run("no patterns means unbounded", func(t *testing.T) {
		cfg := Default()
		delete(cfg.IcpLimits, "java")
		assert.Equal(t, UnboundedLimit, cfg.LimitFor("java", "A.java"))
	})
}

func TestOrderedPatterns(t *testing.T) {
	got := orderedPatterns([]string{CatchAllPattern, "zz", "aa"})
	assert.Equal(t, []string{"aa", "zz", CatchAllPattern}, got)
}
