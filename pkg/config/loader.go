package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load reads a configuration document and merges it over the defaults.
// Configuration failures are never fatal: a missing, unparseable, or invalid
// document logs the reason and yields the pure defaults.
func Load(path string) *Config {
	cfg, err := load(path)
	if err != nil {
		log.Printf("config: %v; using defaults", err)
		return Default()
	}
	return cfg
}

func load(path string) (*Config, error) {
	k := koanf.New(".")

	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		parser = json.Parser()
	case ".toml":
		parser = toml.Parser()
	default:
		parser = yaml.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	// "reporter" is accepted as an alias for "reporting".
	reportingKey := "reporting"
	if !k.Exists(reportingKey) && k.Exists("reporter") {
		reportingKey = "reporter"
	}

	cfg := Default()

	var user Config
	if err := k.Unmarshal("", &user); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	mergeUser(cfg, &user, k, reportingKey)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate %s: %w", path, err)
	}
	return cfg, nil
}

// mergeUser overlays the user document onto the defaults. The metrics and
// icp-limits maps merge recursively key-by-key so one override does not
// discard the defaults for other languages or patterns; scalar and record
// fields replace wholesale when the document specifies them.
func mergeUser(cfg *Config, user *Config, k *koanf.Koanf, reportingKey string) {
	for lang, patterns := range user.Metrics {
		lang = strings.ToLower(lang)
		if cfg.Metrics[lang] == nil {
			cfg.Metrics[lang] = PatternWeights{}
		}
		for pattern, weights := range patterns {
			if cfg.Metrics[lang][pattern] == nil {
				cfg.Metrics[lang][pattern] = WeightMap{}
			}
			for metric, weight := range weights {
				cfg.Metrics[lang][pattern][strings.ToLower(metric)] = weight
			}
		}
	}

	for lang, patterns := range user.IcpLimits {
		lang = strings.ToLower(lang)
		if cfg.IcpLimits[lang] == nil {
			cfg.IcpLimits[lang] = PatternLimits{}
		}
		for pattern, limit := range patterns {
			cfg.IcpLimits[lang][pattern] = limit
		}
	}

	if k.Exists("internal_coupling") {
		cfg.InternalCoupling = user.InternalCoupling
		if cfg.InternalCoupling.Packages == nil {
			cfg.InternalCoupling.Packages = []string{}
		}
	}
	if k.Exists("include") {
		cfg.Include = user.Include
	}
	if k.Exists("exclude") {
		cfg.Exclude = user.Exclude
	}
	if k.Exists("sloc.methodLimit") {
		cfg.Sloc.MethodLimit = user.Sloc.MethodLimit
	}
	if k.Exists(reportingKey + ".format") {
		cfg.Reporting.Format = k.String(reportingKey + ".format")
	}
	if k.Exists(reportingKey + ".outputFile") {
		cfg.Reporting.OutputFile = k.String(reportingKey + ".outputFile")
	}
}

// Validate rejects negative weights and limits. A violated configuration is
// rejected wholesale by Load.
func (c *Config) Validate() error {
	for lang, patterns := range c.Metrics {
		for pattern, weights := range patterns {
			for metric, weight := range weights {
				if weight < 0 {
					return fmt.Errorf("metrics.%s.%s.%s: negative weight %v", lang, pattern, metric, weight)
				}
			}
		}
	}
	for lang, patterns := range c.IcpLimits {
		for pattern, limit := range patterns {
			if limit < 0 {
				return fmt.Errorf("icp-limits.%s.%s: negative limit %v", lang, pattern, limit)
			}
		}
	}
	if c.Sloc.MethodLimit < 0 {
		return fmt.Errorf("sloc.methodLimit: negative limit %d", c.Sloc.MethodLimit)
	}
	return nil
}

// LoadOrDefault searches the standard config locations and loads the first
// document found, falling back to the defaults.
func LoadOrDefault() *Config {
	names := []string{
		"icp.yaml", "icp.yml", "icp.json", "icp.toml",
		".icp.yaml", ".icp.yml", ".icp.json", ".icp.toml",
	}
	for _, name := range names {
		if _, err := os.Stat(name); err == nil {
			return Load(name)
		}
	}
	return Default()
}
