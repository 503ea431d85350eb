package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/cddtools/icp/pkg/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new icp configuration file",
	Long: `Creates a new icp.yaml configuration file in the current directory
with the built-in defaults. Use --output to specify a different location.

Examples:
  icp init                  # Creates icp.yaml in current directory
  icp init -o conf/icp.yaml # Creates config in conf directory
  icp init --force          # Overwrite existing config file`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().StringP("output", "o", "icp.yaml", "Output file path")
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")

	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	outputPath, _ := cmd.Flags().GetString("output")
	force, _ := cmd.Flags().GetBool("force")

	if _, err := os.Stat(outputPath); err == nil && !force {
		return fmt.Errorf("config file %q already exists (use --force to overwrite)", outputPath)
	}

	dir := filepath.Dir(outputPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %q: %w", dir, err)
		}
	}

	content, err := generateDefaultConfig()
	if err != nil {
		return err
	}

	if err := os.WriteFile(outputPath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	color.Green("Created %s", outputPath)
	fmt.Println("Edit this file to customize weights, limits, and patterns.")
	return nil
}

// configDocument mirrors the configuration file shape for serialization.
type configDocument struct {
	Metrics          map[string]config.PatternWeights `yaml:"metrics"`
	IcpLimits        map[string]config.PatternLimits  `yaml:"icp-limits"`
	InternalCoupling struct {
		AutoDetect    bool     `yaml:"auto_detect"`
		Packages      []string `yaml:"packages"`
		TrackExternal bool     `yaml:"track_external"`
	} `yaml:"internal_coupling"`
	Include []string `yaml:"include"`
	Exclude []string `yaml:"exclude"`
	Sloc    struct {
		MethodLimit int `yaml:"methodLimit"`
	} `yaml:"sloc"`
	Reporting struct {
		Format     string `yaml:"format"`
		OutputFile string `yaml:"outputFile,omitempty"`
	} `yaml:"reporting"`
}

func generateDefaultConfig() (string, error) {
	cfg := config.Default()

	var doc configDocument
	doc.Metrics = cfg.Metrics
	doc.IcpLimits = cfg.IcpLimits
	doc.InternalCoupling.AutoDetect = cfg.InternalCoupling.AutoDetect
	doc.InternalCoupling.Packages = cfg.InternalCoupling.Packages
	doc.InternalCoupling.TrackExternal = cfg.InternalCoupling.TrackExternal
	doc.Include = cfg.Include
	doc.Exclude = cfg.Exclude
	doc.Sloc.MethodLimit = cfg.Sloc.MethodLimit
	doc.Reporting.Format = cfg.Reporting.Format

	content, err := yaml.Marshal(&doc)
	if err != nil {
		return "", fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	var buf strings.Builder
	buf.WriteString("# icp configuration\n")
	buf.WriteString("# Weights and limits are matched per language and file pattern;\n")
	buf.WriteString("# the first matching pattern wins and \".*\" is the fallback.\n\n")
	buf.Write(content)

	return buf.String(), nil
}
