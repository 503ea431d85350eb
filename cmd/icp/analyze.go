package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/cddtools/icp/internal/output"
	"github.com/cddtools/icp/internal/progress"
	"github.com/cddtools/icp/internal/scanner"
	"github.com/cddtools/icp/pkg/analyzer/icp"
	"github.com/cddtools/icp/pkg/config"
	"github.com/cddtools/icp/pkg/models"
)

var analyzeCmd = &cobra.Command{
	Use:     "analyze [path...]",
	Aliases: []string{"a"},
	Short:   "Score classes and methods with Intrinsic Cognitive Points",
	RunE:    runAnalyze,
}

func init() {
	analyzeCmd.Flags().Float64("limit", 0, "Override the per-class ICP limit for all languages")
	analyzeCmd.Flags().Int("sloc-limit", 0, "Override the per-method SLOC limit")
	analyzeCmd.Flags().StringSlice("include", nil, "Include patterns (glob or regex)")
	analyzeCmd.Flags().StringSlice("exclude", nil, "Exclude patterns (glob or regex)")
	analyzeCmd.Flags().Bool("auto-detect", false, "Auto-detect internal packages before scanning")
	analyzeCmd.Flags().Bool("fail-on-violation", false, "Exit non-zero when any class exceeds its ICP limit")
	analyzeCmd.Flags().Int("workers", 0, "Worker pool size (0 = 2x NumCPU)")
	analyzeCmd.Flags().StringP("format", "f", "", "Output format: console, json, xml, markdown")
	analyzeCmd.Flags().StringP("output", "o", "", "Write the report to a file instead of stdout")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	applyOverrides(cmd, cfg)

	paths := args
	if len(paths) == 0 {
		paths = []string{"."}
	}

	files, err := scanner.New(cfg).ScanPaths(paths)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		color.Yellow("No source files found")
		return nil
	}

	workers, _ := cmd.Flags().GetInt("workers")
	ctx := context.Background()

	if cfg.InternalCoupling.AutoDetect {
		detect := progress.NewTracker("Detecting packages...", len(files))
		packages, err := icp.CollectPackages(ctx, files, workers, detect.Tick)
		if err != nil {
			detect.FinishError(err)
		} else {
			detect.FinishSuccess()
		}
		cfg.InternalCoupling.Packages = mergePackages(cfg.InternalCoupling.Packages, packages)
	}

	tracker := progress.NewTracker("Scanning...", len(files))
	analyzer := icp.New(cfg, icp.WithWorkers(workers))
	results := analyzer.Analyze(ctx, files, tracker.Tick)
	tracker.FinishSuccess()

	agg := models.Aggregate(results)

	format, _ := cmd.Flags().GetString("format")
	if format == "" {
		format = cfg.Reporting.Format
	}
	outputFile, _ := cmd.Flags().GetString("output")
	if outputFile == "" {
		outputFile = cfg.Reporting.OutputFile
	}

	formatter, err := output.NewFormatter(output.ParseFormat(format), outputFile)
	if err != nil {
		return err
	}
	defer formatter.Close()

	if err := formatter.Render(agg); err != nil {
		return err
	}

	if failOn, _ := cmd.Flags().GetBool("fail-on-violation"); failOn && len(agg.ClassesOverLimit) > 0 {
		return fmt.Errorf("%d class(es) over the ICP limit", len(agg.ClassesOverLimit))
	}
	return nil
}

func loadConfig() *config.Config {
	if cfgFile != "" {
		return config.Load(cfgFile)
	}
	return config.LoadOrDefault()
}

// applyOverrides layers the CLI knobs over the loaded configuration.
func applyOverrides(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("limit") {
		limit, _ := cmd.Flags().GetFloat64("limit")
		for _, lang := range config.SupportedLanguages {
			cfg.IcpLimits[lang] = config.PatternLimits{config.CatchAllPattern: limit}
		}
	}
	if cmd.Flags().Changed("sloc-limit") {
		cfg.Sloc.MethodLimit, _ = cmd.Flags().GetInt("sloc-limit")
	}
	if cmd.Flags().Changed("include") {
		cfg.Include, _ = cmd.Flags().GetStringSlice("include")
	}
	if cmd.Flags().Changed("exclude") {
		cfg.Exclude, _ = cmd.Flags().GetStringSlice("exclude")
	}
	if cmd.Flags().Changed("auto-detect") {
		cfg.InternalCoupling.AutoDetect, _ = cmd.Flags().GetBool("auto-detect")
	}
}

func mergePackages(existing, detected []string) []string {
	seen := make(map[string]bool, len(existing))
	merged := make([]string, 0, len(existing)+len(detected))
	for _, pkg := range existing {
		if !seen[pkg] {
			seen[pkg] = true
			merged = append(merged, pkg)
		}
	}
	for _, pkg := range detected {
		if !seen[pkg] {
			seen[pkg] = true
			merged = append(merged, pkg)
		}
	}
	return merged
}
