package main

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "icp",
	Short: "Structural complexity analysis for Java and Kotlin",
	Long: `icp scores every class and method in a source tree with weighted
Intrinsic Cognitive Points (branches, conditions, exception handling, and
coupling), combines them with SLOC statistics, and reports project-wide
violations against configurable per-class limits.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Path to config file (YAML, JSON, or TOML)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable verbose output")
}
