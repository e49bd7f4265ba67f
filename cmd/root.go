package cmd

import (
	"fmt"
	"os"

	cfgpkg "github.com/KaramelBytes/datefix-cli/internal/config"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	debug   bool

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "datefix <input.csv>",
	Short: "Rewrite CSV date columns to ISO-8601, auto-detecting locale order",
	Long: `datefix reads a CSV file, finds columns whose values look like dates,
infers whether they are day-first, month-first, or year-first, and rewrites
those columns to ISO-8601 (YYYY-MM-DD). All other columns, headers, and row
order are preserved exactly. Ambiguous columns are resolved interactively or
via --assume/--force-order.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

// Execute is the entry point called by main.main()
func Execute() {
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.datefix/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: flags carry their own defaults.
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		return
	}
	cfg = c
}

func debugf(format string, args ...any) {
	if debug {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}
