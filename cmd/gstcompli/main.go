// gstcompli analyzes a taxpayer's GST filing history for compliance.
//
// Main CLI entrypoint using cobra command framework. The CLI stands in for
// the engine's collaborators: it reads filing records from JSON files
// (upstream) and prints the Synopsis as JSON (downstream).
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Aryanchauhan26/gst-webapp-sub001/internal/analysis/compliance"
	"github.com/Aryanchauhan26/gst-webapp-sub001/internal/config"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Global config and logger
var (
	cfg *config.Config
	log zerolog.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gstcompli",
	Short: "gstcompli - GST filing compliance analysis",
	Long: `gstcompli analyzes a business's GST filing history and produces a
compliance assessment: a 0-100 score with letter grade, a multi-year
filing trend, a penalty-risk estimate, red flags, prioritized
recommendations and a narrative summary.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		configFile, _ := cmd.Flags().GetString("config")
		if configFile != "" {
			cfg, err = config.LoadFromFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		level, _ := cmd.Flags().GetString("log-level")
		if level == "" {
			level = cfg.Logging.Level
		}
		log = newLogger(level, cfg.Logging.Format)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(statusCmd)
}

// newLogger builds the CLI logger. The engine itself never logs.
func newLogger(level, format string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	var out zerolog.Logger
	if format == "json" {
		out = zerolog.New(os.Stderr)
	} else {
		out = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	return out.Level(lvl).With().Timestamp().Logger()
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("gstcompli %s\n", version)
		fmt.Printf("  commit:  %s\n", commit)
		fmt.Printf("  built:   %s\n", date)
	},
}

// --- Analyze Command ---

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Analyze one taxpayer's filing history",
	Long: `Analyze a single taxpayer. The input file is JSON with the shape:

  {
    "business_profile": {"gstin": "...", "legal_name": "..."},
    "returns": [
      {"return_type": "GSTR-3B", "tax_period": "April",
       "financial_year": "2023-24", "filing_date": "2023-05-18"}
    ]
  }

The composed Synopsis is written to stdout as JSON.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := readInput(args[0])
		if err != nil {
			return err
		}

		analyzer, err := compliance.New(cfg.Engine)
		if err != nil {
			return err
		}

		log.Debug().Str("gstin", in.Profile.GSTIN).Int("returns", len(in.Returns)).Msg("analyzing")
		synopsis, err := analyzer.Analyze(*in)
		if err != nil {
			return err
		}
		return writeJSON(cmd, synopsis)
	},
}

// --- Batch Command ---

var batchCmd = &cobra.Command{
	Use:   "batch [file...]",
	Short: "Analyze several taxpayers concurrently",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputs := make([]compliance.Input, 0, len(args))
		for _, path := range args {
			in, err := readInput(path)
			if err != nil {
				return err
			}
			inputs = append(inputs, *in)
		}

		analyzer, err := compliance.New(cfg.Engine)
		if err != nil {
			return err
		}

		concurrency, _ := cmd.Flags().GetInt("concurrency")
		if concurrency <= 0 {
			concurrency = runtime.NumCPU()
		}

		log.Debug().Int("taxpayers", len(inputs)).Int("concurrency", concurrency).Msg("batch analysis")
		results, err := analyzer.AnalyzeBatch(cmd.Context(), inputs, concurrency)
		if err != nil {
			return err
		}
		return writeJSON(cmd, results)
	},
}

func init() {
	batchCmd.Flags().Int("concurrency", 0, "max concurrent analyses (default: number of CPUs)")
}

// --- Status Command ---

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the effective engine configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("═══════════════════════════════════════")
		fmt.Println("  gstcompli - Engine Configuration")
		fmt.Println("═══════════════════════════════════════")
		fmt.Printf("  Version: %s (%s)\n", version, commit)
		fmt.Println()
		fmt.Println("  Due-date rules:")
		for _, r := range cfg.Engine.DueDates {
			fmt.Printf("    %-10s +%d month(s), day %d\n", r.ReturnType, r.MonthOffset, r.Day)
		}
		fmt.Println()
		fmt.Printf("  Penalty:   ₹%.0f/day, capped at ₹%.0f per return\n",
			cfg.Engine.Penalty.PerDayRate, cfg.Engine.Penalty.PerReturnCap)
		fmt.Printf("  Logging:   %s (%s)\n", cfg.Logging.Level, cfg.Logging.Format)
		fmt.Println("═══════════════════════════════════════")
		return nil
	},
}

// --- helpers ---

// readInput loads one taxpayer input file.
func readInput(path string) (*compliance.Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var in compliance.Input
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &in, nil
}

// writeJSON prints a result to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
