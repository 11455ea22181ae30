// Package main provides the CLI entry point for stafnotes.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/nappayawal/STAF-Insert-Comment-V3-1/pkg/staf"
)

var (
	sourcePath string
	targetPath string
	shipCode   string
	configPath string
	outputPath string
	tolerance  float64
	overwrite  bool
	dryRun     bool
	quiet      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "stafnotes",
		Short: "Reconcile machine positions with a floor plan and insert notes",
		Long: `stafnotes matches machine-position metadata from a source spreadsheet
against the FLOOR PLAN grid of a STAF workbook, detects whether the grid
shows daily coin-in or net win, and annotates matching cells with notes.`,
		RunE: run,
	}

	rootCmd.Flags().StringVarP(&sourcePath, "source", "s", "", "Machine details workbook (required)")
	rootCmd.Flags().StringVarP(&targetPath, "target", "t", "", "STAF workbook with TOTALS and FLOOR PLAN sheets (required)")
	rootCmd.Flags().StringVar(&shipCode, "ship", "", "2-letter ship code, e.g. GR (required)")
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "TOML config file")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output path (default: <target>_with_Note)")
	rootCmd.Flags().Float64Var(&tolerance, "tolerance", 0.2, "Numeric match tolerance")
	rootCmd.Flags().BoolVar(&overwrite, "overwrite", false, "Save back over the target workbook")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Plan placements without writing notes")
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Suppress progress output")

	rootCmd.MarkFlagRequired("source")
	rootCmd.MarkFlagRequired("target")
	rootCmd.MarkFlagRequired("ship")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	for _, path := range []string{sourcePath, targetPath} {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return fmt.Errorf("file not found: %s", path)
		}
	}

	opts := staf.DefaultOptions()
	if configPath != "" {
		cfg, err := staf.LoadConfig(configPath)
		if err != nil {
			return err
		}
		opts = cfg.Options()
	}

	// Flags override config file values only when set explicitly.
	if cmd.Flags().Changed("tolerance") {
		opts.Tolerance = tolerance
	}
	if cmd.Flags().Changed("overwrite") {
		opts.Overwrite = overwrite
	}
	opts.OutputPath = outputPath
	opts.DryRun = dryRun
	if !quiet {
		opts.Logf = log.Printf
	}

	result, err := staf.Run(sourcePath, targetPath, shipCode, opts)
	if err != nil {
		return err
	}

	fmt.Printf("run %s: floor plan is displaying %s\n", result.RunID, result.ActiveMetric.Label())
	fmt.Printf("placements planned: %d (positions: %d)\n", len(result.Placements), result.Identifiers)

	if result.Write == nil {
		if dryRun {
			fmt.Println("dry run: no notes written")
		} else {
			fmt.Println("no matches to write")
		}
		return nil
	}

	fmt.Printf("notes: created=%d updated=%d skipped=%d\n",
		result.Write.Created, result.Write.Updated, result.Write.Skipped)
	shapesCheck := "OK"
	if !result.Write.ShapesIntact() {
		shapesCheck = "WARNING"
	}
	fmt.Printf("shapes check: %s (before=%d after=%d)\n",
		shapesCheck, result.Write.ShapesBefore, result.Write.ShapesAfter)
	fmt.Printf("saved: %s\n", result.Write.OutPath)

	return nil
}
