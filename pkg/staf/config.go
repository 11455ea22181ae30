package staf

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config mirrors the on-disk TOML configuration file.
type Config struct {
	Match  MatchConfig  `toml:"match"`
	Sheets SheetsConfig `toml:"sheets"`
	Output OutputConfig `toml:"output"`
}

// MatchConfig tunes the matching engine.
type MatchConfig struct {
	Tolerance     float64 `toml:"tolerance"`
	LabelScanRows int     `toml:"label_scan_rows"`
}

// SheetsConfig names the sheets the pipeline reads.
type SheetsConfig struct {
	Totals    string `toml:"totals"`
	FloorPlan string `toml:"floor_plan"`
	Source    string `toml:"source"`
}

// OutputConfig controls how the annotated workbook is written.
type OutputConfig struct {
	NoteAuthor string `toml:"note_author"`
	Overwrite  bool   `toml:"overwrite"`
}

// DefaultConfig returns a Config carrying the compiled-in defaults.
func DefaultConfig() *Config {
	opts := DefaultOptions()
	return &Config{
		Match: MatchConfig{
			Tolerance:     opts.Tolerance,
			LabelScanRows: opts.LabelScanRows,
		},
		Sheets: SheetsConfig{
			Totals:    opts.TotalsSheet,
			FloorPlan: opts.FloorPlanSheet,
		},
	}
}

// LoadConfig reads a TOML config file over the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Options converts the config into run options.
func (c *Config) Options() Options {
	opts := DefaultOptions()
	if c.Match.Tolerance > 0 {
		opts.Tolerance = c.Match.Tolerance
	}
	if c.Match.LabelScanRows > 0 {
		opts.LabelScanRows = c.Match.LabelScanRows
	}
	if c.Sheets.Totals != "" {
		opts.TotalsSheet = c.Sheets.Totals
	}
	if c.Sheets.FloorPlan != "" {
		opts.FloorPlanSheet = c.Sheets.FloorPlan
	}
	opts.SourceSheet = c.Sheets.Source
	opts.NoteAuthor = c.Output.NoteAuthor
	opts.Overwrite = c.Output.Overwrite
	return opts
}
