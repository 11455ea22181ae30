package staf

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/nappayawal/STAF-Insert-Comment-V3-1/pkg/staf/grid"
	"github.com/nappayawal/STAF-Insert-Comment-V3-1/pkg/staf/models"
	"github.com/nappayawal/STAF-Insert-Comment-V3-1/pkg/staf/parser"
	"github.com/nappayawal/STAF-Insert-Comment-V3-1/pkg/staf/planner"
	"github.com/nappayawal/STAF-Insert-Comment-V3-1/pkg/staf/writer"
)

// Result summarizes one reconciliation run.
type Result struct {
	// RunID uniquely tags this run in reports and logs.
	RunID string `json:"run_id"`
	// ShipCode is the validated, uppercased ship code.
	ShipCode string `json:"ship_code"`
	// ActiveMetric is the metric the floor plan was detected to display.
	ActiveMetric models.Metric `json:"active_metric"`
	// Identifiers is the number of position entries built from the source.
	Identifiers int `json:"identifiers"`
	// Placements lists the planned note placements.
	Placements []models.Placement `json:"placements"`
	// Write reports the note-writing session, nil on dry runs or when no
	// placements were found.
	Write *writer.Summary `json:"write,omitempty"`
}

// ValidateShipCode normalizes a ship code and ensures it is exactly 2
// alphabetic characters, e.g. "GR".
func ValidateShipCode(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 2 || !isAlpha(code) {
		return "", &ValidationError{
			Field:  "ship code",
			Reason: `must be exactly 2 alphabetic characters (e.g. "GR")`,
		}
	}
	return code, nil
}

func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// Run executes the full pipeline: build the identifier map from the source
// workbook, extract the daily metrics from the target's totals sheet, detect
// which metric the floor plan displays, plan note placements and, unless
// DryRun is set, write the notes.
//
// All failures are fatal to the run; nothing is retried and no partial
// output is produced.
func Run(sourcePath, targetPath, shipCode string, opts Options) (*Result, error) {
	ship, err := ValidateShipCode(shipCode)
	if err != nil {
		return nil, err
	}

	src, err := excelize.OpenFile(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load source workbook: %w", err)
	}
	defer src.Close()

	sourceSheet := opts.SourceSheet
	if sourceSheet == "" {
		sheets := src.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("source workbook %s has no sheets", sourcePath)
		}
		sourceSheet = sheets[0]
	}

	ids, err := parser.BuildIdentifierMap(src, sourceSheet, ship)
	if err != nil {
		return nil, err
	}
	opts.logf("built identifier map: %d entries", ids.Len())

	tgt, err := excelize.OpenFile(targetPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load target workbook: %w", err)
	}
	defer tgt.Close()

	coin, netWin, err := parser.ExtractDailyMetrics(tgt, opts.TotalsSheet, ship, ids.Len(), opts.LabelScanRows, opts.Logf)
	if err != nil {
		return nil, err
	}

	if idx, err := tgt.GetSheetIndex(opts.FloorPlanSheet); err != nil || idx < 0 {
		return nil, fmt.Errorf("sheet %q not found in target workbook", opts.FloorPlanSheet)
	}
	g, err := grid.New(tgt, opts.FloorPlanSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read floor plan: %w", err)
	}
	opts.logf("floor plan: %d non-empty cells, density %.2f", g.NonEmptyCells(), g.Density())

	metric, err := planner.DetectActiveMetric(g, coin, netWin, opts.Logf)
	if err != nil {
		return nil, err
	}
	opts.logf("floor plan is displaying: %s", metric.Label())

	selected := coin
	if metric == models.MetricNetWin {
		selected = netWin
	}

	placements, err := planner.Plan(g, selected, ids, opts.Tolerance)
	if err != nil {
		return nil, err
	}
	opts.logf("planned %d placements", len(placements))

	result := &Result{
		RunID:        uuid.NewString(),
		ShipCode:     ship,
		ActiveMetric: metric,
		Identifiers:  ids.Len(),
		Placements:   placements,
	}
	if opts.DryRun || len(placements) == 0 {
		return result, nil
	}

	session, err := writer.Open(targetPath, opts.FloorPlanSheet, writer.Options{
		OutPath:   opts.OutputPath,
		Overwrite: opts.Overwrite,
		Author:    opts.NoteAuthor,
	})
	if err != nil {
		return nil, err
	}
	if err := session.InsertAll(placements); err != nil {
		session.Abort()
		return nil, err
	}
	summary, err := session.Close()
	if err != nil {
		return nil, err
	}
	result.Write = &summary
	opts.logf("notes written: created=%d updated=%d skipped=%d", summary.Created, summary.Updated, summary.Skipped)

	return result, nil
}
