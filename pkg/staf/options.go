// Package staf reconciles machine-position metadata with a floor-plan grid
// and annotates matching cells with notes.
package staf

// Options configures a reconciliation run.
type Options struct {
	// Tolerance is the maximum absolute difference for a grid cell to match
	// a metric value (strict less-than).
	Tolerance float64
	// LabelScanRows is how many leading rows of the totals sheet are scanned
	// for the daily metric labels.
	LabelScanRows int
	// TotalsSheet is the target sheet holding the daily metric columns.
	TotalsSheet string
	// FloorPlanSheet is the target sheet holding the floor-plan grid.
	FloorPlanSheet string
	// SourceSheet names the source table's sheet. Empty means the workbook's
	// first sheet.
	SourceSheet string
	// OutputPath overrides where the annotated workbook is saved. Empty
	// derives the _with_Note path, unless Overwrite is set.
	OutputPath string
	// Overwrite saves back over the target workbook instead of deriving a
	// _with_Note copy.
	Overwrite bool
	// DryRun plans placements without writing any notes.
	DryRun bool
	// NoteAuthor is the note author name.
	NoteAuthor string
	// Logf receives human-readable progress messages at key milestones.
	// Optional; not required for correctness.
	Logf func(format string, args ...any)
}

// DefaultOptions returns the default run options.
func DefaultOptions() Options {
	return Options{
		Tolerance:      0.2,
		LabelScanRows:  20,
		TotalsSheet:    "TOTALS",
		FloorPlanSheet: "FLOOR PLAN",
	}
}

// logf forwards to the configured progress sink, if any.
func (o Options) logf(format string, args ...any) {
	if o.Logf != nil {
		o.Logf(format, args...)
	}
}
