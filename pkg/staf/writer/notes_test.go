package writer

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/nappayawal/STAF-Insert-Comment-V3-1/pkg/staf/models"
)

// newFloorWorkbook writes a workbook with one shape on Sheet1 and returns
// its path.
func newFloorWorkbook(t *testing.T) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	f.SetCellValue("Sheet1", "B2", 1234.5)
	err := f.AddShape("Sheet1", &excelize.Shape{
		Cell:   "E2",
		Type:   "rect",
		Width:  60,
		Height: 40,
	})
	if err != nil {
		t.Fatalf("AddShape failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "floor.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs failed: %v", err)
	}
	return path
}

func TestWithNotePath(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"plan.xlsm", "plan_with_Note.xlsm"},
		{"/tmp/STAF.xlsx", "/tmp/STAF_with_Note.xlsx"},
		{"noext", "noext_with_Note"},
	}
	for _, tt := range tests {
		if got := WithNotePath(tt.input); got != tt.expected {
			t.Errorf("WithNotePath(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}

func TestSessionCreateUpdateSkip(t *testing.T) {
	path := newFloorWorkbook(t)

	// First pass: the note is created.
	s, err := Open(path, "Sheet1", Options{})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := s.Insert("B2", "Position: 1\nDenom: 1¢"); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	summary, err := s.Close()
	if err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if summary.Created != 1 || summary.Updated != 0 || summary.Skipped != 0 {
		t.Errorf("first pass summary = %+v", summary)
	}
	if summary.OutPath != WithNotePath(path) {
		t.Errorf("OutPath = %q, expected %q", summary.OutPath, WithNotePath(path))
	}
	if !summary.ShapesIntact() {
		t.Errorf("shapes changed: before=%d after=%d", summary.ShapesBefore, summary.ShapesAfter)
	}
	if summary.ShapesBefore != 1 {
		t.Errorf("ShapesBefore = %d, expected 1", summary.ShapesBefore)
	}

	// Second pass over the annotated output: identical text is skipped.
	out := summary.OutPath
	s, err = Open(out, "Sheet1", Options{OutPath: filepath.Join(t.TempDir(), "again.xlsx")})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := s.Insert("B2", "Position: 1\nDenom: 1¢"); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	summary, err = s.Close()
	if err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if summary.Created != 0 || summary.Updated != 0 || summary.Skipped != 1 {
		t.Errorf("second pass summary = %+v", summary)
	}

	// Third pass with different text: the note is replaced.
	s, err = Open(out, "Sheet1", Options{OutPath: filepath.Join(t.TempDir(), "updated.xlsx")})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := s.Insert("B2", "Position: 1\nDenom: 5¢"); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	summary, err = s.Close()
	if err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if summary.Created != 0 || summary.Updated != 1 || summary.Skipped != 0 {
		t.Errorf("third pass summary = %+v", summary)
	}
}

func TestSessionInsertAll(t *testing.T) {
	path := newFloorWorkbook(t)

	s, err := Open(path, "Sheet1", Options{})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	placements := []models.Placement{
		{Cell: "B2", Text: "Position: 1"},
		{Cell: "C4", Text: "Position: 2"},
	}
	if err := s.InsertAll(placements); err != nil {
		t.Fatalf("InsertAll failed: %v", err)
	}
	summary, err := s.Close()
	if err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if summary.Created != 2 {
		t.Errorf("Created = %d, expected 2", summary.Created)
	}
	if !summary.ShapesIntact() {
		t.Errorf("shapes changed: before=%d after=%d", summary.ShapesBefore, summary.ShapesAfter)
	}
}

func TestSessionMissingSheet(t *testing.T) {
	path := newFloorWorkbook(t)
	if _, err := Open(path, "FLOOR PLAN", Options{}); err == nil {
		t.Error("expected error for missing sheet")
	}
}

func TestCountShapesNoDrawing(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	path := filepath.Join(t.TempDir(), "plain.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs failed: %v", err)
	}

	n, err := CountShapes(path, "Sheet1")
	if err != nil {
		t.Fatalf("CountShapes failed: %v", err)
	}
	if n != 0 {
		t.Errorf("CountShapes = %d, expected 0", n)
	}
}
