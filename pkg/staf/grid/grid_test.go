package grid

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

// buildTestGrid saves a small workbook with a merged B3:D5 region and loads
// it back as a Grid.
func buildTestGrid(t *testing.T) *Grid {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Sheet1"
	f.SetCellValue(sheet, "B3", 1234.5)
	if err := f.MergeCell(sheet, "B3", "D5"); err != nil {
		t.Fatalf("MergeCell failed: %v", err)
	}
	f.SetCellValue(sheet, "B2", 7)
	f.SetCellValue(sheet, "G7", "edge")
	f.SetCellValue(sheet, "A1", "$42")

	tmpFile := filepath.Join(t.TempDir(), "grid.xlsx")
	if err := f.SaveAs(tmpFile); err != nil {
		t.Fatalf("SaveAs failed: %v", err)
	}

	f2, err := excelize.OpenFile(tmpFile)
	if err != nil {
		t.Fatalf("OpenFile failed: %v", err)
	}
	defer f2.Close()

	g, err := New(f2, sheet)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return g
}

func TestRegionAt(t *testing.T) {
	g := buildTestGrid(t)

	reg, ok := g.RegionAt(4, 3)
	if !ok {
		t.Fatal("expected (4,3) to be inside the merged region")
	}
	want := Region{MinRow: 3, MinCol: 2, MaxRow: 5, MaxCol: 4}
	if reg != want {
		t.Errorf("RegionAt(4,3) = %+v, expected %+v", reg, want)
	}

	if _, ok := g.RegionAt(2, 2); ok {
		t.Error("expected (2,2) to be outside any region")
	}
}

func TestValueMergeSafe(t *testing.T) {
	g := buildTestGrid(t)

	// Any cell of the merged region resolves to the anchor value.
	for _, c := range [][2]int{{3, 2}, {4, 3}, {5, 4}} {
		v, ok := Number(g.Value(c[0], c[1]))
		if !ok || v != 1234.5 {
			t.Errorf("Value(%d,%d) = %v, expected 1234.5", c[0], c[1], g.Value(c[0], c[1]))
		}
	}

	if v := g.Value(7, 7); v != "edge" {
		t.Errorf("Value(7,7) = %v, expected %q", v, "edge")
	}
	if v := g.Value(6, 6); v != nil {
		t.Errorf("Value(6,6) = %v, expected nil", v)
	}
}

func TestStep(t *testing.T) {
	g := buildTestGrid(t)

	tests := []struct {
		name           string
		row, col       int
		dr, dc         int
		wantR, wantC   int
	}{
		{"up from region interior", 4, 3, -1, 0, 2, 3},
		{"up from region anchor", 3, 2, -1, 0, 2, 2},
		{"down from region interior", 4, 3, 1, 0, 6, 3},
		{"left from region interior", 4, 3, 0, -1, 4, 1},
		{"right from region interior", 4, 3, 0, 1, 4, 5},
		{"diagonal from region interior", 4, 3, -1, -1, 2, 1},
		{"plain step from non-merged cell", 7, 7, -1, -1, 6, 6},
		{"plain step down-right", 2, 2, 1, 1, 3, 3},
	}

	for _, tt := range tests {
		r, c := g.Step(tt.row, tt.col, tt.dr, tt.dc)
		if r != tt.wantR || c != tt.wantC {
			t.Errorf("%s: Step(%d,%d,%d,%d) = (%d,%d), expected (%d,%d)",
				tt.name, tt.row, tt.col, tt.dr, tt.dc, r, c, tt.wantR, tt.wantC)
		}
	}
}

func TestInBounds(t *testing.T) {
	g := buildTestGrid(t)

	for _, c := range [][2]int{{0, 1}, {1, 0}, {g.MaxRow + 1, 1}, {1, g.MaxCol + 1}, {-3, -3}} {
		if g.InBounds(c[0], c[1]) {
			t.Errorf("InBounds(%d,%d) = true, expected false", c[0], c[1])
		}
	}
	if !g.InBounds(1, 1) || !g.InBounds(g.MaxRow, g.MaxCol) {
		t.Error("expected corners to be in bounds")
	}
}

func TestDataBounds(t *testing.T) {
	g := buildTestGrid(t)

	minRow, minCol, maxRow, maxCol, ok := g.DataBounds()
	if !ok {
		t.Fatal("expected data bounds")
	}
	// Data spans A1 .. G7; the merged anchor B3 holds the only region value.
	if minRow != 1 || minCol != 1 || maxRow != 7 || maxCol != 7 {
		t.Errorf("DataBounds = (%d,%d)-(%d,%d)", minRow, minCol, maxRow, maxCol)
	}
	if n := g.NonEmptyCells(); n != 4 {
		t.Errorf("NonEmptyCells = %d, expected 4", n)
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		input    string
		expected interface{}
	}{
		{"123", int64(123)},
		{"123.45", 123.45},
		{"-100", int64(-100)},
		{"$1,234", "$1,234"},
		{"hello", "hello"},
	}

	for _, tt := range tests {
		result := parseValue(tt.input)
		if result != tt.expected {
			t.Errorf("parseValue(%q) = %v (type: %T), expected %v (type: %T)",
				tt.input, result, result, tt.expected, tt.expected)
		}
	}
}

func TestAddress(t *testing.T) {
	if got := Address(12, 6); got != "F12" {
		t.Errorf("Address(12, 6) = %q, expected F12", got)
	}
}
