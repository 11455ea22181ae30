// Package grid models a worksheet as a 2-D cell grid with merged-region
// awareness. Coordinates are 1-based (row, column).
package grid

import (
	"strconv"

	"github.com/xuri/excelize/v2"
)

// Region is a merged rectangle on the grid. Every cell inside it logically
// shares the value stored at the anchor (MinRow, MinCol).
type Region struct {
	MinRow, MinCol int
	MaxRow, MaxCol int
}

// Center returns the coordinate at the middle of the region.
func (reg Region) Center() (row, col int) {
	return (reg.MinRow + reg.MaxRow) / 2, (reg.MinCol + reg.MaxCol) / 2
}

type coord struct {
	row, col int
}

// Grid is a read-only snapshot of a sheet's cell values and merged regions.
type Grid struct {
	// MaxRow and MaxCol bound the grid (inclusive).
	MaxRow, MaxCol int

	cells   map[coord]interface{}
	regions []Region
	// regionIdx maps every covered coordinate to an index into regions, so
	// merged-region lookups stay constant-time no matter how often the
	// planner probes neighbors.
	regionIdx map[coord]int
}

// New builds a Grid from a sheet of an open workbook.
func New(f *excelize.File, sheetName string) (*Grid, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}

	g := &Grid{
		cells:     make(map[coord]interface{}),
		regionIdx: make(map[coord]int),
	}

	g.MaxRow = len(rows)
	for rowIdx, row := range rows {
		if len(row) > g.MaxCol {
			g.MaxCol = len(row)
		}
		for colIdx, cellValue := range row {
			if cellValue == "" {
				continue
			}
			g.cells[coord{rowIdx + 1, colIdx + 1}] = parseValue(cellValue)
		}
	}

	merged, err := f.GetMergeCells(sheetName)
	if err != nil {
		return nil, err
	}
	for i, mc := range merged {
		minCol, minRow, err := excelize.CellNameToCoordinates(mc.GetStartAxis())
		if err != nil {
			continue
		}
		maxCol, maxRow, err := excelize.CellNameToCoordinates(mc.GetEndAxis())
		if err != nil {
			continue
		}
		reg := Region{MinRow: minRow, MinCol: minCol, MaxRow: maxRow, MaxCol: maxCol}
		g.regions = append(g.regions, reg)
		for r := minRow; r <= maxRow; r++ {
			for c := minCol; c <= maxCol; c++ {
				g.regionIdx[coord{r, c}] = i
			}
		}
		if maxRow > g.MaxRow {
			g.MaxRow = maxRow
		}
		if maxCol > g.MaxCol {
			g.MaxCol = maxCol
		}
	}

	return g, nil
}

// InBounds reports whether (row, col) is a valid grid coordinate.
// Out-of-bounds coordinates are never clamped.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 1 && col >= 1 && row <= g.MaxRow && col <= g.MaxCol
}

// RegionAt returns the merged region covering (row, col), if any.
func (g *Grid) RegionAt(row, col int) (Region, bool) {
	idx, ok := g.regionIdx[coord{row, col}]
	if !ok {
		return Region{}, false
	}
	return g.regions[idx], true
}

// Raw returns the value physically stored at (row, col), nil when empty or
// out of bounds.
func (g *Grid) Raw(row, col int) interface{} {
	return g.cells[coord{row, col}]
}

// Value returns the cell's logical value: cells inside a merged region
// resolve to the region's anchor value.
func (g *Grid) Value(row, col int) interface{} {
	if reg, ok := g.RegionAt(row, col); ok {
		return g.cells[coord{reg.MinRow, reg.MinCol}]
	}
	return g.Raw(row, col)
}

// Step moves one logical cell from (row, col) in direction (dr, dc). A merged
// region counts as a single cell: stepping from anywhere inside it lands just
// past the region's edge in that direction. The result may be out of bounds;
// callers must check InBounds.
func (g *Grid) Step(row, col, dr, dc int) (int, int) {
	reg, ok := g.RegionAt(row, col)
	if !ok {
		return row + dr, col + dc
	}
	switch {
	case dr < 0:
		row = reg.MinRow - 1
	case dr > 0:
		row = reg.MaxRow + 1
	}
	switch {
	case dc < 0:
		col = reg.MinCol - 1
	case dc > 0:
		col = reg.MaxCol + 1
	}
	return row, col
}

// Address returns the A1-style name for (row, col).
func Address(row, col int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

// Number converts a cell value to float64 when it is numeric.
func Number(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// parseValue attempts to parse a cell string as a number.
// Returns int64 for integers, float64 for decimals, or the original string.
func parseValue(s string) interface{} {
	// Try integer first
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	// Try float
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	// Return as string
	return s
}
