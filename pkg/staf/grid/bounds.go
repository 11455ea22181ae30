package grid

// DataBounds returns the bounding box of non-empty cells. ok is false when
// the grid holds no data.
func (g *Grid) DataBounds() (minRow, minCol, maxRow, maxCol int, ok bool) {
	for c := range g.cells {
		if !ok {
			minRow, maxRow = c.row, c.row
			minCol, maxCol = c.col, c.col
			ok = true
			continue
		}
		if c.row < minRow {
			minRow = c.row
		}
		if c.row > maxRow {
			maxRow = c.row
		}
		if c.col < minCol {
			minCol = c.col
		}
		if c.col > maxCol {
			maxCol = c.col
		}
	}
	return
}

// NonEmptyCells returns the number of cells holding a value.
func (g *Grid) NonEmptyCells() int {
	return len(g.cells)
}

// Density returns the share of non-empty cells within the data bounding box,
// 0 when the grid is empty.
func (g *Grid) Density() float64 {
	minRow, minCol, maxRow, maxCol, ok := g.DataBounds()
	if !ok {
		return 0
	}
	total := (maxRow - minRow + 1) * (maxCol - minCol + 1)
	return float64(len(g.cells)) / float64(total)
}
