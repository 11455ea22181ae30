package planner

import (
	"errors"
	"math"

	"github.com/nappayawal/STAF-Insert-Comment-V3-1/pkg/staf/grid"
	"github.com/nappayawal/STAF-Insert-Comment-V3-1/pkg/staf/models"
)

// ErrMissingInputs indicates Plan was called before its inputs were built.
var ErrMissingInputs = errors.New("placement planning requires a grid, a metric map and an identifier map")

// directions lists the 8 compass neighbors.
var directions = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// Plan scans the floor plan for cells whose numeric value matches a metric
// value within tolerance and confirms each candidate by finding the
// position's number among the cell's merge-safe 8-neighborhood. Each position
// key yields at most one placement: the first qualifying cell in scan order
// wins and later candidates for that key are ignored. Cells that match no
// remaining key, or whose neighborhood lacks the position number, produce
// nothing.
//
// The scan is O(rows x cols x positions). That is a known ceiling, acceptable
// for the floor sizes this domain produces (at most a few hundred positions).
func Plan(g *grid.Grid, metrics *models.MetricMap, ids *models.IdentifierMap, tolerance float64) ([]models.Placement, error) {
	if g == nil || metrics == nil || ids == nil {
		return nil, ErrMissingInputs
	}

	minRow, minCol, maxRow, maxCol, ok := g.DataBounds()
	if !ok {
		return nil, nil
	}

	placed := make(map[string]struct{})
	var placements []models.Placement

	for r := minRow; r <= maxRow; r++ {
		for c := minCol; c <= maxCol; c++ {
			cellValue, ok := grid.Number(g.Raw(r, c))
			if !ok {
				continue
			}
			for _, key := range metrics.Keys() {
				if _, done := placed[key]; done {
					continue
				}
				metricValue, _ := metrics.Get(key)
				if math.Abs(cellValue-metricValue) >= tolerance {
					continue
				}
				expected, err := models.PositionNumber(key)
				if err != nil {
					continue
				}
				if !neighborhoodHasNumber(g, r, c, expected) {
					continue
				}
				text, ok := ids.Get(key)
				if !ok {
					continue
				}
				placements = append(placements, models.Placement{Cell: grid.Address(r, c), Text: text})
				placed[key] = struct{}{}
				break
			}
		}
	}

	return placements, nil
}

// neighborhoodHasNumber reports whether any of the 8 merge-safe neighbors of
// (row, col) holds the expected position number, either as a number or as a
// string that cleans up to that integer. A candidate inside a merged region
// steps outward from the region's center.
func neighborhoodHasNumber(g *grid.Grid, row, col, expected int) bool {
	if reg, ok := g.RegionAt(row, col); ok {
		row, col = reg.Center()
	}
	for _, d := range directions {
		r, c := g.Step(row, col, d[0], d[1])
		if !g.InBounds(r, c) {
			continue
		}
		if valueEquals(g.Value(r, c), expected) {
			return true
		}
	}
	return false
}

// valueEquals reports whether a cell value denotes the expected integer.
func valueEquals(v interface{}, expected int) bool {
	switch n := v.(type) {
	case int64:
		return int(n) == expected
	case float64:
		return n == math.Trunc(n) && int(n) == expected
	case string:
		cleaned, ok := CleanInteger(n)
		return ok && cleaned == expected
	}
	return false
}
