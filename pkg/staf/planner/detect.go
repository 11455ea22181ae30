// Package planner decides which daily metric the floor plan displays and
// plans note placements on it.
package planner

import (
	"errors"
	"math"

	"github.com/nappayawal/STAF-Insert-Comment-V3-1/pkg/staf/grid"
	"github.com/nappayawal/STAF-Insert-Comment-V3-1/pkg/staf/models"
)

// ErrAmbiguousMetric indicates the floor plan matched both metrics equally
// well (including not at all), so no metric can be selected.
var ErrAmbiguousMetric = errors.New("could not determine whether the floor plan is showing coin-in or net win")

// DetectActiveMetric tallies how many floor-plan cells land in each metric's
// value set and returns the strict-majority winner. Values are compared after
// rounding to 2 decimal places; a value present in both sets counts as a
// coin-in hit only. A tie is an ErrAmbiguousMetric.
func DetectActiveMetric(g *grid.Grid, coin, netWin *models.MetricMap, logf func(format string, args ...any)) (models.Metric, error) {
	coinSet := valueSet(coin)
	netSet := valueSet(netWin)

	var coinHits, netHits int
	for r := 1; r <= g.MaxRow; r++ {
		for c := 1; c <= g.MaxCol; c++ {
			v, ok := grid.Number(g.Raw(r, c))
			if !ok {
				continue
			}
			rounded := round2(v)
			if _, ok := coinSet[rounded]; ok {
				coinHits++
			} else if _, ok := netSet[rounded]; ok {
				netHits++
			}
		}
	}

	if logf != nil {
		logf("coin-in matches: %d, net win matches: %d", coinHits, netHits)
	}

	switch {
	case coinHits > netHits:
		return models.MetricCoinIn, nil
	case netHits > coinHits:
		return models.MetricNetWin, nil
	}
	return "", ErrAmbiguousMetric
}

// valueSet collects the distinct 2-decimal-rounded values of a metric map.
// Value frequency is irrelevant to the vote, only distinct values matter.
func valueSet(m *models.MetricMap) map[float64]struct{} {
	set := make(map[float64]struct{}, m.Len())
	for _, v := range m.Values() {
		set[round2(v)] = struct{}{}
	}
	return set
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
