package parser

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/nappayawal/STAF-Insert-Comment-V3-1/pkg/staf/models"
)

const (
	labelCoinIn = "DAILY COIN IN"
	labelNetWin = "DAILY NET WIN"
)

// ErrMetricLabelsNotFound indicates the totals sheet has no recognizable
// daily metric header labels.
var ErrMetricLabelsNotFound = errors.New(`couldn't find "DAILY COIN IN" and "DAILY NET WIN" headers`)

var whitespaceRe = regexp.MustCompile(`\s+`)

// labelHit records where a metric label was last seen. The two labels may
// resolve to different rows; each label's values are read relative to its
// own row.
type labelHit struct {
	row, col int
}

// ExtractDailyMetrics locates the daily coin-in and net-win columns on the
// totals sheet and reads machineCount values below each label, keyed
// "{ship}001".."{ship}NNN". Missing or unparseable values default to 0.
//
// The label scan covers the first scanRows rows and stops at the first row
// after which both labels are known.
func ExtractDailyMetrics(f *excelize.File, sheetName, shipCode string, machineCount, scanRows int, logf func(format string, args ...any)) (coin, netWin *models.MetricMap, err error) {
	idx, err := f.GetSheetIndex(sheetName)
	if err != nil || idx < 0 {
		return nil, nil, fmt.Errorf("sheet %q not found in target workbook", sheetName)
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet %q: %w", sheetName, err)
	}

	var coinHit, netHit labelHit
	for rowIdx := 0; rowIdx < scanRows && rowIdx < len(rows); rowIdx++ {
		for colIdx, cellValue := range rows[rowIdx] {
			if cellValue == "" {
				continue
			}
			text := normalizeLabel(cellValue)
			if strings.Contains(text, labelCoinIn) {
				coinHit = labelHit{row: rowIdx + 1, col: colIdx + 1}
			} else if strings.Contains(text, labelNetWin) {
				netHit = labelHit{row: rowIdx + 1, col: colIdx + 1}
			}
		}
		if coinHit.col != 0 && netHit.col != 0 {
			break
		}
	}
	if coinHit.col == 0 || netHit.col == 0 {
		return nil, nil, ErrMetricLabelsNotFound
	}

	coin = models.NewMetricMap()
	netWin = models.NewMetricMap()
	for i := 1; i <= machineCount; i++ {
		key := models.PositionKey(shipCode, i)
		coin.Set(key, metricValue(rows, coinHit.row+i, coinHit.col))
		netWin.Set(key, metricValue(rows, netHit.row+i, netHit.col))
	}

	if logf != nil {
		logf("extracted daily coin-in and net win for %d positions", machineCount)
	}
	return coin, netWin, nil
}

// normalizeLabel collapses internal whitespace (including newlines) and
// uppercases for substring matching.
func normalizeLabel(s string) string {
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.ToUpper(strings.TrimSpace(s))
}

// metricValue reads the cell at the 1-based (row, col), defaulting to 0 when
// the cell is missing or not numeric. Currency formatting is tolerated.
func metricValue(rows [][]string, row, col int) float64 {
	if row < 1 || row > len(rows) {
		return 0
	}
	r := rows[row-1]
	if col < 1 || col > len(r) {
		return 0
	}
	s := strings.NewReplacer("$", "", ",", "").Replace(r[col-1])
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}
