// Package parser extracts position metadata and daily metrics from source
// and target workbooks.
package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/nappayawal/STAF-Insert-Comment-V3-1/pkg/staf/models"
)

// ErrPositionHeaderMissing indicates the source sheet has no "Position"
// header in row 1.
var ErrPositionHeaderMissing = errors.New(`source sheet must have a "Position" header in row 1`)

// BuildIdentifierMap reads a source table and returns a map from position key
// (e.g. "GR007") to multiline note text.
//
// Row 1 is the header row and must contain a header case-insensitively equal
// to "Position". Each data row is serialized as "Header: value" lines in
// header order, skipping empty columns. Rows whose Position cell is empty or
// not an integer are skipped.
func BuildIdentifierMap(f *excelize.File, sheetName, shipCode string) (*models.IdentifierMap, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read source sheet %q: %w", sheetName, err)
	}
	if len(rows) == 0 {
		return nil, ErrPositionHeaderMissing
	}

	headers := make([]string, len(rows[0]))
	posIdx := -1
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
		if posIdx < 0 && strings.EqualFold(headers[i], "Position") {
			posIdx = i
		}
	}
	if posIdx < 0 {
		return nil, ErrPositionHeaderMissing
	}

	m := models.NewIdentifierMap()
	for _, row := range rows[1:] {
		if posIdx >= len(row) {
			continue
		}
		pos, err := strconv.Atoi(strings.TrimSpace(row[posIdx]))
		if err != nil {
			continue
		}

		var lines []string
		for i, header := range headers {
			if header == "" || i >= len(row) || row[i] == "" {
				continue
			}
			lines = append(lines, header+": "+row[i])
		}
		if len(lines) == 0 {
			continue
		}
		m.Set(models.PositionKey(shipCode, pos), strings.Join(lines, "\n"))
	}

	return m, nil
}
