// Package models defines the data types shared across the STAF note pipeline.
package models

import (
	"fmt"
	"strconv"
)

// PositionKey formats a ship code and machine position number as a composite
// key, e.g. ("GR", 7) -> "GR007".
func PositionKey(shipCode string, position int) string {
	return fmt.Sprintf("%s%03d", shipCode, position)
}

// PositionNumber returns the position number encoded in the trailing three
// digits of a key produced by PositionKey.
func PositionNumber(key string) (int, error) {
	if len(key) < 3 {
		return 0, fmt.Errorf("position key %q too short", key)
	}
	n, err := strconv.Atoi(key[len(key)-3:])
	if err != nil {
		return 0, fmt.Errorf("position key %q has no numeric suffix: %w", key, err)
	}
	return n, nil
}
