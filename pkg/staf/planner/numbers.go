package planner

import (
	"strconv"
	"strings"
)

var currencyReplacer = strings.NewReplacer("$", "", ",", "")

// CleanInteger strips currency formatting ("$", ",") and surrounding
// whitespace from s and parses the remainder as a non-negative base-10
// integer. Returns false when anything but digits remains; a failed parse is
// "not a match", never an error.
func CleanInteger(s string) (int, bool) {
	s = strings.TrimSpace(currencyReplacer.Replace(s))
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
