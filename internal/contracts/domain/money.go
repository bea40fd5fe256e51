package domain

import (
	"strconv"
	"strings"
)

// ParseMoney parses a Brazilian-formatted money string such as "250.000,00"
// into a float. Dots are thousand separators and the comma is the decimal
// mark. Returns (nil) on empty or unparseable input instead of an error so
// callers can treat it as "no value".
func ParseMoney(raw string) *float64 {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}

	normalized := strings.ReplaceAll(trimmed, ".", "")
	normalized = strings.ReplaceAll(normalized, ",", ".")

	v, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return nil
	}
	return &v
}
