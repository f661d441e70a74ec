package domain

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseHours parses a target/remain duration-hours column, treating an
// empty or unparseable value as zero (the original exports sometimes leave
// these blank for milestones).
func ParseHours(value string) float64 {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return f
}

// formatHours renders a duration-hours value using decimal.Decimal so
// repeated reproject -> serialize -> reproject cycles do not accumulate
// binary-float drift in the remaining-duration column (spec.md section 8,
// property 4: reprojection idempotence).
func formatHours(hours float64) string {
	return decimal.NewFromFloat(hours).Round(6).String()
}
