package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Grouping selects the period bucket size for aggregation.
type Grouping string

const (
	GroupByMonth   Grouping = "month"
	GroupByQuarter Grouping = "quarter"
	GroupByYear    Grouping = "year"
)

// ParseGrouping converts a user-supplied grouping name, case-insensitively.
func ParseGrouping(s string) (Grouping, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "month":
		return GroupByMonth, nil
	case "quarter":
		return GroupByQuarter, nil
	case "year":
		return GroupByYear, nil
	}
	return "", fmt.Errorf("unknown grouping %q (want month, quarter or year)", s)
}

// PeriodKey derives the period bucket for a date:
// month -> "2024-01", quarter -> "2024-Q1", year -> "2024".
func PeriodKey(date time.Time, g Grouping) string {
	switch g {
	case GroupByQuarter:
		q := (int(date.Month())-1)/3 + 1
		return fmt.Sprintf("%04d-Q%d", date.Year(), q)
	case GroupByYear:
		return strconv.Itoa(date.Year())
	default:
		return date.Format("2006-01")
	}
}

// QuarterOf collapses a monthly period into its quarter. Periods already in
// quarter or year form pass through unchanged.
func QuarterOf(period string) string {
	if len(period) != 7 || period[4] != '-' || period[5] == 'Q' {
		return period
	}
	month, err := strconv.Atoi(period[5:])
	if err != nil || month < 1 || month > 12 {
		return period
	}
	return fmt.Sprintf("%s-Q%d", period[:4], (month-1)/3+1)
}
