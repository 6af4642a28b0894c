package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// AggregateRow is one (period, track) revenue total after grouping.
// Revenue values are kept in display form ("123.45 EUR") because saved
// analyses and consolidation both operate on that representation.
type AggregateRow struct {
	Period        string `json:"Period"`
	Track         string `json:"Track"`
	Artist        string `json:"Artist,omitempty"`
	UPC           string `json:"UPC,omitempty"`
	Source        string `json:"Source,omitempty"`
	TotalRevenue  string `json:"Total Revenue"`
	ArtistRevenue string `json:"Artist Revenue"`
}

// AnalysisResult is one saved analysis history entry.
type AnalysisResult struct {
	Date     time.Time      `json:"date"`
	Template string         `json:"template"`
	Results  []AggregateRow `json:"results"`
	Summary  []string       `json:"summary"`
}

// FormatAmount renders a revenue value as "123.45 EUR".
func FormatAmount(amount decimal.Decimal, currency string) string {
	return amount.StringFixed(2) + " " + currency
}

// ParseAmount splits a formatted revenue value back into amount and
// currency label. The currency part may be absent.
func ParseAmount(s string) (decimal.Decimal, string, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return decimal.Zero, "", fmt.Errorf("empty amount")
	}
	amount, err := decimal.NewFromString(fields[0])
	if err != nil {
		return decimal.Zero, "", fmt.Errorf("parsing amount %q: %w", s, err)
	}
	currency := ""
	if len(fields) > 1 {
		currency = fields[1]
	}
	return amount, currency, nil
}
