package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItem is one validated revenue record taken from a source CSV row.
// Rows that fail the invariant (empty track, zero revenue, unparseable
// date) are dropped during normalization and never reach aggregation.
type LineItem struct {
	Track      string
	Artist     string // empty if no artist column mapped
	UPC        string // empty if no UPC column mapped
	Revenue    decimal.Decimal
	Date       time.Time
	SourceFile string
}

// Valid reports whether the line item satisfies the aggregation invariant.
func (l LineItem) Valid() bool {
	return l.Track != "" && !l.Revenue.IsZero() && !l.Date.IsZero()
}
