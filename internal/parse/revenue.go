package parse

import (
	"strings"

	"github.com/shopspring/decimal"
)

// currencyStripper removes currency symbols that appear in distributor
// exports before numeric parsing.
var currencyStripper = strings.NewReplacer("€", "", "$", "")

// Revenue converts a raw revenue cell to a decimal amount. Currency symbols
// and surrounding whitespace are stripped, the value is parsed directly, and
// on failure commas are treated as decimal separators and the parse retried
// ("1,50" -> 1.50). The second return is false when no parse succeeded and
// the zero default was taken; callers decide whether that zero is acceptable.
func Revenue(cell string) (decimal.Decimal, bool) {
	s := strings.TrimSpace(currencyStripper.Replace(cell))
	if s == "" {
		return decimal.Zero, false
	}
	if d, err := decimal.NewFromString(s); err == nil {
		return d, true
	}
	if d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ".")); err == nil {
		return d, true
	}
	return decimal.Zero, false
}
