package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func TestFormatAmountRoundTrip(t *testing.T) {
	for _, s := range []string{"0.00", "10.50", "1234.56", "-3.20"} {
		formatted := FormatAmount(dec(s), "EUR")
		amount, currency, err := ParseAmount(formatted)
		require.NoError(t, err)
		assert.True(t, dec(s).Equal(amount), "round trip of %s", s)
		assert.Equal(t, "EUR", currency)
	}
}

func TestParseAmount(t *testing.T) {
	amount, currency, err := ParseAmount("15.75 USD")
	require.NoError(t, err)
	assert.True(t, dec("15.75").Equal(amount))
	assert.Equal(t, "USD", currency)

	amount, currency, err = ParseAmount("42.00")
	require.NoError(t, err)
	assert.True(t, dec("42").Equal(amount))
	assert.Empty(t, currency)

	_, _, err = ParseAmount("")
	assert.Error(t, err)

	_, _, err = ParseAmount("abc EUR")
	assert.Error(t, err)
}

func TestLineItemValid(t *testing.T) {
	item := LineItem{Track: "Song A", Revenue: dec("1.50"), Date: date(2024, 1, 1)}
	assert.True(t, item.Valid())

	assert.False(t, LineItem{Revenue: dec("1"), Date: date(2024, 1, 1)}.Valid())
	assert.False(t, LineItem{Track: "x", Date: date(2024, 1, 1)}.Valid())
	assert.False(t, LineItem{Track: "x", Revenue: dec("1")}.Valid())
}
