package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRupees(t *testing.T) {
	price, err := ParseRupees("499.99")
	require.NoError(t, err)
	assert.Equal(t, int64(49999), price.Paise())
	assert.Equal(t, "499.99", price.String())

	price, err = ParseRupees("  120 ")
	require.NoError(t, err)
	assert.Equal(t, int64(12000), price.Paise())

	price, err = ParseRupees("0")
	require.NoError(t, err)
	assert.Equal(t, int64(0), price.Paise())
}

func TestParseRupeesRejectsBadInput(t *testing.T) {
	_, err := ParseRupees("abc")
	assert.Equal(t, errPriceInvalid, err)

	_, err = ParseRupees("")
	assert.Equal(t, errPriceInvalid, err)

	_, err = ParseRupees("-10")
	assert.Equal(t, errPriceNegative, err)

	_, err = ParseRupees("10.999")
	assert.Equal(t, errPricePrecision, err)
}

// Prices survive the round trip through the backend's minor units: parse,
// multiply into paise on persist, divide back for display.
func TestRupeesPaiseRoundTrip(t *testing.T) {
	inputs := []string{"0", "0.01", "1", "99.99", "100", "123456.78", "0.10"}
	for _, input := range inputs {
		price, err := ParseRupees(input)
		require.NoError(t, err, input)

		back := RupeesFromPaise(price.Paise())
		assert.True(t, price.Equal(back), "round trip changed %s to %s", input, back)
	}
}

func TestRupeesFloat64IsPayloadValue(t *testing.T) {
	price, err := ParseRupees("249.50")
	require.NoError(t, err)
	assert.InDelta(t, 249.50, price.Float64(), 1e-9)
}
