package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pos-service/internal/models"
)

func TestParseAmount(t *testing.T) {
	d, err := ParseAmount("19.90")
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.RequireFromString("19.90")))

	// comma decimal separator
	d, err = ParseAmount("19,90")
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.RequireFromString("19.90")))

	_, err = ParseAmount("")
	assert.True(t, models.IsValidation(err))

	_, err = ParseAmount("abc")
	assert.True(t, models.IsValidation(err))

	_, err = ParseAmount("-5")
	assert.True(t, models.IsValidation(err))
}

func TestParseQuantity(t *testing.T) {
	n, err := ParseQuantity("3")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, err = ParseQuantity("0")
	assert.True(t, models.IsValidation(err))

	_, err = ParseQuantity("-1")
	assert.True(t, models.IsValidation(err))

	_, err = ParseQuantity("2.5")
	assert.True(t, models.IsValidation(err))

	_, err = ParseQuantity("")
	assert.True(t, models.IsValidation(err))
}

func TestSplitEven(t *testing.T) {
	per := SplitEven(decimal.NewFromInt(100), 3)
	assert.Equal(t, "33.33", per.StringFixed(2))

	// no remainder correction: 3 x 33.33 = 99.99
	sum := per.Mul(decimal.NewFromInt(3))
	diff := decimal.NewFromInt(100).Sub(sum).Abs()
	assert.True(t, diff.LessThanOrEqual(decimal.RequireFromString("0.01")))

	per = SplitEven(decimal.NewFromInt(120), 4)
	assert.Equal(t, "30.00", per.StringFixed(2))
}
