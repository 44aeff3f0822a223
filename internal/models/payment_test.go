package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePaymentMethod(t *testing.T) {
	for _, s := range []string{"credit", "debit", "cash", "pix", "fiado"} {
		pm, err := ParsePaymentMethod(s)
		require.NoError(t, err)
		assert.Equal(t, s, string(pm))
	}

	_, err := ParsePaymentMethod("cheque")
	assert.True(t, IsValidation(err))

	_, err = ParsePaymentMethod("")
	assert.True(t, IsValidation(err))
}

func TestRequiresCustomer(t *testing.T) {
	assert.True(t, PaymentFiado.RequiresCustomer())
	assert.False(t, PaymentCash.RequiresCustomer())
	assert.False(t, PaymentPix.RequiresCustomer())
	assert.False(t, PaymentCredit.RequiresCustomer())
	assert.False(t, PaymentDebit.RequiresCustomer())
}
