package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestCreditFor(t *testing.T) {
	assert.True(t, dec("200.00").Equal(CreditFor(dec("500.00"), dec("300.00"))))
	assert.True(t, decimal.Zero.Equal(CreditFor(dec("500.00"), dec("500.00"))))
	// Overpayment clamps to zero instead of going negative.
	assert.True(t, decimal.Zero.Equal(CreditFor(dec("500.00"), dec("600.00"))))
}

func TestCreditForDecimalExactness(t *testing.T) {
	// 0.1 + 0.2 style drift must not appear in the split.
	credit := CreditFor(dec("0.30"), dec("0.10"))
	assert.Equal(t, "0.2", credit.String())
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, "partial", StatusFor(dec("0.01")))
	assert.Equal(t, "completed", StatusFor(decimal.Zero))
}

func TestApplyPayment(t *testing.T) {
	paid, credit, err := ApplyPayment(dec("300.00"), dec("200.00"), dec("150.00"))
	require.NoError(t, err)
	assert.True(t, dec("450.00").Equal(paid))
	assert.True(t, dec("50.00").Equal(credit))

	// Exact remainder drives credit to zero.
	paid, credit, err = ApplyPayment(paid, credit, dec("50.00"))
	require.NoError(t, err)
	assert.True(t, dec("500.00").Equal(paid))
	assert.True(t, credit.IsZero())
}

func TestApplyPaymentRejectsBadAmounts(t *testing.T) {
	_, _, err := ApplyPayment(dec("0"), dec("100.00"), decimal.Zero)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, _, err = ApplyPayment(dec("0"), dec("100.00"), dec("-5.00"))
	assert.ErrorIs(t, err, ErrInvalidAmount)

	paid, credit, err := ApplyPayment(dec("0"), dec("100.00"), dec("100.01"))
	assert.ErrorIs(t, err, ErrExceedsOutstandingCredit)
	// Inputs are returned unchanged on rejection.
	assert.True(t, paid.IsZero())
	assert.True(t, dec("100.00").Equal(credit))
}

func TestLineTotal(t *testing.T) {
	assert.True(t, dec("500.00").Equal(LineTotal(dec("100.00"), 5)))
	assert.True(t, dec("33.30").Equal(LineTotal(dec("11.10"), 3)))
}
