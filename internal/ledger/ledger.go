// Package ledger holds the pure monetary arithmetic shared by the sale
// orchestrator and the credit settlement handler. All values are fixed-point
// decimals with two fractional digits; nothing here touches the database.
package ledger

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidAmount rejects zero or negative payment amounts.
	ErrInvalidAmount = errors.New("payment amount must be greater than zero")
	// ErrExceedsOutstandingCredit rejects payments larger than what is owed.
	ErrExceedsOutstandingCredit = errors.New("payment amount exceeds outstanding credit")
)

// CreditFor returns the unpaid remainder of a sale: max(0, total - paid).
// Overpayment yields zero credit, never a negative balance.
func CreditFor(total, paid decimal.Decimal) decimal.Decimal {
	credit := total.Sub(paid)
	if credit.IsNegative() {
		return decimal.Zero
	}
	return credit
}

// StatusFor maps an outstanding credit to a payment status: any remaining
// balance is partial, a fully covered total is completed.
func StatusFor(credit decimal.Decimal) string {
	if credit.IsPositive() {
		return "partial"
	}
	return "completed"
}

// ApplyPayment applies amount against an outstanding balance and returns the
// new (paid, credit) pair. The amount must be positive and must not exceed
// the credit; the caller persists both columns in one transaction.
func ApplyPayment(paid, credit, amount decimal.Decimal) (decimal.Decimal, decimal.Decimal, error) {
	if !amount.IsPositive() {
		return paid, credit, ErrInvalidAmount
	}
	if amount.GreaterThan(credit) {
		return paid, credit, ErrExceedsOutstandingCredit
	}
	return paid.Add(amount), credit.Sub(amount), nil
}

// LineTotal returns price * quantity for one sale line.
func LineTotal(price decimal.Decimal, quantity int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(quantity)))
}
