// Package money parses operator-entered amounts and quantities and holds
// the rounding policy for installment splitting.
package money

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"pos-service/internal/models"
)

// ParseAmount parses a user-entered decimal string into a non-negative
// monetary value. Accepts a comma as the decimal separator since POS
// operators type prices in local format.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return decimal.Zero, models.NewValidationError("amount is required")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, models.NewValidationError("invalid amount: " + s)
	}
	if d.IsNegative() {
		return decimal.Zero, models.NewValidationError("amount must not be negative")
	}
	return d, nil
}

// ParseQuantity parses a user-entered quantity string into a positive integer.
func ParseQuantity(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, models.NewValidationError("quantity is required")
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, models.NewValidationError("invalid quantity: " + s)
	}
	if n < 1 {
		return 0, models.NewValidationError("quantity must be a positive integer")
	}
	return n, nil
}

// SplitEven divides a total into n equal parts rounded to cents.
// No remainder correction is applied: a schedule of n parts may differ
// from the total by up to one cent in aggregate. Collections reconcile
// against the order total, not the schedule sum.
func SplitEven(total decimal.Decimal, n int) decimal.Decimal {
	if n < 1 {
		n = 1
	}
	return total.DivRound(decimal.NewFromInt(int64(n)), 2)
}
