package model

import (
	"fmt"

	"github.com/shopspring/decimal"

	"savingsdesk/internal/app/apperr"
)

// Money columns are NUMERIC(12, 2)
const AmountScale = 2

var MaxAmount = decimal.RequireFromString("9999999999.99")

// ValidateAmount rejects amounts the ledger would round or could not store
func ValidateAmount(amount decimal.Decimal) error {
	switch {
	case !amount.IsPositive():
		return fmt.Errorf("amount must be positive: %w", apperr.ErrInvalidInput)
	case amount.Exponent() < -AmountScale && !amount.Equal(amount.Truncate(AmountScale)):
		return fmt.Errorf("amount allows at most %d decimal places: %w", AmountScale, apperr.ErrInvalidInput)
	case amount.GreaterThan(MaxAmount):
		return fmt.Errorf("amount exceeds %s: %w", MaxAmount, apperr.ErrInvalidInput)
	}
	return nil
}
