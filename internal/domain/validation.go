package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrAmountTooLarge  = errors.New("amount exceeds maximum allowed")
	ErrInvalidIDFormat = errors.New("invalid ID format")
)

// Validation constants
const (
	MaxDescriptionLength = 255
	MaxNoteLength        = 1000
	MaxTransactionAmount = "1000000000000" // 1 trillion
)

// earliestDate guards against zero values and obviously mistyped years.
var earliestDate = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

var ulidRegex = regexp.MustCompile(`^[0-9A-HJKMNP-TV-Z]{26}$`)

// ValidateTransaction validates a record before it is persisted.
func ValidateTransaction(tx *Transaction) error {
	if strings.TrimSpace(tx.OwnerID) == "" {
		return ErrMissingOwner
	}

	if !tx.Type.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidTransactionType, tx.Type)
	}

	if err := ValidateAmount(tx.Amount); err != nil {
		return err
	}

	if err := ValidateDescription(tx.Description); err != nil {
		return err
	}

	if err := ValidateCategory(tx.Type, tx.Category); err != nil {
		return err
	}

	if !tx.PaymentMethod.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPaymentMethod, tx.PaymentMethod)
	}

	if tx.Date.Before(earliestDate) {
		return fmt.Errorf("%w: date is before %s", ErrInvalidDate, earliestDate.Format(time.DateOnly))
	}

	if len(tx.Note) > MaxNoteLength {
		return fmt.Errorf("%w: note exceeds %d characters", ErrNoteTooLong, MaxNoteLength)
	}

	return nil
}

// ValidateAmount validates a transaction amount. Zero is allowed.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ErrInvalidAmount
	}

	maxAmount, _ := decimal.NewFromString(MaxTransactionAmount)
	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrAmountTooLarge, MaxTransactionAmount)
	}

	return nil
}

// ValidateDescription validates the free-text description
func ValidateDescription(description string) error {
	description = strings.TrimSpace(description)

	if description == "" {
		return fmt.Errorf("%w: description cannot be empty", ErrInvalidDescription)
	}

	if len(description) > MaxDescriptionLength {
		return fmt.Errorf("%w: description exceeds %d characters", ErrInvalidDescription, MaxDescriptionLength)
	}

	return nil
}

// ValidateCategory checks the category against the catalogue for the type.
func ValidateCategory(t TransactionType, category string) error {
	if category == "" {
		return fmt.Errorf("%w: category cannot be empty", ErrInvalidCategory)
	}

	if !IsValidCategory(t, category) {
		return fmt.Errorf("%w: %q is not a %s category", ErrInvalidCategory, category, t)
	}

	return nil
}

// ValidateID validates a ULID identifier
func ValidateID(id string) error {
	if !ulidRegex.MatchString(strings.ToUpper(id)) {
		return ErrInvalidIDFormat
	}

	return nil
}
