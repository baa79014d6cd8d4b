package domain

import "errors"

var (
	// Transaction errors
	ErrTransactionNotFound    = errors.New("transaction not found")
	ErrInvalidAmount          = errors.New("amount must not be negative")
	ErrInvalidTransactionType = errors.New("transaction type must be income or expense")
	ErrInvalidCategory        = errors.New("invalid category")
	ErrInvalidDescription     = errors.New("invalid description")
	ErrInvalidPaymentMethod   = errors.New("invalid payment method")
	ErrInvalidDate            = errors.New("invalid date")
	ErrNoteTooLong            = errors.New("note exceeds maximum length")
	ErrMissingOwner           = errors.New("owner is required")
)
