package domain

import "errors"

// Owner identifies the user whose transactions are being read or written.
type Owner struct {
	ID   string
	Name string
}

// Authentication errors
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)
