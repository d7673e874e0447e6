// Package domain provides defenitions of all entities.
package domain

import "errors"

var (
	// ErrInvalidAmount indicates that the amount is not a valid decimal number.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrNonPositiveAmount indicates that the amount is zero or negative.
	ErrNonPositiveAmount = errors.New("amount must be greater than zero")
	// ErrInsufficientBalance indicates that the account does not have sufficient balance.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrServiceNotSupported indicates that the requested payment service is not supported.
	ErrServiceNotSupported = errors.New("service not supported")
)

// User holds the account holder data. It is never serialized directly:
// the blob codec and the client views have their own shapes.
type User struct {
	Name   string
	Number string
	PIN    string
}

// Account is the account view exposed to clients: holder data plus the
// current balance formatted with two decimals. The PIN never leaves the
// service layer.
type Account struct {
	Name    string `json:"name"`
	Number  string `json:"account"`
	Balance string `json:"balance"`
}
