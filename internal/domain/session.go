package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrInvalidPIN indicates that the submitted PIN is empty or not exactly four decimal digits.
	ErrInvalidPIN = errors.New("PIN must be exactly four digits")
	// ErrWrongPIN indicates that the submitted PIN does not match the account PIN.
	ErrWrongPIN = errors.New("wrong PIN")
	// ErrSessionNotFound indicates that the session does not exist or was revoked.
	ErrSessionNotFound = errors.New("session not found")
	// ErrExpiredSession indicates the expired session.
	ErrExpiredSession = errors.New("expired session")
	// ErrConfirmationRequired indicates that logout was requested without explicit confirmation.
	ErrConfirmationRequired = errors.New("confirmation required")
)

// Session holds a transient authenticated-this-session marker. Sessions
// live in process memory only and do not survive a restart.
type Session struct {
	ID        uuid.UUID `json:"id"`
	Account   string    `json:"account"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
