package core

import (
	"context"
	"time"
)

// TokenMetadata represents the state of an issued token.
// The token value itself is never stored.
type TokenMetadata struct {
	// CorrelationID is the ID of the request that created the token.
	CorrelationID string `json:"correlation_id"`

	// JTI is the unique token identifier.
	JTI string `json:"jti"`

	// Subject is the email the token was issued for.
	Subject string `json:"subject"`

	// Level is the authorization level embedded in the token.
	Level string `json:"level"`

	// Admin indicates whether the token carries the admin flag.
	Admin bool `json:"admin"`

	// IssuedAt is the time when the token was issued.
	IssuedAt time.Time `json:"issued_at"`

	// ExpiresAt is the expiration time of the issued token.
	// It is used to check if the token is "active".
	ExpiresAt time.Time `json:"expires_at"`
}

// TokenStore manages metadata of issued tokens.
type TokenStore interface {
	// Save records a new issued token
	Save(ctx context.Context, meta TokenMetadata) error

	// ListActive returns tokens that have not expired yet
	ListActive(ctx context.Context) ([]TokenMetadata, error)
}
