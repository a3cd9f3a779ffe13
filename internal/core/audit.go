package core

import "time"

type AuditEntry struct {
	// ID is the unique request ID (X-Correlation-ID)
	ID string `json:"id"`

	// Time is the timestamp of the event
	Time time.Time `json:"time"`

	// Action describing what happened (e.g. "token.issue")
	Action string `json:"action"`

	// Subject is the email the token was requested for.
	Subject string `json:"subject,omitempty"`

	// Level is the requested authorization level.
	Level string `json:"level,omitempty"`

	// Admin indicates whether an admin token was requested.
	Admin bool `json:"admin,omitempty"`

	// Decision details
	Granted bool   `json:"granted"`
	Error   string `json:"error,omitempty"`

	// Stacktrace holds diagnostic detail, never sent to callers unless
	// the debug flag is set.
	Stacktrace string `json:"stacktrace,omitempty"`

	// JTI of the issued token, if any.
	JTI string `json:"jti,omitempty"`

	// TokenFingerprint is a hash of the issued token for traceability.
	TokenFingerprint string `json:"token_fingerprint,omitempty"`
}

type Auditor interface {
	Log(entry AuditEntry) error
	Close() error
}
