package core

// IssuedToken is the result of a successful issuance: the signed artifact
// plus an echo of the claims that went into it, so callers can inspect what
// was embedded without decoding the token.
type IssuedToken struct {
	// Token is the signed JWT.
	Token string `json:"token"`

	// Email mirrors the resolved subject for convenience.
	Email string `json:"email"`

	// Subject is the `sub` claim (equals Email).
	Subject string `json:"sub"`

	// Audience is the fixed relying-party audience.
	Audience string `json:"aud"`

	// Issuer is the Connected App client ID the token was signed as.
	Issuer string `json:"iss"`

	// JTI is the unique per-token identifier.
	JTI string `json:"jti"`

	// ExpiresAt is the `exp` claim in epoch seconds.
	ExpiresAt int64 `json:"exp"`

	// Timestamp is the `iat` claim in epoch seconds.
	Timestamp int64 `json:"timestamp"`

	// Level is the resolved authorization level embedded as `userLevel`.
	Level string `json:"userLevel"`

	// IsAdmin is the resolved admin flag embedded as `isAdmin`.
	IsAdmin bool `json:"isAdmin"`
}
