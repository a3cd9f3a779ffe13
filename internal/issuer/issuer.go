package issuer

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/somechocolate/tableau-embedded-analytics/internal/core"
)

// Fixed external contract values. The relying party (Tableau Cloud) expects
// these exact literals; changing them breaks verification downstream.
const (
	// Audience is the `aud` claim required by Tableau Cloud.
	Audience = "tableau"

	// TokenTTL is the lifetime of every issued token.
	TokenTTL = time.Hour
)

// Scopes is the fixed `scp` claim granted to every token.
var Scopes = []string{"tableau:views:embed", "tableau:content:read"}

// Defaults applied to blank request fields. Convenience fallbacks for
// anonymous embedding, not a security control.
const (
	DefaultEmail = "guest@example.com"
	DefaultLevel = "Light"
)

// jtiBytes is the amount of randomness behind each token ID.
// 16 bytes (128 bits) keeps collisions negligible; encoded as 32 hex chars.
const jtiBytes = 16

// ErrIncompleteIdentity is returned when the signing identity is missing
// its client ID or key material. The call fails before any claim is built.
var ErrIncompleteIdentity = errors.New("signing identity is missing client id or key material")

// SigningError wraps failures of the signing step itself: a malformed PEM,
// an unsupported key type, or a rejection from the JWT library.
type SigningError struct {
	Wrapped error
}

func (e *SigningError) Error() string {
	return e.Wrapped.Error()
}

func (e *SigningError) Unwrap() error {
	return e.Wrapped
}

// Issue builds and signs a Tableau Connected App token.
// It is a stateless transform: the clock is injected, the only side effect
// is reading random bytes for the token ID, and it is safe to call
// concurrently.
func Issue(req core.IssuanceRequest, identity *core.SigningIdentity, now time.Time) (*core.IssuedToken, error) {
	if !identity.Valid() {
		return nil, ErrIncompleteIdentity
	}

	email := req.Email
	if email == "" {
		email = DefaultEmail
	}
	level := req.Level
	if level == "" {
		level = DefaultLevel
	}
	admin := coerceAdmin(req.IsAdmin)

	jti, err := newJTI()
	if err != nil {
		return nil, fmt.Errorf("generating token id: %w", err)
	}

	iat := now.Unix()
	exp := now.Add(TokenTTL).Unix()

	claims := jwt.MapClaims{
		"iss": identity.ClientID,
		"sub": email,
		"aud": Audience,
		"exp": exp,
		"iat": iat,
		"jti": jti,

		"scp":       Scopes,
		"userLevel": level,
		"isAdmin":   admin,
	}

	key, err := jwt.ParseRSAPrivateKeyFromPEM(identity.PrivateKey)
	if err != nil {
		return nil, &SigningError{Wrapped: fmt.Errorf("parsing signing key: %w", err)}
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	signed, err := token.SignedString(key)
	if err != nil {
		return nil, &SigningError{Wrapped: fmt.Errorf("signing token: %w", err)}
	}

	return &core.IssuedToken{
		Token:     signed,
		Email:     email,
		Subject:   email,
		Audience:  Audience,
		Issuer:    identity.ClientID,
		JTI:       jti,
		ExpiresAt: exp,
		Timestamp: iat,
		Level:     level,
		IsAdmin:   admin,
	}, nil
}

// coerceAdmin accepts a native bool or the literal string "true".
// Everything else, including absence, means false.
func coerceAdmin(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t == "true"
	default:
		return false
	}
}

func newJTI() (string, error) {
	b := make([]byte, jtiBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
