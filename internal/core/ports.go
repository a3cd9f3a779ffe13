package core

import "context"

// KeyProvider produces the current SigningIdentity.
// Implementations: inline PEM, key file, environment variable.
// How the material is sourced is a deployment concern; the issuer only
// requires that Current returns a complete, valid identity.
type KeyProvider interface {
	// Name returns the identifier of this provider (as used in config).
	Name() string

	// Current returns the signing identity to use for the next issuance.
	Current(ctx context.Context) (*SigningIdentity, error)
}
