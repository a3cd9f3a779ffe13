package core

// SigningIdentity is the configured identity this service signs tokens as.
// It is produced by a KeyProvider and treated as read-only once returned.
type SigningIdentity struct {
	// ClientID is the Connected App client ID registered with Tableau.
	// It becomes the `iss` claim of every issued token.
	ClientID string

	// PrivateKey is the RSA private key in PEM format.
	// Only the private half is needed; the relying party holds the public key.
	PrivateKey []byte
}

// Valid reports whether the identity is structurally usable for signing.
// It does not parse the key; that happens at signing time.
func (s *SigningIdentity) Valid() bool {
	return s != nil && s.ClientID != "" && len(s.PrivateKey) > 0
}

// IssuanceRequest carries the caller-supplied claim inputs.
// All fields are optional; missing or blank values fall back to defaults
// during issuance. This leniency is deliberate and part of the contract.
type IssuanceRequest struct {
	// Email is the identity being vouched for (the `sub` claim).
	Email string `json:"email"`

	// Level is an opaque business-level tag (e.g. a subscription tier).
	Level string `json:"level"`

	// IsAdmin may arrive as a native bool (JSON body) or the literal
	// string "true" (query parameter). Anything else means false.
	IsAdmin any `json:"isAdmin"`
}
