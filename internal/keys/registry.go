package keys

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/somechocolate/tableau-embedded-analytics/internal/config"
	"github.com/somechocolate/tableau-embedded-analytics/internal/core"
)

// Build constructs the configured KeyProvider.
// The provider type is a deployment concern; the issuer only ever sees the
// resulting SigningIdentity.
func Build(cfg config.IssuerConfig) (core.KeyProvider, error) {
	if cfg.ClientID == "" {
		return nil, fmt.Errorf("issuer config missing 'client_id'")
	}

	var (
		provider core.KeyProvider
		err      error
	)
	switch cfg.Key.Type {
	case "inline":
		provider, err = NewInlineProvider(cfg.ClientID, cfg.Key.Config)
	case "file":
		provider, err = NewFileProvider(cfg.ClientID, cfg.Key.Config)
	case "env":
		provider, err = NewEnvProvider(cfg.ClientID, cfg.Key.Config)
	default:
		return nil, fmt.Errorf("unknown key provider type '%s'", cfg.Key.Type)
	}
	if err != nil {
		return nil, err
	}

	return provider, nil
}

// checkKeyMaterial fails fast on key material the signer would reject.
// Called at build time so a malformed key prevents the service from
// becoming ready instead of failing per-request.
func checkKeyMaterial(pemBytes []byte) error {
	if len(pemBytes) == 0 {
		return fmt.Errorf("key material is empty")
	}
	if _, err := jwt.ParseRSAPrivateKeyFromPEM(pemBytes); err != nil {
		return fmt.Errorf("key material is not a valid RSA private key: %w", err)
	}
	return nil
}
