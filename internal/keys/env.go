package keys

import (
	"context"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"

	"github.com/somechocolate/tableau-embedded-analytics/internal/core"
)

const EnvType = "env"

var _ core.KeyProvider = (*EnvProvider)(nil)

type EnvProviderConfig struct {
	// Var is the name of the environment variable holding the PEM key.
	Var string `mapstructure:"var"`
}

// EnvProvider reads the signing key from an environment variable once at
// construction. The process environment does not change afterwards, so the
// identity is cached.
type EnvProvider struct {
	identity core.SigningIdentity
}

func NewEnvProvider(clientID string, raw map[string]any) (*EnvProvider, error) {
	var conf EnvProviderConfig
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Metadata: nil,
		Result:   &conf,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder for env key provider: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode config for env key provider: %w", err)
	}

	if conf.Var == "" {
		return nil, fmt.Errorf("env key provider missing 'var'")
	}
	value, ok := os.LookupEnv(conf.Var)
	if !ok || value == "" {
		return nil, fmt.Errorf("env key provider: environment variable '%s' is not set", conf.Var)
	}

	keyBytes := []byte(value)
	if err := checkKeyMaterial(keyBytes); err != nil {
		return nil, fmt.Errorf("env key provider: %w", err)
	}

	return &EnvProvider{
		identity: core.SigningIdentity{
			ClientID:   clientID,
			PrivateKey: keyBytes,
		},
	}, nil
}

func (p *EnvProvider) Name() string {
	return EnvType
}

func (p *EnvProvider) Current(_ context.Context) (*core.SigningIdentity, error) {
	identity := p.identity
	return &identity, nil
}
