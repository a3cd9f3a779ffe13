package keys

import (
	"context"
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/somechocolate/tableau-embedded-analytics/internal/core"
)

const InlineType = "inline"

var _ core.KeyProvider = (*InlineProvider)(nil)

type InlineProviderConfig struct {
	// PrivateKey is the RSA private key in PEM format, embedded in the
	// config file. Mostly useful for development and tests.
	PrivateKey string `mapstructure:"private_key"`
}

// InlineProvider serves a signing identity whose key material lives
// directly in the configuration file.
type InlineProvider struct {
	identity core.SigningIdentity
}

func NewInlineProvider(clientID string, raw map[string]any) (*InlineProvider, error) {
	var conf InlineProviderConfig
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Metadata: nil,
		Result:   &conf,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder for inline key provider: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode config for inline key provider: %w", err)
	}

	keyBytes := []byte(conf.PrivateKey)
	if err := checkKeyMaterial(keyBytes); err != nil {
		return nil, fmt.Errorf("inline key provider: %w", err)
	}

	return &InlineProvider{
		identity: core.SigningIdentity{
			ClientID:   clientID,
			PrivateKey: keyBytes,
		},
	}, nil
}

func (p *InlineProvider) Name() string {
	return InlineType
}

func (p *InlineProvider) Current(_ context.Context) (*core.SigningIdentity, error) {
	// copy so callers can never mutate the cached identity
	identity := p.identity
	return &identity, nil
}
