package keys

import (
	"context"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"

	"github.com/somechocolate/tableau-embedded-analytics/internal/core"
)

const FileType = "file"

var _ core.KeyProvider = (*FileProvider)(nil)

type FileProviderConfig struct {
	// Path to the PEM file holding the RSA private key.
	Path string `mapstructure:"path"`
}

// FileProvider reads the signing key from a PEM file.
// The file is re-read on every acquisition, so replacing it on disk is
// picked up by subsequent issuances without any in-place mutation.
type FileProvider struct {
	clientID string
	path     string
}

func NewFileProvider(clientID string, raw map[string]any) (*FileProvider, error) {
	var conf FileProviderConfig
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Metadata: nil,
		Result:   &conf,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder for file key provider: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode config for file key provider: %w", err)
	}

	if conf.Path == "" {
		return nil, fmt.Errorf("file key provider missing 'path'")
	}

	p := &FileProvider{clientID: clientID, path: conf.Path}

	// fail fast at startup; later reads may still fail per-request
	// if the file is replaced with something unusable
	identity, err := p.Current(context.Background())
	if err != nil {
		return nil, err
	}
	if err := checkKeyMaterial(identity.PrivateKey); err != nil {
		return nil, fmt.Errorf("file key provider: %w", err)
	}

	return p, nil
}

func (p *FileProvider) Name() string {
	return FileType
}

func (p *FileProvider) Current(_ context.Context) (*core.SigningIdentity, error) {
	contents, err := os.ReadFile(p.path)
	if err != nil {
		return nil, fmt.Errorf("reading key file '%s': %w", p.path, err)
	}
	return &core.SigningIdentity{
		ClientID:   p.clientID,
		PrivateKey: contents,
	}, nil
}
