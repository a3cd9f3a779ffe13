package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0600); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
		want    *Config
	}{
		{
			name: "Full Config",
			input: `
issuer:
  client_id: my-client-id
  key:
    type: file
    path: private.key
server:
  addr: ":8080"
  cors_origins:
    - http://localhost:5500
debug: true
audit:
  enabled: true
  type: file
  path: audit.log
`,
			want: &Config{
				Issuer: IssuerConfig{
					ClientID: "my-client-id",
					Key: KeyConfig{
						Type:   "file",
						Config: map[string]any{"path": "private.key"},
					},
				},
				Server: ServerConfig{
					Addr:        ":8080",
					CORSOrigins: []string{"http://localhost:5500"},
				},
				Debug: true,
				Audit: AuditConfig{Enabled: true, Type: "file", Path: "audit.log"},
			},
		},
		{
			name: "Default Addr",
			input: `
issuer:
  client_id: my-client-id
  key:
    type: env
    var: SIGNING_KEY
`,
			want: &Config{
				Issuer: IssuerConfig{
					ClientID: "my-client-id",
					Key: KeyConfig{
						Type:   "env",
						Config: map[string]any{"var": "SIGNING_KEY"},
					},
				},
				Server: ServerConfig{Addr: DefaultAddr},
			},
		},
		{
			name: "Missing Client ID",
			input: `
issuer:
  key:
    type: file
    path: private.key
`,
			wantErr: true,
		},
		{
			name: "Missing Key Type",
			input: `
issuer:
  client_id: my-client-id
`,
			wantErr: true,
		},
		{
			name: "File Audit Without Path",
			input: `
issuer:
  client_id: my-client-id
  key:
    type: env
    var: SIGNING_KEY
audit:
  enabled: true
  type: file
`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(writeConfig(t, tt.input))

			if tt.wantErr {
				if err == nil {
					t.Fatal("Load() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Load() unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Load() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("Load() expected error for missing file, got nil")
	}
}
