package api

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/somechocolate/tableau-embedded-analytics/internal/audit"
	"github.com/somechocolate/tableau-embedded-analytics/internal/core"
	"github.com/somechocolate/tableau-embedded-analytics/internal/issuer"
	"github.com/somechocolate/tableau-embedded-analytics/internal/service"
	"github.com/somechocolate/tableau-embedded-analytics/internal/store"
)

const testClientID = "44b8edb0-ec57-475a-ab66-97df5ded751c"

type fixedKeyProvider struct {
	identity *core.SigningIdentity
}

func (p *fixedKeyProvider) Name() string { return "fixed-test" }

func (p *fixedKeyProvider) Current(_ context.Context) (*core.SigningIdentity, error) {
	return p.identity, nil
}

func newTestKey(t *testing.T) (*rsa.PrivateKey, []byte) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generating test key: %v", err)
	}
	return key, pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})
}

func newTestServer(t *testing.T, keyPEM []byte, debug bool) (http.Handler, *store.InMemoryTokenStore) {
	t.Helper()

	tokenStore := store.NewInMemoryTokenStore()
	auditor := audit.NewInMemoryAuditor()
	svc := service.NewTokenService(&fixedKeyProvider{
		identity: &core.SigningIdentity{ClientID: testClientID, PrivateKey: keyPEM},
	}, auditor, tokenStore)

	srv := NewServer(svc, auditor, tokenStore, debug)
	return srv.Routes(nil, nil), tokenStore
}

func doJSON(t *testing.T, handler http.Handler, req *http.Request, dest any) *httptest.ResponseRecorder {
	t.Helper()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if dest != nil {
		if err := json.Unmarshal(rec.Body.Bytes(), dest); err != nil {
			t.Fatalf("decoding response %q: %v", rec.Body.String(), err)
		}
	}
	return rec
}

func TestTokenEndpoint_QueryParams(t *testing.T) {
	key, keyPEM := newTestKey(t)
	handler, tokenStore := newTestServer(t, keyPEM, false)

	req := httptest.NewRequest("GET", "/token?email=alice@example.com&level=Full&isAdmin=true", nil)
	var resp core.IssuedToken
	rec := doJSON(t, handler, req, &resp)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", rec.Code, rec.Body.String())
	}
	if resp.Subject != "alice@example.com" || resp.Email != "alice@example.com" {
		t.Errorf("sub/email = %q/%q, want alice@example.com", resp.Subject, resp.Email)
	}
	if resp.Level != "Full" {
		t.Errorf("userLevel = %q, want Full", resp.Level)
	}
	if !resp.IsAdmin {
		t.Error("isAdmin = false, want true")
	}
	if resp.Audience != issuer.Audience || resp.Issuer != testClientID {
		t.Errorf("aud/iss = %q/%q, want %q/%q", resp.Audience, resp.Issuer, issuer.Audience, testClientID)
	}
	if resp.ExpiresAt-resp.Timestamp != 3600 {
		t.Errorf("exp - timestamp = %d, want 3600", resp.ExpiresAt-resp.Timestamp)
	}

	// the token must verify against the matching public key
	parsed, err := jwt.Parse(resp.Token, func(tok *jwt.Token) (any, error) {
		return &key.PublicKey, nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("issued token did not verify: %v", err)
	}

	// the issuance shows up in the token store
	active, err := tokenStore.ListActive(context.Background())
	if err != nil {
		t.Fatalf("ListActive() unexpected error: %v", err)
	}
	if len(active) != 1 || active[0].JTI != resp.JTI {
		t.Errorf("token store = %+v, want one entry with jti %s", active, resp.JTI)
	}
}

func TestTokenEndpoint_Defaults(t *testing.T) {
	_, keyPEM := newTestKey(t)
	handler, _ := newTestServer(t, keyPEM, false)

	req := httptest.NewRequest("GET", "/token", nil)
	var resp core.IssuedToken
	rec := doJSON(t, handler, req, &resp)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if resp.Subject != issuer.DefaultEmail {
		t.Errorf("sub = %q, want %q", resp.Subject, issuer.DefaultEmail)
	}
	if resp.Level != issuer.DefaultLevel {
		t.Errorf("userLevel = %q, want %q", resp.Level, issuer.DefaultLevel)
	}
	if resp.IsAdmin {
		t.Error("isAdmin = true, want false")
	}
	if len(resp.JTI) != 32 {
		t.Errorf("jti length = %d, want 32", len(resp.JTI))
	}
}

func TestTokenEndpoint_JSONBody(t *testing.T) {
	_, keyPEM := newTestKey(t)
	handler, _ := newTestServer(t, keyPEM, false)

	body := `{"email": "bob@example.com", "level": "Light", "isAdmin": true}`
	req := httptest.NewRequest("POST", "/token", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	var resp core.IssuedToken
	rec := doJSON(t, handler, req, &resp)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", rec.Code, rec.Body.String())
	}
	if resp.Subject != "bob@example.com" || !resp.IsAdmin {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestTokenEndpoint_CorruptKey(t *testing.T) {
	tests := []struct {
		name      string
		debug     bool
		wantStack bool
	}{
		{name: "Production Posture", debug: false, wantStack: false},
		{name: "Debug Posture", debug: true, wantStack: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, _ := newTestServer(t, []byte("garbage key material"), tt.debug)

			req := httptest.NewRequest("GET", "/token?email=alice@example.com", nil)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusInternalServerError {
				t.Fatalf("status = %d, want 500", rec.Code)
			}

			var resp map[string]any
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decoding error response: %v", err)
			}
			if resp["error"] != TokenErrorLabel {
				t.Errorf("error = %v, want %q", resp["error"], TokenErrorLabel)
			}
			if resp["message"] == "" {
				t.Error("message is empty")
			}
			_, hasStack := resp["stack"]
			if hasStack != tt.wantStack {
				t.Errorf("stack present = %v, want %v", hasStack, tt.wantStack)
			}
		})
	}
}

func TestTokenEndpoint_InvalidBody(t *testing.T) {
	_, keyPEM := newTestKey(t)
	handler, _ := newTestServer(t, keyPEM, false)

	req := httptest.NewRequest("POST", "/token", strings.NewReader(`{"unknownField": 1}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHealthAndRoot(t *testing.T) {
	_, keyPEM := newTestKey(t)
	handler, _ := newTestServer(t, keyPEM, false)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("/health status = %d, want 200", rec.Code)
	}
	var health map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &health); err != nil {
		t.Fatalf("decoding health response: %v", err)
	}
	if health["status"] != "ok" {
		t.Errorf("health status = %q, want ok", health["status"])
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("/ status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "/token") {
		t.Errorf("/ banner = %q, want mention of /token", rec.Body.String())
	}
}

func TestCORSHeaders(t *testing.T) {
	_, keyPEM := newTestKey(t)
	handler, _ := newTestServer(t, keyPEM, false)

	// preflight
	req := httptest.NewRequest("OPTIONS", "/token", nil)
	req.Header.Set("Origin", "http://localhost:5500")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("preflight status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Methods"); !strings.Contains(got, "POST") {
		t.Errorf("Access-Control-Allow-Methods = %q, want POST included", got)
	}
}

func TestAdminRoutes(t *testing.T) {
	_, keyPEM := newTestKey(t)
	adminKey := []byte("test-admin-session-key")

	tokenStore := store.NewInMemoryTokenStore()
	auditor := audit.NewInMemoryAuditor()
	svc := service.NewTokenService(&fixedKeyProvider{
		identity: &core.SigningIdentity{ClientID: testClientID, PrivateKey: keyPEM},
	}, auditor, tokenStore)
	handler := NewServer(svc, auditor, tokenStore, false).Routes(adminKey, nil)

	// issue one token so there is something to list
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/token?email=alice@example.com", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("issuance failed with status %d", rec.Code)
	}

	// no session token
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", ListActiveTokensRoute, nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated admin request status = %d, want 401", rec.Code)
	}

	// valid admin session token
	session := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "ops@example.com",
		"roles": []string{"admin"},
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	signed, err := session.SignedString(adminKey)
	if err != nil {
		t.Fatalf("signing admin session token: %v", err)
	}

	req := httptest.NewRequest("GET", ListActiveTokensRoute, nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	var tokens []core.TokenMetadata
	rec = doJSON(t, handler, req, &tokens)
	if rec.Code != http.StatusOK {
		t.Fatalf("admin tokens status = %d, want 200 (body: %s)", rec.Code, rec.Body.String())
	}
	if len(tokens) != 1 || tokens[0].Subject != "alice@example.com" {
		t.Errorf("active tokens = %+v, want one for alice@example.com", tokens)
	}

	// audit entries are queryable as well
	req = httptest.NewRequest("GET", ListAuditsRoute+"?subject=alice@example.com", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	var entries []core.AuditEntry
	rec = doJSON(t, handler, req, &entries)
	if rec.Code != http.StatusOK {
		t.Fatalf("admin audits status = %d, want 200", rec.Code)
	}
	if len(entries) != 1 || !entries[0].Granted {
		t.Errorf("audit entries = %+v, want one granted entry", entries)
	}
}
