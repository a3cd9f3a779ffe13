package service

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/somechocolate/tableau-embedded-analytics/internal/audit"
	"github.com/somechocolate/tableau-embedded-analytics/internal/core"
	"github.com/somechocolate/tableau-embedded-analytics/internal/issuer"
)

// TokenService handles the issuance flow: acquire the signing identity,
// delegate to the issuer core, and record what happened.
type TokenService struct {
	keys       core.KeyProvider
	auditor    core.Auditor
	tokenStore core.TokenStore

	// now is the clock injected into the issuer. Overridable in tests.
	now func() time.Time
}

func NewTokenService(
	keys core.KeyProvider,
	auditor core.Auditor,
	tokenStore core.TokenStore,
) *TokenService {
	return &TokenService{
		keys:       keys,
		auditor:    auditor,
		tokenStore: tokenStore,
		now:        time.Now,
	}
}

func (s *TokenService) IssueToken(ctx context.Context, req core.IssuanceRequest) (*core.IssuedToken, error) {
	logger := log.Ctx(ctx)
	reqID, _ := ctx.Value("correlation_id").(string)

	auditEntry := core.AuditEntry{
		ID:      reqID,
		Time:    time.Now(),
		Action:  "token.issue",
		Subject: req.Email,
		Level:   req.Level,
	}
	defer func() {
		if err := s.auditor.Log(auditEntry); err != nil {
			logger.Error().Err(err).Msg("failed to write audit log entry for token issuance")
		}
	}()

	identity, err := s.keys.Current(ctx)
	if err != nil {
		auditEntry.Error = "signing key unavailable"
		auditEntry.Stacktrace = err.Error()
		return nil, httpError(http.StatusInternalServerError,
			fmt.Errorf("acquiring signing key: %w", err))
	}

	tok, err := issuer.Issue(req, identity, s.now())
	if err != nil {
		auditEntry.Error = "signing failed"
		auditEntry.Stacktrace = err.Error()
		return nil, httpError(http.StatusInternalServerError,
			fmt.Errorf("signing token: %w", err))
	}

	auditEntry.Granted = true
	auditEntry.Subject = tok.Subject
	auditEntry.Level = tok.Level
	auditEntry.Admin = tok.IsAdmin
	auditEntry.JTI = tok.JTI
	auditEntry.TokenFingerprint = audit.Fingerprint(tok.Token)

	logger.UpdateContext(func(c zerolog.Context) zerolog.Context {
		return c.Str("sub", tok.Subject)
	})

	meta := core.TokenMetadata{
		CorrelationID: reqID,
		JTI:           tok.JTI,
		Subject:       tok.Subject,
		Level:         tok.Level,
		Admin:         tok.IsAdmin,
		IssuedAt:      time.Unix(tok.Timestamp, 0),
		ExpiresAt:     time.Unix(tok.ExpiresAt, 0),
	}
	if err := s.tokenStore.Save(ctx, meta); err != nil {
		// issuance already succeeded, so only log the bookkeeping failure
		logger.Error().Err(err).Msg("failed to save token metadata")
	}

	return tok, nil
}
