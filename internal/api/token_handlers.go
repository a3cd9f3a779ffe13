package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/somechocolate/tableau-embedded-analytics/internal/api/presenter"
	"github.com/somechocolate/tableau-embedded-analytics/internal/core"
)

// TokenErrorLabel is the stable label carried by every failed issuance
// response. Clients match on it, so it never changes.
const TokenErrorLabel = "Failed to generate token"

const tokenErrorMessage = "the token could not be signed with the configured key"

// handleTokenQuery mints a token from query parameters.
// isAdmin arrives as text here; only the literal "true" counts.
func (s *Server) handleTokenQuery(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	req := core.IssuanceRequest{
		Email: q.Get("email"),
		Level: q.Get("level"),
	}
	if v := q.Get("isAdmin"); v != "" {
		req.IsAdmin = v
	}

	s.issueToken(w, r, req)
}

// handleTokenBody mints a token from a JSON request body.
func (s *Server) handleTokenBody(w http.ResponseWriter, r *http.Request) {
	var req core.IssuanceRequest
	if err := DecodePayload(r, &req, true /* allow empty */); err != nil {
		log.Ctx(r.Context()).Warn().Err(err).Msg("failed to decode token request payload")
		presenter.Error(w, r, "invalid request payload", http.StatusBadRequest)
		return
	}

	s.issueToken(w, r, req)
}

func (s *Server) issueToken(w http.ResponseWriter, r *http.Request, req core.IssuanceRequest) {
	ctx := r.Context()
	logger := log.Ctx(ctx)

	tok, err := s.tokenService.IssueToken(ctx, req)
	if err != nil {
		logger.Error().Err(err).Msg("token issuance failed")
		presenter.Failure(w, r, TokenErrorLabel, tokenErrorMessage, err, s.debug)
		return
	}

	logger.Info().
		Str("sub", tok.Subject).
		Str("jti", tok.JTI).
		Bool("admin", tok.IsAdmin).
		Msg("token issued successfully")

	presenter.JSON(w, r, tok, http.StatusOK)
}

func DecodePayload(r *http.Request, dest any, allowEmpty bool) error {
	switch r.Header.Get("Content-Type") {
	case "application/json", "":
		// strict encoding for JSON
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(dest); err != nil {
			if !errors.Is(err, io.EOF) || !allowEmpty {
				return err
			}
		}
		// ensure there's no extra data
		if dec.More() {
			return errors.New("extra data in request body")
		}
		return nil
	default:
		return errors.New("unsupported content type")
	}
}
