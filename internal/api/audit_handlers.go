package api

import (
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/somechocolate/tableau-embedded-analytics/internal/api/presenter"
	"github.com/somechocolate/tableau-embedded-analytics/internal/audit"
	"github.com/somechocolate/tableau-embedded-analytics/internal/core"
)

// handleAdminAudit processes requests to retrieve audit log entries.
func (s *Server) handleAdminAudit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.Ctx(ctx)

	// filters
	q := r.URL.Query()
	limitStr := q.Get("limit")

	filterCorrelationID := q.Get("correlation_id")
	filterSubject := q.Get("subject")
	filterJTI := q.Get("jti")
	filterFingerprint := q.Get("fingerprint")

	limit := 50
	if limitStr != "" {
		v, err := strconv.Atoi(limitStr)
		if err != nil {
			logger.Warn().Err(err).Str("limit", limitStr).Msg("invalid limit parameter")
			presenter.Error(w, r, "invalid limit parameter", http.StatusBadRequest)
			return
		}
		limit = v
	}

	memAuditor, ok := s.auditor.(*audit.InMemoryAuditor)
	if !ok {
		presenter.Error(w, r, "audit log queries require the in-memory auditor", http.StatusNotImplemented)
		return
	}

	var entries []core.AuditEntry
	var err error

	if filterCorrelationID != "" || filterSubject != "" || filterJTI != "" || filterFingerprint != "" {
		logger.Info().Msg("applying audit log filters")
		entries, err = memAuditor.Find(func(entry core.AuditEntry) bool {
			if filterCorrelationID != "" && entry.ID != filterCorrelationID {
				return false
			}
			if filterSubject != "" && entry.Subject != filterSubject {
				return false
			}
			if filterJTI != "" && entry.JTI != filterJTI {
				return false
			}
			if filterFingerprint != "" && entry.TokenFingerprint != filterFingerprint {
				return false
			}
			return true
		}, limit)
	} else {
		logger.Debug().Msg("retrieving recent audit log entries")
		entries, err = memAuditor.GetRecent(limit)
	}

	if err != nil {
		logger.Error().Err(err).Msg("failed to retrieve audit logs")
		presenter.Error(w, r, "failed to retrieve audit logs", http.StatusInternalServerError)
		return
	}

	presenter.JSON(w, r, entries, http.StatusOK)
}

// handleAdminTokens processes requests to retrieve active issued tokens.
func (s *Server) handleAdminTokens(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.Ctx(ctx)

	tokens, err := s.tokenStore.ListActive(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("failed to retrieve active tokens")
		presenter.Error(w, r, "failed to retrieve active tokens", http.StatusInternalServerError)
		return
	}

	presenter.JSON(w, r, tokens, http.StatusOK)
}
