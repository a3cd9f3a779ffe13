package api

import (
	"net/http"

	"github.com/somechocolate/tableau-embedded-analytics/internal/api/middleware"
	"github.com/somechocolate/tableau-embedded-analytics/internal/audit"
	"github.com/somechocolate/tableau-embedded-analytics/internal/core"
	"github.com/somechocolate/tableau-embedded-analytics/internal/service"
)

type Server struct {
	tokenService *service.TokenService
	auditor      core.Auditor
	tokenStore   core.TokenStore

	// debug gates diagnostic detail (the `stack` field) in error responses.
	debug bool
}

func NewServer(
	tokenService *service.TokenService,
	auditor core.Auditor,
	tokenStore core.TokenStore,
	debug bool,
) *Server {
	if auditor == nil {
		auditor = audit.NewNoopAuditor()
	}

	return &Server{
		tokenService: tokenService,
		auditor:      auditor,
		tokenStore:   tokenStore,
		debug:        debug,
	}
}

// Routes assembles the handler chain. adminKey enables the audit routes;
// passing nil disables them. corsOrigins configures the browser policy
// (empty means any origin).
func (s *Server) Routes(adminKey []byte, corsOrigins []string) http.Handler {
	mux := http.NewServeMux()

	// public routes
	mux.HandleFunc("GET "+RootRoute, s.handleRoot)
	mux.HandleFunc("GET "+HealthCheckRoute, s.handleHealth)
	mux.HandleFunc("GET "+AboutRoute, s.handleAbout)

	// token issuer routes: query-param and JSON-body variants
	mux.HandleFunc("GET "+TokenRoute, s.handleTokenQuery)
	mux.HandleFunc("POST "+TokenRoute, s.handleTokenBody)

	// admin routes, only wired when a session key is configured
	if len(adminKey) > 0 {
		adminMux := http.NewServeMux()
		adminMux.HandleFunc("GET "+ListAuditsRoute, s.handleAdminAudit)
		adminMux.HandleFunc("GET "+ListActiveTokensRoute, s.handleAdminTokens)
		mux.Handle("GET /v1/audit/", middleware.AdminAuth(adminKey)(adminMux))
	}

	return middleware.RecoverMiddleware(
		middleware.CorrelationIDMiddleware(
			middleware.CORSMiddleware(corsOrigins)(
				middleware.LoggingMiddleware(
					mux))))
}
