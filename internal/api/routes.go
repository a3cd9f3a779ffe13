package api

const (
	RootRoute        = "/"
	HealthCheckRoute = "/health"
	AboutRoute       = "/about"

	// TokenRoute mints Connected App tokens. Deliberately unauthenticated.
	TokenRoute = "/token"

	AuditParent           = "/v1/audit/"
	ListAuditsRoute       = AuditParent + "audits"
	ListActiveTokensRoute = AuditParent + "tokens"
)
