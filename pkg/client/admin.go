package client

import (
	"context"

	"github.com/somechocolate/tableau-embedded-analytics/internal/api"
	"github.com/somechocolate/tableau-embedded-analytics/internal/core"
)

type ListAuditsOpts struct {
	Limit uint

	CorrelationID string
	Subject       string
	JTI           string
	Fingerprint   string
}

// ListAudits retrieves the latest audit entries from the server, limited to the specified number.
func (c *Client) ListAudits(ctx context.Context, opts ListAuditsOpts) ([]core.AuditEntry, string, error) {
	ub := c.url().setPath(api.ListAuditsRoute)
	if opts.Limit > 0 {
		ub = ub.addQueryParam("limit", opts.Limit)
	}
	if opts.CorrelationID != "" {
		ub = ub.addQueryParam("correlation_id", opts.CorrelationID)
	}
	if opts.Subject != "" {
		ub = ub.addQueryParam("subject", opts.Subject)
	}
	if opts.JTI != "" {
		ub = ub.addQueryParam("jti", opts.JTI)
	}
	if opts.Fingerprint != "" {
		ub = ub.addQueryParam("fingerprint", opts.Fingerprint)
	}
	var resp []core.AuditEntry
	correlation, err := c.get(ctx, ub.build(), &resp)
	return resp, correlation, err
}

// ListActiveTokens retrieves the list of currently active tokens from the server.
func (c *Client) ListActiveTokens(ctx context.Context) ([]core.TokenMetadata, string, error) {
	var resp []core.TokenMetadata
	correlation, err := c.get(ctx, c.url().
		setPath(api.ListActiveTokensRoute).
		build(), &resp)
	return resp, correlation, err
}
