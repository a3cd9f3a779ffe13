package client

import (
	"context"
	"net/http"

	"github.com/somechocolate/tableau-embedded-analytics/internal/api"
	"github.com/somechocolate/tableau-embedded-analytics/internal/buildinfo"
)

func (c *Client) Info(
	ctx context.Context,
) (*buildinfo.Info, string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.url().
		setPath(api.AboutRoute).
		build(), nil)
	if err != nil {
		return nil, "", err
	}
	var info buildinfo.Info
	correlation, err := c.do(req, &info)
	return &info, correlation, err
}

// Health checks the server health endpoint.
func (c *Client) Health(ctx context.Context) error {
	var resp map[string]string
	_, err := c.get(ctx, c.url().setPath(api.HealthCheckRoute).build(), &resp)
	return err
}
