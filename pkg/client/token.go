package client

import (
	"context"

	"github.com/somechocolate/tableau-embedded-analytics/internal/api"
	"github.com/somechocolate/tableau-embedded-analytics/internal/core"
)

// RequestTokenOptions contains the claim inputs for a token request.
// All fields are optional; the server applies its documented defaults.
type RequestTokenOptions struct {
	// Email is the identity the token vouches for.
	Email string

	// Level is the authorization level embedded as `userLevel`.
	Level string

	// IsAdmin requests the admin flag.
	IsAdmin bool
}

// RequestToken asks the server to mint a Connected App token.
func (c *Client) RequestToken(
	ctx context.Context,
	opts RequestTokenOptions,
) (*core.IssuedToken, string, error) {
	ub := c.url().setPath(api.TokenRoute)
	if opts.Email != "" {
		ub = ub.addQueryParam("email", opts.Email)
	}
	if opts.Level != "" {
		ub = ub.addQueryParam("level", opts.Level)
	}
	if opts.IsAdmin {
		ub = ub.addQueryParam("isAdmin", "true")
	}

	var result core.IssuedToken
	correlation, err := c.get(ctx, ub.build(), &result)
	if err != nil {
		return nil, correlation, err
	}
	return &result, correlation, nil
}
