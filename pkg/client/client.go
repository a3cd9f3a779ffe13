package client

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/somechocolate/tableau-embedded-analytics/internal/buildinfo"
)

// Client talks to a remote token server.
type Client struct {
	baseURL    string
	httpClient *http.Client
	authToken  string
}

type Option func(*Client)

// WithAuthToken sets the admin session token sent with every request.
// Only needed for the audit routes; token issuance requires no auth.
func WithAuthToken(token string) Option {
	return func(c *Client) {
		c.authToken = token
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// UserAgent identifies this client in server logs.
func UserAgent() string {
	return fmt.Sprintf("tabsign/%s", buildinfo.Version)
}

type urlBuilder struct {
	base  string
	path  string
	query url.Values
}

func (c *Client) url() *urlBuilder {
	return &urlBuilder{base: c.baseURL, query: url.Values{}}
}

func (u *urlBuilder) setPath(path string) *urlBuilder {
	u.path = path
	return u
}

func (u *urlBuilder) addQueryParam(key string, value any) *urlBuilder {
	u.query.Add(key, fmt.Sprint(value))
	return u
}

func (u *urlBuilder) build() string {
	s := u.base + u.path
	if len(u.query) > 0 {
		s += "?" + u.query.Encode()
	}
	return s
}
