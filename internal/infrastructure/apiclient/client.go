// Package apiclient is the authenticated HTTP client for the SkillSwap API.
//
// Every call goes through the same pipeline: the request descriptor is turned
// into an HTTP request, the response envelope is normalized into data or a
// *domain.APIError, and a 401 on the first attempt triggers one session
// refresh followed by one retry.
package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/skillswap/skillswap-web/internal/core/ports"
)

const (
	// DefaultBaseURL is used when no API origin is configured.
	DefaultBaseURL = "http://localhost:4000"
	defaultTimeout = 15 * time.Second
	// maxBodyBytes caps how much of a response body is read.
	maxBodyBytes = 1 << 20
)

// Options configures a Client. Zero values fall back to defaults.
type Options struct {
	BaseURL string
	// Timeout bounds a single attempt; the refresh and the retry each get their own.
	Timeout time.Duration
	// RateLimit is the maximum outbound requests per second; 0 disables limiting.
	RateLimit float64
	RateBurst int
	// HTTPClient replaces the default cookie-jar client.
	HTTPClient *http.Client
	// Navigator receives the sign-in navigation when a session cannot be refreshed.
	Navigator ports.Navigator
	Logger    zerolog.Logger
}

// Client talks to the SkillSwap API on behalf of the signed-in user.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	timeout time.Duration
	limiter *rate.Limiter
	nav     ports.Navigator
	log     zerolog.Logger

	refreshes singleflight.Group
}

// New builds a Client. The base URL must be absolute.
func New(opts Options) (*Client, error) {
	raw := strings.TrimSpace(opts.BaseURL)
	if raw == "" {
		raw = DefaultBaseURL
	}
	base, err := url.Parse(strings.TrimRight(raw, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse api url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("api url %q must be absolute", raw)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		if err != nil {
			return nil, fmt.Errorf("cookie jar: %w", err)
		}
		httpClient = &http.Client{Jar: jar}
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	var limiter *rate.Limiter
	if opts.RateLimit > 0 {
		burst := opts.RateBurst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}

	nav := opts.Navigator
	if nav == nil {
		nav = discardNavigator{}
	}

	return &Client{
		baseURL: base,
		http:    httpClient,
		timeout: timeout,
		limiter: limiter,
		nav:     nav,
		log:     opts.Logger.With().Str("component", "apiclient").Logger(),
	}, nil
}

// BaseURL returns the API origin the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Catalog returns the typed endpoint groups backed by this client.
func (c *Client) Catalog() ports.Catalog {
	return ports.Catalog{
		Auth:     &authAPI{c: c},
		Users:    &usersAPI{c: c},
		Skills:   &skillsAPI{c: c},
		Matches:  &matchesAPI{c: c},
		Sessions: &sessionsAPI{c: c},
		Messages: &messagesAPI{c: c},
		Reviews:  &reviewsAPI{c: c},
	}
}

type discardNavigator struct{}

func (discardNavigator) Navigate(context.Context, string) {}
