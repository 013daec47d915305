// Package oauth implements the sign-in handoff with Google and GitHub.
// The app never keeps provider tokens: the verified identity is handed to
// the SkillSwap API, which answers with its own session cookies.
package oauth

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"

	"github.com/skillswap/skillswap-web/internal/core/domain"
	"github.com/skillswap/skillswap-web/internal/core/ports"
)

type ProviderKind string

const (
	ProviderGoogle ProviderKind = "google"
	ProviderGitHub ProviderKind = "github"
)

const (
	googleIssuer     = "https://accounts.google.com"
	githubAPIURL     = "https://api.github.com"
	callbackPathBase = "/auth/callback/"
)

type Provider struct {
	Kind   ProviderKind
	OAuth2 *oauth2.Config
	// Verifier is set for OIDC providers only.
	Verifier *oidc.IDTokenVerifier
	// APIURL is the GitHub REST origin used to read the profile.
	APIURL string
}

// Config holds client credentials; a provider without a client id is disabled.
type Config struct {
	BaseURL            string
	GoogleClientID     string
	GoogleClientSecret string
	GitHubClientID     string
	GitHubClientSecret string
}

// Registry is the set of enabled providers.
type Registry struct {
	providers map[ProviderKind]*Provider
}

func NewRegistry(providers ...*Provider) *Registry {
	r := &Registry{providers: make(map[ProviderKind]*Provider, len(providers))}
	for _, p := range providers {
		r.providers[p.Kind] = p
	}
	return r
}

// Setup discovers the enabled providers. Google requires network access to
// its discovery document.
func Setup(ctx context.Context, cfg Config) (*Registry, error) {
	base := strings.TrimRight(cfg.BaseURL, "/")
	var providers []*Provider

	if cfg.GoogleClientID != "" {
		oidcProv, err := oidc.NewProvider(ctx, googleIssuer)
		if err != nil {
			return nil, fmt.Errorf("google discovery: %w", err)
		}
		conf := &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  base + callbackPathBase + string(ProviderGoogle),
			Endpoint:     oidcProv.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
		}
		providers = append(providers, &Provider{
			Kind:     ProviderGoogle,
			OAuth2:   conf,
			Verifier: oidcProv.Verifier(&oidc.Config{ClientID: conf.ClientID}),
		})
	}

	if cfg.GitHubClientID != "" {
		providers = append(providers, &Provider{
			Kind: ProviderGitHub,
			OAuth2: &oauth2.Config{
				ClientID:     cfg.GitHubClientID,
				ClientSecret: cfg.GitHubClientSecret,
				RedirectURL:  base + callbackPathBase + string(ProviderGitHub),
				Endpoint:     github.Endpoint,
				Scopes:       []string{"read:user", "user:email"},
			},
			APIURL: githubAPIURL,
		})
	}

	return NewRegistry(providers...), nil
}

func (r *Registry) Get(kind string) (*Provider, bool) {
	p, ok := r.providers[ProviderKind(kind)]
	return p, ok
}

// IdentityProviders exposes the registry in the shape page handlers consume.
func (r *Registry) IdentityProviders() map[string]ports.IdentityProvider {
	out := make(map[string]ports.IdentityProvider, len(r.providers))
	for k, p := range r.providers {
		out[string(k)] = p
	}
	return out
}

// Names lists the enabled providers in a stable order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for k := range r.providers {
		names = append(names, string(k))
	}
	sort.Strings(names)
	return names
}

// AuthCodeURL builds the provider redirect. For OIDC providers nonce is
// also bound into the ID token.
func (p *Provider) AuthCodeURL(state, nonce string) string {
	var opts []oauth2.AuthCodeOption
	if p.Verifier != nil {
		opts = append(opts, oidc.Nonce(nonce))
	}
	return p.OAuth2.AuthCodeURL(state, opts...)
}

// Exchange trades the callback code for provider tokens.
func (p *Provider) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	tok, err := p.OAuth2.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%s exchange: %w", p.Kind, err)
	}
	return tok, nil
}

// Authenticate completes the callback: it exchanges code and reads the identity.
func (p *Provider) Authenticate(ctx context.Context, code, nonce string) (domain.Identity, error) {
	tok, err := p.Exchange(ctx, code)
	if err != nil {
		return domain.Identity{}, err
	}
	return p.Identity(ctx, tok, nonce)
}

func (p *Provider) client(ctx context.Context, tok *oauth2.Token) *http.Client {
	return p.OAuth2.Client(ctx, tok)
}
