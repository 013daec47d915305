package oauth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

func TestStateIssuer_RoundTrip(t *testing.T) {
	issuer := NewStateIssuer("secret", NewMemoryNonceStore())

	state, nonce, err := issuer.Issue(context.Background(), string(ProviderGitHub))
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	got, err := issuer.Verify(context.Background(), state, string(ProviderGitHub))
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if got != nonce {
		t.Fatalf("expected nonce %q, got %q", nonce, got)
	}
}

func TestStateIssuer_IsSingleUse(t *testing.T) {
	issuer := NewStateIssuer("secret", NewMemoryNonceStore())
	state, _, err := issuer.Issue(context.Background(), string(ProviderGoogle))
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := issuer.Verify(context.Background(), state, string(ProviderGoogle)); err != nil {
		t.Fatalf("first verify: %v", err)
	}
	if _, err := issuer.Verify(context.Background(), state, string(ProviderGoogle)); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected replay to fail, got %v", err)
	}
}

func TestStateIssuer_Rejects(t *testing.T) {
	store := NewMemoryNonceStore()
	issuer := NewStateIssuer("secret", store)
	state, _, err := issuer.Issue(context.Background(), string(ProviderGitHub))
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	other := NewStateIssuer("other-secret", store)
	if _, err := other.Verify(context.Background(), state, string(ProviderGitHub)); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected signature failure, got %v", err)
	}
	if _, err := issuer.Verify(context.Background(), state, string(ProviderGoogle)); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected provider mismatch, got %v", err)
	}
	if _, err := issuer.Verify(context.Background(), "not-a-jwt", string(ProviderGitHub)); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected parse failure, got %v", err)
	}
}

func TestStateIssuer_Expired(t *testing.T) {
	issuer := NewStateIssuer("secret", NewMemoryNonceStore())
	start := time.Now()
	issuer.now = func() time.Time { return start }

	state, _, err := issuer.Issue(context.Background(), string(ProviderGitHub))
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	issuer.now = func() time.Time { return start.Add(StateTTL + time.Minute) }
	if _, err := issuer.Verify(context.Background(), state, string(ProviderGitHub)); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected expired state to fail, got %v", err)
	}
}

func TestMemoryNonceStore_Expiry(t *testing.T) {
	store := NewMemoryNonceStore()
	start := time.Now()
	store.now = func() time.Time { return start }

	if err := store.Save(context.Background(), "n1", time.Minute); err != nil {
		t.Fatal(err)
	}
	store.now = func() time.Time { return start.Add(2 * time.Minute) }

	ok, err := store.Consume(context.Background(), "n1")
	if err != nil || ok {
		t.Fatalf("expected expired nonce to be rejected, got ok=%v err=%v", ok, err)
	}
}

func TestSetup_GitHubOnly(t *testing.T) {
	reg, err := Setup(context.Background(), Config{
		BaseURL:        "https://app.skillswap.dev/",
		GitHubClientID: "gh-client",
	})
	if err != nil {
		t.Fatalf("setup: %v", err)
	}

	if names := reg.Names(); len(names) != 1 || names[0] != "github" {
		t.Fatalf("unexpected providers %v", names)
	}
	p, ok := reg.Get("github")
	if !ok {
		t.Fatal("github provider missing")
	}
	if p.OAuth2.RedirectURL != "https://app.skillswap.dev/auth/callback/github" {
		t.Fatalf("unexpected redirect url %q", p.OAuth2.RedirectURL)
	}
	if _, ok := reg.Get("google"); ok {
		t.Fatal("google must be disabled without a client id")
	}

	u, err := url.Parse(p.AuthCodeURL("st", "nonce"))
	if err != nil {
		t.Fatal(err)
	}
	if u.Query().Get("state") != "st" || u.Query().Has("nonce") {
		t.Fatalf("unexpected auth url %s", u)
	}
}

func TestGitHubIdentity(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/user", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer gho_token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"id":42,"login":"ada","name":"","email":"","avatar_url":"https://avatars.example/42"}`))
	})
	mux.HandleFunc("/user/emails", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"email":"old@example.com","primary":false,"verified":true},{"email":"Ada@Example.com","primary":true,"verified":true}]`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	p := &Provider{Kind: ProviderGitHub, OAuth2: &oauth2.Config{}, APIURL: srv.URL}
	id, err := p.Identity(context.Background(), &oauth2.Token{AccessToken: "gho_token"}, "")
	if err != nil {
		t.Fatalf("identity: %v", err)
	}

	if id.Provider != "github" || id.OAuthID != "42" {
		t.Fatalf("unexpected identity %+v", id)
	}
	if id.Email != "ada@example.com" {
		t.Fatalf("expected primary verified email lower-cased, got %q", id.Email)
	}
	if id.Name != "ada" || !strings.HasPrefix(id.AvatarURL, "https://avatars.example") {
		t.Fatalf("unexpected profile fields %+v", id)
	}
}

func TestGitHubIdentity_APIFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	p := &Provider{Kind: ProviderGitHub, OAuth2: &oauth2.Config{}, APIURL: srv.URL}
	if _, err := p.Identity(context.Background(), &oauth2.Token{AccessToken: "x"}, ""); err == nil {
		t.Fatal("expected error")
	}
}

func TestIdentity_UnsupportedProvider(t *testing.T) {
	p := &Provider{Kind: "gitlab", OAuth2: &oauth2.Config{}}
	if _, err := p.Identity(context.Background(), &oauth2.Token{}, ""); err == nil {
		t.Fatal("expected error")
	}
}

func TestOIDCIdentity_MissingIDToken(t *testing.T) {
	verifier := oidc.NewVerifier(googleIssuer, &oidc.StaticKeySet{}, &oidc.Config{ClientID: "client"})
	p := &Provider{Kind: ProviderGoogle, OAuth2: &oauth2.Config{}, Verifier: verifier}

	if _, err := p.Identity(context.Background(), &oauth2.Token{AccessToken: "x"}, ""); !errors.Is(err, ErrNoIDToken) {
		t.Fatalf("expected ErrNoIDToken, got %v", err)
	}
}
