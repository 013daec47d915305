package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"golang.org/x/oauth2"

	"github.com/skillswap/skillswap-web/internal/core/domain"
)

var (
	ErrNoIDToken  = errors.New("no id_token in token response")
	ErrBadNonce   = errors.New("id token nonce mismatch")
	ErrNoEmail    = errors.New("provider returned no email")
	ErrUnverified = errors.New("email not verified")
)

// Identity reads who signed in from the provider's token response.
func (p *Provider) Identity(ctx context.Context, tok *oauth2.Token, nonce string) (domain.Identity, error) {
	var (
		id  domain.Identity
		err error
	)
	switch {
	case p.Verifier != nil:
		id, err = p.oidcIdentity(ctx, tok, nonce)
	case p.Kind == ProviderGitHub:
		id, err = p.githubIdentity(ctx, tok)
	default:
		return domain.Identity{}, fmt.Errorf("unsupported provider %q", p.Kind)
	}
	if err != nil {
		return domain.Identity{}, err
	}
	id.Provider = string(p.Kind)
	id.Email = strings.ToLower(strings.TrimSpace(id.Email))
	if id.Email == "" {
		return domain.Identity{}, ErrNoEmail
	}
	if id.Name == "" {
		id.Name = id.Email
	}
	return id, nil
}

type googleClaims struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
	Nonce         string `json:"nonce"`
}

func (p *Provider) oidcIdentity(ctx context.Context, tok *oauth2.Token, nonce string) (domain.Identity, error) {
	raw, _ := tok.Extra("id_token").(string)
	if raw == "" {
		return domain.Identity{}, ErrNoIDToken
	}
	idt, err := p.Verifier.Verify(ctx, raw)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("verify id token: %w", err)
	}

	var c googleClaims
	if err := idt.Claims(&c); err != nil {
		return domain.Identity{}, fmt.Errorf("id token claims: %w", err)
	}
	if nonce != "" && c.Nonce != nonce {
		return domain.Identity{}, ErrBadNonce
	}
	if !c.EmailVerified {
		return domain.Identity{}, ErrUnverified
	}
	return domain.Identity{
		OAuthID:   c.Sub,
		Email:     c.Email,
		Name:      c.Name,
		AvatarURL: c.Picture,
	}, nil
}

type githubUser struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
}

type githubEmail struct {
	Email    string `json:"email"`
	Primary  bool   `json:"primary"`
	Verified bool   `json:"verified"`
}

func (p *Provider) githubIdentity(ctx context.Context, tok *oauth2.Token) (domain.Identity, error) {
	hc := p.client(ctx, tok)

	var u githubUser
	if err := getJSON(ctx, hc, p.APIURL+"/user", &u); err != nil {
		return domain.Identity{}, fmt.Errorf("github user: %w", err)
	}

	email := u.Email
	if email == "" {
		// Private emails only show up on /user/emails.
		var emails []githubEmail
		if err := getJSON(ctx, hc, p.APIURL+"/user/emails", &emails); err == nil {
			for _, e := range emails {
				if e.Primary && e.Verified {
					email = e.Email
					break
				}
			}
		}
	}
	if email == "" && u.Login != "" {
		email = u.Login + "@users.noreply.github.com"
	}

	name := u.Name
	if name == "" {
		name = u.Login
	}
	return domain.Identity{
		OAuthID:   strconv.FormatInt(u.ID, 10),
		Email:     email,
		Name:      name,
		AvatarURL: u.AvatarURL,
	}, nil
}

func getJSON(ctx context.Context, hc *http.Client, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
