package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/skillswap/skillswap-web/internal/core/domain"
	"github.com/skillswap/skillswap-web/internal/core/ports"
)

func TestSearchHandler_Search(t *testing.T) {
	skills := &stubSkillsAPI{listFn: func(ctx context.Context, in ports.ListSkillsInput) ([]domain.Skill, error) {
		if in.Search != "go" {
			t.Errorf("unexpected skill search %+v", in)
		}
		return []domain.Skill{{ID: 1, Name: "Go"}}, nil
	}}
	matches := &stubMatchesAPI{searchFn: func(ctx context.Context, in ports.SearchUsersInput) (*domain.UserSearchResult, error) {
		want := ports.SearchUsersInput{Skill: "go", Type: "TEACH", Page: 2, Limit: 20}
		if in != want {
			t.Errorf("expected %+v, got %+v", want, in)
		}
		return &domain.UserSearchResult{Users: []domain.UserSummary{{ID: "u-2"}}}, nil
	}}
	h := NewSearchHandler(skills, matches)
	c, rec := newPageContext(t, http.MethodGet, "/search?q=+go+&type=teach&page=2", "")

	if err := h.Search(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp searchResponse
	decodeBody(t, rec, &resp)
	if resp.Query != "go" || len(resp.Skills) != 1 || resp.Results == nil || len(resp.Results.Users) != 1 {
		t.Fatalf("unexpected search page: %+v", resp)
	}
}

func TestSearchHandler_Search_EmptyQuerySkipsUserSearch(t *testing.T) {
	skills := &stubSkillsAPI{listFn: func(ctx context.Context, in ports.ListSkillsInput) ([]domain.Skill, error) {
		return nil, nil
	}}
	h := NewSearchHandler(skills, &stubMatchesAPI{})
	c, rec := newPageContext(t, http.MethodGet, "/search", "")

	if err := h.Search(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp searchResponse
	decodeBody(t, rec, &resp)
	if resp.Results != nil || resp.Skills == nil {
		t.Fatalf("unexpected search page: %+v", resp)
	}
}

func TestSearchHandler_Search_BadType(t *testing.T) {
	h := NewSearchHandler(&stubSkillsAPI{}, &stubMatchesAPI{})
	c, _ := newPageContext(t, http.MethodGet, "/search?q=go&type=both", "")

	if code := httpStatus(t, h.Search(c)); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
}
