package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/skillswap/skillswap-web/internal/api/middleware"
	"github.com/skillswap/skillswap-web/internal/core/ports"
	"github.com/skillswap/skillswap-web/internal/core/service"
	"github.com/skillswap/skillswap-web/internal/infrastructure/apiclient"
	"github.com/skillswap/skillswap-web/internal/infrastructure/queue"
)

// fakeAPI answers like the SkillSwap API for a user who is signed in only
// while signedIn is set. Refresh always fails.
func fakeAPI(signedIn *atomic.Bool) http.Handler {
	mux := http.NewServeMux()
	ok := func(w http.ResponseWriter, data string) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":` + data + `}`))
	}
	unauthorized := func(w http.ResponseWriter) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"success":false,"error":{"code":"UNAUTHORIZED","message":"Not authenticated"}}`))
	}
	authed := func(data string) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if !signedIn.Load() {
				unauthorized(w)
				return
			}
			ok(w, data)
		}
	}

	mux.HandleFunc("POST /api/auth/refresh", func(w http.ResponseWriter, r *http.Request) { unauthorized(w) })
	mux.HandleFunc("GET /api/users/me", authed(`{"id":"u-1","email":"ada@example.com","name":"Ada"}`))
	mux.HandleFunc("GET /api/sessions", authed(`[]`))
	mux.HandleFunc("GET /api/matches/suggestions", authed(`[]`))
	mux.HandleFunc("GET /api/matches", authed(`[]`))
	mux.HandleFunc("GET /api/messages/unread_count", authed(`{"total_count":2}`))
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	return mux
}

func serve(e *echo.Echo, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

// The router registers process-wide Prometheus collectors, so it is built
// once and the scenarios run in order against it.
func TestRouter(t *testing.T) {
	var signedIn atomic.Bool
	srv := httptest.NewServer(fakeAPI(&signedIn))
	defer srv.Close()

	nav := middleware.Navigator{}
	client, err := apiclient.New(apiclient.Options{BaseURL: srv.URL, Navigator: nav, Logger: zerolog.Nop()})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	api := client.Catalog()
	state := service.NewAuthState(api.Auth, api.Users, nav, zerolog.Nop())

	e := NewRouter(Deps{
		API:       api,
		APIURL:    srv.URL,
		State:     state,
		Navigator: nav,
		Providers: map[string]ports.IdentityProvider{},
		Receipts:  queue.NewDispatcher(1, api.Messages, zerolog.Nop()),
		Log:       zerolog.Nop(),
	})

	t.Run("health", func(t *testing.T) {
		if rec := serve(e, http.MethodGet, "/health"); rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if rec := serve(e, http.MethodGet, "/health/ready"); rec.Code != http.StatusOK {
			t.Fatalf("expected ready, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("signed out visitor is sent to sign in", func(t *testing.T) {
		rec := serve(e, http.MethodGet, "/dashboard")
		if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != "/auth/signin" {
			t.Fatalf("expected 303 to /auth/signin, got %d %q", rec.Code, rec.Header().Get(echo.HeaderLocation))
		}
	})

	t.Run("signed out visitor sees landing", func(t *testing.T) {
		if rec := serve(e, http.MethodGet, "/"); rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("signed in user gets dashboard", func(t *testing.T) {
		signedIn.Store(true)
		state.Reset()

		rec := serve(e, http.MethodGet, "/dashboard")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		var resp struct {
			UnreadMessages int `json:"unread_messages"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil || resp.UnreadMessages != 2 {
			t.Fatalf("unexpected dashboard %s (%v)", rec.Body.String(), err)
		}
	})

	t.Run("signed in user skips landing", func(t *testing.T) {
		rec := serve(e, http.MethodGet, "/")
		if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != "/dashboard" {
			t.Fatalf("expected 303 to /dashboard, got %d %q", rec.Code, rec.Header().Get(echo.HeaderLocation))
		}
	})

	t.Run("expired session mid page redirects", func(t *testing.T) {
		signedIn.Store(false)

		rec := serve(e, http.MethodGet, "/matches")
		if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != "/auth/signin" {
			t.Fatalf("expected 303 to /auth/signin, got %d %q", rec.Code, rec.Header().Get(echo.HeaderLocation))
		}
	})

	t.Run("metrics", func(t *testing.T) {
		if rec := serve(e, http.MethodGet, "/metrics"); rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})
}
