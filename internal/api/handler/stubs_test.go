package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/skillswap/skillswap-web/internal/api/middleware"
	"github.com/skillswap/skillswap-web/internal/core/domain"
	"github.com/skillswap/skillswap-web/internal/core/ports"
)

var testUser = &domain.User{ID: "u-1", Email: "ada@example.com", Name: "Ada"}

// newPageContext builds an echo context for a signed-in page request.
func newPageContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.ContextUserKey, testUser)
	return c, rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
	}
}

func formMessages(t *testing.T, err error) []string {
	t.Helper()
	fe, ok := err.(*domain.FormError)
	if !ok {
		t.Fatalf("expected *domain.FormError, got %T (%v)", err, err)
	}
	return fe.Messages
}

func httpStatus(t *testing.T, err error) int {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %T (%v)", err, err)
	}
	return he.Code
}

var errAPI = &domain.APIError{Status: http.StatusBadGateway, Message: "An error occurred"}

// --- Catalog stubs ---

type stubAuthAPI struct {
	verifyFn func(ctx context.Context, in ports.VerifyInput) error
}

func (s *stubAuthAPI) Verify(ctx context.Context, in ports.VerifyInput) error {
	return s.verifyFn(ctx, in)
}
func (s *stubAuthAPI) Refresh(context.Context) error { return nil }
func (s *stubAuthAPI) Logout(context.Context) error  { return nil }

type stubUsersAPI struct {
	getMeFn        func(ctx context.Context) (*domain.User, error)
	updateMeFn     func(ctx context.Context, in ports.UpdateProfileInput) (*domain.User, error)
	getByIDFn      func(ctx context.Context, userID string) (*domain.User, error)
	uploadAvatarFn func(ctx context.Context, file ports.AvatarFile) (*domain.AvatarUpload, error)
}

func (s *stubUsersAPI) GetMe(ctx context.Context) (*domain.User, error) { return s.getMeFn(ctx) }
func (s *stubUsersAPI) UpdateMe(ctx context.Context, in ports.UpdateProfileInput) (*domain.User, error) {
	return s.updateMeFn(ctx, in)
}
func (s *stubUsersAPI) GetByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.getByIDFn(ctx, userID)
}
func (s *stubUsersAPI) UploadAvatar(ctx context.Context, file ports.AvatarFile) (*domain.AvatarUpload, error) {
	return s.uploadAvatarFn(ctx, file)
}

type stubSkillsAPI struct {
	listFn   func(ctx context.Context, in ports.ListSkillsInput) ([]domain.Skill, error)
	addFn    func(ctx context.Context, in ports.AddSkillInput) (*domain.UserSkill, error)
	removeFn func(ctx context.Context, id int64) error
}

func (s *stubSkillsAPI) List(ctx context.Context, in ports.ListSkillsInput) ([]domain.Skill, error) {
	return s.listFn(ctx, in)
}
func (s *stubSkillsAPI) AddToProfile(ctx context.Context, in ports.AddSkillInput) (*domain.UserSkill, error) {
	return s.addFn(ctx, in)
}
func (s *stubSkillsAPI) RemoveFromProfile(ctx context.Context, id int64) error {
	return s.removeFn(ctx, id)
}

type stubMatchesAPI struct {
	suggestionsFn func(ctx context.Context, limit int) ([]domain.MatchSuggestion, error)
	searchFn      func(ctx context.Context, in ports.SearchUsersInput) (*domain.UserSearchResult, error)
	createFn      func(ctx context.Context, userID string) (*domain.Match, error)
	listFn        func(ctx context.Context, status domain.MatchStatus) ([]domain.Match, error)
}

func (s *stubMatchesAPI) Suggestions(ctx context.Context, limit int) ([]domain.MatchSuggestion, error) {
	return s.suggestionsFn(ctx, limit)
}
func (s *stubMatchesAPI) Search(ctx context.Context, in ports.SearchUsersInput) (*domain.UserSearchResult, error) {
	return s.searchFn(ctx, in)
}
func (s *stubMatchesAPI) Create(ctx context.Context, userID string) (*domain.Match, error) {
	return s.createFn(ctx, userID)
}
func (s *stubMatchesAPI) List(ctx context.Context, status domain.MatchStatus) ([]domain.Match, error) {
	return s.listFn(ctx, status)
}

type stubSessionsAPI struct {
	createFn            func(ctx context.Context, in ports.CreateSessionInput) (*domain.Session, error)
	listFn              func(ctx context.Context, in ports.ListSessionsInput) ([]domain.Session, error)
	getFn               func(ctx context.Context, id string) (*domain.Session, error)
	cancelFn            func(ctx context.Context, id string) error
	updateParticipantFn func(ctx context.Context, sessionID, userID string, status domain.ParticipantStatus) error
}

func (s *stubSessionsAPI) Create(ctx context.Context, in ports.CreateSessionInput) (*domain.Session, error) {
	return s.createFn(ctx, in)
}
func (s *stubSessionsAPI) List(ctx context.Context, in ports.ListSessionsInput) ([]domain.Session, error) {
	return s.listFn(ctx, in)
}
func (s *stubSessionsAPI) Get(ctx context.Context, id string) (*domain.Session, error) {
	return s.getFn(ctx, id)
}
func (s *stubSessionsAPI) Cancel(ctx context.Context, id string) error { return s.cancelFn(ctx, id) }
func (s *stubSessionsAPI) UpdateParticipant(ctx context.Context, sessionID, userID string, status domain.ParticipantStatus) error {
	return s.updateParticipantFn(ctx, sessionID, userID, status)
}

type stubMessagesAPI struct {
	sendFn          func(ctx context.Context, recipientID, content string) (*domain.Message, error)
	conversationFn  func(ctx context.Context, userID string, page ports.PageInput) (*domain.ConversationPage, error)
	conversationsFn func(ctx context.Context) ([]domain.Conversation, error)
	markReadFn      func(ctx context.Context, id int64) error
	unreadCountFn   func(ctx context.Context) (*domain.UnreadCount, error)
}

func (s *stubMessagesAPI) Send(ctx context.Context, recipientID, content string) (*domain.Message, error) {
	return s.sendFn(ctx, recipientID, content)
}
func (s *stubMessagesAPI) Conversation(ctx context.Context, userID string, page ports.PageInput) (*domain.ConversationPage, error) {
	return s.conversationFn(ctx, userID, page)
}
func (s *stubMessagesAPI) Conversations(ctx context.Context) ([]domain.Conversation, error) {
	return s.conversationsFn(ctx)
}
func (s *stubMessagesAPI) MarkRead(ctx context.Context, id int64) error { return s.markReadFn(ctx, id) }
func (s *stubMessagesAPI) UnreadCount(ctx context.Context) (*domain.UnreadCount, error) {
	return s.unreadCountFn(ctx)
}

type stubReviewsAPI struct {
	createFn  func(ctx context.Context, in ports.CreateReviewInput) (*domain.Review, error)
	forUserFn func(ctx context.Context, userID string, page ports.PageInput) (*domain.UserReviews, error)
}

func (s *stubReviewsAPI) Create(ctx context.Context, in ports.CreateReviewInput) (*domain.Review, error) {
	return s.createFn(ctx, in)
}
func (s *stubReviewsAPI) ForUser(ctx context.Context, userID string, page ports.PageInput) (*domain.UserReviews, error) {
	return s.forUserFn(ctx, userID, page)
}

// --- Auth state stub ---

type stubAuthState struct {
	snap      domain.AuthSnapshot
	refreshFn func(ctx context.Context) error
	resets    int
	refreshes int
	logouts   int
}

func (s *stubAuthState) Snapshot() domain.AuthSnapshot              { return s.snap }
func (s *stubAuthState) Ensure(context.Context) domain.AuthSnapshot { return s.snap }
func (s *stubAuthState) Logout(context.Context)                     { s.logouts++ }
func (s *stubAuthState) Reset()                                     { s.resets++ }
func (s *stubAuthState) RefreshUser(ctx context.Context) error {
	s.refreshes++
	if s.refreshFn == nil {
		return nil
	}
	return s.refreshFn(ctx)
}
