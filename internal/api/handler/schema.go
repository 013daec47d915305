package handler

import (
	"time"

	"github.com/skillswap/skillswap-web/internal/core/domain"
)

// errorResponse documents the error envelope rendered by the HTTP error handler.
type errorResponse struct {
	Error  string   `json:"error"`
	Code   string   `json:"code,omitempty"`
	Fields []string `json:"fields,omitempty"`
}

// --- Request types ---

type updateProfileRequest struct {
	Name     string `json:"name"     form:"name"     validate:"required,min=2,max=255"`
	Bio      string `json:"bio"      form:"bio"      validate:"max=999"`
	Timezone string `json:"timezone" form:"timezone" validate:"omitempty,timezone"`
}

type addSkillRequest struct {
	SkillID          *int64                  `json:"skill_id"          form:"skill_id"          validate:"omitempty,gt=0"`
	CustomSkillName  string                  `json:"custom_skill_name" form:"custom_skill_name" validate:"max=100"`
	SkillType        domain.SkillType        `json:"skill_type"        form:"skill_type"        validate:"required,oneof=TEACH LEARN"`
	ProficiencyLevel domain.ProficiencyLevel `json:"proficiency_level" form:"proficiency_level" validate:"required,oneof=BEGINNER INTERMEDIATE ADVANCED EXPERT"`
}

type connectRequest struct {
	UserID string `json:"user_id" form:"user_id" validate:"required"`
}

type sendMessageRequest struct {
	Content string `json:"content" form:"content" validate:"required,max=5000"`
}

type participantRequest struct {
	UserID string                 `json:"user_id" validate:"required"`
	Role   domain.ParticipantRole `json:"role"    validate:"required,oneof=TEACHER LEARNER"`
}

type createSessionRequest struct {
	Title           string               `json:"title"             validate:"required,max=255"`
	Description     string               `json:"description"       validate:"max=2000"`
	SkillID         *int64               `json:"skill_id"          validate:"omitempty,gt=0"`
	CustomSkillName string               `json:"custom_skill_name" validate:"max=100"`
	SessionType     domain.SessionType   `json:"session_type"      validate:"required,oneof=ONE_ON_ONE GROUP"`
	ScheduledStart  *time.Time           `json:"scheduled_start"   validate:"required"`
	ScheduledEnd    *time.Time           `json:"scheduled_end"     validate:"required"`
	Participants    []participantRequest `json:"participants"      validate:"dive"`
}

type respondRequest struct {
	Status domain.ParticipantStatus `json:"status" form:"status" validate:"required,oneof=ACCEPTED DECLINED"`
}

type reviewRequest struct {
	RevieweeID string `json:"reviewee_id" form:"reviewee_id" validate:"required"`
	Rating     int    `json:"rating"      form:"rating"      validate:"required,min=1,max=5"`
	ReviewText string `json:"review_text" form:"review_text" validate:"max=2000"`
}

// --- Response types ---

type landingResponse struct {
	Name    string `json:"name"`
	Tagline string `json:"tagline"`
	SignIn  string `json:"sign_in"`
}

type signInResponse struct {
	Providers []signInProvider `json:"providers"`
}

type signInProvider struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type dashboardResponse struct {
	User             *domain.User             `json:"user"`
	UpcomingSessions []domain.Session         `json:"upcoming_sessions"`
	Suggestions      []domain.MatchSuggestion `json:"suggestions"`
	UnreadMessages   int                      `json:"unread_messages"`
}

type matchesResponse struct {
	Suggestions []domain.MatchSuggestion `json:"suggestions"`
	Connections []domain.Match           `json:"connections"`
	Pending     []domain.Match           `json:"pending"`
}

type searchResponse struct {
	Query   string                   `json:"query"`
	Skills  []domain.Skill           `json:"skills"`
	Results *domain.UserSearchResult `json:"results,omitempty"`
}

type conversationsResponse struct {
	Conversations []domain.Conversation `json:"conversations"`
}

type conversationResponse struct {
	With        *domain.User       `json:"with"`
	Messages    []domain.Message   `json:"messages"`
	Pagination  *domain.Pagination `json:"pagination,omitempty"`
	QueuedReads int                `json:"queued_reads"`
}

type profileResponse struct {
	User    *domain.User        `json:"user"`
	IsOwn   bool                `json:"is_own"`
	Reviews *domain.UserReviews `json:"reviews"`
}

type sessionsResponse struct {
	Tab      string           `json:"tab"`
	Sessions []domain.Session `json:"sessions"`
}

type sessionDetailResponse struct {
	Session       *domain.Session            `json:"session"`
	CanJoin       bool                       `json:"can_join"`
	CanCancel     bool                       `json:"can_cancel"`
	IsCreator     bool                       `json:"is_creator"`
	Participation *domain.SessionParticipant `json:"participation,omitempty"`
	CanReview     bool                       `json:"can_review"`
}
