package ports

import (
	"context"
	"time"

	"github.com/skillswap/skillswap-web/internal/core/domain"
)

// VerifyInput is the OAuth identity handed to the API on sign-in.
type VerifyInput struct {
	Provider  string `json:"provider"`
	OAuthID   string `json:"oauth_id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// UpdateProfileInput carries a partial profile update; nil fields are left untouched.
type UpdateProfileInput struct {
	Name      *string `json:"name,omitempty"`
	Bio       *string `json:"bio,omitempty"`
	Timezone  *string `json:"timezone,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

// AvatarFile is an image to upload as the profile avatar.
type AvatarFile struct {
	Filename    string
	ContentType string
	Content     []byte
}

type ListSkillsInput struct {
	Category string
	Search   string
}

// AddSkillInput attaches a skill to the current profile. Exactly one of
// SkillID and CustomSkillName is expected by the API.
type AddSkillInput struct {
	SkillID          *int64                  `json:"skill_id,omitempty"`
	CustomSkillName  string                  `json:"custom_skill_name,omitempty"`
	SkillType        domain.SkillType        `json:"skill_type"`
	ProficiencyLevel domain.ProficiencyLevel `json:"proficiency_level"`
}

type SearchUsersInput struct {
	Skill string
	Type  string // optional: TEACH or LEARN
	Page  int
	Limit int
}

type ParticipantInput struct {
	UserID string                 `json:"user_id"`
	Role   domain.ParticipantRole `json:"role"`
}

type CreateSessionInput struct {
	Title           string             `json:"title"`
	Description     string             `json:"description,omitempty"`
	SkillID         *int64             `json:"skill_id,omitempty"`
	CustomSkillName string             `json:"custom_skill_name,omitempty"`
	SessionType     domain.SessionType `json:"session_type"`
	ScheduledStart  time.Time          `json:"scheduled_start"`
	ScheduledEnd    time.Time          `json:"scheduled_end"`
	Participants    []ParticipantInput `json:"participants"`
}

type ListSessionsInput struct {
	Status   domain.SessionStatus
	Upcoming bool
	Past     bool
}

type CreateReviewInput struct {
	SessionID  string `json:"session_id"`
	RevieweeID string `json:"reviewee_id"`
	Rating     int    `json:"rating"`
	ReviewText string `json:"review_text,omitempty"`
}

// PageInput selects a page of a list endpoint; zero values are omitted.
type PageInput struct {
	Page  int
	Limit int
}

// AuthAPI covers session handoff with the SkillSwap API.
type AuthAPI interface {
	Verify(ctx context.Context, in VerifyInput) error
	Refresh(ctx context.Context) error
	Logout(ctx context.Context) error
}

type UsersAPI interface {
	GetMe(ctx context.Context) (*domain.User, error)
	UpdateMe(ctx context.Context, in UpdateProfileInput) (*domain.User, error)
	GetByID(ctx context.Context, userID string) (*domain.User, error)
	UploadAvatar(ctx context.Context, file AvatarFile) (*domain.AvatarUpload, error)
}

type SkillsAPI interface {
	List(ctx context.Context, in ListSkillsInput) ([]domain.Skill, error)
	AddToProfile(ctx context.Context, in AddSkillInput) (*domain.UserSkill, error)
	RemoveFromProfile(ctx context.Context, userSkillID int64) error
}

type MatchesAPI interface {
	Suggestions(ctx context.Context, limit int) ([]domain.MatchSuggestion, error)
	Search(ctx context.Context, in SearchUsersInput) (*domain.UserSearchResult, error)
	Create(ctx context.Context, userID string) (*domain.Match, error)
	List(ctx context.Context, status domain.MatchStatus) ([]domain.Match, error)
}

type SessionsAPI interface {
	Create(ctx context.Context, in CreateSessionInput) (*domain.Session, error)
	List(ctx context.Context, in ListSessionsInput) ([]domain.Session, error)
	Get(ctx context.Context, sessionID string) (*domain.Session, error)
	Cancel(ctx context.Context, sessionID string) error
	UpdateParticipant(ctx context.Context, sessionID, userID string, status domain.ParticipantStatus) error
}

type MessagesAPI interface {
	Send(ctx context.Context, recipientID, content string) (*domain.Message, error)
	Conversation(ctx context.Context, userID string, page PageInput) (*domain.ConversationPage, error)
	Conversations(ctx context.Context) ([]domain.Conversation, error)
	MarkRead(ctx context.Context, messageID int64) error
	UnreadCount(ctx context.Context) (*domain.UnreadCount, error)
}

type ReviewsAPI interface {
	Create(ctx context.Context, in CreateReviewInput) (*domain.Review, error)
	ForUser(ctx context.Context, userID string, page PageInput) (*domain.UserReviews, error)
}

// Catalog groups every SkillSwap API operation the pages may call.
type Catalog struct {
	Auth     AuthAPI
	Users    UsersAPI
	Skills   SkillsAPI
	Matches  MatchesAPI
	Sessions SessionsAPI
	Messages MessagesAPI
	Reviews  ReviewsAPI
}

// ReadReceipts marks incoming messages read without holding up the page.
type ReadReceipts interface {
	// Enqueue schedules messageIDs and returns how many were accepted.
	Enqueue(ctx context.Context, peerID string, messageIDs ...int64) int
}
