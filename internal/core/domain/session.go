package domain

import "time"

// SessionStatus represents the lifecycle state of a learning session.
// Transitions are driven by the SkillSwap API; the client only reads them.
type SessionStatus string

const (
	StatusScheduled  SessionStatus = "SCHEDULED"
	StatusInProgress SessionStatus = "IN_PROGRESS"
	StatusCompleted  SessionStatus = "COMPLETED"
	StatusCancelled  SessionStatus = "CANCELLED"
)

type SessionType string

const (
	SessionOneOnOne SessionType = "ONE_ON_ONE"
	SessionGroup    SessionType = "GROUP"
)

type ParticipantRole string

const (
	RoleTeacher ParticipantRole = "TEACHER"
	RoleLearner ParticipantRole = "LEARNER"
)

type ParticipantStatus string

const (
	ParticipantInvited  ParticipantStatus = "INVITED"
	ParticipantAccepted ParticipantStatus = "ACCEPTED"
	ParticipantDeclined ParticipantStatus = "DECLINED"
	ParticipantJoined   ParticipantStatus = "JOINED"
	ParticipantLeft     ParticipantStatus = "LEFT"
)

// JoinWindow is how long before its start a scheduled session can be joined.
const JoinWindow = 10 * time.Minute

// Session is a scheduled learning session.
type Session struct {
	ID             string               `json:"id"`
	Title          string               `json:"title"`
	Description    string               `json:"description,omitempty"`
	SkillName      string               `json:"skill_name,omitempty"`
	SessionType    SessionType          `json:"session_type"`
	ScheduledStart time.Time            `json:"scheduled_start"`
	ScheduledEnd   time.Time            `json:"scheduled_end"`
	ActualStart    *time.Time           `json:"actual_start,omitempty"`
	ActualEnd      *time.Time           `json:"actual_end,omitempty"`
	Status         SessionStatus        `json:"status"`
	WebRTCRoomID   string               `json:"webrtc_room_id,omitempty"`
	CreatedBy      string               `json:"created_by"`
	CreatedAt      time.Time            `json:"created_at"`
	Participants   []SessionParticipant `json:"participants,omitempty"`
}

// SessionParticipant is a user invited to a session.
type SessionParticipant struct {
	ID        int64             `json:"id"`
	Role      ParticipantRole   `json:"role"`
	Status    ParticipantStatus `json:"status"`
	JoinedAt  *time.Time        `json:"joined_at,omitempty"`
	LeftAt    *time.Time        `json:"left_at,omitempty"`
	UserID    string            `json:"user_id"`
	Name      string            `json:"name"`
	AvatarURL string            `json:"avatar_url,omitempty"`
}

// CanJoin reports whether the video room may be entered at now.
func (s *Session) CanJoin(now time.Time) bool {
	switch s.Status {
	case StatusInProgress:
		return true
	case StatusScheduled:
		return s.ScheduledStart.Sub(now) <= JoinWindow
	}
	return false
}

// CanCancel reports whether userID may cancel the session.
func (s *Session) CanCancel(userID string) bool {
	return s.CreatedBy == userID && s.Status == StatusScheduled
}

// Participant returns the participant entry for userID, if any.
func (s *Session) Participant(userID string) (SessionParticipant, bool) {
	for _, p := range s.Participants {
		if p.UserID == userID {
			return p, true
		}
	}
	return SessionParticipant{}, false
}
