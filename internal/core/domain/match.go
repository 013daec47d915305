package domain

import "time"

// MatchStatus is the state of a connection request between two users.
type MatchStatus string

const (
	MatchPending  MatchStatus = "PENDING"
	MatchAccepted MatchStatus = "ACCEPTED"
	MatchDeclined MatchStatus = "DECLINED"
	MatchBlocked  MatchStatus = "BLOCKED"
)

// MatchSuggestion is a peer proposed by the backend matching engine.
// MatchScore is computed remotely and lies in [0,1].
type MatchSuggestion struct {
	User           UserSummary     `json:"user"`
	MatchScore     float64         `json:"match_score"`
	MatchingSkills []MatchingSkill `json:"matching_skills"`
}

// MatchingSkill pairs one of your skills with one of theirs.
type MatchingSkill struct {
	YourSkill  string  `json:"your_skill"`
	TheirSkill string  `json:"their_skill"`
	Similarity float64 `json:"similarity"`
	YouTeach   bool    `json:"you_teach"`
	TheyLearn  bool    `json:"they_learn"`
}

// Match is an existing connection with another user.
type Match struct {
	MatchID   int64       `json:"match_id"`
	Status    MatchStatus `json:"status"`
	MatchedAt time.Time   `json:"matched_at"`
	UserID    string      `json:"user_id"`
	Name      string      `json:"name"`
	AvatarURL string      `json:"avatar_url,omitempty"`
	Bio       string      `json:"bio,omitempty"`
}

// UserSearchResult is one page of the skill-based user search.
type UserSearchResult struct {
	Users      []UserSummary `json:"users"`
	Pagination Pagination    `json:"pagination"`
}
