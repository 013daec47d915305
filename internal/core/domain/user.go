package domain

import "time"

// ProficiencyLevel grades how well a user knows a skill.
type ProficiencyLevel string

const (
	ProficiencyBeginner     ProficiencyLevel = "BEGINNER"
	ProficiencyIntermediate ProficiencyLevel = "INTERMEDIATE"
	ProficiencyAdvanced     ProficiencyLevel = "ADVANCED"
	ProficiencyExpert       ProficiencyLevel = "EXPERT"
)

// SkillType says whether a profile skill is offered or wanted.
type SkillType string

const (
	SkillTeach SkillType = "TEACH"
	SkillLearn SkillType = "LEARN"
)

// User is a member profile as returned by the SkillSwap API.
type User struct {
	ID            string      `json:"id"`
	Email         string      `json:"email"`
	Name          string      `json:"name"`
	AvatarURL     string      `json:"avatar_url,omitempty"`
	Bio           string      `json:"bio,omitempty"`
	Timezone      string      `json:"timezone,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	SkillsTeach   []UserSkill `json:"skills_teach,omitempty"`
	SkillsLearn   []UserSkill `json:"skills_learn,omitempty"`
	AverageRating *float64    `json:"average_rating,omitempty"`
	TotalSessions *int        `json:"total_sessions,omitempty"`
}

// UserSkill is a skill attached to a profile.
type UserSkill struct {
	ID               int64            `json:"id"`
	SkillName        string           `json:"skill_name"`
	IsPredefined     bool             `json:"is_predefined"`
	ProficiencyLevel ProficiencyLevel `json:"proficiency_level"`
}

// UserSummary is the compact user shape embedded in suggestions and reviews.
type UserSummary struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	AvatarURL     string   `json:"avatar_url,omitempty"`
	Bio           string   `json:"bio,omitempty"`
	AverageRating *float64 `json:"average_rating,omitempty"`
}

// AvatarUpload is the result of a successful avatar upload.
type AvatarUpload struct {
	AvatarURL string `json:"avatar_url"`
}
