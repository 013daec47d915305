package domain

import "time"

// Review is feedback left after a completed session.
type Review struct {
	ID         int64         `json:"id"`
	Reviewer   UserSummary   `json:"reviewer"`
	Rating     int           `json:"rating"`
	ReviewText string        `json:"review_text,omitempty"`
	Session    ReviewSession `json:"session"`
	CreatedAt  time.Time     `json:"created_at"`
}

type ReviewSession struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	SkillName string `json:"skill_name,omitempty"`
}

// UserReviews is the reviews page of a profile.
type UserReviews struct {
	Reviews       []Review    `json:"reviews"`
	AverageRating *float64    `json:"average_rating,omitempty"`
	TotalReviews  int         `json:"total_reviews"`
	Pagination    *Pagination `json:"pagination,omitempty"`
}
