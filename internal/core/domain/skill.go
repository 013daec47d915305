package domain

// Skill is an entry of the predefined skill catalog.
type Skill struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
}
