package domain

// AuthSnapshot is a point-in-time copy of the cached identity.
type AuthSnapshot struct {
	User            *User `json:"user"`
	IsAuthenticated bool  `json:"is_authenticated"`
	IsLoading       bool  `json:"is_loading"`
}

// Identity is what an OAuth provider tells us about the signed-in person.
// It is handed to the API verbatim through the verify endpoint.
type Identity struct {
	Provider  string
	OAuthID   string
	Email     string
	Name      string
	AvatarURL string
}

// Navigation targets.
const (
	RootPath   = "/"
	SignInPath = "/auth/signin"
)
