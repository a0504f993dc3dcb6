// Package appstate implements the client-side state tree. Each slice
// changes only through a tagged action run through a pure reducer; the
// Store serializes dispatch and notifies subscribers.
package appstate

import "devconnector/internal/models"

// AuthStatus is the authentication slice's state machine position.
type AuthStatus string

const (
	// AuthUnknown is the startup state before the first load-user result.
	AuthUnknown AuthStatus = "unknown"
	// AuthAuthenticated means a valid token and user are loaded.
	AuthAuthenticated AuthStatus = "authenticated"
	// AuthAnonymous means no valid credential is held.
	AuthAnonymous AuthStatus = "anonymous"
)

// AuthState holds the authentication slice.
type AuthState struct {
	Status AuthStatus
	Token  string
	User   *models.User
}

// ProfileState holds the profile slice: the profile in focus, the browse
// list and proxied GitHub repositories.
type ProfileState struct {
	Current  *models.Profile
	Profiles []models.Profile
	Repos    []GithubRepo
	Loading  bool
	Error    string
}

// GithubRepo mirrors the API's proxied repository payload.
type GithubRepo struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	FullName    string `json:"full_name"`
	HTMLURL     string `json:"html_url"`
	Description string `json:"description"`
	Stars       int    `json:"stargazers_count"`
	Forks       int    `json:"forks_count"`
}

// PostState holds the post slice.
type PostState struct {
	Posts   []models.Post
	Current *models.Post
	Loading bool
	Error   string
}

// Alert is a transient user-facing notice.
type Alert struct {
	ID      string
	Message string
	Kind    string
}

// AlertState holds currently visible alerts.
type AlertState struct {
	Alerts []Alert
}

// State is the root state tree.
type State struct {
	Auth    AuthState
	Profile ProfileState
	Post    PostState
	Alert   AlertState
}

// NewState returns the initial state tree.
func NewState() State {
	return State{
		Auth: AuthState{Status: AuthUnknown},
		Profile: ProfileState{
			Loading: true,
		},
		Post: PostState{
			Loading: true,
		},
	}
}
