package appstate

import "devconnector/internal/models"

// Action tags a state transition with an optional payload. Reducers ignore
// tags they do not handle.
type Action struct {
	Type    string
	Payload any
}

// Auth slice actions.
const (
	UserLoaded      = "auth/user_loaded"      // payload *models.User
	AuthError       = "auth/error"            // payload string (message)
	LoginSuccess    = "auth/login_success"    // payload string (token)
	RegisterSuccess = "auth/register_success" // payload string (token)
	Logout          = "auth/logout"
	AccountDeleted  = "auth/account_deleted"
)

// Profile slice actions.
const (
	ProfileLoaded  = "profile/loaded"       // payload *models.Profile
	ProfilesLoaded = "profile/list_loaded"  // payload []models.Profile
	ReposLoaded    = "profile/repos_loaded" // payload []GithubRepo
	ProfileError   = "profile/error"        // payload string
	ProfileCleared = "profile/cleared"
)

// Post slice actions.
const (
	PostsLoaded     = "post/list_loaded" // payload []models.Post
	PostLoaded      = "post/loaded"      // payload *models.Post
	PostAdded       = "post/added"       // payload *models.Post
	PostDeleted     = "post/deleted"     // payload uint (post id)
	LikesUpdated    = "post/likes_updated"
	CommentsUpdated = "post/comments_updated"
	PostError       = "post/error" // payload string
)

// Alert slice actions.
const (
	AlertSet     = "alert/set"    // payload Alert
	AlertRemoved = "alert/remove" // payload string (alert id)
)

// LikesPayload carries a post's refreshed like collection.
type LikesPayload struct {
	PostID uint
	Likes  []models.Like
}

// CommentsPayload carries a post's refreshed comment collection.
type CommentsPayload struct {
	PostID   uint
	Comments []models.Comment
}
