package appstate

import "devconnector/internal/models"

// Reduce applies an action to the full state tree. It is pure and total:
// input state is never mutated and unhandled tags fall through unchanged.
func Reduce(s State, a Action) State {
	return State{
		Auth:    reduceAuth(s.Auth, a),
		Profile: reduceProfile(s.Profile, a),
		Post:    reducePost(s.Post, a),
		Alert:   reduceAlert(s.Alert, a),
	}
}

// reduceAuth implements the authentication state machine: unknown moves
// to authenticated or anonymous on the first load-user result, and any
// auth failure or logout drops back to anonymous with the token wiped.
func reduceAuth(s AuthState, a Action) AuthState {
	switch a.Type {
	case UserLoaded:
		user, _ := a.Payload.(*models.User)
		return AuthState{
			Status: AuthAuthenticated,
			Token:  s.Token,
			User:   user,
		}
	case LoginSuccess, RegisterSuccess:
		token, _ := a.Payload.(string)
		return AuthState{
			Status: s.Status,
			Token:  token,
			User:   s.User,
		}
	case AuthError, Logout, AccountDeleted:
		return AuthState{Status: AuthAnonymous}
	default:
		return s
	}
}

func reduceProfile(s ProfileState, a Action) ProfileState {
	switch a.Type {
	case ProfileLoaded:
		profile, _ := a.Payload.(*models.Profile)
		return ProfileState{
			Current:  profile,
			Profiles: s.Profiles,
			Repos:    s.Repos,
		}
	case ProfilesLoaded:
		profiles, _ := a.Payload.([]models.Profile)
		return ProfileState{
			Current:  s.Current,
			Profiles: profiles,
			Repos:    s.Repos,
		}
	case ReposLoaded:
		repos, _ := a.Payload.([]GithubRepo)
		return ProfileState{
			Current:  s.Current,
			Profiles: s.Profiles,
			Repos:    repos,
		}
	case ProfileError:
		msg, _ := a.Payload.(string)
		return ProfileState{
			Profiles: s.Profiles,
			Error:    msg,
		}
	case ProfileCleared, Logout, AccountDeleted, AuthError:
		return ProfileState{}
	default:
		return s
	}
}

func reducePost(s PostState, a Action) PostState {
	switch a.Type {
	case PostsLoaded:
		posts, _ := a.Payload.([]models.Post)
		return PostState{Posts: posts, Current: s.Current}
	case PostLoaded:
		post, _ := a.Payload.(*models.Post)
		return PostState{Posts: s.Posts, Current: post}
	case PostAdded:
		post, _ := a.Payload.(*models.Post)
		next := PostState{Current: s.Current}
		if post != nil {
			// New posts go to the head of the feed.
			next.Posts = append([]models.Post{*post}, s.Posts...)
		} else {
			next.Posts = s.Posts
		}
		return next
	case PostDeleted:
		postID, _ := a.Payload.(uint)
		next := PostState{Current: s.Current}
		for _, p := range s.Posts {
			if p.ID != postID {
				next.Posts = append(next.Posts, p)
			}
		}
		if s.Current != nil && s.Current.ID == postID {
			next.Current = nil
		}
		return next
	case LikesUpdated:
		payload, ok := a.Payload.(LikesPayload)
		if !ok {
			return s
		}
		return PostState{
			Posts:   postsWithLikes(s.Posts, payload),
			Current: currentWithLikes(s.Current, payload),
		}
	case CommentsUpdated:
		payload, ok := a.Payload.(CommentsPayload)
		if !ok {
			return s
		}
		next := PostState{Posts: s.Posts, Current: s.Current}
		if s.Current != nil && s.Current.ID == payload.PostID {
			updated := *s.Current
			updated.Comments = payload.Comments
			next.Current = &updated
		}
		return next
	case PostError:
		msg, _ := a.Payload.(string)
		return PostState{Posts: s.Posts, Current: s.Current, Error: msg}
	case Logout, AccountDeleted, AuthError:
		return PostState{}
	default:
		return s
	}
}

func reduceAlert(s AlertState, a Action) AlertState {
	switch a.Type {
	case AlertSet:
		alert, ok := a.Payload.(Alert)
		if !ok {
			return s
		}
		next := AlertState{Alerts: make([]Alert, 0, len(s.Alerts)+1)}
		next.Alerts = append(next.Alerts, s.Alerts...)
		next.Alerts = append(next.Alerts, alert)
		return next
	case AlertRemoved:
		id, _ := a.Payload.(string)
		next := AlertState{}
		for _, alert := range s.Alerts {
			if alert.ID != id {
				next.Alerts = append(next.Alerts, alert)
			}
		}
		return next
	default:
		return s
	}
}

func postsWithLikes(posts []models.Post, payload LikesPayload) []models.Post {
	next := make([]models.Post, len(posts))
	for i, p := range posts {
		if p.ID == payload.PostID {
			p.Likes = payload.Likes
		}
		next[i] = p
	}
	return next
}

func currentWithLikes(current *models.Post, payload LikesPayload) *models.Post {
	if current == nil || current.ID != payload.PostID {
		return current
	}
	updated := *current
	updated.Likes = payload.Likes
	return &updated
}
