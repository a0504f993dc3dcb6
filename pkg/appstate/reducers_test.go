package appstate

import (
	"testing"

	"devconnector/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestAuthStateMachine(t *testing.T) {
	tests := []struct {
		name       string
		start      AuthState
		action     Action
		wantStatus AuthStatus
		wantToken  string
	}{
		{
			name:       "Unknown to authenticated on user load",
			start:      AuthState{Status: AuthUnknown, Token: "tok"},
			action:     Action{Type: UserLoaded, Payload: &models.User{ID: 1}},
			wantStatus: AuthAuthenticated,
			wantToken:  "tok",
		},
		{
			name:       "Unknown to anonymous on auth error",
			start:      AuthState{Status: AuthUnknown},
			action:     Action{Type: AuthError, Payload: "bad token"},
			wantStatus: AuthAnonymous,
		},
		{
			name:       "Authenticated to anonymous on logout wipes token",
			start:      AuthState{Status: AuthAuthenticated, Token: "tok", User: &models.User{ID: 1}},
			action:     Action{Type: Logout},
			wantStatus: AuthAnonymous,
			wantToken:  "",
		},
		{
			name:       "Authenticated to anonymous on auth error wipes token",
			start:      AuthState{Status: AuthAuthenticated, Token: "tok"},
			action:     Action{Type: AuthError, Payload: "expired"},
			wantStatus: AuthAnonymous,
			wantToken:  "",
		},
		{
			name:       "Account deletion drops to anonymous",
			start:      AuthState{Status: AuthAuthenticated, Token: "tok"},
			action:     Action{Type: AccountDeleted},
			wantStatus: AuthAnonymous,
		},
		{
			name:       "Login stores token without changing status",
			start:      AuthState{Status: AuthUnknown},
			action:     Action{Type: LoginSuccess, Payload: "fresh"},
			wantStatus: AuthUnknown,
			wantToken:  "fresh",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := reduceAuth(tt.start, tt.action)
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.Equal(t, tt.wantToken, got.Token)
		})
	}
}

func TestReduceUnknownActionIsNoOp(t *testing.T) {
	state := NewState()
	state.Auth = AuthState{Status: AuthAuthenticated, Token: "tok"}
	state.Post = PostState{Posts: []models.Post{{ID: 1, Text: "hello"}}}

	got := Reduce(state, Action{Type: "bogus/action", Payload: 42})

	assert.Equal(t, state, got)
}

func TestReducePostSlice(t *testing.T) {
	t.Run("Added post goes to head of feed", func(t *testing.T) {
		start := PostState{Posts: []models.Post{{ID: 1}}}
		got := reducePost(start, Action{Type: PostAdded, Payload: &models.Post{ID: 2}})

		assert.Len(t, got.Posts, 2)
		assert.Equal(t, uint(2), got.Posts[0].ID)
		// Input state is untouched.
		assert.Len(t, start.Posts, 1)
	})

	t.Run("Deleted post leaves the feed", func(t *testing.T) {
		start := PostState{
			Posts:   []models.Post{{ID: 1}, {ID: 2}},
			Current: &models.Post{ID: 2},
		}
		got := reducePost(start, Action{Type: PostDeleted, Payload: uint(2)})

		assert.Len(t, got.Posts, 1)
		assert.Equal(t, uint(1), got.Posts[0].ID)
		assert.Nil(t, got.Current)
	})

	t.Run("Likes update targets only the matching post", func(t *testing.T) {
		start := PostState{Posts: []models.Post{{ID: 1}, {ID: 2}}}
		payload := LikesPayload{PostID: 2, Likes: []models.Like{{ID: 10, UserID: 7, PostID: 2}}}
		got := reducePost(start, Action{Type: LikesUpdated, Payload: payload})

		assert.Empty(t, got.Posts[0].Likes)
		assert.Len(t, got.Posts[1].Likes, 1)
	})

	t.Run("Logout clears the slice", func(t *testing.T) {
		start := PostState{Posts: []models.Post{{ID: 1}}}
		got := reducePost(start, Action{Type: Logout})
		assert.Empty(t, got.Posts)
	})
}

func TestReduceAlertSlice(t *testing.T) {
	alert := NewAlert("saved", AlertSuccess)
	state := reduceAlert(AlertState{}, Action{Type: AlertSet, Payload: alert})
	assert.Len(t, state.Alerts, 1)
	assert.NotEmpty(t, state.Alerts[0].ID)

	state = reduceAlert(state, Action{Type: AlertRemoved, Payload: alert.ID})
	assert.Empty(t, state.Alerts)
}

func TestStoreDispatchNotifiesSubscribers(t *testing.T) {
	store := NewStore()

	var seen []State
	unsubscribe := store.Subscribe(func(s State) {
		seen = append(seen, s)
	})

	store.Dispatch(Action{Type: LoginSuccess, Payload: "tok"})
	assert.Len(t, seen, 1)
	assert.Equal(t, "tok", seen[0].Auth.Token)

	unsubscribe()
	store.Dispatch(Action{Type: Logout})
	assert.Len(t, seen, 1)
	assert.Equal(t, AuthAnonymous, store.State().Auth.Status)
}
