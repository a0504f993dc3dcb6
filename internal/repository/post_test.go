package repository

import (
	"context"
	"testing"

	"devconnector/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostCreateNormalizesCollections(t *testing.T) {
	env := newTestDB(t)
	ctx := context.Background()
	user := env.createUser(t, "ann@example.com")

	post := &models.Post{UserID: user.ID, Text: "hello", Name: user.Name, Avatar: user.Avatar}
	require.NoError(t, env.posts.Create(ctx, post))

	got, err := env.posts.GetByID(ctx, post.ID)
	require.NoError(t, err)
	// Empty collections serialize as [] rather than null.
	assert.NotNil(t, got.Likes)
	assert.NotNil(t, got.Comments)
	assert.Empty(t, got.Likes)
	assert.Empty(t, got.Comments)
}

func TestPostListNewestFirst(t *testing.T) {
	env := newTestDB(t)
	ctx := context.Background()
	user := env.createUser(t, "bob@example.com")

	for _, text := range []string{"first", "second", "third"} {
		require.NoError(t, env.posts.Create(ctx, &models.Post{
			UserID: user.ID, Text: text, Name: user.Name,
		}))
	}

	posts, err := env.posts.List(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, "third", posts[0].Text)
	assert.Equal(t, "first", posts[2].Text)
}

func TestLikeUniquePerUser(t *testing.T) {
	env := newTestDB(t)
	ctx := context.Background()
	author := env.createUser(t, "carol@example.com")

	post := &models.Post{UserID: author.ID, Text: "like me", Name: author.Name}
	require.NoError(t, env.posts.Create(ctx, post))

	require.NoError(t, env.posts.Like(ctx, author.ID, post.ID))

	err := env.posts.Like(ctx, author.ID, post.ID)
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, models.CodeConflict, appErr.Code)

	likes, err := env.posts.Likes(ctx, post.ID)
	require.NoError(t, err)
	assert.Len(t, likes, 1)
}

func TestUnlikeRemovesLike(t *testing.T) {
	env := newTestDB(t)
	ctx := context.Background()
	user := env.createUser(t, "dave@example.com")

	post := &models.Post{UserID: user.ID, Text: "toggle", Name: user.Name}
	require.NoError(t, env.posts.Create(ctx, post))
	require.NoError(t, env.posts.Like(ctx, user.ID, post.ID))

	liked, err := env.posts.IsLiked(ctx, user.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	require.NoError(t, env.posts.Unlike(ctx, user.ID, post.ID))

	liked, err = env.posts.IsLiked(ctx, user.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, liked)

	likes, err := env.posts.Likes(ctx, post.ID)
	require.NoError(t, err)
	assert.Empty(t, likes)
}

func TestCommentsNewestFirstAndScoped(t *testing.T) {
	env := newTestDB(t)
	ctx := context.Background()
	user := env.createUser(t, "erin@example.com")

	post := &models.Post{UserID: user.ID, Text: "discuss", Name: user.Name}
	require.NoError(t, env.posts.Create(ctx, post))
	other := &models.Post{UserID: user.ID, Text: "other", Name: user.Name}
	require.NoError(t, env.posts.Create(ctx, other))

	require.NoError(t, env.posts.AddComment(ctx, &models.Comment{
		PostID: post.ID, UserID: user.ID, Text: "one", Name: user.Name,
	}))
	require.NoError(t, env.posts.AddComment(ctx, &models.Comment{
		PostID: post.ID, UserID: user.ID, Text: "two", Name: user.Name,
	}))
	require.NoError(t, env.posts.AddComment(ctx, &models.Comment{
		PostID: other.ID, UserID: user.ID, Text: "elsewhere", Name: user.Name,
	}))

	comments, err := env.posts.Comments(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "two", comments[0].Text)
	assert.Equal(t, "one", comments[1].Text)

	// A comment cannot be fetched through the wrong post.
	_, err = env.posts.GetComment(ctx, post.ID, comments[0].ID)
	require.NoError(t, err)
	_, err = env.posts.GetComment(ctx, other.ID, comments[0].ID)
	require.Error(t, err)
}

func TestDeletePostHidesFromList(t *testing.T) {
	env := newTestDB(t)
	ctx := context.Background()
	user := env.createUser(t, "frank@example.com")

	post := &models.Post{UserID: user.ID, Text: "ephemeral", Name: user.Name}
	require.NoError(t, env.posts.Create(ctx, post))
	require.NoError(t, env.posts.Delete(ctx, post.ID))

	_, err := env.posts.GetByID(ctx, post.ID)
	require.Error(t, err)

	posts, err := env.posts.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, posts)
}
