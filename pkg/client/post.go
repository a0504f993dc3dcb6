package client

import (
	"context"
	"fmt"
	"net/http"

	"devconnector/internal/models"
	"devconnector/pkg/appstate"
)

// FetchPosts loads the feed, newest first.
func (c *Client) FetchPosts(ctx context.Context) error {
	var posts []models.Post
	if err := c.do(ctx, http.MethodGet, "/api/post", nil, &posts); err != nil {
		c.store.Dispatch(appstate.Action{Type: appstate.PostError, Payload: err.Error()})
		return err
	}
	c.store.Dispatch(appstate.Action{Type: appstate.PostsLoaded, Payload: posts})
	return nil
}

// FetchPost loads a single post with its likes and comments.
func (c *Client) FetchPost(ctx context.Context, postID uint) error {
	var post models.Post
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/post/%d", postID), nil, &post); err != nil {
		c.store.Dispatch(appstate.Action{Type: appstate.PostError, Payload: err.Error()})
		return err
	}
	c.store.Dispatch(appstate.Action{Type: appstate.PostLoaded, Payload: &post})
	return nil
}

// CreatePost publishes a new post and puts it at the head of the feed.
func (c *Client) CreatePost(ctx context.Context, text string) error {
	body := map[string]string{"text": text}
	var post models.Post
	if err := c.do(ctx, http.MethodPost, "/api/post", body, &post); err != nil {
		c.store.Dispatch(appstate.Action{Type: appstate.PostError, Payload: err.Error()})
		c.alert(err.Error(), appstate.AlertDanger)
		return err
	}
	c.store.Dispatch(appstate.Action{Type: appstate.PostAdded, Payload: &post})
	c.alert("Post created", appstate.AlertSuccess)
	return nil
}

// DeletePost removes the caller's post from the feed.
func (c *Client) DeletePost(ctx context.Context, postID uint) error {
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/post/%d", postID), nil, nil); err != nil {
		c.store.Dispatch(appstate.Action{Type: appstate.PostError, Payload: err.Error()})
		return err
	}
	c.store.Dispatch(appstate.Action{Type: appstate.PostDeleted, Payload: postID})
	return nil
}

// LikePost likes a post and refreshes its like collection.
func (c *Client) LikePost(ctx context.Context, postID uint) error {
	return c.updateLikes(ctx, fmt.Sprintf("/api/post/like/%d", postID), postID)
}

// UnlikePost removes the caller's like and refreshes the collection.
func (c *Client) UnlikePost(ctx context.Context, postID uint) error {
	return c.updateLikes(ctx, fmt.Sprintf("/api/post/unlike/%d", postID), postID)
}

func (c *Client) updateLikes(ctx context.Context, path string, postID uint) error {
	var likes []models.Like
	if err := c.do(ctx, http.MethodPut, path, nil, &likes); err != nil {
		c.store.Dispatch(appstate.Action{Type: appstate.PostError, Payload: err.Error()})
		return err
	}
	c.store.Dispatch(appstate.Action{
		Type:    appstate.LikesUpdated,
		Payload: appstate.LikesPayload{PostID: postID, Likes: likes},
	})
	return nil
}

// AddComment adds a comment and refreshes the post's comment collection.
func (c *Client) AddComment(ctx context.Context, postID uint, text string) error {
	body := map[string]string{"text": text}
	var comments []models.Comment
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/post/comment/%d", postID), body, &comments); err != nil {
		c.store.Dispatch(appstate.Action{Type: appstate.PostError, Payload: err.Error()})
		return err
	}
	c.store.Dispatch(appstate.Action{
		Type:    appstate.CommentsUpdated,
		Payload: appstate.CommentsPayload{PostID: postID, Comments: comments},
	})
	return nil
}

// RemoveComment deletes the caller's comment and refreshes the collection.
func (c *Client) RemoveComment(ctx context.Context, postID, commentID uint) error {
	var comments []models.Comment
	path := fmt.Sprintf("/api/post/comment/%d/%d", postID, commentID)
	if err := c.do(ctx, http.MethodDelete, path, nil, &comments); err != nil {
		c.store.Dispatch(appstate.Action{Type: appstate.PostError, Payload: err.Error()})
		return err
	}
	c.store.Dispatch(appstate.Action{
		Type:    appstate.CommentsUpdated,
		Payload: appstate.CommentsPayload{PostID: postID, Comments: comments},
	})
	return nil
}
