package server

import (
	"devconnector/internal/models"
	"devconnector/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/post
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var in service.CreatePostInput
	if err := c.BodyParser(&in); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	in.UserID = currentUserID(c)

	post, err := s.postService.CreatePost(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(post)
}

// GetPosts handles GET /api/post, newest first.
func (s *Server) GetPosts(c *fiber.Ctx) error {
	posts, err := s.postService.ListPosts(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(posts)
}

// GetPost handles GET /api/post/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, svcErr := s.postService.GetPost(c.Context(), postID)
	if svcErr != nil {
		return respondError(c, svcErr)
	}
	return c.JSON(post)
}

// DeletePost handles DELETE /api/post/:id. Author only.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if svcErr := s.postService.DeletePost(c.Context(), currentUserID(c), postID); svcErr != nil {
		return respondError(c, svcErr)
	}
	return c.JSON(fiber.Map{
		"message": "Post removed",
	})
}

// LikePost handles PUT /api/post/like/:id and returns the post's likes.
func (s *Server) LikePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	likes, svcErr := s.postService.LikePost(c.Context(), currentUserID(c), postID)
	if svcErr != nil {
		return respondError(c, svcErr)
	}
	return c.JSON(likes)
}

// UnlikePost handles PUT /api/post/unlike/:id and returns the remaining likes.
func (s *Server) UnlikePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	likes, svcErr := s.postService.UnlikePost(c.Context(), currentUserID(c), postID)
	if svcErr != nil {
		return respondError(c, svcErr)
	}
	return c.JSON(likes)
}

// AddComment handles POST /api/post/comment/:id and returns the post's
// comments, newest first.
func (s *Server) AddComment(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var in service.AddCommentInput
	if parseErr := c.BodyParser(&in); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	in.UserID = currentUserID(c)
	in.PostID = postID

	comments, svcErr := s.postService.AddComment(c.Context(), in)
	if svcErr != nil {
		return respondError(c, svcErr)
	}
	return c.JSON(comments)
}

// RemoveComment handles DELETE /api/post/comment/:id/:commentId. Comment
// author only.
func (s *Server) RemoveComment(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}

	comments, svcErr := s.postService.RemoveComment(c.Context(), currentUserID(c), postID, commentID)
	if svcErr != nil {
		return respondError(c, svcErr)
	}
	return c.JSON(comments)
}
