package server

import (
	"devconnector/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetGithubRepos handles GET /api/profile/github/:username. It proxies
// the user's five most recently created public repositories.
func (s *Server) GetGithubRepos(c *fiber.Ctx) error {
	username := c.Params("username")
	if username == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Username is required"))
	}

	repos, err := s.github.ListRepos(c.Context(), username)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(repos)
}
