package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"devconnector/internal/models"
	"devconnector/pkg/appstate"
)

// FetchProfiles loads the public profile list.
func (c *Client) FetchProfiles(ctx context.Context) error {
	var profiles []models.Profile
	if err := c.do(ctx, http.MethodGet, "/api/profile", nil, &profiles); err != nil {
		c.store.Dispatch(appstate.Action{Type: appstate.ProfileError, Payload: err.Error()})
		return err
	}
	c.store.Dispatch(appstate.Action{Type: appstate.ProfilesLoaded, Payload: profiles})
	return nil
}

// FetchMyProfile loads the caller's own profile.
func (c *Client) FetchMyProfile(ctx context.Context) error {
	return c.fetchProfile(ctx, "/api/profile/me")
}

// FetchProfileByUserID loads another user's profile.
func (c *Client) FetchProfileByUserID(ctx context.Context, userID uint) error {
	return c.fetchProfile(ctx, fmt.Sprintf("/api/profile/user/%d", userID))
}

func (c *Client) fetchProfile(ctx context.Context, path string) error {
	var profile models.Profile
	if err := c.do(ctx, http.MethodGet, path, nil, &profile); err != nil {
		c.store.Dispatch(appstate.Action{Type: appstate.ProfileError, Payload: err.Error()})
		return err
	}
	c.store.Dispatch(appstate.Action{Type: appstate.ProfileLoaded, Payload: &profile})
	return nil
}

// ProfileForm carries the upsert fields. Skills is comma-delimited.
type ProfileForm struct {
	Company        string `json:"company"`
	Website        string `json:"website"`
	Location       string `json:"location"`
	Status         string `json:"status"`
	Skills         string `json:"skills"`
	Bio            string `json:"bio"`
	GithubUsername string `json:"github_username"`
	Youtube        string `json:"youtube"`
	Twitter        string `json:"twitter"`
	Facebook       string `json:"facebook"`
	Linkedin       string `json:"linkedin"`
	Instagram      string `json:"instagram"`
}

// UpsertProfile creates or replaces the caller's profile.
func (c *Client) UpsertProfile(ctx context.Context, form ProfileForm) error {
	var profile models.Profile
	if err := c.do(ctx, http.MethodPost, "/api/profile", form, &profile); err != nil {
		c.store.Dispatch(appstate.Action{Type: appstate.ProfileError, Payload: err.Error()})
		c.alert(err.Error(), appstate.AlertDanger)
		return err
	}
	c.store.Dispatch(appstate.Action{Type: appstate.ProfileLoaded, Payload: &profile})
	c.alert("Profile updated", appstate.AlertSuccess)
	return nil
}

// ExperienceForm carries a new experience entry.
type ExperienceForm struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	From        string `json:"from"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

// AddExperience appends an experience entry to the caller's profile.
func (c *Client) AddExperience(ctx context.Context, form ExperienceForm) error {
	return c.updateProfile(ctx, http.MethodPut, "/api/profile/experience", form)
}

// RemoveExperience deletes an experience entry by id.
func (c *Client) RemoveExperience(ctx context.Context, entryID uint) error {
	return c.updateProfile(ctx, http.MethodDelete, fmt.Sprintf("/api/profile/experience/%d", entryID), nil)
}

// EducationForm carries a new education entry.
type EducationForm struct {
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"field_of_study"`
	From         string `json:"from"`
	To           string `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

// AddEducation appends an education entry to the caller's profile.
func (c *Client) AddEducation(ctx context.Context, form EducationForm) error {
	return c.updateProfile(ctx, http.MethodPut, "/api/profile/education", form)
}

// RemoveEducation deletes an education entry by id.
func (c *Client) RemoveEducation(ctx context.Context, entryID uint) error {
	return c.updateProfile(ctx, http.MethodDelete, fmt.Sprintf("/api/profile/education/%d", entryID), nil)
}

func (c *Client) updateProfile(ctx context.Context, method, path string, body any) error {
	var profile models.Profile
	if err := c.do(ctx, method, path, body, &profile); err != nil {
		c.store.Dispatch(appstate.Action{Type: appstate.ProfileError, Payload: err.Error()})
		return err
	}
	c.store.Dispatch(appstate.Action{Type: appstate.ProfileLoaded, Payload: &profile})
	return nil
}

// FetchGithubRepos loads the proxied repositories for a GitHub username.
func (c *Client) FetchGithubRepos(ctx context.Context, username string) error {
	var repos []appstate.GithubRepo
	path := "/api/profile/github/" + url.PathEscape(username)
	if err := c.do(ctx, http.MethodGet, path, nil, &repos); err != nil {
		c.store.Dispatch(appstate.Action{Type: appstate.ProfileError, Payload: err.Error()})
		return err
	}
	c.store.Dispatch(appstate.Action{Type: appstate.ReposLoaded, Payload: repos})
	return nil
}

// DeleteAccount removes the caller's account and everything it owns.
func (c *Client) DeleteAccount(ctx context.Context) error {
	if err := c.do(ctx, http.MethodDelete, "/api/profile", nil, nil); err != nil {
		c.alert(err.Error(), appstate.AlertDanger)
		return err
	}
	_ = c.tokens.Clear()
	c.store.Dispatch(appstate.Action{Type: appstate.AccountDeleted})
	return nil
}
