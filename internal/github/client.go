// Package github proxies repository listings from the GitHub API so the
// client never needs GitHub credentials of its own.
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"devconnector/internal/cache"
	"devconnector/internal/models"
	"devconnector/internal/observability"

	"go.opentelemetry.io/otel/attribute"
)

const (
	baseURL        = "https://api.github.com"
	requestTimeout = 10 * time.Second
	perPage        = 5
)

// Repo is the subset of GitHub's repository payload exposed to clients.
type Repo struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	FullName    string `json:"full_name"`
	HTMLURL     string `json:"html_url"`
	Description string `json:"description"`
	Stars       int    `json:"stargazers_count"`
	Watchers    int    `json:"watchers_count"`
	Forks       int    `json:"forks_count"`
	CreatedAt   string `json:"created_at"`
}

// Client fetches public repositories for a GitHub username.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	clientID     string
	clientSecret string
}

// NewClient creates a GitHub API client. Credentials are optional and
// only raise the API rate limit when present.
func NewClient(clientID, clientSecret string) *Client {
	return &Client{
		httpClient:   &http.Client{Timeout: requestTimeout},
		baseURL:      baseURL,
		clientID:     clientID,
		clientSecret: clientSecret,
	}
}

// NewClientWithBaseURL creates a client against a custom endpoint, used
// by tests to point at a local server.
func NewClientWithBaseURL(base string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		baseURL:    base,
	}
}

// ListRepos returns the user's five most recently created public
// repositories. Unknown usernames map to a not-found error and an
// unresponsive upstream maps to a timeout error.
func (c *Client) ListRepos(ctx context.Context, username string) ([]Repo, error) {
	var repos []Repo
	err := cache.Aside(ctx, cache.GithubKey(username), &repos, cache.GithubTTL, func() error {
		fetched, fetchErr := c.fetchRepos(ctx, username)
		if fetchErr != nil {
			return fetchErr
		}
		repos = fetched
		return nil
	})
	if err != nil {
		return nil, err
	}
	return repos, nil
}

func (c *Client) fetchRepos(ctx context.Context, username string) (repos []Repo, err error) {
	span, ctx := observability.NewSpan(ctx, "github.fetch_repos")
	span.AddAttributes(attribute.String("github.username", username))
	defer func() {
		span.SetError(err)
		span.End()
	}()

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	endpoint := fmt.Sprintf("%s/users/%s/repos", c.baseURL, url.PathEscape(username))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	q := req.URL.Query()
	q.Set("per_page", fmt.Sprintf("%d", perPage))
	q.Set("sort", "created:asc")
	if c.clientID != "" {
		q.Set("client_id", c.clientID)
		q.Set("client_secret", c.clientSecret)
	}
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", "devconnector-api")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, models.NewTimeoutError("github request timed out")
		}
		var urlErr *url.Error
		if errors.As(err, &urlErr) && urlErr.Timeout() {
			return nil, models.NewTimeoutError("github request timed out")
		}
		return nil, models.NewInternalError(err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, models.NewNotFoundError("github profile", username)
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, models.NewInternalError(fmt.Errorf("github responded %d: %s", resp.StatusCode, body))
	}

	if decodeErr := json.NewDecoder(resp.Body).Decode(&repos); decodeErr != nil {
		return nil, models.NewInternalError(fmt.Errorf("decoding github response: %w", decodeErr))
	}
	if repos == nil {
		repos = []Repo{}
	}
	return repos, nil
}
