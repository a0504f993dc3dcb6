// Package client is the orchestration layer between the REST API and the
// state container. It performs HTTP calls, dispatches plain result
// actions and never mutates state directly.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"devconnector/internal/models"
	"devconnector/pkg/appstate"
)

const authHeader = "x-auth-token"

// Client calls the API and feeds results into the store.
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      *appstate.Store
	tokens     appstate.TokenStore
}

// New creates a client against the given API base URL.
func New(baseURL string, store *appstate.Store, tokens appstate.TokenStore) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		store:      store,
		tokens:     tokens,
	}
}

// LoadUser rehydrates the persisted token and resolves the auth slice out
// of its unknown state. Call it once at startup before any authenticated
// request.
func (c *Client) LoadUser(ctx context.Context) error {
	token, err := c.tokens.Load()
	if err != nil || token == "" {
		c.store.Dispatch(appstate.Action{Type: appstate.AuthError, Payload: "no stored credential"})
		return err
	}
	c.store.Dispatch(appstate.Action{Type: appstate.LoginSuccess, Payload: token})

	var user models.User
	if err := c.do(ctx, http.MethodGet, "/api/auth", nil, &user); err != nil {
		c.store.Dispatch(appstate.Action{Type: appstate.AuthError, Payload: err.Error()})
		return err
	}
	c.store.Dispatch(appstate.Action{Type: appstate.UserLoaded, Payload: &user})
	return nil
}

// Register creates an account and stores the returned token.
func (c *Client) Register(ctx context.Context, name, email, password string) error {
	body := map[string]string{"name": name, "email": email, "password": password}
	var resp struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/user", body, &resp); err != nil {
		c.store.Dispatch(appstate.Action{Type: appstate.AuthError, Payload: err.Error()})
		c.alert(err.Error(), appstate.AlertDanger)
		return err
	}

	if err := c.tokens.Save(resp.Token); err != nil {
		return err
	}
	c.store.Dispatch(appstate.Action{Type: appstate.RegisterSuccess, Payload: resp.Token})
	return c.LoadUser(ctx)
}

// Login authenticates and stores the returned token.
func (c *Client) Login(ctx context.Context, email, password string) error {
	body := map[string]string{"email": email, "password": password}
	var resp struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/auth", body, &resp); err != nil {
		c.store.Dispatch(appstate.Action{Type: appstate.AuthError, Payload: err.Error()})
		c.alert(err.Error(), appstate.AlertDanger)
		return err
	}

	if err := c.tokens.Save(resp.Token); err != nil {
		return err
	}
	c.store.Dispatch(appstate.Action{Type: appstate.LoginSuccess, Payload: resp.Token})
	return c.LoadUser(ctx)
}

// Logout wipes the stored token and resets the state tree.
func (c *Client) Logout() error {
	err := c.tokens.Clear()
	c.store.Dispatch(appstate.Action{Type: appstate.Logout})
	return err
}

// do performs a request, attaching the token when one is held, and
// decodes a 2xx JSON response into out. A 401 wipes the stored token and
// drops the auth slice to anonymous.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.store.State().Auth.Token; token != "" {
		req.Header.Set(authHeader, token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		_ = c.tokens.Clear()
		c.store.Dispatch(appstate.Action{Type: appstate.AuthError, Payload: "authorization failed"})
		return fmt.Errorf("authorization failed")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr == nil && apiErr.Error != "" {
			return fmt.Errorf("%s", apiErr.Error)
		}
		return fmt.Errorf("request failed with status %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) alert(message, kind string) {
	c.store.Dispatch(appstate.Action{
		Type:    appstate.AlertSet,
		Payload: appstate.NewAlert(message, kind),
	})
}
