package authstate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/veramar/litoral/internal/domain"
)

// Client is the HTTP implementation of API against the platform
// backend. It carries the session cookie in its jar.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the given backend base URL, e.g.
// "https://api.example.com".
func NewClient(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Jar: jar, Timeout: 30 * time.Second},
	}, nil
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// CurrentUser fetches the session-bound user. A 401 with the
// no_session code maps to domain.ErrNoSession; other failures stay
// generic so the store does not mistake outages for a missing session.
func (c *Client) CurrentUser(ctx context.Context) (*domain.User, error) {
	return c.userRequest(ctx, http.MethodGet, "/api/v1/auth/me", nil)
}

// Verify posts the ID token to establish a backend session.
func (c *Client) Verify(ctx context.Context, idToken string) (*domain.User, error) {
	body := map[string]string{"id_token": idToken}
	return c.userRequest(ctx, http.MethodPost, "/api/v1/auth/google", body)
}

// Logout destroys the backend session.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodPost, "/api/v1/auth/logout", nil)
	return err
}

func (c *Client) userRequest(ctx context.Context, method, path string, body any) (*domain.User, error) {
	data, err := c.do(ctx, method, path, body)
	if err != nil {
		return nil, err
	}
	var user domain.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	return &user, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if resp.StatusCode >= 400 {
		if env.Error != nil {
			switch env.Error.Code {
			case "no_session":
				return nil, fmt.Errorf("%w: %s", domain.ErrNoSession, env.Error.Message)
			case "invalid_assertion":
				return nil, fmt.Errorf("%w: %s", domain.ErrInvalidAssertion, env.Error.Message)
			case "expired_assertion":
				return nil, fmt.Errorf("%w: %s", domain.ErrExpiredAssertion, env.Error.Message)
			}
			return nil, fmt.Errorf("%s %s: %s (%s)", method, path, env.Error.Message, env.Error.Code)
		}
		return nil, fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode)
	}

	return env.Data, nil
}
