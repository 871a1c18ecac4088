// Package api wraps the expense-tracker backend's REST contract. All
// requests go through a single helper that attaches the bearer credential,
// serializes JSON, and normalizes failure bodies into *APIError values.
// Requests are never retried.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/spentcli/spent/internal/model"
)

// TokenSource supplies the current bearer credential. An empty string means
// the request goes out unauthenticated.
type TokenSource interface {
	Token() string
}

// Client talks to the expense-tracker backend.
type Client struct {
	tokens     TokenSource
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a client for the backend at baseURL. A nil tokens source
// is valid and sends every request unauthenticated.
func NewClient(baseURL string, tokens TokenSource) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		tokens:  tokens,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// do performs one request against the backend. Object bodies are serialized
// to JSON; non-2xx responses become *APIError values; network failures are
// logged and propagated untouched.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	slog.Debug("API request", "method", method, "path", path, "query", query.Encode())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Error("API request failed", "method", method, "path", path, "error", err)
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(resp.StatusCode, respBody)
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// AuthResponse is the payload of a successful login or registration.
type AuthResponse struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

// RegisterInput is the signup request body.
type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ExpensePayload is the create/update request body for an expense.
type ExpensePayload struct {
	Category string  `json:"category"`
	Date     string  `json:"date"`
	Notes    string  `json:"notes,omitempty"`
	Amount   float64 `json:"amount"`
}

// ProfileUpdate carries the partial user fields accepted by PUT /profile.
type ProfileUpdate struct {
	Username string         `json:"username,omitempty"`
	Email    string         `json:"email,omitempty"`
	Profile  *model.Profile `json:"profile,omitempty"`
}

// Login exchanges credentials for a token and user record.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	body := map[string]string{"email": email, "password": password}
	var resp struct {
		Data AuthResponse `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, body, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// Register creates a new account and returns its token and user record.
func (c *Client) Register(ctx context.Context, input RegisterInput) (*AuthResponse, error) {
	var resp struct {
		Data AuthResponse `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/signup", nil, input, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// Logout tells the backend to invalidate the current token.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil, nil)
}

// ListExpenses fetches expenses matching the filter. A zero filter returns
// everything.
func (c *Client) ListExpenses(ctx context.Context, filter Filter) ([]model.Expense, error) {
	var resp struct {
		Data struct {
			Expenses []model.Expense `json:"expenses"`
		} `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/expenses", filter.Values(), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data.Expenses, nil
}

// CreateExpense adds a new expense and returns the server's copy.
func (c *Client) CreateExpense(ctx context.Context, payload ExpensePayload) (*model.Expense, error) {
	var resp struct {
		Data struct {
			Expense model.Expense `json:"expense"`
		} `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, "/expenses", nil, payload, &resp); err != nil {
		return nil, err
	}
	return &resp.Data.Expense, nil
}

// UpdateExpense replaces an expense and returns the server's copy.
func (c *Client) UpdateExpense(ctx context.Context, id string, payload ExpensePayload) (*model.Expense, error) {
	var resp struct {
		Data struct {
			Expense model.Expense `json:"expense"`
		} `json:"data"`
	}
	if err := c.do(ctx, http.MethodPut, "/expenses/"+url.PathEscape(id), nil, payload, &resp); err != nil {
		return nil, err
	}
	return &resp.Data.Expense, nil
}

// DeleteExpense removes an expense.
func (c *Client) DeleteExpense(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/expenses/"+url.PathEscape(id), nil, nil, nil)
}

// GetProfile fetches the authenticated user's profile.
func (c *Client) GetProfile(ctx context.Context) (*model.User, error) {
	var resp struct {
		Data struct {
			User model.User `json:"user"`
		} `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/profile", nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Data.User, nil
}

// UpdateProfile applies a partial profile update and returns the server's
// authoritative user record.
func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (*model.User, error) {
	var resp struct {
		Data struct {
			User model.User `json:"user"`
		} `json:"data"`
	}
	if err := c.do(ctx, http.MethodPut, "/profile", nil, update, &resp); err != nil {
		return nil, err
	}
	return &resp.Data.User, nil
}
