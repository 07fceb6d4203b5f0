// Package api is the HTTP gateway to the expense-tracking server. It owns
// bearer-token attachment, error taxonomy mapping, and the global 401
// reaction; it holds no transaction state of its own.
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
	"sync"
	"time"

	"github.com/ledgerline/ledgerline/internal/common"
	"github.com/ledgerline/ledgerline/internal/model"
	"github.com/ledgerline/ledgerline/internal/session"
)

// Client talks to the remote API. Every call except Login and Register
// carries the persisted bearer token; a 401 from any call clears the
// session store and notifies the registered listener.
type Client struct {
	sessions          *session.Store
	httpClient        *http.Client
	onUnauthenticated func()
	baseURL           string
	mu                sync.Mutex
}

// errorPayload is the server's error body shape.
type errorPayload struct {
	Message string `json:"message"`
}

// authResponse is returned by every /auth endpoint.
type authResponse struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

// New creates a client for the API at baseURL.
func New(baseURL string, sessions *session.Store) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		sessions: sessions,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetUnauthenticatedHandler registers the listener invoked after a 401 has
// cleared the session. The host application decides what "go to login"
// means; the gateway performs no navigation itself.
func (c *Client) SetUnauthenticatedHandler(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauthenticated = fn
}

// Login exchanges credentials for a session. The caller persists it.
func (c *Client) Login(ctx context.Context, email, password string) (*session.Session, error) {
	body := map[string]string{"email": email, "password": password}

	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, body, &resp, false); err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	return &session.Session{Token: resp.Token, User: resp.User}, nil
}

// Register creates an account and returns the new session.
func (c *Client) Register(ctx context.Context, name, email, password string) (*session.Session, error) {
	body := map[string]string{"name": name, "email": email, "password": password}

	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", nil, body, &resp, false); err != nil {
		return nil, fmt.Errorf("registration failed: %w", err)
	}

	return &session.Session{Token: resp.Token, User: resp.User}, nil
}

// UpdateProfile changes the display name and returns the refreshed session.
func (c *Client) UpdateProfile(ctx context.Context, name string) (*session.Session, error) {
	var resp authResponse
	if err := c.do(ctx, http.MethodPut, "/auth/profile", nil, map[string]string{"name": name}, &resp, true); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return &session.Session{Token: resp.Token, User: resp.User}, nil
}

// UpdateCurrency changes the preferred display currency and returns the
// refreshed session.
func (c *Client) UpdateCurrency(ctx context.Context, code string) (*session.Session, error) {
	var resp authResponse
	if err := c.do(ctx, http.MethodPut, "/auth/currency", nil, map[string]string{"currency": code}, &resp, true); err != nil {
		return nil, fmt.Errorf("failed to update currency: %w", err)
	}

	return &session.Session{Token: resp.Token, User: resp.User}, nil
}

// ListExpenses fetches the full transaction set for one month.
func (c *Client) ListExpenses(ctx context.Context, month, userID string) ([]model.Transaction, error) {
	query := url.Values{}
	query.Set("month", month)
	query.Set("userId", userID)

	var transactions []model.Transaction
	if err := c.do(ctx, http.MethodGet, "/expenses", query, nil, &transactions, true); err != nil {
		return nil, fmt.Errorf("failed to fetch expenses: %w", err)
	}

	return transactions, nil
}

// CreateExpense records a transaction; the server assigns the id.
func (c *Client) CreateExpense(ctx context.Context, in model.TransactionInput) (*model.Transaction, error) {
	var created model.Transaction
	if err := c.do(ctx, http.MethodPost, "/expenses", nil, in, &created, true); err != nil {
		return nil, fmt.Errorf("failed to add expense: %w", err)
	}

	return &created, nil
}

// UpdateExpense replaces every field of an existing transaction.
func (c *Client) UpdateExpense(ctx context.Context, id string, in model.TransactionInput) (*model.Transaction, error) {
	var updated model.Transaction
	if err := c.do(ctx, http.MethodPut, "/expenses/"+url.PathEscape(id), nil, in, &updated, true); err != nil {
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}

	return &updated, nil
}

// DeleteExpense removes a transaction on the server.
func (c *Client) DeleteExpense(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/expenses/"+url.PathEscape(id), nil, nil, nil, true); err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	return nil
}

// MonthlySummary fetches the server-computed aggregate for one month.
func (c *Client) MonthlySummary(ctx context.Context, month, userID string) (*model.MonthlySummary, error) {
	query := url.Values{}
	query.Set("month", month)
	query.Set("userId", userID)

	var summary model.MonthlySummary
	if err := c.do(ctx, http.MethodGet, "/expenses/summary", query, nil, &summary, true); err != nil {
		return nil, fmt.Errorf("failed to fetch summary: %w", err)
	}

	return &summary, nil
}

// ExportExpenses streams the export artifact for one month. The caller
// must close the reader; size is -1 when the server sends no length.
func (c *Client) ExportExpenses(ctx context.Context, month string) (io.ReadCloser, int64, error) {
	query := url.Values{}
	query.Set("month", month)

	req, err := c.newRequest(ctx, http.MethodGet, "/expenses/export", query, nil, true)
	if err != nil {
		return nil, 0, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", common.ErrNetwork, err)
	}

	if resp.StatusCode != http.StatusOK {
		defer func() { _ = resp.Body.Close() }()
		body, _ := io.ReadAll(resp.Body)
		return nil, 0, c.statusError(resp.StatusCode, body)
	}

	return resp.Body, resp.ContentLength, nil
}

// do runs one JSON round trip: marshal body, attach auth, dispatch, map the
// status to the error taxonomy, decode into out when given.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any, authed bool) error {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := c.newRequest(ctx, method, path, query, payload, authed)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	slog.Debug("api request", "method", method, "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrNetwork, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrNetwork, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.statusError(resp.StatusCode, respBody)
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// newRequest builds a request against the API root, attaching the bearer
// token when the endpoint requires a session.
func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader, authed bool) (*http.Request, error) {
	u := c.baseURL + "/api" + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if authed {
		sess, err := c.sessions.Load()
		if err != nil {
			return nil, fmt.Errorf("failed to load session: %w", err)
		}
		if sess == nil {
			return nil, common.ErrUnauthenticated
		}
		req.Header.Set("Authorization", "Bearer "+sess.Token)
	}

	return req, nil
}

// statusError folds a non-2xx response into the error taxonomy, keeping the
// server's message for display. A 401 additionally tears down the session.
func (c *Client) statusError(status int, body []byte) error {
	msg := remoteMessage(body)

	if status == http.StatusUnauthorized {
		c.expireSession()
		return fmt.Errorf("%w: %s", common.ErrUnauthenticated, msg)
	}

	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %s", common.ErrValidation, msg)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", common.ErrNotFound, msg)
	default:
		return fmt.Errorf("%w: %s", common.ErrRemote, msg)
	}
}

// expireSession clears persisted credentials and notifies the host. Any 401
// on a session-bearing call triggers this; a failed login has no session to
// tear down and stays quiet.
func (c *Client) expireSession() {
	if sess, err := c.sessions.Load(); err == nil && sess == nil {
		return
	}

	if err := c.sessions.Clear(); err != nil {
		slog.Warn("failed to clear expired session", "error", err)
	}

	c.mu.Lock()
	handler := c.onUnauthenticated
	c.mu.Unlock()

	if handler != nil {
		handler()
	}
}

// remoteMessage pulls the display message out of an error body, falling
// back to a generic one.
func remoteMessage(body []byte) string {
	var payload errorPayload
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return "request failed"
}
