// Package rest implements the store interfaces against the JSON REST backend.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"taskdeck/internal/store"
	"taskdeck/internal/task"
)

const (
	// APITimeout is the timeout for API calls.
	APITimeout = 5 * time.Second
)

// Client talks to the backend resource store. It holds no task state; it is
// a stateless request executor.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the backend at baseURL. When token is non-empty
// an oauth2 transport attaches it as a Bearer credential to every request;
// when empty, a plain client is used and the Authorization header is omitted
// entirely.
func New(ctx context.Context, baseURL, token string) *Client {
	httpClient := http.DefaultClient
	if token != "" {
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(ctx, src)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
func NewWithHTTPClient(baseURL string, httpClient *http.Client) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

// List implements store.TaskStore.
func (c *Client) List(ctx context.Context, userID string) ([]task.Task, error) {
	q := url.Values{"userId": {userID}}
	var tasks []task.Task
	if err := c.do(ctx, "list tasks", http.MethodGet, "/tasks?"+q.Encode(), nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// Create implements store.TaskStore.
func (c *Client) Create(ctx context.Context, t task.Task) (task.Task, error) {
	var created task.Task
	if err := c.do(ctx, "create task", http.MethodPost, "/tasks", t, &created); err != nil {
		return task.Task{}, err
	}
	return created, nil
}

// Replace implements store.TaskStore.
func (c *Client) Replace(ctx context.Context, t task.Task) (task.Task, error) {
	var updated task.Task
	path := "/tasks/" + url.PathEscape(t.ID)
	if err := c.do(ctx, "replace task", http.MethodPut, path, t, &updated); err != nil {
		return task.Task{}, err
	}
	return updated, nil
}

// Delete implements store.TaskStore.
func (c *Client) Delete(ctx context.Context, id string) error {
	path := "/tasks/" + url.PathEscape(id)
	return c.do(ctx, "delete task", http.MethodDelete, path, nil, nil)
}

// Login implements store.UserStore.
func (c *Client) Login(ctx context.Context, email, password string) (store.Credentials, error) {
	body := map[string]string{"email": email, "password": password}
	var creds store.Credentials
	if err := c.do(ctx, "login", http.MethodPost, "/auth/login", body, &creds); err != nil {
		return store.Credentials{}, err
	}
	return creds, nil
}

// FindByEmail implements store.UserStore.
func (c *Client) FindByEmail(ctx context.Context, email string) ([]store.User, error) {
	q := url.Values{"email": {email}}
	var users []store.User
	if err := c.do(ctx, "find user", http.MethodGet, "/users?"+q.Encode(), nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// CreateUser implements store.UserStore.
func (c *Client) CreateUser(ctx context.Context, email, password string) (store.User, error) {
	body := map[string]string{"email": email, "password": password}
	var user store.User
	if err := c.do(ctx, "create user", http.MethodPost, "/users", body, &user); err != nil {
		return store.User{}, err
	}
	return user, nil
}

// do executes one request. in (when non-nil) is JSON-encoded as the body;
// out (when non-nil) receives the decoded response.
func (c *Client) do(ctx context.Context, op, method, path string, in, out any) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return &store.RemoteError{Op: op, Err: err}
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &store.RemoteError{Op: op, Err: err}
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &store.RemoteError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return &store.RemoteError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &store.RemoteError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
		}
	}
	return nil
}
