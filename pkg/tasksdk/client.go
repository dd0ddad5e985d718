package tasksdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// SDKClient is a client for the taskd service. It provides unauthenticated
// operations and creates authenticated Sessions via Login.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a new taskd client.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Register creates a new account.
func (c *SDKClient) Register(
	ctx context.Context,
	email, password, fullName string,
) (*UserResponse, error) {
	var user UserResponse
	err := c.doJSON(ctx, http.MethodPost, "/v1/register", "", RegisterRequest{
		Email:    email,
		Password: password,
		FullName: fullName,
	}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Login exchanges credentials for an authenticated Session.
func (c *SDKClient) Login(ctx context.Context, email, password string) (*Session, error) {
	var token TokenResponse
	err := c.doJSON(ctx, http.MethodPost, "/v1/token", "", LoginRequest{
		Email:    email,
		Password: password,
	}, &token)
	if err != nil {
		return nil, err
	}
	return &Session{client: c, accessToken: token.AccessToken}, nil
}

// GetLiveness checks the /livez probe.
func (c *SDKClient) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	var health HealthResponse
	if err := c.doJSON(ctx, http.MethodGet, "/livez", "", nil, &health); err != nil {
		return nil, err
	}
	return &health, nil
}

// Session is an authenticated client carrying a bearer token.
type Session struct {
	client      *SDKClient
	accessToken string
}

// NewSessionFromToken builds a Session around an existing bearer token.
func (c *SDKClient) NewSessionFromToken(accessToken string) *Session {
	return &Session{client: c, accessToken: accessToken}
}

// AccessToken returns the session's raw bearer token.
func (s *Session) AccessToken() string { return s.accessToken }

// CreateTask creates a task owned by the session's user.
func (s *Session) CreateTask(ctx context.Context, req TaskRequest) (*TaskResponse, error) {
	var task TaskResponse
	err := s.client.doJSON(ctx, http.MethodPost, "/v1/tasks", s.accessToken, req, &task)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// ListTasks lists the session user's tasks, windowed by skip/limit.
func (s *Session) ListTasks(ctx context.Context, skip, limit int) ([]TaskResponse, error) {
	path := fmt.Sprintf("/v1/tasks?skip=%d&limit=%d", skip, limit)
	var tasks []TaskResponse
	if err := s.client.doJSON(ctx, http.MethodGet, path, s.accessToken, nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetTask fetches one owned task by id.
func (s *Session) GetTask(ctx context.Context, id string) (*TaskResponse, error) {
	var task TaskResponse
	err := s.client.doJSON(ctx, http.MethodGet, "/v1/tasks/"+id, s.accessToken, nil, &task)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTask fully replaces a task's title, description and due date.
func (s *Session) UpdateTask(ctx context.Context, id string, req TaskRequest) (*TaskResponse, error) {
	var task TaskResponse
	err := s.client.doJSON(ctx, http.MethodPut, "/v1/tasks/"+id, s.accessToken, req, &task)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// CompleteTask marks a task done. Completion is one-way and idempotent.
func (s *Session) CompleteTask(ctx context.Context, id string) (*TaskResponse, error) {
	var task TaskResponse
	err := s.client.doJSON(ctx, http.MethodPatch, "/v1/tasks/"+id+"/complete", s.accessToken, nil, &task)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// DeleteTask permanently removes a task.
func (s *Session) DeleteTask(ctx context.Context, id string) error {
	var msg MessageResponse
	return s.client.doJSON(ctx, http.MethodDelete, "/v1/tasks/"+id, s.accessToken, nil, &msg)
}

// doJSON performs a request with an optional JSON body and bearer token,
// decoding a JSON response into out. Non-2xx responses become *APIError.
func (c *SDKClient) doJSON(
	ctx context.Context,
	method, path, token string,
	in, out any,
) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return parseAPIError(resp.StatusCode, data)
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
