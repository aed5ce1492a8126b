package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/kelsos/makerspace-demo/internal/logger"
	"github.com/kelsos/makerspace-demo/internal/models"
)

// APIClient talks to the MakerSpace demo API. It keeps cookies, so every
// call made through one client belongs to the same session.
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewAPIClient creates a new API client for the server at baseURL
func NewAPIClient(baseURL string) (*APIClient, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	return &APIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Jar:     jar,
			Timeout: 30 * time.Second,
		},
	}, nil
}

// BuildURL constructs a full URL for the given endpoint
func (c *APIClient) BuildURL(endpoint string) string {
	return fmt.Sprintf("%s/api%s", c.baseURL, endpoint)
}

// request is the core HTTP request method
func (c *APIClient) request(method, endpoint string, body interface{}, result interface{}) error {
	url := c.BuildURL(endpoint)
	start := time.Now()
	logger.Debug("Starting %s request to %s", method, url)

	var requestBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("error marshaling request body: %w", err)
		}
		requestBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, url, requestBody)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error("Request to %s failed after %v: %v", url, time.Since(start), err)
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	logger.Debug("Request to %s completed in %v with status %d", url, time.Since(start), resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return &StatusError{Method: method, URL: url, StatusCode: resp.StatusCode, Body: string(bodyBytes)}
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("error decoding response from %s: %w", url, err)
		}
	}

	return nil
}

// StatusError is returned when the server answers with a non-200 status
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: HTTP error %d: %s", e.Method, e.URL, e.StatusCode, e.Body)
}

// Login logs in and returns the user the server resolved
func (c *APIClient) Login() (*models.UserEnvelope, error) {
	var resp models.UserEnvelope
	if err := c.request(http.MethodPost, "/users", nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to login: %w", err)
	}
	return &resp, nil
}

// CreateUser asks the server to create a user
func (c *APIClient) CreateUser(user models.User) (*models.UserEnvelope, error) {
	var resp models.UserEnvelope
	if err := c.request(http.MethodPut, "/users", user, &resp); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &resp, nil
}

// DeleteUser asks the server to delete a user
func (c *APIClient) DeleteUser(userID string) (*models.Envelope, error) {
	var resp models.Envelope
	if err := c.request(http.MethodDelete, "/users", map[string]string{"user_id": userID}, &resp); err != nil {
		return nil, fmt.Errorf("failed to delete user %s: %w", userID, err)
	}
	return &resp, nil
}

// GetUsers lists the users of the directory
func (c *APIClient) GetUsers() (*models.UsersEnvelope, error) {
	var resp models.UsersEnvelope
	if err := c.request(http.MethodGet, "/users", nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}
	return &resp, nil
}

// GetTasks lists the tasks of this client's session
func (c *APIClient) GetTasks() (*models.TasksEnvelope, error) {
	var resp models.TasksEnvelope
	if err := c.request(http.MethodGet, "/tasks", nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to get tasks: %w", err)
	}
	return &resp, nil
}

// ResolveTask asks the server to resolve a task
func (c *APIClient) ResolveTask(taskID string) (*models.Envelope, error) {
	var resp models.Envelope
	if err := c.request(http.MethodDelete, "/tasks", models.DeleteTaskRequest{TaskID: taskID}, &resp); err != nil {
		return nil, fmt.Errorf("failed to resolve task %s: %w", taskID, err)
	}
	return &resp, nil
}

// GetMachines fetches the machine status document
func (c *APIClient) GetMachines() (*models.MachinesEnvelope, error) {
	var resp models.MachinesEnvelope
	if err := c.request(http.MethodPost, "/machines", nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to get machines: %w", err)
	}
	return &resp, nil
}

// GetVisitors fetches the visits document
func (c *APIClient) GetVisitors() (*models.VisitorsEnvelope, error) {
	var resp models.VisitorsEnvelope
	if err := c.request(http.MethodPost, "/visitors", nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to get visitors: %w", err)
	}
	return &resp, nil
}

// Ping checks if the API is ready
func (c *APIClient) Ping() error {
	return c.request(http.MethodGet, "/users", nil, nil)
}

// WaitForAPIReady polls the API until it answers or maxAttempts run out
func (c *APIClient) WaitForAPIReady(maxAttempts int, delay time.Duration) bool {
	logger.Info("Checking API readiness...")

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		logger.Debug("Checking API readiness (attempt %d/%d)...", attempt, maxAttempts)

		if err := c.Ping(); err == nil {
			logger.Info("API is ready!")
			return true
		}

		time.Sleep(delay)
	}

	logger.Error("API failed to become ready after %d attempts", maxAttempts)
	return false
}
