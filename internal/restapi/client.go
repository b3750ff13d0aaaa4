// Package restapi talks to the remote business backend over HTTP.
package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/akyairhashvil/crewboard/internal/config"
	"github.com/akyairhashvil/crewboard/internal/models"
	"github.com/akyairhashvil/crewboard/internal/syncer"
)

// Client is a minimal client for the task and employee endpoints.
type Client struct {
	BaseURL     string
	BearerToken string
	HTTPClient  *http.Client
	Timeout     time.Duration
}

// New creates a client with sane defaults.
func New(baseURL, token string) *Client {
	return &Client{
		BaseURL:     baseURL,
		BearerToken: token,
		Timeout:     config.APITimeout,
	}
}

var _ syncer.Backend = (*Client)(nil)

// APIError wraps non-2xx responses.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status=%d body=%s", e.StatusCode, e.Body)
}

// ListEmployees fetches employees in scope.
func (c *Client) ListEmployees(ctx context.Context, scope models.Scope) ([]models.Employee, error) {
	var out []models.Employee
	err := c.do(ctx, http.MethodGet, "employees"+scopeQuery(scope, false), nil, &out)
	return out, err
}

// ListTasks fetches tasks in scope.
func (c *Client) ListTasks(ctx context.Context, scope models.Scope) ([]models.Task, error) {
	var out []models.Task
	err := c.do(ctx, http.MethodGet, "tasks"+scopeQuery(scope, true), nil, &out)
	return out, err
}

// UpdateTask patches a task's dates.
func (c *Client) UpdateTask(ctx context.Context, id int64, patch models.TaskPatch) error {
	return c.do(ctx, http.MethodPatch, "tasks/"+strconv.FormatInt(id, 10), patch, nil)
}

// CreateTask creates a task and returns the stored version.
func (c *Client) CreateTask(ctx context.Context, input models.TaskInput) (models.Task, error) {
	var resp models.Task
	err := c.do(ctx, http.MethodPost, "tasks", input, &resp)
	return resp, err
}

func scopeQuery(scope models.Scope, withProject bool) string {
	q := url.Values{}
	if scope.DepartmentID > 0 {
		q.Set("departmentId", strconv.FormatInt(scope.DepartmentID, 10))
	}
	if withProject && scope.ProjectRef != "" {
		q.Set("project", scope.ProjectRef)
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

func (c *Client) do(ctx context.Context, method, endpoint string, body any, out any) error {
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: c.Timeout}
	}
	u := c.base() + "/" + strings.TrimLeft(endpoint, "/")
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, u, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.BearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.BearerToken)
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{StatusCode: resp.StatusCode, Body: string(b)}
	}
	if out != nil && resp.StatusCode != http.StatusNoContent {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func (c *Client) base() string {
	return strings.TrimRight(c.BaseURL, "/")
}
