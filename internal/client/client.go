// Package client talks to the course management REST API.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"coursemanagement/internal/model"

	"github.com/go-resty/resty/v2"
)

// APIError is a non-2xx answer from the API. Message is the server's
// "message" field, or the raw body when there is none.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

type Client struct {
	rc *resty.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	rc := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	return &Client{rc: rc}
}

// do sends the request and decodes a successful body into result when it
// is non-nil.
func (c *Client) do(ctx context.Context, method, path string, body, result any) error {
	req := c.rc.R().SetContext(ctx)
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}
	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	if resp.IsError() {
		return newAPIError(resp)
	}
	if result == nil || len(resp.Body()) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), result); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func newAPIError(resp *resty.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode()}
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(resp.Body(), &body); err == nil && body.Message != "" {
		apiErr.Message = body.Message
	} else {
		apiErr.Message = strings.TrimSpace(string(resp.Body()))
	}
	return apiErr
}

func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/healthz", nil, nil)
}

func (c *Client) ListCourses(ctx context.Context) ([]model.Course, error) {
	var courses []model.Course
	err := c.do(ctx, http.MethodGet, "/api/courses", nil, &courses)
	return courses, err
}

func (c *Client) CreateCourse(ctx context.Context, course model.Course) (model.Course, error) {
	var res model.Course
	err := c.do(ctx, http.MethodPost, "/api/courses", course, &res)
	return res, err
}

func (c *Client) UpdateCourse(ctx context.Context, id uint, course model.Course) (model.Course, error) {
	var res model.Course
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/courses/%d", id), course, &res)
	return res, err
}

func (c *Client) DeleteCourse(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/courses/%d", id), nil, nil)
}

func (c *Client) ListStudents(ctx context.Context) ([]model.Student, error) {
	var students []model.Student
	err := c.do(ctx, http.MethodGet, "/api/students", nil, &students)
	return students, err
}

func (c *Client) CreateStudent(ctx context.Context, student model.Student) (model.Student, error) {
	var res model.Student
	err := c.do(ctx, http.MethodPost, "/api/students", student, &res)
	return res, err
}

func (c *Client) UpdateStudent(ctx context.Context, id uint, student model.Student) (model.Student, error) {
	var res model.Student
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/students/%d", id), student, &res)
	return res, err
}

func (c *Client) DeleteStudent(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/students/%d", id), nil, nil)
}

func (c *Client) ListMarks(ctx context.Context) ([]model.Mark, error) {
	var marks []model.Mark
	err := c.do(ctx, http.MethodGet, "/api/marks", nil, &marks)
	return marks, err
}

func (c *Client) CreateMark(ctx context.Context, mark model.Mark) (model.Mark, error) {
	var res model.Mark
	err := c.do(ctx, http.MethodPost, "/api/marks", mark, &res)
	return res, err
}

func (c *Client) UpdateMark(ctx context.Context, id uint, mark model.Mark) (model.Mark, error) {
	var res model.Mark
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/marks/%d", id), mark, &res)
	return res, err
}

func (c *Client) DeleteMark(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/marks/%d", id), nil, nil)
}
