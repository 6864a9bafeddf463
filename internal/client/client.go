// Package client - типизированный клиент REST API планировщика.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"goodVibes/internal/handlers/dto"

	"github.com/google/uuid"
)

// ErrUnauthorized - сервер ответил 401: токена нет или он истёк.
var ErrUnauthorized = errors.New("требуется вход")

// NetworkError - запрос не дошёл до сервера или ответ не удалось прочитать.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: сеть: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// APIError - ответ сервера с кодом 4xx/5xx, кроме 401.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("http %d: %s", e.Status, e.Code)
	}
	return fmt.Sprintf("http %d: %s: %s", e.Status, e.Code, e.Message)
}

type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Token() string {
	return c.token
}

// Login получает токен и запоминает его для следующих запросов.
func (c *Client) Login(ctx context.Context, username, password string) error {
	var resp dto.TokenResponse
	err := c.do(ctx, http.MethodPost, "/api/token", dto.TokenRequest{Username: username, Password: password}, &resp)
	if err != nil {
		return err
	}
	c.token = resp.AccessToken
	return nil
}

func (c *Client) Logout(ctx context.Context) error {
	if err := c.do(ctx, http.MethodPost, "/api/logout", nil, nil); err != nil {
		return err
	}
	c.token = ""
	return nil
}

func (c *Client) Todos(ctx context.Context) ([]dto.TodoResponse, error) {
	var res []dto.TodoResponse
	if err := c.do(ctx, http.MethodGet, "/api/todos", nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Client) CreateTodo(ctx context.Context, req dto.CreateTodoRequest) (*dto.TodoResponse, error) {
	var res dto.TodoResponse
	if err := c.do(ctx, http.MethodPost, "/api/todos", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) UpdateTodo(ctx context.Context, id uuid.UUID, req dto.UpdateTodoRequest) (*dto.TodoResponse, error) {
	var res dto.TodoResponse
	if err := c.do(ctx, http.MethodPut, "/api/todos/"+id.String(), req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) DeleteTodo(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/api/todos/"+id.String(), nil, nil)
}

func (c *Client) Calendars(ctx context.Context) ([]dto.CalendarResponse, error) {
	var res []dto.CalendarResponse
	if err := c.do(ctx, http.MethodGet, "/api/calendars", nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// Week запрашивает семидневное окно вокруг center. calendarID может быть nil.
func (c *Client) Week(ctx context.Context, center time.Time, calendarID *uuid.UUID) (*dto.WeekResponse, error) {
	q := url.Values{}
	q.Set("center", center.Format(time.DateOnly))
	if calendarID != nil {
		q.Set("calendar_id", calendarID.String())
	}
	var res dto.WeekResponse
	if err := c.do(ctx, http.MethodGet, "/api/week?"+q.Encode(), nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	op := method + " " + path

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: кодирование запроса: %w", op, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("%s: %w", op, ErrUnauthorized)
	}
	if resp.StatusCode >= 400 {
		return decodeAPIError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &NetworkError{Op: op, Err: fmt.Errorf("разбор ответа: %w", err)}
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	apiErr := &APIError{Status: resp.StatusCode}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		apiErr.Code = body.Error
		apiErr.Message = body.Message
	}
	if apiErr.Code == "" {
		apiErr.Code = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
