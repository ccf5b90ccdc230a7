package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"gallery-backend/internal/domains/author/model"
)

// APIError is a non-2xx answer of the authors endpoint.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// TokenSource returns the bearer token for mutating calls, or "" for none.
type TokenSource func() string

// Client talks to the single authors endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
	token      TokenSource
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.token = ts }
}

// New creates a client for the full endpoint URL, e.g.
// http://localhost:8080/api/authors.
func New(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// List fetches the whole collection.
func (c *Client) List(ctx context.Context) ([]model.Author, error) {
	body, err := c.do(ctx, http.MethodGet, nil)
	if err != nil {
		return nil, err
	}

	var authors []model.Author
	if err := json.Unmarshal(body, &authors); err != nil {
		return nil, fmt.Errorf("decode authors: %w", err)
	}
	return authors, nil
}

// Create posts payload, which should not carry an id.
func (c *Client) Create(ctx context.Context, payload interface{}) (*model.Author, error) {
	body, err := c.do(ctx, http.MethodPost, payload)
	if err != nil {
		return nil, err
	}
	return decodeAuthor(body)
}

// Update puts payload, which must carry the id. A nil author with a nil
// error means no record had that id.
func (c *Client) Update(ctx context.Context, payload interface{}) (*model.Author, error) {
	body, err := c.do(ctx, http.MethodPut, payload)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}
	return decodeAuthor(body)
}

func (c *Client) Delete(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, model.DeleteAuthorRequest{ID: id})
	return err
}

func (c *Client) do(ctx context.Context, method string, payload interface{}) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint, reqBody)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != nil && method != http.MethodGet {
		if token := c.token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newAPIError(resp.StatusCode, body)
	}
	return body, nil
}

// newAPIError prefers the {"error": ...} message, then a plain text body,
// then the status text.
func newAPIError(status int, body []byte) *APIError {
	var envelope struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error != "" {
		return &APIError{StatusCode: status, Message: envelope.Error}
	}
	if text := strings.TrimSpace(string(body)); text != "" && !strings.HasPrefix(text, "{") {
		return &APIError{StatusCode: status, Message: text}
	}
	return &APIError{StatusCode: status, Message: http.StatusText(status)}
}

func decodeAuthor(body []byte) (*model.Author, error) {
	var a model.Author
	if err := json.Unmarshal(body, &a); err != nil {
		return nil, fmt.Errorf("decode author: %w", err)
	}
	return &a, nil
}

// IsStatus reports whether err is an APIError with the given status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}
