package backend

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

	"github.com/google/uuid"

	"github.com/amiyamandal-dev/bizbrief/internal/domain"
	"github.com/amiyamandal-dev/bizbrief/pkg/logger"
)

// Client talks to the news REST backend. It never retries and keeps no cache.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *logger.Logger
}

// NewClient creates a backend client. A zero timeout keeps the transport default.
func NewClient(baseURL string, timeout time.Duration, log *logger.Logger) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid backend url: %w", err)
	}
	if log == nil {
		log = logger.Nop()
	}

	return &Client{
		baseURL:    u,
		httpClient: &http.Client{Timeout: timeout},
		logger:     log.WithComponent("backend-client"),
	}, nil
}

// errorBody is the shape the backend uses for failures
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// endpoint joins a path (already escaped by the caller) and query onto the base URL
func (c *Client) endpoint(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// do performs one request. body is JSON encoded when non-nil; out is decoded
// from a 2xx answer when non-nil.
func (c *Client) do(ctx context.Context, op, method, target, token string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &domain.UnexpectedError{Op: op, Err: err}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return &domain.UnexpectedError{Op: op, Err: err}
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Backend request failed", "op", op, "request_id", requestID, "error", err)
		return &domain.TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	c.logger.Debug("Backend request",
		"op", op,
		"method", method,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &domain.TransportError{Op: op, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := &domain.StatusError{Code: resp.StatusCode}
		var eb errorBody
		if json.Unmarshal(data, &eb) == nil {
			statusErr.Message = eb.Message
			if statusErr.Message == "" {
				statusErr.Message = eb.Error
			}
		}
		return statusErr
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &domain.UnexpectedError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// Ping checks that the backend answers at all. Any HTTP status counts as reachable.
func (c *Client) Ping(ctx context.Context) error {
	err := c.do(ctx, "ping", http.MethodGet, c.endpoint("/articles", url.Values{
		"page":     {"1"},
		"pageSize": {"1"},
	}), "", nil, nil)

	var status *domain.StatusError
	if errors.As(err, &status) {
		return nil
	}
	return err
}
