package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 10 * time.Second

// DefaultMaxRetries is the default number of attempts.
const DefaultMaxRetries = 3

// DefaultRetryWait is the default initial wait between retries.
const DefaultRetryWait = 500 * time.Millisecond

// Client delivers JSON payloads.
type Client struct {
	client      *http.Client
	serviceName string
	maxRetries  int
	retryWait   time.Duration

	// beforeRequest is called before each request (for auth headers, etc.)
	beforeRequest func(req *http.Request)
}

// ClientConfig holds configuration for Client.
type ClientConfig struct {
	Client        *http.Client
	ServiceName   string
	MaxRetries    int
	RetryWait     time.Duration
	BeforeRequest func(req *http.Request)
}

// NewClient creates a new Client with the given configuration.
func NewClient(cfg ClientConfig) *Client {
	c := &Client{
		client:        cfg.Client,
		serviceName:   cfg.ServiceName,
		maxRetries:    cfg.MaxRetries,
		retryWait:     cfg.RetryWait,
		beforeRequest: cfg.BeforeRequest,
	}

	if c.client == nil {
		c.client = &http.Client{Timeout: DefaultTimeout}
	}
	if c.serviceName == "" {
		c.serviceName = "receiver"
	}
	if c.maxRetries <= 0 {
		c.maxRetries = DefaultMaxRetries
	}
	if c.retryWait <= 0 {
		c.retryWait = DefaultRetryWait
	}

	return c
}

// PostJSON sends body as JSON to url. Network errors, 429 and 5xx responses
// are retried with exponential backoff; other failures return immediately.
func (c *Client) PostJSON(ctx context.Context, url string, body any, headers map[string]string) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		wait, err := c.send(ctx, url, data, headers, attempt)
		if err == nil {
			return nil
		}
		lastErr = err
		if wait == 0 || attempt == c.maxRetries-1 {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
	return lastErr
}

// send performs one attempt. A non-zero wait means the failure is
// retryable after that delay.
func (c *Client) send(ctx context.Context, url string, data []byte, headers map[string]string, attempt int) (time.Duration, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	if c.beforeRequest != nil {
		c.beforeRequest(req)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}
		return c.backoff(attempt), fmt.Errorf("%s request failed: %w", c.serviceName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 400 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return 0, nil
	}

	statusErr := c.parseError(resp, url)
	if !IsRetryable(statusErr) {
		return 0, statusErr
	}
	return c.getRetryWait(resp, attempt), statusErr
}

// parseError builds a StatusError from a failed response.
func (c *Client) parseError(resp *http.Response, url string) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	statusErr := &StatusError{
		Service:    c.serviceName,
		StatusCode: resp.StatusCode,
		URL:        url,
	}

	var errResp struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(body, &errResp) == nil {
		if errResp.Message != "" {
			statusErr.Message = errResp.Message
		} else if errResp.Error != "" {
			statusErr.Message = errResp.Error
		}
	}
	if statusErr.Message == "" {
		statusErr.Message = strings.TrimSpace(string(body))
	}
	if statusErr.Message == "" {
		statusErr.Message = http.StatusText(resp.StatusCode)
	}

	return statusErr
}

// getRetryWait honours Retry-After before falling back to backoff.
func (c *Client) getRetryWait(resp *http.Response, attempt int) time.Duration {
	if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
		if seconds, err := strconv.Atoi(retryAfter); err == nil && seconds > 0 {
			return time.Duration(seconds) * time.Second
		}
	}
	return c.backoff(attempt)
}

func (c *Client) backoff(attempt int) time.Duration {
	return c.retryWait * time.Duration(1<<attempt)
}
