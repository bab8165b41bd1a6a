// Package gofile is a minimal client for the Gofile content API. Only
// content deletion is implemented.
package gofile

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

	"github.com/hay-kot/tempbox/internal/httpclient"
)

const (
	// DefaultBaseURL is the public Gofile API endpoint.
	DefaultBaseURL = "https://api.gofile.io"
	// DefaultTimeout bounds a single HTTP attempt.
	DefaultTimeout = 30 * time.Second

	statusOK       = "ok"
	statusNotFound = "error-notFound"
)

// ErrMissingToken is returned when no account token is configured.
var ErrMissingToken = errors.New("gofile: account token is required")

// Config configures a Client.
type Config struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
	Retry      *httpclient.RetryConfig
}

// Client talks to the Gofile API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	retry      *httpclient.RetryConfig
}

// New creates a Client. BaseURL, HTTPClient and Retry fall back to defaults.
func New(cfg Config) (*Client, error) {
	if cfg.Token == "" {
		return nil, ErrMissingToken
	}

	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		token:      cfg.Token,
		httpClient: cfg.HTTPClient,
		retry:      cfg.Retry,
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.httpClient == nil {
		c.httpClient = httpclient.New(DefaultTimeout)
	}
	if c.retry == nil {
		c.retry = httpclient.DefaultRetryConfig()
	}
	return c, nil
}

// APIError is a failed Gofile response.
type APIError struct {
	StatusCode int
	Status     string
}

func (e *APIError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("gofile: %s (http %d)", e.Status, e.StatusCode)
	}
	return fmt.Sprintf("gofile: http %d", e.StatusCode)
}

type envelope struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
}

// DeleteContent deletes the given content ids in a single call. The call
// succeeds or fails as a whole. Content that no longer exists counts as
// deleted.
func (c *Client) DeleteContent(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	body, err := json.Marshal(map[string]string{"contentsId": strings.Join(ids, ",")})
	if err != nil {
		return fmt.Errorf("gofile: marshal delete body: %w", err)
	}

	resp, err := httpclient.Do(ctx, c.httpClient, c.retry, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/contents", bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+c.token)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		return req, nil
	})
	if err != nil {
		return fmt.Errorf("gofile: delete %d item(s): %w", len(ids), err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("gofile: read delete response: %w", err)
	}

	var env envelope
	_ = json.Unmarshal(raw, &env)

	switch {
	case env.Status == statusNotFound || resp.StatusCode == http.StatusNotFound:
		return nil
	case resp.StatusCode >= 400, env.Status != statusOK:
		return &APIError{StatusCode: resp.StatusCode, Status: env.Status}
	}
	return nil
}
