// Package mailtm is a client for the mail.tm disposable mailbox API.
//
// The client holds no per-user state. Calls that act on a mailbox take the
// bearer token issued by Token, so one Client can serve every user of the
// proxy concurrently.
package mailtm

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

	"github.com/hay-kot/tempbox/internal/httpclient"
)

const (
	// DefaultBaseURL is the public mail.tm API.
	DefaultBaseURL = "https://api.mail.tm"
	// DefaultTimeout bounds each request.
	DefaultTimeout = 10 * time.Second
)

// Client is a mail.tm API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
	retry      *httpclient.RetryConfig
}

// Option configures the client.
type Option func(*Client)

// WithBaseURL sets the base URL.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithHTTPClient sets the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithRetry sets the retry policy. The default sends each request once.
func WithRetry(cfg *httpclient.RetryConfig) Option {
	return func(c *Client) {
		c.retry = cfg
	}
}

// New creates a Client.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: httpclient.New(DefaultTimeout),
		retry:      httpclient.NoRetry(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Domains lists one page of domains. Pages start at 1.
func (c *Client) Domains(ctx context.Context, page int) (DomainsResponse, error) {
	var out DomainsResponse
	err := c.do(ctx, http.MethodGet, "/domains?page="+strconv.Itoa(max(page, 1)), "", nil, &out)
	return out, err
}

// Domain fetches one domain.
func (c *Client) Domain(ctx context.Context, id string) (Domain, error) {
	var out Domain
	err := c.do(ctx, http.MethodGet, "/domains/"+url.PathEscape(id), "", nil, &out)
	return out, err
}

// CreateAccount registers a new mailbox.
func (c *Client) CreateAccount(ctx context.Context, creds Credentials) (Account, error) {
	var out Account
	err := c.do(ctx, http.MethodPost, "/accounts", "", creds, &out)
	return out, err
}

// Token issues a bearer token for an existing mailbox.
func (c *Client) Token(ctx context.Context, creds Credentials) (Token, error) {
	var out Token
	err := c.do(ctx, http.MethodPost, "/token", "", creds, &out)
	return out, err
}

// Me returns the account the token belongs to.
func (c *Client) Me(ctx context.Context, token string) (Account, error) {
	var out Account
	err := c.do(ctx, http.MethodGet, "/me", token, nil, &out)
	return out, err
}

// Account fetches an account by id.
func (c *Client) Account(ctx context.Context, token, id string) (Account, error) {
	var out Account
	err := c.do(ctx, http.MethodGet, "/accounts/"+url.PathEscape(id), token, nil, &out)
	return out, err
}

// DeleteAccount deletes an account.
func (c *Client) DeleteAccount(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/accounts/"+url.PathEscape(id), token, nil, nil)
}

// Messages lists one page of messages. Pages start at 1.
func (c *Client) Messages(ctx context.Context, token string, page int) (MessagesResponse, error) {
	var out MessagesResponse
	err := c.do(ctx, http.MethodGet, "/messages?page="+strconv.Itoa(max(page, 1)), token, nil, &out)
	return out, err
}

// Message fetches a full message.
func (c *Client) Message(ctx context.Context, token, id string) (MessageDetail, error) {
	var out MessageDetail
	err := c.do(ctx, http.MethodGet, "/messages/"+url.PathEscape(id), token, nil, &out)
	return out, err
}

// DeleteMessage deletes a message.
func (c *Client) DeleteMessage(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/messages/"+url.PathEscape(id), token, nil, nil)
}

// MarkSeen marks a message as read.
func (c *Client) MarkSeen(ctx context.Context, token, id string) (SeenResult, error) {
	var out SeenResult
	err := c.do(ctx, http.MethodPatch, "/messages/"+url.PathEscape(id), token, SeenResult{Seen: true}, &out)
	return out, err
}

// Source fetches the raw source of a message.
func (c *Client) Source(ctx context.Context, token, id string) (Source, error) {
	var out Source
	err := c.do(ctx, http.MethodGet, "/sources/"+url.PathEscape(id), token, nil, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, method, path, token string, body, result any) error {
	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		payload = data
	}

	resp, err := httpclient.Do(ctx, c.httpClient, c.retry, func(ctx context.Context) (*http.Request, error) {
		var r io.Reader
		if payload != nil {
			r = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, r)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		if payload != nil {
			contentType := "application/json"
			if method == http.MethodPatch {
				contentType = "application/merge-patch+json"
			}
			req.Header.Set("Content-Type", contentType)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		return req, nil
	})
	if err != nil {
		return transportError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return statusError(resp.StatusCode, upstreamMessage(resp.Body))
	}

	if result == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return transportError(fmt.Errorf("decode response: %w", err))
	}
	return nil
}

// upstreamMessage extracts a human message from an error body.
func upstreamMessage(r io.Reader) string {
	data, _ := io.ReadAll(io.LimitReader(r, 64<<10))

	var body struct {
		Message     string `json:"message"`
		Detail      string `json:"detail"`
		Description string `json:"hydra:description"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return strings.TrimSpace(string(data))
	}
	for _, s := range []string{body.Message, body.Detail, body.Description} {
		if s != "" {
			return s
		}
	}
	return ""
}
