package api

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

	"github.com/abhisek/quizdeck/internal/auth"
)

const (
	defaultServer  = "http://127.0.0.1:8000"
	defaultTimeout = 30 * time.Second
)

// ErrUnauthorized is returned when the backend rejects the credential.
// The session has already been logged out by the time callers see it,
// so it marks a terminal failure for the request.
var ErrUnauthorized = errors.New("unauthorized")

// APIError is a non-401 error response from the backend.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if strings.TrimSpace(e.Message) == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return e.Message
}

// Client is the authenticated JSON client for the assessment backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *auth.Session
}

// NewClient creates a Client against baseURL. A nil httpClient gets a
// default with a request timeout; callers needing per-call deadlines
// use the context.
func NewClient(baseURL string, httpClient *http.Client, session *auth.Session) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = defaultServer
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		session:    session,
	}
}

// ServerURL returns the configured backend base URL.
func (c *Client) ServerURL() string {
	return c.baseURL
}

// Do issues one request. Headers start from the JSON default plus the
// bearer authorization when a credential is held; caller-supplied
// headers win on conflict. A 401 response logs the session out and
// returns ErrUnauthorized. Transport failures are returned unchanged.
// No retries; callers decide how to recover.
func (c *Client) Do(ctx context.Context, method, path string, body any, headers http.Header, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	if c.session != nil && c.session.IsAuthenticated() {
		req.Header.Set("Authorization", "Token "+c.session.Token())
	}
	for key, values := range headers {
		req.Header.Del(key)
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		if c.session != nil {
			_ = c.session.Logout()
		}
		return ErrUnauthorized
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp errorResponse
		_ = json.Unmarshal(raw, &errResp)
		return &APIError{StatusCode: resp.StatusCode, Message: errResp.Error}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	return c.Do(ctx, method, path, body, nil, out)
}
