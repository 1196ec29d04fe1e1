package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizdeck/internal/auth"
)

// memCredentials is an in-memory credential store for tests.
type memCredentials struct {
	token  string
	userID string
}

func (m *memCredentials) Load() (auth.Credential, error) {
	return auth.Credential{Token: m.token, UserID: m.userID}, nil
}

func (m *memCredentials) SaveToken(token string) error {
	m.token = token
	return nil
}

func (m *memCredentials) SaveUserID(userID string) error {
	m.userID = userID
	return nil
}

func (m *memCredentials) Clear() error {
	m.token = ""
	m.userID = ""
	return nil
}

func newTestSession(t *testing.T, creds *memCredentials) *auth.Session {
	t.Helper()
	return auth.NewSession(creds, func() {})
}

func TestDoAttachesTokenHeader(t *testing.T) {
	creds := &memCredentials{token: "tok-123"}
	sess := newTestSession(t, creds)

	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.Client(), sess)
	err := c.Do(context.Background(), http.MethodGet, "/api/ping/", nil, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, "Token tok-123", gotAuth)
}

func TestDoOmitsTokenWhenUnauthenticated(t *testing.T) {
	sess := newTestSession(t, &memCredentials{})

	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.Client(), sess)
	err := c.Do(context.Background(), http.MethodGet, "/api/ping/", nil, nil, nil)
	require.NoError(t, err)

	assert.Empty(t, gotAuth)
}

func TestDoCallerHeadersWin(t *testing.T) {
	creds := &memCredentials{token: "tok-123"}
	sess := newTestSession(t, creds)

	var gotAuth, gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	headers := http.Header{}
	headers.Set("Authorization", "Bearer other")
	headers.Set("Content-Type", "application/x-ndjson")

	c := NewClient(srv.URL, srv.Client(), sess)
	err := c.Do(context.Background(), http.MethodGet, "/api/ping/", nil, headers, nil)
	require.NoError(t, err)

	assert.Equal(t, "Bearer other", gotAuth)
	assert.Equal(t, "application/x-ndjson", gotContentType)
}

func TestDoUnauthorizedLogsOutAndReturnsSentinel(t *testing.T) {
	creds := &memCredentials{token: "stale-token", userID: "7"}
	sess := newTestSession(t, creds)

	redirected := 0
	sess.SetNavigator(func() { redirected++ })

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.Client(), sess)
	err := c.Do(context.Background(), http.MethodGet, "/api/assessment/1/results/", nil, nil, nil)
	require.ErrorIs(t, err, ErrUnauthorized)

	assert.False(t, sess.IsAuthenticated())
	assert.Empty(t, creds.token)
	assert.Empty(t, creds.userID)
	assert.Equal(t, 1, redirected)
}

func TestDoErrorResponseDecoded(t *testing.T) {
	sess := newTestSession(t, &memCredentials{})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": "course_name is required"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.Client(), sess)
	err := c.Do(context.Background(), http.MethodPost, "/api/assessment/start/", nil, nil, nil)
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "course_name is required", apiErr.Message)
}

func TestDoErrorResponseWithoutBody(t *testing.T) {
	sess := newTestSession(t, &memCredentials{})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.Client(), sess)
	err := c.Do(context.Background(), http.MethodGet, "/api/ping/", nil, nil, nil)
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Contains(t, apiErr.Error(), "500")
}

func TestNewClientTrimsTrailingSlash(t *testing.T) {
	c := NewClient("http://example.com/", nil, nil)
	assert.Equal(t, "http://example.com", c.ServerURL())
}

func TestNewClientDefaultServer(t *testing.T) {
	c := NewClient("", nil, nil)
	assert.Equal(t, defaultServer, c.ServerURL())
}
