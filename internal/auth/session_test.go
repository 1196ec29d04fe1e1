package auth

import (
	"errors"
	"testing"
)

// memStore is an in-memory CredentialStore for tests.
type memStore struct {
	cred    Credential
	loadErr error
}

func (m *memStore) Load() (Credential, error) {
	if m.loadErr != nil {
		return Credential{}, m.loadErr
	}
	return m.cred, nil
}

func (m *memStore) SaveToken(token string) error {
	m.cred.Token = token
	return nil
}

func (m *memStore) SaveUserID(userID string) error {
	m.cred.UserID = userID
	return nil
}

func (m *memStore) Clear() error {
	m.cred = Credential{}
	return nil
}

func TestSetToken_Authenticates(t *testing.T) {
	st := &memStore{}
	s := NewSession(st, nil)

	if s.IsAuthenticated() {
		t.Error("expected unauthenticated session before SetToken")
	}

	if err := s.SetToken("abc123"); err != nil {
		t.Fatalf("SetToken: %v", err)
	}

	if !s.IsAuthenticated() {
		t.Error("expected authenticated session after SetToken")
	}
	if s.Token() != "abc123" {
		t.Errorf("Token = %q, want %q", s.Token(), "abc123")
	}
	if st.cred.Token != "abc123" {
		t.Errorf("persisted token = %q, want %q", st.cred.Token, "abc123")
	}
}

func TestNewSession_LoadsPersistedCredential(t *testing.T) {
	st := &memStore{cred: Credential{Token: "persisted", UserID: "42"}}
	s := NewSession(st, nil)

	if !s.IsAuthenticated() {
		t.Error("expected session restored from store to be authenticated")
	}
	if s.UserID() != "42" {
		t.Errorf("UserID = %q, want %q", s.UserID(), "42")
	}
}

func TestNewSession_LoadFailureDegradesToUnauthenticated(t *testing.T) {
	st := &memStore{loadErr: errors.New("corrupt store")}
	s := NewSession(st, nil)

	if s.IsAuthenticated() {
		t.Error("expected unauthenticated session when load fails")
	}
}

func TestLogout_ClearsEverything(t *testing.T) {
	st := &memStore{}
	redirects := 0
	s := NewSession(st, func() { redirects++ })

	s.SetToken("tok")
	s.SetUserID("7")

	if err := s.Logout(); err != nil {
		t.Fatalf("Logout: %v", err)
	}

	if s.IsAuthenticated() {
		t.Error("expected unauthenticated session after Logout")
	}
	if st.cred != (Credential{}) {
		t.Errorf("expected cleared store, got %+v", st.cred)
	}
	if redirects != 1 {
		t.Errorf("redirects = %d, want 1", redirects)
	}
}

func TestLogout_Idempotent(t *testing.T) {
	s := NewSession(&memStore{}, nil)
	s.SetToken("tok")

	if err := s.Logout(); err != nil {
		t.Fatalf("first Logout: %v", err)
	}
	if err := s.Logout(); err != nil {
		t.Fatalf("second Logout: %v", err)
	}
	if s.IsAuthenticated() {
		t.Error("expected unauthenticated session after repeated Logout")
	}
}

func TestRequire_MandatoryRedirects(t *testing.T) {
	redirects := 0
	s := NewSession(&memStore{}, func() { redirects++ })

	if s.Require(true) {
		t.Error("expected Require(true) to fail without credential")
	}
	if redirects != 1 {
		t.Errorf("redirects = %d, want 1", redirects)
	}
}

func TestRequire_OptionalNeverRedirects(t *testing.T) {
	redirects := 0
	s := NewSession(&memStore{}, func() { redirects++ })

	if !s.Require(false) {
		t.Error("expected Require(false) to pass without credential")
	}
	if redirects != 0 {
		t.Errorf("redirects = %d, want 0", redirects)
	}
}

func TestRequire_AuthenticatedPasses(t *testing.T) {
	s := NewSession(&memStore{}, nil)
	s.SetToken("tok")

	if !s.Require(true) {
		t.Error("expected Require(true) to pass with credential")
	}
}
