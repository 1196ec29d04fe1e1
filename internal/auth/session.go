package auth

// Credential is the bearer token and user identifier proving an
// authenticated session. An empty token means unauthenticated.
type Credential struct {
	Token  string
	UserID string
}

// CredentialStore persists the credential across runs.
type CredentialStore interface {
	Load() (Credential, error)
	SaveToken(token string) error
	SaveUserID(userID string) error
	Clear() error
}

// Navigator redirects the UI to the login view. Sessions created for
// non-interactive commands pass nil and the redirect is skipped.
type Navigator func()

// Session holds the credential gate for one client instance. It is
// constructed explicitly and injected into whatever needs it; there is
// no package-level singleton.
type Session struct {
	store   CredentialStore
	toLogin Navigator
	cred    Credential
}

// NewSession loads any persisted credential from store. A load failure
// is treated as "no credential" rather than a startup error, so a
// corrupt store degrades to the login flow.
func NewSession(store CredentialStore, toLogin Navigator) *Session {
	s := &Session{store: store, toLogin: toLogin}
	if store != nil {
		if cred, err := store.Load(); err == nil {
			s.cred = cred
		}
	}
	return s
}

// SetNavigator installs the login redirect hook. The TUI wires this
// after the program is constructed.
func (s *Session) SetNavigator(nav Navigator) {
	s.toLogin = nav
}

// IsAuthenticated reports whether a non-empty token is held.
func (s *Session) IsAuthenticated() bool {
	return s.cred.Token != ""
}

// Token returns the current bearer token, or "" when unauthenticated.
func (s *Session) Token() string {
	return s.cred.Token
}

// UserID returns the current user identifier.
func (s *Session) UserID() string {
	return s.cred.UserID
}

// SetToken overwrites the in-memory and persisted token.
func (s *Session) SetToken(token string) error {
	s.cred.Token = token
	if s.store == nil {
		return nil
	}
	return s.store.SaveToken(token)
}

// SetUserID overwrites the in-memory and persisted user identifier.
func (s *Session) SetUserID(userID string) error {
	s.cred.UserID = userID
	if s.store == nil {
		return nil
	}
	return s.store.SaveUserID(userID)
}

// Logout clears the credential from memory and the store, then
// navigates to the login view. Calling it repeatedly is harmless.
func (s *Session) Logout() error {
	s.cred = Credential{}

	var err error
	if s.store != nil {
		err = s.store.Clear()
	}
	if s.toLogin != nil {
		s.toLogin()
	}
	return err
}

// Require checks the gate for a view. When mandatory and no credential
// is held it navigates to login and returns false; otherwise it
// returns true without side effects.
func (s *Session) Require(mandatory bool) bool {
	if mandatory && !s.IsAuthenticated() {
		if s.toLogin != nil {
			s.toLogin()
		}
		return false
	}
	return true
}
