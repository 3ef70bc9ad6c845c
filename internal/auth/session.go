// Package auth holds the session layer for the portal client: the OAuth
// authorization-code flow, the single-flight refresh coordinator, and the
// session facade that ties them to the credential store.
package auth

import (
	"context"
	"log"
	"sync"
	"time"

	"golang.org/x/oauth2"

	"github.com/csesa/portal-client/internal/client"
	"github.com/csesa/portal-client/internal/model"
	"github.com/csesa/portal-client/internal/store"
)

// refreshLeeway is how close to expiry an access token may get before
// TokenSource refreshes it proactively.
const refreshLeeway = 30 * time.Second

// Session is the single entry point the rest of the application uses for
// authentication state. It owns the flow controller and the refresh
// coordinator and wires the coordinator into the HTTP client.
type Session struct {
	store *store.Store
	api   *client.Client
	flow  *Flow
	coord *Coordinator

	mu   sync.Mutex
	user *model.User

	// OnLogout, when set, runs after a logged-in session has been cleared.
	// It is not invoked when logout finds nothing to clear.
	OnLogout func()
}

func NewSession(api *client.Client, st *store.Store, redirectURI string) *Session {
	s := &Session{
		store: st,
		api:   api,
		flow:  NewFlow(api, st, redirectURI),
	}
	s.coord = NewCoordinator(st, api.RefreshAccessToken)
	s.coord.onFailure = s.forceLogout
	api.Refresher = s.coord

	if u, ok := st.User(); ok && st.HasAccessToken() {
		s.user = &u
	}
	return s
}

// Login starts the OAuth flow and returns the provider URL to open.
func (s *Session) Login(ctx context.Context, returnPath string) (string, error) {
	return s.flow.Initiate(ctx, returnPath)
}

// CompleteLogin finishes the OAuth flow from the callback parameters. On
// success the returned response carries the post-login redirect target.
func (s *Session) CompleteLogin(ctx context.Context, code, state, providerErr string) (*model.AuthResponse, error) {
	resp, err := s.flow.HandleCallback(ctx, code, state, providerErr)
	if err != nil {
		if !s.store.HasAccessToken() {
			s.setUser(nil)
		}
		return nil, err
	}
	s.setUser(resp.User)
	return resp, nil
}

// PasswordLogin is the email/password variant of login.
func (s *Session) PasswordLogin(ctx context.Context, email, password string) (*model.User, error) {
	resp, err := s.api.PasswordLogin(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" || resp.User == nil {
		return nil, ErrInvalidExchangeResponse
	}
	if err := s.store.SaveTokens(resp.AccessToken, resp.RefreshToken); err != nil {
		return nil, err
	}
	if err := s.store.SaveUser(*resp.User); err != nil {
		return nil, err
	}
	s.setUser(resp.User)
	return resp.User, nil
}

// Logout clears the persisted credentials and the in-memory user. Calling
// it when already logged out is a no-op.
func (s *Session) Logout() error {
	wasAuthenticated := s.store.HasAccessToken()
	if err := s.store.Clear(); err != nil {
		return err
	}
	s.setUser(nil)
	if wasAuthenticated && s.OnLogout != nil {
		s.OnLogout()
	}
	return nil
}

func (s *Session) forceLogout() {
	if err := s.Logout(); err != nil {
		log.Printf("auth: clear credentials after auth failure: %v", err)
	}
}

// IsAuthenticated reports whether an access token is stored. The token is
// not validated here; a stale one is caught by the refresh path.
func (s *Session) IsAuthenticated() bool {
	return s.store.HasAccessToken()
}

// CurrentUser returns the logged-in user without a network call.
func (s *Session) CurrentUser() (model.User, bool) {
	s.mu.Lock()
	if s.user != nil {
		u := *s.user
		s.mu.Unlock()
		return u, true
	}
	s.mu.Unlock()

	if !s.store.HasAccessToken() {
		return model.User{}, false
	}
	u, ok := s.store.User()
	if ok {
		s.setUser(&u)
	}
	return u, ok
}

// HasRole reports whether the current user holds the given role. An
// unknown role never matches.
func (s *Session) HasRole(role model.Role) bool {
	u, ok := s.CurrentUser()
	if !ok || u.Role == model.RoleUnknown {
		return false
	}
	return u.Role == role
}

func (s *Session) setUser(u *model.User) {
	s.mu.Lock()
	s.user = u
	s.mu.Unlock()
}

// TokenSource adapts the session to golang.org/x/oauth2 so other code can
// authenticate with the same credentials. Tokens close to expiry are
// refreshed through the coordinator before being handed out.
func (s *Session) TokenSource(ctx context.Context) oauth2.TokenSource {
	return &sessionTokenSource{ctx: ctx, session: s}
}

type sessionTokenSource struct {
	ctx     context.Context
	session *Session
}

func (ts *sessionTokenSource) Token() (*oauth2.Token, error) {
	access, ok := ts.session.store.AccessToken()
	if !ok {
		return nil, ErrNotAuthenticated
	}
	if tokenExpiresWithin(access, refreshLeeway) {
		refreshed, err := ts.session.coord.Refresh(ts.ctx)
		if err != nil {
			return nil, err
		}
		access = refreshed
	}
	return &oauth2.Token{AccessToken: access, TokenType: "Bearer"}, nil
}
