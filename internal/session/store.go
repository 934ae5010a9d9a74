// Package session owns the process-wide authentication state: the bearer
// token, the authenticated profile, and the only legal operations that mutate
// them.
package session

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/bookhub/bookhub/internal/api"
	"github.com/bookhub/bookhub/internal/errs"
	"github.com/bookhub/bookhub/internal/model"
)

// Status is the settled state of the session.
type Status string

const (
	StatusUninitialized Status = "uninitialized"
	StatusLoading       Status = "loading"
	StatusAuthenticated Status = "authenticated"
	StatusAnonymous     Status = "anonymous"
)

// MinPasswordLen is enforced locally before registration reaches the network.
const MinPasswordLen = 6

// Store is the single writer of the session. All other components read it
// through the predicates below; none mutate it directly.
type Store struct {
	mu     sync.Mutex
	token  string
	user   *model.UserProfile
	status Status
	gen    uint64 // bumped by every mutating op; stale responses are discarded
	inited bool

	api    *api.Client
	tokens TokenStore
	log    *zap.Logger
}

// Option customizes a Store.
type Option func(*Store)

// WithLogger sets the structured logger (Nop by default).
func WithLogger(log *zap.Logger) Option { return func(s *Store) { s.log = log } }

// New wires a Store to the HTTP client: the client reads this store's headers
// on every call and tears the session down when the server answers 401.
func New(client *api.Client, tokens TokenStore, opts ...Option) *Store {
	s := &Store{
		status: StatusUninitialized,
		api:    client,
		tokens: tokens,
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	client.BindHeaders(s)
	client.OnUnauthorized(func() {
		s.log.Info("session rejected by server, logging out")
		s.Logout()
	})
	return s
}

// Initialize restores the session from durable storage: absent token settles
// the session anonymous; a present token is verified by fetching the profile.
// Runs once per process; later calls are no-ops.
func (s *Store) Initialize(ctx context.Context) error {
	s.mu.Lock()
	if s.inited {
		s.mu.Unlock()
		return nil
	}
	s.inited = true

	tok, err := s.tokens.Load()
	if err != nil || tok == "" {
		s.status = StatusAnonymous
		s.mu.Unlock()
		return err
	}
	s.token = tok
	s.status = StatusLoading
	s.gen++
	g := s.gen
	s.mu.Unlock()

	var user model.UserProfile
	ferr := s.api.Get(ctx, "/auth/me", &user)
	if ferr == nil {
		ferr = checkProfile(user)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != g {
		// a Logout (401 cascade included) settled the session already
		return nil
	}
	if ferr != nil {
		s.token = ""
		s.user = nil
		s.status = StatusAnonymous
		_ = s.tokens.Clear()
		s.log.Info("persisted token rejected", zap.Error(ferr))
		return nil
	}
	s.user = &user
	s.status = StatusAuthenticated
	s.log.Info("session restored", zap.String("role", user.Role.String()))
	return nil
}

// Login authenticates with the remote API. On failure the existing session is
// left untouched and the returned error carries a human-readable message.
func (s *Store) Login(ctx context.Context, email, password string) error {
	if strings.TrimSpace(email) == "" {
		return errs.Validation("email", "required")
	}
	if !strings.Contains(email, "@") {
		return errs.Validation("email", "invalid address")
	}
	if password == "" {
		return errs.Validation("password", "required")
	}

	g := s.beginMutation()

	var resp model.AuthResponse
	if err := s.api.PostCredentials(ctx, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &resp); err != nil {
		return err
	}
	return s.applyAuth(g, resp)
}

// Register creates an account; the registration endpoint also authenticates
// the new user, so success is treated exactly like login.
func (s *Store) Register(ctx context.Context, reg model.Registration, confirmPassword string) error {
	if err := validateRegistration(reg, confirmPassword); err != nil {
		return err
	}
	if reg.Role == "" {
		reg.Role = model.RoleClient
	}

	g := s.beginMutation()

	var resp model.AuthResponse
	if err := s.api.PostCredentials(ctx, "/auth/register", reg, &resp); err != nil {
		return err
	}
	return s.applyAuth(g, resp)
}

// Logout unconditionally resets the session to anonymous and drops the
// persisted token. Safe to call when already anonymous.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.token = ""
	s.user = nil
	s.status = StatusAnonymous
	_ = s.tokens.Clear()
}

// UpdateProfile replaces the authenticated profile wholesale without touching
// the token. Terminal step of a profile-edit save flow; no server round-trip.
func (s *Store) UpdateProfile(u model.UserProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusAuthenticated {
		return
	}
	s.user = &u
}

// IsAuthenticated reports whether both token and user are present.
func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status == StatusAuthenticated
}

// HasRole reports whether the session is authenticated as the given role.
// Exact match; no role hierarchy is modeled.
func (s *Store) HasRole(role model.Role) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status == StatusAuthenticated && s.user != nil && s.user.Role == role
}

// User returns a copy of the authenticated profile, or nil.
func (s *Store) User() *model.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Status returns the current session status.
func (s *Store) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// AuthHeaders returns the header set for outgoing API calls, reflecting the
// token at call time.
func (s *Store) AuthHeaders() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" {
		return map[string]string{}
	}
	return map[string]string{"Authorization": "Bearer " + s.token}
}

// beginMutation tags a mutating network call with a generation.
func (s *Store) beginMutation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	return s.gen
}

// applyAuth installs an auth response unless a later operation superseded it.
func (s *Store) applyAuth(g uint64, resp model.AuthResponse) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != g {
		s.log.Debug("discarding stale auth response")
		return errs.ErrSuperseded
	}
	if resp.AccessToken == "" {
		return &errs.ProtocolError{StatusCode: 200, Cause: errs.ErrSessionAnonymous}
	}
	if err := checkProfile(resp.User); err != nil {
		return err
	}
	s.token = resp.AccessToken
	user := resp.User
	s.user = &user
	s.status = StatusAuthenticated
	if err := s.tokens.Save(resp.AccessToken); err != nil {
		s.log.Warn("persisting token failed", zap.Error(err))
	}
	return nil
}

// checkProfile rejects a profile the server should never send with a 2xx:
// missing id or a role outside the enumerated set. A token without a usable
// user must never settle the session authenticated.
func checkProfile(u model.UserProfile) error {
	if u.ID == "" {
		return &errs.ProtocolError{StatusCode: 200, Cause: errs.ErrSessionAnonymous}
	}
	if _, err := model.ParseRole(u.Role.String()); err != nil {
		return &errs.ProtocolError{StatusCode: 200, Cause: err}
	}
	return nil
}

func validateRegistration(reg model.Registration, confirm string) error {
	if strings.TrimSpace(reg.FirstName) == "" {
		return errs.Validation("first_name", "required")
	}
	if strings.TrimSpace(reg.LastName) == "" {
		return errs.Validation("last_name", "required")
	}
	if strings.TrimSpace(reg.Email) == "" {
		return errs.Validation("email", "required")
	}
	if !strings.Contains(reg.Email, "@") {
		return errs.Validation("email", "invalid address")
	}
	if len(reg.Password) < MinPasswordLen {
		return errs.Validation("password", "must be at least 6 characters")
	}
	if reg.Password != confirm {
		return errs.Validation("confirm_password", "passwords do not match")
	}
	if reg.Role != "" {
		if _, err := model.ParseRole(string(reg.Role)); err != nil {
			return errs.Validation("role", "invalid role")
		}
	}
	return nil
}
