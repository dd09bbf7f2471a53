package session

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/klabu/core"
)

// Role is the portal the user logged into. One case per role; anything
// branching on role should switch exhaustively over these.
type Role int

const (
	RoleUnknown Role = iota
	RoleStudent
	RoleTeacher
	RoleAdmin
)

func (r Role) String() string {
	switch r {
	case RoleStudent:
		return "student"
	case RoleTeacher:
		return "teacher"
	case RoleAdmin:
		return "admin"
	}
	return "unknown"
}

var ErrUnknownRole = errors.New("unknown role")

func ParseRole(s string) (Role, error) {
	switch core.CleanString(s, true) {
	case "student":
		return RoleStudent, nil
	case "teacher":
		return RoleTeacher, nil
	case "admin":
		return RoleAdmin, nil
	}
	return RoleUnknown, ErrUnknownRole
}

// Session is the current authenticated identity: one role, one bearer token.
type Session struct {
	Role      Role      `json:"role"`
	Email     string    `json:"email"`
	Token     string    `json:"accessToken"`
	ExpiresAt time.Time `json:"expiresAt"` // zero when the token carries no exp claim
}

// Expired reports whether the token's exp claim has passed. Sessions without
// an exp claim never expire client-side; the backend rejects them instead.
func (s Session) Expired() bool {
	return !s.ExpiresAt.IsZero() && nowFunc().After(s.ExpiresAt)
}

// Credentials is a login form.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (c *Credentials) Validate() error {
	c.Email = core.CleanString(c.Email, true /* lower */)
	return core.Validate.Struct(c)
}

// NewAccount is a signup form.
type NewAccount struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
}

func (na *NewAccount) Validate() error {
	na.Name = core.CleanString(na.Name)
	na.Email = core.CleanString(na.Email, true /* lower */)
	return core.Validate.Struct(na)
}

type (
	// Authenticator performs the public (token-less) auth calls.
	// Login must map 400/401/403 to core.ErrAuthenticationFailed and any
	// other failing status to a core.ServerError.
	Authenticator interface {
		Login(ctx context.Context, role Role, creds Credentials) (token string, err error)
		Signup(ctx context.Context, role Role, na NewAccount) error
	}

	// Store persists the session between runs under a single well-known key.
	Store interface {
		Save(s Session) error
		Load() (Session, bool, error)
		Clear() error
	}

	// Holder owns the current session. Login and logout are the only writers;
	// every outgoing protected request reads through Token. Subscribers are
	// notified on every change so dependent views can re-derive their state.
	Holder struct {
		mu    sync.RWMutex
		cur   *Session
		auth  Authenticator
		store Store
		log   core.Logger
		subs  []func(*Session)
	}
)

var nowFunc = time.Now // mockable

func NewHolder(auth Authenticator, store Store, log core.Logger) *Holder {
	return &Holder{auth: auth, store: store, log: log}
}

// Restore loads a previously persisted session, if any. Expired sessions are
// discarded and cleared from the store.
func (h *Holder) Restore() error {
	s, ok, err := h.store.Load()
	if err != nil {
		return errors.Wrap(err, "loading session")
	}
	if !ok {
		return nil
	}
	if s.Expired() {
		h.log.Info("stored session expired; clearing")
		return h.store.Clear()
	}
	h.mu.Lock()
	h.cur = &s
	h.mu.Unlock()
	h.notify(&s)
	return nil
}

// Login validates the credentials locally, authenticates against the backend
// and persists the new session, overwriting any prior one.
func (h *Holder) Login(ctx context.Context, role Role, creds Credentials) (Session, error) {
	if err := creds.Validate(); err != nil {
		return Session{}, err
	}
	token, err := h.auth.Login(ctx, role, creds)
	if err != nil {
		return Session{}, err
	}

	s := Session{Role: role, Email: creds.Email, Token: token}
	if exp, err := tokenExpiry(token); err == nil {
		s.ExpiresAt = exp
	}
	if err := h.store.Save(s); err != nil {
		return Session{}, errors.Wrap(err, "persisting session")
	}
	h.mu.Lock()
	h.cur = &s
	h.mu.Unlock()
	h.notify(&s)
	return s, nil
}

// Signup validates the form locally and registers the account. It does not
// log the new account in.
func (h *Holder) Signup(ctx context.Context, role Role, na NewAccount) error {
	if err := na.Validate(); err != nil {
		return err
	}
	return h.auth.Signup(ctx, role, na)
}

// Logout drops the session locally. No backend invalidation call exists.
func (h *Holder) Logout() error {
	h.mu.Lock()
	h.cur = nil
	h.mu.Unlock()
	h.notify(nil)
	return h.store.Clear()
}

// Current returns the active session, if any.
func (h *Holder) Current() (Session, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.cur == nil {
		return Session{}, false
	}
	return *h.cur, true
}

// Token implements the private client's token source. It reports false when
// no session is active so the caller can fail closed.
func (h *Holder) Token() (string, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.cur == nil {
		return "", false
	}
	return h.cur.Token, true
}

// Subscribe registers fn to run on every login (with the new session) and
// logout (with nil).
func (h *Holder) Subscribe(fn func(*Session)) {
	h.mu.Lock()
	h.subs = append(h.subs, fn)
	h.mu.Unlock()
}

func (h *Holder) notify(s *Session) {
	h.mu.RLock()
	subs := make([]func(*Session), len(h.subs))
	copy(subs, h.subs)
	h.mu.RUnlock()
	for _, fn := range subs {
		fn(s)
	}
}
