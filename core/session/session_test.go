package session

import (
	"context"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/pkg/errors"

	"github.com/trezcool/klabu/core"
)

type fakeAuth struct {
	token      string
	loginErr   error
	loginCalls int
	signups    []NewAccount
	signupErr  error
}

var _ Authenticator = (*fakeAuth)(nil)

func (a *fakeAuth) Login(ctx context.Context, role Role, creds Credentials) (string, error) {
	a.loginCalls++
	return a.token, a.loginErr
}

func (a *fakeAuth) Signup(ctx context.Context, role Role, na NewAccount) error {
	if a.signupErr != nil {
		return a.signupErr
	}
	a.signups = append(a.signups, na)
	return nil
}

type fakeStore struct {
	saved   *Session
	saveErr error
	cleared int
}

var _ Store = (*fakeStore)(nil)

func (s *fakeStore) Save(sess Session) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved = &sess
	return nil
}

func (s *fakeStore) Load() (Session, bool, error) {
	if s.saved == nil {
		return Session{}, false, nil
	}
	return *s.saved, true, nil
}

func (s *fakeStore) Clear() error {
	s.saved = nil
	s.cleared++
	return nil
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.StandardClaims{
		ExpiresAt: exp.Unix(),
		Subject:   "student@school.test",
	}).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return token
}

func TestHolderLogin(t *testing.T) {
	ctx := context.Background()
	creds := Credentials{Email: "student@school.test", Password: "s3cret"}

	t.Run("success persists and notifies", func(t *testing.T) {
		exp := time.Now().Add(time.Hour).Truncate(time.Second)
		auth := &fakeAuth{token: signedToken(t, exp)}
		store := &fakeStore{}
		h := NewHolder(auth, store, core.NopLogger{})

		var notified []*Session
		h.Subscribe(func(s *Session) { notified = append(notified, s) })

		s, err := h.Login(ctx, RoleStudent, creds)
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}
		if s.Role != RoleStudent || s.Email != creds.Email || s.Token != auth.token {
			t.Errorf("Login() = %+v; want the new student session", s)
		}
		if !s.ExpiresAt.Equal(exp) {
			t.Errorf("ExpiresAt = %s; want %s from the token's exp claim", s.ExpiresAt, exp)
		}
		if store.saved == nil || store.saved.Token != auth.token {
			t.Error("session not persisted to the store")
		}
		if tok, ok := h.Token(); !ok || tok != auth.token {
			t.Errorf("Token() = %q, %v; want the login token", tok, ok)
		}
		if len(notified) != 1 || notified[0] == nil || notified[0].Email != creds.Email {
			t.Errorf("subscriber saw %+v; want one call with the new session", notified)
		}
	})

	t.Run("opaque token yields a session without expiry", func(t *testing.T) {
		auth := &fakeAuth{token: "not-a-jwt"}
		h := NewHolder(auth, &fakeStore{}, core.NopLogger{})

		s, err := h.Login(ctx, RoleStudent, creds)
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}
		if !s.ExpiresAt.IsZero() {
			t.Errorf("ExpiresAt = %s; want zero for a token without claims", s.ExpiresAt)
		}
		if s.Expired() {
			t.Error("Expired() = true; sessions without exp never expire client-side")
		}
	})

	t.Run("invalid credentials never reach the backend", func(t *testing.T) {
		auth := &fakeAuth{token: "tok"}
		h := NewHolder(auth, &fakeStore{}, core.NopLogger{})

		tests := []struct {
			name  string
			creds Credentials
		}{
			{"missing email", Credentials{Password: "s3cret"}},
			{"bad email", Credentials{Email: "nope", Password: "s3cret"}},
			{"missing password", Credentials{Email: "student@school.test"}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				if _, err := h.Login(ctx, RoleStudent, tt.creds); err == nil {
					t.Error("Login() error = nil; want a validation error")
				}
			})
		}
		if auth.loginCalls != 0 {
			t.Errorf("Login called %d times; want 0", auth.loginCalls)
		}
	})

	t.Run("rejected credentials leave no session behind", func(t *testing.T) {
		auth := &fakeAuth{loginErr: core.ErrAuthenticationFailed}
		store := &fakeStore{}
		h := NewHolder(auth, store, core.NopLogger{})

		_, err := h.Login(ctx, RoleStudent, creds)
		if errors.Cause(err) != core.ErrAuthenticationFailed {
			t.Fatalf("Login() error = %v; want %v", err, core.ErrAuthenticationFailed)
		}
		if _, ok := h.Current(); ok {
			t.Error("Current() reports a session after a failed login")
		}
		if store.saved != nil {
			t.Error("failed login persisted a session")
		}
	})

	t.Run("login overwrites the previous session", func(t *testing.T) {
		auth := &fakeAuth{token: "tok-a"}
		h := NewHolder(auth, &fakeStore{}, core.NopLogger{})

		if _, err := h.Login(ctx, RoleStudent, creds); err != nil {
			t.Fatalf("Login() error = %v", err)
		}
		auth.token = "tok-b"
		s, err := h.Login(ctx, RoleTeacher, Credentials{Email: "teacher@school.test", Password: "pw"})
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}
		if s.Role != RoleTeacher || s.Token != "tok-b" {
			t.Errorf("Login() = %+v; want the teacher session", s)
		}
	})
}

func TestHolderLogout(t *testing.T) {
	ctx := context.Background()
	auth := &fakeAuth{token: "tok"}
	store := &fakeStore{}
	h := NewHolder(auth, store, core.NopLogger{})

	var notified []*Session
	h.Subscribe(func(s *Session) { notified = append(notified, s) })

	if _, err := h.Login(ctx, RoleStudent, Credentials{Email: "student@school.test", Password: "pw"}); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if err := h.Logout(); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}

	if _, ok := h.Current(); ok {
		t.Error("Current() reports a session after logout")
	}
	if _, ok := h.Token(); ok {
		t.Error("Token() reports a token after logout")
	}
	if store.cleared != 1 {
		t.Errorf("store cleared %d times; want 1", store.cleared)
	}
	if len(notified) != 2 || notified[1] != nil {
		t.Errorf("subscriber saw %d calls, last %+v; want nil on logout", len(notified), notified[len(notified)-1])
	}
}

func TestHolderRestore(t *testing.T) {
	t.Run("no stored session", func(t *testing.T) {
		h := NewHolder(&fakeAuth{}, &fakeStore{}, core.NopLogger{})
		if err := h.Restore(); err != nil {
			t.Fatalf("Restore() error = %v", err)
		}
		if _, ok := h.Current(); ok {
			t.Error("Current() reports a session with an empty store")
		}
	})

	t.Run("valid stored session comes back", func(t *testing.T) {
		store := &fakeStore{saved: &Session{
			Role: RoleTeacher, Email: "teacher@school.test", Token: "tok",
			ExpiresAt: time.Now().Add(time.Hour),
		}}
		h := NewHolder(&fakeAuth{}, store, core.NopLogger{})
		if err := h.Restore(); err != nil {
			t.Fatalf("Restore() error = %v", err)
		}
		s, ok := h.Current()
		if !ok || s.Email != "teacher@school.test" || s.Role != RoleTeacher {
			t.Errorf("Current() = %+v, %v; want the stored teacher session", s, ok)
		}
	})

	t.Run("expired stored session is discarded and cleared", func(t *testing.T) {
		store := &fakeStore{saved: &Session{
			Role: RoleStudent, Email: "student@school.test", Token: "tok",
			ExpiresAt: time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC),
		}}
		h := NewHolder(&fakeAuth{}, store, core.NopLogger{})

		nowFunc = func() time.Time { return time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC) }
		defer func() { nowFunc = time.Now }()

		if err := h.Restore(); err != nil {
			t.Fatalf("Restore() error = %v", err)
		}
		if _, ok := h.Current(); ok {
			t.Error("Current() reports an expired session")
		}
		if store.cleared != 1 {
			t.Errorf("store cleared %d times; want 1", store.cleared)
		}
	})
}

func TestHolderSignup(t *testing.T) {
	ctx := context.Background()

	t.Run("valid form registers without logging in", func(t *testing.T) {
		auth := &fakeAuth{}
		h := NewHolder(auth, &fakeStore{}, core.NopLogger{})

		err := h.Signup(ctx, RoleStudent, NewAccount{
			Name: "Kim Minjun", Email: "minjun@school.test",
			Password: "s3cret", PasswordConfirm: "s3cret",
		})
		if err != nil {
			t.Fatalf("Signup() error = %v", err)
		}
		if len(auth.signups) != 1 {
			t.Fatalf("Signup called %d times; want 1", len(auth.signups))
		}
		if _, ok := h.Current(); ok {
			t.Error("Signup() logged the account in")
		}
	})

	t.Run("password mismatch never reaches the backend", func(t *testing.T) {
		auth := &fakeAuth{}
		h := NewHolder(auth, &fakeStore{}, core.NopLogger{})

		err := h.Signup(ctx, RoleStudent, NewAccount{
			Name: "Kim Minjun", Email: "minjun@school.test",
			Password: "s3cret", PasswordConfirm: "other",
		})
		if err == nil {
			t.Error("Signup() error = nil; want a validation error")
		}
		if len(auth.signups) != 0 {
			t.Errorf("Signup called %d times; want 0", len(auth.signups))
		}
	})
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		in      string
		want    Role
		wantErr bool
	}{
		{"student", RoleStudent, false},
		{"Teacher", RoleTeacher, false},
		{" ADMIN ", RoleAdmin, false},
		{"principal", RoleUnknown, true},
		{"", RoleUnknown, true},
	}
	for _, tt := range tests {
		got, err := ParseRole(tt.in)
		if got != tt.want {
			t.Errorf("ParseRole(%q) = %s; want %s", tt.in, got, tt.want)
		}
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseRole(%q) error = %v; wantErr %v", tt.in, err, tt.wantErr)
		}
	}
}
