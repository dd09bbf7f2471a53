package localstore

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/trezcool/klabu/core/session"
)

func TestStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "klabu", "session.json")
	store := New(path)

	s := session.Session{
		Role:      session.RoleStudent,
		Email:     "student@school.test",
		Token:     "tok",
		ExpiresAt: time.Date(2021, 8, 2, 15, 0, 0, 0, time.UTC),
	}
	if err := store.Save(s); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, ok, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !ok {
		t.Fatal("Load() found no session after Save()")
	}
	if got.Role != s.Role || got.Email != s.Email || got.Token != s.Token || !got.ExpiresAt.Equal(s.ExpiresAt) {
		t.Errorf("Load() = %+v; want %+v", got, s)
	}

	// a second login overwrites the single session slot
	s2 := session.Session{Role: session.RoleTeacher, Email: "teacher@school.test", Token: "tok2"}
	if err := store.Save(s2); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, ok, err = store.Load()
	if err != nil || !ok {
		t.Fatalf("Load() = %v, %v", ok, err)
	}
	if got.Email != s2.Email {
		t.Errorf("Load().Email = %q; want %q", got.Email, s2.Email)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if _, ok, err = store.Load(); err != nil || ok {
		t.Errorf("Load() after Clear() = %v, %v; want no session", ok, err)
	}
}

func TestStoreLoad(t *testing.T) {
	t.Run("missing file means no session", func(t *testing.T) {
		store := New(filepath.Join(t.TempDir(), "nope", "session.json"))
		_, ok, err := store.Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if ok {
			t.Error("Load() found a session in a missing file")
		}
	})

	t.Run("corrupt file means no session, not a crash", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "session.json")
		if err := ioutil.WriteFile(path, []byte("{not json"), 0o600); err != nil {
			t.Fatal(err)
		}
		_, ok, err := New(path).Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if ok {
			t.Error("Load() found a session in a corrupt file")
		}
	})

	t.Run("empty token means no session", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "session.json")
		if err := ioutil.WriteFile(path, []byte(`{"session":{"role":1,"email":"a@b.c","accessToken":""}}`), 0o600); err != nil {
			t.Fatal(err)
		}
		_, ok, err := New(path).Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if ok {
			t.Error("Load() found a session without a token")
		}
	})
}

func TestStoreFilePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := New(path)
	if err := store.Save(session.Session{Role: session.RoleStudent, Token: "tok"}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("state file mode = %o; want 600", perm)
	}
}

func TestStoreClearMissingFile(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "session.json"))
	if err := store.Clear(); err != nil {
		t.Errorf("Clear() error = %v; want nil for a missing file", err)
	}
}

func TestMemStore(t *testing.T) {
	store := NewMem()

	if _, ok, err := store.Load(); err != nil || ok {
		t.Fatalf("Load() on empty store = %v, %v", ok, err)
	}
	s := session.Session{Role: session.RoleAdmin, Email: "admin@school.test", Token: "tok"}
	if err := store.Save(s); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, ok, err := store.Load()
	if err != nil || !ok {
		t.Fatalf("Load() = %v, %v", ok, err)
	}
	if got.Email != s.Email {
		t.Errorf("Load().Email = %q; want %q", got.Email, s.Email)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if _, ok, _ := store.Load(); ok {
		t.Error("Load() found a session after Clear()")
	}
}
