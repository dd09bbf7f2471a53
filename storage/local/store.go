// Package localstore persists the client session between runs.
package localstore

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	"github.com/trezcool/klabu/core/session"
)

// sessionKey is the single well-known key the session lives under; a new
// login always overwrites it (one active session per client).
const sessionKey = "session"

type fileDoc map[string]session.Session

// Store is a file-backed session.Store.
type Store struct {
	mu   sync.Mutex
	path string
}

var _ session.Store = (*Store)(nil) // interface compliance check

func New(path string) *Store {
	return &Store{path: path}
}

func (st *Store) Save(s session.Session) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(st.path), 0o700); err != nil {
		return errors.Wrap(err, "creating state dir")
	}
	data, err := json.MarshalIndent(fileDoc{sessionKey: s}, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding session")
	}
	// token material: keep it out of other users' reach
	if err := ioutil.WriteFile(st.path, data, 0o600); err != nil {
		return errors.Wrap(err, "writing state file")
	}
	return nil
}

func (st *Store) Load() (session.Session, bool, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	data, err := ioutil.ReadFile(st.path)
	if err != nil {
		if os.IsNotExist(err) {
			return session.Session{}, false, nil
		}
		return session.Session{}, false, errors.Wrap(err, "reading state file")
	}
	var doc fileDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		// a corrupt state file means no session, not a crash
		return session.Session{}, false, nil
	}
	s, ok := doc[sessionKey]
	if !ok || s.Token == "" {
		return session.Session{}, false, nil
	}
	return s, true, nil
}

func (st *Store) Clear() error {
	st.mu.Lock()
	defer st.mu.Unlock()

	if err := os.Remove(st.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "removing state file")
	}
	return nil
}
