package localstore

import (
	"sync"

	"github.com/trezcool/klabu/core/session"
)

// MemStore is an in-memory session.Store for tests.
type MemStore struct {
	mu  sync.Mutex
	cur *session.Session
}

var _ session.Store = (*MemStore)(nil) // interface compliance check

func NewMem() *MemStore { return &MemStore{} }

func (st *MemStore) Save(s session.Session) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.cur = &s
	return nil
}

func (st *MemStore) Load() (session.Session, bool, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.cur == nil {
		return session.Session{}, false, nil
	}
	return *st.cur, true, nil
}

func (st *MemStore) Clear() error {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.cur = nil
	return nil
}
