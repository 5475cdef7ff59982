// Package lock provides keyed read/write mutual exclusion for account-scoped
// operations.
package lock

import (
	"fmt"
	"sync"

	"github.com/fin-ledger/cash_ledger_app/internal/apperrors"
)

// Type selects the lock mode.
type Type int

const (
	// Read acquires the shared lock; readers run concurrently.
	Read Type = iota
	// Write acquires the exclusive lock.
	Write
)

// IsWrite reports whether the mode is exclusive.
func (t Type) IsWrite() bool {
	return t == Write
}

// Manager serializes operations per key. One RW mutex is created lazily per
// distinct key and never removed; memory grows with the number of distinct
// keys ever seen, which is acceptable for account-scoped keys.
//
// Acquisition has no timeout: a caller blocks until the holder releases.
type Manager struct {
	mu    sync.Mutex
	locks map[string]*sync.RWMutex
}

// NewManager returns an empty lock manager.
func NewManager() *Manager {
	return &Manager{locks: make(map[string]*sync.RWMutex)}
}

// WithLock runs fn while holding the lock for id. An empty id means no
// locking. The lock is always released, including when fn returns an error
// or panics; a panic is converted into an InvocationError.
func (m *Manager) WithLock(id string, t Type, fn func() error) (err error) {
	if id != "" {
		l := m.idLock(id)
		if t.IsWrite() {
			l.Lock()
			defer l.Unlock()
		} else {
			l.RLock()
			defer l.RUnlock()
		}
	}
	defer func() {
		if r := recover(); r != nil {
			err = apperrors.NewInvocation(domainExceptionKey, fmt.Errorf("panic in locked section: %v", r))
		}
	}()
	return fn()
}

// domainExceptionKey mirrors the generic server-failure message key.
const domainExceptionKey = "error.Exception"

func (m *Manager) idLock(id string) *sync.RWMutex {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.locks[id]
	if !ok {
		l = &sync.RWMutex{}
		m.locks[id] = l
	}
	return l
}
