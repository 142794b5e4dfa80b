package command

import "sync"

// accountLocker serialises the read-decide-write sequence per account so that
// concurrent transaction creations cannot race past the monthly-limit and
// sufficiency gates. Mutexes are created on demand and kept for the life of
// the process; the key space is bounded by the number of active accounts.
type accountLocker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newAccountLocker() *accountLocker {
	return &accountLocker{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for accountID and returns its unlock function.
func (l *accountLocker) Lock(accountID string) func() {
	l.mu.Lock()
	m, ok := l.locks[accountID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[accountID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
