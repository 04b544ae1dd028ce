package google

import "sync"

// accountLocks hands out one mutex per account. Entries are never removed;
// the set is bounded by the number of accounts this process has served.
type accountLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newAccountLocks() *accountLocks {
	return &accountLocks{locks: make(map[string]*sync.Mutex)}
}

// lock acquires the account's mutex and returns its unlock func.
func (l *accountLocks) lock(account string) func() {
	l.mu.Lock()
	m, ok := l.locks[account]
	if !ok {
		m = &sync.Mutex{}
		l.locks[account] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
