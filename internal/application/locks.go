package application

import (
	"sync"

	"github.com/bnema/tenderlogic-cli/internal/domain"
)

// accountLocks hands out one mutex per account so the entitlement check,
// the oracle call and the commit of a request cannot interleave with another
// request for the same account.
type accountLocks struct {
	mu    sync.Mutex
	locks map[domain.AccountID]*sync.Mutex
}

func (l *accountLocks) lock(id domain.AccountID) func() {
	l.mu.Lock()
	if l.locks == nil {
		l.locks = map[domain.AccountID]*sync.Mutex{}
	}
	mu, ok := l.locks[id]
	if !ok {
		mu = &sync.Mutex{}
		l.locks[id] = mu
	}
	l.mu.Unlock()

	mu.Lock()
	return mu.Unlock
}
