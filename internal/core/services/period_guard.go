package services

import "sync"

// PeriodGuard serializes operations per period. Lifecycle operations and
// journal mutations against the same period acquire the same mutex, so a
// validate/calculate scan can never interleave with a concurrent mutation or a
// second lifecycle call. Periods are independent aggregates, so there is no
// cross-period locking.
type PeriodGuard struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewPeriodGuard creates an empty guard registry.
func NewPeriodGuard() *PeriodGuard {
	return &PeriodGuard{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for the given period, creating it on first use.
// It returns the unlock function.
func (g *PeriodGuard) Lock(periodID string) func() {
	g.mu.Lock()
	l, ok := g.locks[periodID]
	if !ok {
		l = &sync.Mutex{}
		g.locks[periodID] = l
	}
	g.mu.Unlock()

	l.Lock()
	return l.Unlock
}
