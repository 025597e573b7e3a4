package collection

import "sync"

// trainerLocks hands out one mutex per trainer id. Entries are dropped once
// no goroutine holds or waits on them.
type trainerLocks struct {
	mu    sync.Mutex
	locks map[string]*trainerLock
}

type trainerLock struct {
	mu   sync.Mutex
	refs int
}

func newTrainerLocks() *trainerLocks {
	return &trainerLocks{locks: make(map[string]*trainerLock)}
}

func (l *trainerLocks) lock(trainerID string) (unlock func()) {
	l.mu.Lock()
	tl, ok := l.locks[trainerID]
	if !ok {
		tl = &trainerLock{}
		l.locks[trainerID] = tl
	}
	tl.refs++
	l.mu.Unlock()

	tl.mu.Lock()
	return func() {
		tl.mu.Unlock()

		l.mu.Lock()
		tl.refs--
		if tl.refs == 0 {
			delete(l.locks, trainerID)
		}
		l.mu.Unlock()
	}
}

func (l *trainerLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
