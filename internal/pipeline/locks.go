package pipeline

import "sync"

// userLocks serializes overlapping requests from the same requester. Workspace
// directories are keyed by requester id, so two concurrent runs for one user
// would race on the same path without this.
type userLocks struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func newUserLocks() *userLocks {
	return &userLocks{locks: make(map[int64]*sync.Mutex)}
}

// Acquire blocks until the user's lock is held and returns the release func.
// Entries are never evicted; the map is bounded by the number of distinct
// requesters seen during the process lifetime.
func (l *userLocks) Acquire(userID int64) func() {
	l.mu.Lock()
	lock, ok := l.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[userID] = lock
	}
	l.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
