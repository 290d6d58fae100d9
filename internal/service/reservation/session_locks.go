package reservation

import (
	"context"
	"sync"
	"time"

	"github.com/Domenick1991/tablebook/internal/domain"
)

// sessionLocks serializes mutation per session id. Unrelated sessions never
// contend; a caller that cannot enter the critical section within the wait
// budget gets ErrEngineBusy instead of queueing forever. Entries are
// reference-counted and removed once the last holder or waiter is gone, so
// deleted sessions leave nothing behind.
type sessionLocks struct {
	mu    sync.Mutex
	locks map[int64]*sessionLock
}

type sessionLock struct {
	token chan struct{}
	refs  int
}

func newSessionLocks() *sessionLocks {
	return &sessionLocks{locks: make(map[int64]*sessionLock)}
}

func (l *sessionLocks) ref(id int64) *sessionLock {
	l.mu.Lock()
	defer l.mu.Unlock()
	entry, ok := l.locks[id]
	if !ok {
		entry = &sessionLock{token: make(chan struct{}, 1)}
		l.locks[id] = entry
	}
	entry.refs++
	return entry
}

func (l *sessionLocks) unref(id int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	entry := l.locks[id]
	entry.refs--
	if entry.refs == 0 {
		delete(l.locks, id)
	}
}

func (l *sessionLocks) acquire(ctx context.Context, id int64, wait time.Duration) error {
	entry := l.ref(id)

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case entry.token <- struct{}{}:
		return nil
	case <-ctx.Done():
		l.unref(id)
		return ctx.Err()
	case <-timer.C:
		l.unref(id)
		return domain.ErrEngineBusy
	}
}

func (l *sessionLocks) release(id int64) {
	l.mu.Lock()
	entry := l.locks[id]
	l.mu.Unlock()

	<-entry.token
	l.unref(id)
}

func (l *sessionLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
