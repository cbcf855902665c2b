package sync

import (
	"sync/atomic"
	"time"
)

// Session represents one in-flight sync cycle. The Engine owns it for the
// duration of the cycle.
type Session struct {
	StartedAt time.Time
}

// sessionGuard is the single-flight guard: a compare-and-set on a
// process-wide session slot. A second begin while a session is active fails
// immediately instead of queueing.
type sessionGuard struct {
	current atomic.Pointer[Session]
}

func (g *sessionGuard) begin() (*Session, error) {
	s := &Session{StartedAt: time.Now()}
	if !g.current.CompareAndSwap(nil, s) {
		return nil, ErrSyncInProgress
	}
	return s, nil
}

func (g *sessionGuard) end(s *Session) {
	g.current.CompareAndSwap(s, nil)
}

// Active reports whether a cycle is currently running.
func (g *sessionGuard) Active() bool {
	return g.current.Load() != nil
}
