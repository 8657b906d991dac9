package service

import (
	"context"
	"sync"
	"time"
)

type sessionRefreshJob struct {
	session SessionService

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSessionRefreshJob creates a sessionRefreshJob that calls session.Refresh
// on a ticker. The job is idle until Start is called.
func NewSessionRefreshJob(session SessionService) SessionRefreshJob {
	return &sessionRefreshJob{session: session}
}

// Start implements SessionRefreshJob. It stops any previously running job,
// then launches a background goroutine that refreshes the session every
// interval. If interval is zero or negative it defaults to 5 minutes. The
// goroutine exits when ctx is cancelled or Stop is called.
func (j *sessionRefreshJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				// The keepalive only makes sense for a live session; ticking
				// while logged out would stamp a bogus expiry error.
				if !j.session.Snapshot().Authenticated() {
					continue
				}
				_ = j.session.Refresh(jobCtx)
			}
		}
	}()
}

// Stop implements SessionRefreshJob. It cancels the background goroutine's
// context and blocks until the goroutine has fully exited. Safe to call when
// the job is not running (no-op in that case).
func (j *sessionRefreshJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
