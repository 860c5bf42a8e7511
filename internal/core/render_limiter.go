package core

// render_limiter.go bounds how many chart or workbook renders run at once.
//
// Rendering a PNG or an xlsx workbook holds the whole figure in memory, so
// the web server takes a slot before each render. When every slot is busy a
// request waits up to maxWait and then fails with ErrTooManyRenders.

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrTooManyRenders is returned when no render slot frees up in time.
var ErrTooManyRenders = errors.New("too many concurrent renders, please try again later")

// DefaultMaxRenders is the default number of parallel renders.
const DefaultMaxRenders = 4

// DefaultRenderWait is how long to wait for a slot before rejecting.
const DefaultRenderWait = 10 * time.Second

// RenderLimiter is a counting semaphore for render work.
type RenderLimiter struct {
	slots   chan struct{}
	maxWait time.Duration

	mu     sync.RWMutex
	active int
}

// NewRenderLimiter allows at most maxConcurrent renders. Non-positive
// arguments fall back to the defaults.
func NewRenderLimiter(maxConcurrent int, maxWait time.Duration) *RenderLimiter {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxRenders
	}
	if maxWait <= 0 {
		maxWait = DefaultRenderWait
	}
	return &RenderLimiter{
		slots:   make(chan struct{}, maxConcurrent),
		maxWait: maxWait,
	}
}

// Acquire takes a slot, waiting at most maxWait. The caller must Release
// after a nil return.
func (l *RenderLimiter) Acquire(ctx context.Context) error {
	waitCtx, cancel := context.WithTimeout(ctx, l.maxWait)
	defer cancel()

	select {
	case l.slots <- struct{}{}:
		l.mu.Lock()
		l.active++
		l.mu.Unlock()
		return nil
	case <-waitCtx.Done():
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return ErrTooManyRenders
	}
}

// TryAcquire takes a slot without blocking.
func (l *RenderLimiter) TryAcquire() bool {
	select {
	case l.slots <- struct{}{}:
		l.mu.Lock()
		l.active++
		l.mu.Unlock()
		return true
	default:
		return false
	}
}

// Release frees a slot taken by Acquire or TryAcquire.
func (l *RenderLimiter) Release() {
	l.mu.Lock()
	l.active--
	l.mu.Unlock()
	<-l.slots
}

// ActiveCount returns the number of renders in progress.
func (l *RenderLimiter) ActiveCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.active
}

// MaxConcurrent returns the slot count.
func (l *RenderLimiter) MaxConcurrent() int {
	return cap(l.slots)
}

// WaitForDrain blocks until no render is in progress or ctx is done.
func (l *RenderLimiter) WaitForDrain(ctx context.Context) error {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		if l.ActiveCount() == 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// RenderLimiterStatus is a snapshot of a RenderLimiter.
type RenderLimiterStatus struct {
	Active        int `json:"active"`
	Available     int `json:"available"`
	MaxConcurrent int `json:"max_concurrent"`
}

// Status returns the current limiter state.
func (l *RenderLimiter) Status() RenderLimiterStatus {
	active := l.ActiveCount()
	return RenderLimiterStatus{
		Active:        active,
		Available:     l.MaxConcurrent() - len(l.slots),
		MaxConcurrent: l.MaxConcurrent(),
	}
}
