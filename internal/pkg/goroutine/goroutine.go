package goroutine

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"runtime/debug"
	"sync"

	"github.com/danudoro/supplyvault/internal/pkg/stacktrace"
)

// DefaultMaxGoroutine is the per-CPU multiplier used when NewManager
// receives a non-positive limit.
const DefaultMaxGoroutine int = 100

// Manager runs functions in goroutines under a fixed concurrency cap,
// collecting errors returned by tasks until Wait is called.
type Manager struct {
	mu      sync.Mutex
	errs    []error
	wg      *sync.WaitGroup
	sema    chan struct{}
	stateMu sync.RWMutex
	closed  bool
}

// NewManager creates a Manager that runs at most maxGoroutine tasks at once.
func NewManager(maxGoroutine int) *Manager {
	if maxGoroutine < 1 {
		maxGoroutine = runtime.NumCPU() * DefaultMaxGoroutine
	}

	return &Manager{
		wg:   &sync.WaitGroup{},
		sema: make(chan struct{}, maxGoroutine),
	}
}

// Go schedules f in a goroutine when a semaphore slot is free. A task
// submitted after Wait, or when the manager is at capacity, is dropped
// with a warning rather than queued.
func (g *Manager) Go(pCtx context.Context, f func(ctx context.Context) error) {
	if g == nil {
		return
	}

	g.stateMu.RLock()
	if g.closed {
		g.stateMu.RUnlock()
		slog.WarnContext(pCtx, "goroutine manager is closed, skipping new goroutine")
		return
	}

	select {
	case g.sema <- struct{}{}:
		g.wg.Go(func() {
			// The read lock taken in Go is held until the task goroutine is
			// live, so Wait cannot flip closed mid-submission.
			g.stateMu.RUnlock()
			defer g.finishTask(pCtx)
			g.runTask(pCtx, f)
		})
	default:
		g.stateMu.RUnlock()
		slog.WarnContext(pCtx, "Maximum goroutine limit reached, failed to start new goroutine")
	}
}

func (g *Manager) runTask(ctx context.Context, f func(ctx context.Context) error) {
	select {
	case <-ctx.Done():
		slog.WarnContext(ctx, "goroutine canceled", "because", ctx.Err())
	default:
		if err := f(ctx); err != nil {
			g.mu.Lock()
			g.errs = append(g.errs, err)
			g.mu.Unlock()
		}
	}
}

func (g *Manager) finishTask(ctx context.Context) {
	<-g.sema

	if rvr := recover(); rvr != nil {
		stack := debug.Stack()
		if paths := stacktrace.InternalPaths(stack); len(paths) > 0 {
			slog.ErrorContext(ctx, "panic occurred in goroutine", "stack", paths)
		} else {
			slog.ErrorContext(ctx, "panic occurred in goroutine", "stack", string(stack))
		}
	}
}

// Wait closes the manager to new tasks, blocks until every scheduled
// goroutine finishes, and returns the collected errors joined.
func (g *Manager) Wait() error {
	if g == nil {
		return nil
	}

	g.stateMu.Lock()
	g.closed = true
	g.stateMu.Unlock()

	g.wg.Wait()

	return errors.Join(g.errs...)
}
