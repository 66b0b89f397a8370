package dispatcher

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/maxkimambo/dispatch/internal/logger"
)

var (
	// ErrLooperQuit is returned when work is posted after Quit.
	ErrLooperQuit = errors.New("main looper has quit")
	// ErrLooperRunning is returned when Loop is entered twice.
	ErrLooperRunning = errors.New("main looper is already running")
)

type job struct {
	ctx   context.Context
	block func(ctx context.Context)
}

// Main is the UI-affine dispatcher. Blocks run one at a time, in the order
// they were dispatched, on the goroutine that called Loop.
//
// The context handed to a block is bound to that goroutine. It must not be
// used from goroutines the block starts.
type Main struct {
	queue   chan job
	quitCh  chan struct{}
	mu      sync.Mutex // guards quit and senders.Add
	quit    bool
	senders sync.WaitGroup
	started atomic.Bool
	done    chan struct{}
}

// NewMain creates a looper whose queue holds up to queueSize pending blocks.
func NewMain(queueSize int) *Main {
	if queueSize < 1 {
		queueSize = 1
	}
	return &Main{
		queue:  make(chan job, queueSize),
		quitCh: make(chan struct{}),
		done:   make(chan struct{}),
	}
}

func (m *Main) Name() string {
	return MainName
}

// Dispatch posts block to the looper queue. It blocks only while the queue is
// full, and gives up with ErrLooperQuit once Quit is called.
func (m *Main) Dispatch(ctx context.Context, block func(ctx context.Context)) error {
	m.mu.Lock()
	if m.quit {
		m.mu.Unlock()
		return ErrLooperQuit
	}
	m.senders.Add(1)
	m.mu.Unlock()
	defer m.senders.Done()

	select {
	case m.queue <- job{ctx: ctx, block: block}:
		return nil
	case <-m.quitCh:
		return ErrLooperQuit
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Loop drains the queue on the calling goroutine until Quit has been called
// and every block posted before it has run, or until ctx is cancelled.
// On cancellation the blocks still queued run with a cancelled context so
// their waiters are released.
// The OS thread stays locked for the duration, as a UI toolkit would require.
func (m *Main) Loop(ctx context.Context) error {
	if !m.started.CompareAndSwap(false, true) {
		return ErrLooperRunning
	}
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(m.done)

	logger.Op.Debug("Main looper started")
	for {
		// Cancellation wins over pending work.
		if ctx.Err() != nil {
			return m.cancel(ctx)
		}

		select {
		case j := <-m.queue:
			m.run(j, nil)
		case <-m.quitCh:
			m.drain(nil)
			logger.Op.Debug("Main looper drained and stopped")
			return nil
		case <-ctx.Done():
			return m.cancel(ctx)
		}
	}
}

func (m *Main) cancel(ctx context.Context) error {
	m.Quit()
	m.drain(ctx)
	logger.Op.Debug("Main looper cancelled")
	return ctx.Err()
}

// drain runs whatever is left in the queue once no sender can add more.
// A non-nil cancelled context marks every drained block as cancelled.
func (m *Main) drain(cancelled context.Context) {
	m.senders.Wait()
	for {
		select {
		case j := <-m.queue:
			m.run(j, cancelled)
		default:
			return
		}
	}
}

func (m *Main) run(j job, cancelled context.Context) {
	ctx := onMain(j.ctx, m)
	if cancelled != nil {
		var cancel context.CancelCauseFunc
		ctx, cancel = context.WithCancelCause(ctx)
		cancel(context.Cause(cancelled))
	}
	j.block(ctx)
}

// await keeps the looper serving its queue while a block running on it waits
// for finished, so work that hops back to Main does not queue behind itself.
func (m *Main) await(ctx context.Context, finished <-chan struct{}) error {
	for {
		select {
		case <-finished:
			return nil
		case j := <-m.queue:
			m.run(j, nil)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Quit stops accepting new work. Blocks already queued still run.
func (m *Main) Quit() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.quit {
		return
	}
	m.quit = true
	close(m.quitCh)
}

// Done is closed once Loop has returned.
func (m *Main) Done() <-chan struct{} {
	return m.done
}
