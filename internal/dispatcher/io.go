package dispatcher

import (
	"context"
	"sync"

	"github.com/maxkimambo/dispatch/internal/logger"
	"golang.org/x/sync/errgroup"
)

// IO is the background dispatcher. Launched jobs belong to the scope and are
// joined by Wait; the first failing job cancels the scope's context.
type IO struct {
	group *errgroup.Group
	ctx   context.Context
	hops  sync.WaitGroup
}

// NewIO creates a background scope bound to ctx, running at most
// parallelism launched jobs at once.
func NewIO(ctx context.Context, parallelism int) *IO {
	group, gctx := errgroup.WithContext(ctx)
	if parallelism > 0 {
		group.SetLimit(parallelism)
	}
	return &IO{group: group, ctx: gctx}
}

func (d *IO) Name() string {
	return IOName
}

// Launch starts job in the scope and returns immediately unless the
// parallelism limit is reached.
func (d *IO) Launch(job func(ctx context.Context) error) {
	d.group.Go(func() error {
		logger.Op.Debug("Background job started")
		return job(on(d.ctx, IOName))
	})
}

// Dispatch runs block on a fresh background goroutine. Hops are not subject
// to the launch limit so a launched job can always hop back to IO.
func (d *IO) Dispatch(ctx context.Context, block func(ctx context.Context)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.hops.Add(1)
	go func() {
		defer d.hops.Done()
		block(on(ctx, IOName))
	}()
	return nil
}

// Context returns the scope context; it is cancelled when a job fails.
func (d *IO) Context() context.Context {
	return d.ctx
}

// Wait joins every launched job and dispatched block and returns the first job error.
func (d *IO) Wait() error {
	err := d.group.Wait()
	d.hops.Wait()
	return err
}
