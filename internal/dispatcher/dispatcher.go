// Package dispatcher provides the execution contexts work can be scheduled on:
// a single UI-affine Main looper and a background IO scope. WithContext moves a
// block of work onto another dispatcher and suspends the caller until it
// finishes.
package dispatcher

import (
	"context"
	"fmt"
	"time"

	"github.com/maxkimambo/dispatch/internal/logger"
	"github.com/maxkimambo/dispatch/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const (
	MainName   = "main"
	IOName     = "io"
	callerName = "caller"
)

// Dispatcher runs blocks of work on its execution context.
type Dispatcher interface {
	// Name identifies the execution context, e.g. "main" or "io"
	Name() string

	// Dispatch schedules block and returns without waiting for it. The
	// context handed to block reports this dispatcher from Current.
	Dispatch(ctx context.Context, block func(ctx context.Context)) error
}

type contextKey struct{}

type marker struct {
	name   string
	looper *Main // set only for blocks running on a Main looper
}

// on marks ctx as running on the named dispatcher
func on(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, contextKey{}, marker{name: name})
}

func onMain(ctx context.Context, m *Main) context.Context {
	return context.WithValue(ctx, contextKey{}, marker{name: MainName, looper: m})
}

// Current returns the name of the dispatcher ctx is running on, or "caller"
// for contexts that never went through a dispatcher.
func Current(ctx context.Context) string {
	if mk, ok := ctx.Value(contextKey{}).(marker); ok {
		return mk.name
	}
	return callerName
}

func looperOf(ctx context.Context) *Main {
	if mk, ok := ctx.Value(contextKey{}).(marker); ok {
		return mk.looper
	}
	return nil
}

// IsMain reports whether ctx belongs to a block running on the Main looper.
func IsMain(ctx context.Context) bool {
	return Current(ctx) == MainName
}

// WithContext runs block on d and waits for its result. When ctx is already
// on d the block runs inline, so main -> main never queues behind itself.
// A wait started on Main keeps the looper running, so main -> io -> main
// round trips complete.
func WithContext[T any](ctx context.Context, d Dispatcher, block func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	from, to := Current(ctx), d.Name()
	if from == to {
		return block(ctx)
	}

	ctx, span := telemetry.Tracer("").Start(ctx, "dispatcher.hop",
		trace.WithAttributes(attribute.String("from", from), attribute.String("to", to)))
	defer span.End()
	recordHop(ctx, from, to)

	logger.Op.WithFields(map[string]interface{}{
		"from": from,
		"to":   to,
	}).Debug("Switching execution context")

	var (
		value    T
		blockErr error
	)
	finished := make(chan struct{})
	start := time.Now()

	err := d.Dispatch(ctx, func(blockCtx context.Context) {
		defer close(finished)
		// Blocks drained by a cancelled looper are skipped.
		if blockErr = blockCtx.Err(); blockErr != nil {
			return
		}
		value, blockErr = block(blockCtx)
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return zero, fmt.Errorf("dispatch to %s: %w", to, err)
	}

	if err := wait(ctx, finished); err != nil {
		return zero, err
	}
	logger.Op.WithFields(map[string]interface{}{
		"from":     to,
		"to":       from,
		"duration": time.Since(start).Round(time.Millisecond),
	}).Debug("Resumed on original context")
	if blockErr != nil {
		span.RecordError(blockErr)
		span.SetStatus(codes.Error, blockErr.Error())
	}
	return value, blockErr
}

// wait suspends the caller until finished is closed. A caller running on Main
// keeps serving the looper queue in the meantime.
func wait(ctx context.Context, finished <-chan struct{}) error {
	if m := looperOf(ctx); m != nil {
		return m.await(ctx, finished)
	}
	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run is WithContext for blocks that produce no value.
func Run(ctx context.Context, d Dispatcher, block func(ctx context.Context) error) error {
	_, err := WithContext(ctx, d, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, block(ctx)
	})
	return err
}

func recordHop(ctx context.Context, from, to string) {
	counter, err := telemetry.Meter("").Int64Counter("dispatcher.hops",
		metric.WithDescription("Number of execution context switches"))
	if err != nil {
		return
	}
	counter.Add(ctx, 1, metric.WithAttributes(attribute.String("from", from), attribute.String("to", to)))
}
