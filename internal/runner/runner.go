// Package runner launches the two dependent pseudo-network calls on the
// background dispatcher and presents each result on the Main dispatcher.
package runner

import (
	"context"
	"fmt"

	"github.com/maxkimambo/dispatch/internal/dispatcher"
	"github.com/maxkimambo/dispatch/internal/logger"
	"github.com/maxkimambo/dispatch/internal/presenter"
	"github.com/maxkimambo/dispatch/internal/taskmanager"
)

const (
	WorkflowID = "dependent-steps"

	TaskFetchResult1 = "fetch-result-1"
	TaskShowResult1  = "show-result-1"
	TaskFetchResult2 = "fetch-result-2"
	TaskShowResult2  = "show-result-2"

	KeyResult1 = "result-1"
	KeyResult2 = "result-2"
)

// API is the pair of dependent calls the runner makes.
type API interface {
	CallAPI1(ctx context.Context) (string, error)
	CallAPI2(ctx context.Context, previous string) (string, error)
}

// Runner wires the calls, the UI dispatcher and the presentation surface.
type Runner struct {
	api         API
	main        dispatcher.Dispatcher
	presenter   presenter.Presenter
	toast       presenter.Duration
	parallelism int
}

// Option configures a Runner
type Option func(*Runner)

// WithToastLength sets how long each result stays on screen
func WithToastLength(d presenter.Duration) Option {
	return func(r *Runner) { r.toast = d }
}

// WithIOParallelism bounds the background scope
func WithIOParallelism(n int) Option {
	return func(r *Runner) { r.parallelism = n }
}

// New creates a Runner. main must be the UI-affine dispatcher.
func New(api API, main dispatcher.Dispatcher, p presenter.Presenter, opts ...Option) *Runner {
	r := &Runner{
		api:         api,
		main:        main,
		presenter:   p,
		toast:       presenter.LengthLong,
		parallelism: 1,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Workflow returns the step chain:
// fetch-result-1 -> show-result-1 -> fetch-result-2 -> show-result-2.
func (r *Runner) Workflow() (*taskmanager.Workflow, error) {
	return taskmanager.NewWorkflowBuilder(WorkflowID).
		AddTask(TaskFetchResult1, "Call API 1", r.fetchResult1).
		Then(TaskShowResult1, "Present result 1 on main", r.show(KeyResult1)).
		Then(TaskFetchResult2, "Call API 2 with result 1", r.fetchResult2).
		Then(TaskShowResult2, "Present result 2 on main", r.show(KeyResult2)).
		Build()
}

// RunDependentSteps launches the step chain on a background scope and
// returns immediately. The presentations are its only observable effect;
// the Job lets a host wait before shutting the Main looper down.
func (r *Runner) RunDependentSteps(ctx context.Context) *Job {
	io := dispatcher.NewIO(ctx, r.parallelism)
	job := newJob(io)

	io.Launch(func(ctx context.Context) error {
		workflow, err := r.Workflow()
		if err != nil {
			return err
		}
		logger.Op.WithFields(map[string]interface{}{
			"workflow": workflow.ID,
			"context":  dispatcher.Current(ctx),
		}).Debug("Loading start...")
		return workflow.Execute(ctx, job.shared)
	})

	go job.wait()
	return job
}

func (r *Runner) fetchResult1(ctx context.Context, sc *taskmanager.SharedContext) error {
	result, err := r.api.CallAPI1(ctx)
	if err != nil {
		return fmt.Errorf("call API 1: %w", err)
	}
	sc.Set(KeyResult1, result)
	return nil
}

func (r *Runner) fetchResult2(ctx context.Context, sc *taskmanager.SharedContext) error {
	previous, err := sc.GetString(KeyResult1)
	if err != nil {
		return err
	}
	result, err := r.api.CallAPI2(ctx, previous)
	if err != nil {
		return fmt.Errorf("call API 2: %w", err)
	}
	sc.Set(KeyResult2, result)
	return nil
}

// show hops to the Main dispatcher, presents the stored value and hops back.
func (r *Runner) show(key string) taskmanager.TaskFunc {
	return func(ctx context.Context, sc *taskmanager.SharedContext) error {
		message, err := sc.GetString(key)
		if err != nil {
			return err
		}
		return dispatcher.Run(ctx, r.main, func(ctx context.Context) error {
			return r.presenter.Show(ctx, message, r.toast)
		})
	}
}
