package taskmanager

import (
	"context"
	"fmt"
	"time"

	"github.com/maxkimambo/dispatch/internal/logger"
	"github.com/maxkimambo/dispatch/internal/progress"
	"github.com/maxkimambo/dispatch/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Workflow represents a collection of tasks and their dependencies.
type Workflow struct {
	ID    string
	Tasks map[string]*Task
}

// Order returns the execution order without running anything.
func (w *Workflow) Order() ([]string, error) {
	if err := w.validateDependencies(); err != nil {
		return nil, err
	}
	order, err := w.createDAG().TopologicalSort()
	if err != nil {
		return nil, fmt.Errorf("failed to determine execution order: %w", err)
	}
	return order, nil
}

// Execute runs the tasks one after another in dependency order. A task starts
// only after every task before it has returned, so a task may read anything
// its dependencies put in sharedCtx. The first failing task stops the run.
func (w *Workflow) Execute(ctx context.Context, sharedCtx *SharedContext) error {
	executionOrder, err := w.Order()
	if err != nil {
		return err
	}

	ctx, span := telemetry.Tracer("").Start(ctx, "workflow."+w.ID,
		trace.WithAttributes(attribute.Int("tasks", len(executionOrder))))
	defer span.End()

	reporter := progress.NewReporter()
	for i, taskID := range executionOrder {
		if err := ctx.Err(); err != nil {
			span.SetStatus(codes.Error, err.Error())
			return fmt.Errorf("workflow %s stopped before task %s: %w", w.ID, taskID, err)
		}

		task := w.Tasks[taskID]
		logger.Op.WithFields(map[string]interface{}{
			"workflow": w.ID,
			"task":     taskID,
		}).Debugf("Starting task: %s", task.Description)

		start := time.Now()
		if err := w.runTask(ctx, task, sharedCtx); err != nil {
			logger.Op.Error(reporter.ReportTaskComplete(taskID, time.Since(start), false))
			span.SetStatus(codes.Error, err.Error())
			return fmt.Errorf("task %s failed: %w", taskID, err)
		}
		logger.Op.Debug(reporter.ReportTaskComplete(taskID, time.Since(start), true))

		next := ""
		if i+1 < len(executionOrder) {
			next = executionOrder[i+1]
		}
		info := reporter.Snapshot(w.ID, i+1, len(executionOrder), taskID, next)
		logger.Op.Debug(reporter.Report(info))
	}

	return nil
}

func (w *Workflow) runTask(ctx context.Context, task *Task, sharedCtx *SharedContext) error {
	ctx, span := telemetry.Tracer("").Start(ctx, "task."+task.ID)
	defer span.End()

	if err := task.Handler(ctx, sharedCtx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

// validateDependencies ensures all dependencies reference existing tasks
func (w *Workflow) validateDependencies() error {
	for _, task := range w.Tasks {
		for _, depID := range task.DependsOn {
			if _, exists := w.Tasks[depID]; !exists {
				return fmt.Errorf("task %s depends on non-existent task %s", task.ID, depID)
			}
		}
	}
	return nil
}

// createDAG creates a DAG from the workflow's current state
func (w *Workflow) createDAG() *DAG {
	dag := NewDAG()

	for taskID := range w.Tasks {
		dag.AddNode(taskID)
	}

	for _, task := range w.Tasks {
		for _, depID := range task.DependsOn {
			dag.AddEdge(task.ID, depID)
		}
	}

	return dag
}
