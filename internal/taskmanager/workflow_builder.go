package taskmanager

import (
	"fmt"
)

// WorkflowBuilder assembles a Workflow and validates its structure
type WorkflowBuilder struct {
	workflowID   string
	tasks        map[string]*Task
	dependencies map[string][]string // taskID -> list of dependency IDs
	last         string
}

// NewWorkflowBuilder creates a new WorkflowBuilder with the given workflow ID
func NewWorkflowBuilder(id string) *WorkflowBuilder {
	return &WorkflowBuilder{
		workflowID:   id,
		tasks:        make(map[string]*Task),
		dependencies: make(map[string][]string),
	}
}

// AddTask adds a task to the workflow being built
func (wb *WorkflowBuilder) AddTask(id, description string, handler TaskFunc) *WorkflowBuilder {
	wb.tasks[id] = &Task{
		ID:          id,
		Description: description,
		Handler:     handler,
	}
	wb.last = id
	return wb
}

// Then adds a task that depends on the task added just before it
func (wb *WorkflowBuilder) Then(id, description string, handler TaskFunc) *WorkflowBuilder {
	previous := wb.last
	wb.AddTask(id, description, handler)
	if previous != "" {
		wb.AddDependency(id, previous)
	}
	return wb
}

// AddDependency defines a dependency between two tasks
func (wb *WorkflowBuilder) AddDependency(taskID string, dependencyID string) *WorkflowBuilder {
	wb.dependencies[taskID] = append(wb.dependencies[taskID], dependencyID)
	return wb
}

// Build validates and constructs the final Workflow object
func (wb *WorkflowBuilder) Build() (*Workflow, error) {
	if err := wb.validateDependencies(); err != nil {
		return nil, err
	}

	if _, err := wb.createDAG().TopologicalSort(); err != nil {
		return nil, fmt.Errorf("invalid workflow structure: %w", err)
	}

	for taskID, deps := range wb.dependencies {
		if task, exists := wb.tasks[taskID]; exists {
			task.DependsOn = deps
		}
	}

	return &Workflow{
		ID:    wb.workflowID,
		Tasks: wb.tasks,
	}, nil
}

// validateDependencies ensures all dependencies reference existing tasks
func (wb *WorkflowBuilder) validateDependencies() error {
	for taskID, deps := range wb.dependencies {
		if _, exists := wb.tasks[taskID]; !exists {
			return fmt.Errorf("dependency declared for unknown task '%s'", taskID)
		}
		for _, depID := range deps {
			if _, exists := wb.tasks[depID]; !exists {
				return fmt.Errorf("task '%s' depends on non-existent task '%s'", taskID, depID)
			}
		}
	}
	return nil
}

// ShowOrder returns the planned execution order without building the full Workflow
func (wb *WorkflowBuilder) ShowOrder() ([]string, error) {
	if err := wb.validateDependencies(); err != nil {
		return nil, err
	}
	return wb.createDAG().TopologicalSort()
}

func (wb *WorkflowBuilder) createDAG() *DAG {
	dag := NewDAG()

	for taskID := range wb.tasks {
		dag.AddNode(taskID)
	}

	for taskID, deps := range wb.dependencies {
		for _, depID := range deps {
			dag.AddEdge(taskID, depID)
		}
	}

	return dag
}
