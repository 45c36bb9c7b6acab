package model

import "time"

// WorkflowOption defines the interface for executor options.
type WorkflowOption interface {
	// New initialises the workflow option.
	New() error
	// PrepareWorkflow runs once before the first component of a run.
	PrepareWorkflow(workflow *WorkflowInfo) error

	workflowComponentOption

	// Finish runs after every component of the run succeeded.
	Finish(totalDuration time.Duration) error
}

// workflowComponentOption defines the interface for component options at the workflow level.
type workflowComponentOption interface {
	// PrepareComponent runs before the component is executed.
	PrepareComponent(component *ComponentInfo) error
	// OnComponentOutput runs after the component wrote its output slot.
	OnComponentOutput(component *ComponentInfo, computationDuration time.Duration) error
	// OnComponentError runs when the component aborts the run.
	OnComponentError(component *ComponentInfo, err error) error
}
