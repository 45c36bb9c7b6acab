package workflow

import "github.com/event-engine/php-code-generator-cartridge-event-engine/pkg/workflow/model"

type ExecutorOption func(e *Executor)

// WithOptions registers hooks called during every run.
func WithOptions(opts ...model.WorkflowOption) ExecutorOption {
	return func(e *Executor) {
		e.opts = append(e.opts, opts...)
	}
}

func WithWritePolicy(policy WritePolicy) ExecutorOption {
	return func(e *Executor) {
		e.policy = policy
	}
}

// WithValidation toggles the dependency check done before a run. Without it an
// unresolved input only surfaces when its component is reached.
func WithValidation(validate bool) ExecutorOption {
	return func(e *Executor) {
		e.validate = validate
	}
}
