package workflow

import (
	"time"

	"github.com/pkg/errors"

	"github.com/event-engine/php-code-generator-cartridge-event-engine/pkg/workflow/model"
)

// WritePolicy decides what happens when a non accumulating component writes a slot
// which is already bound.
type WritePolicy int

const (
	// Overwrite silently replaces the bound value.
	Overwrite WritePolicy = iota
	// DetectConflict rejects the write with ErrSlotConflict, unless the component
	// reads the slot it writes, which is how refinement steps work.
	DetectConflict
)

func (p WritePolicy) String() string {
	switch p {
	case Overwrite:
		return "overwrite"
	case DetectConflict:
		return "detect-conflict"
	default:
		return "unknown"
	}
}

// ParseWritePolicy returns the policy named s.
func ParseWritePolicy(s string) (WritePolicy, error) {
	switch s {
	case "", "overwrite":
		return Overwrite, nil
	case "detect-conflict", "detect":
		return DetectConflict, nil
	default:
		return Overwrite, errors.Errorf("unknown write policy %q", s)
	}
}

// Executor runs workflows against contexts. Runs are sequential and single pass.
type Executor struct {
	opts     []model.WorkflowOption
	policy   WritePolicy
	validate bool
}

// NewExecutor creates a new executor. Workflows are validated before they run unless
// WithValidation(false) is given.
func NewExecutor(options ...ExecutorOption) (*Executor, error) {
	exec := &Executor{
		policy:   Overwrite,
		validate: true,
	}

	for _, option := range options {
		option(exec)
	}

	for _, opt := range exec.opts {
		err := opt.New()
		if err != nil {
			return nil, errors.Wrap(err, "unable to apply workflow option")
		}
	}

	return exec, nil
}

// Run executes every component of wf in order against wctx. It stops on the first error,
// leaving wctx with the values written so far.
func (e *Executor) Run(wf *Workflow, wctx *Context) error {
	if wf == nil {
		return ErrWorkflowMustBeSet
	}
	if wctx == nil {
		return ErrContextMustBeSet
	}

	start := time.Now()

	if e.validate {
		err := wf.Validate(wctx.Slots()...)
		if err != nil {
			return err
		}
	} else {
		err := wf.Check()
		if err != nil {
			return err
		}
	}

	info := wf.Info(wctx.Slots()...)
	for _, opt := range e.opts {
		err := opt.PrepareWorkflow(info)
		if err != nil {
			return errors.Wrap(err, "unable to prepare workflow")
		}
	}

	for i, cd := range wf.Components {
		ci := info.Components[i]
		for _, opt := range e.opts {
			err := opt.PrepareComponent(ci)
			if err != nil {
				return errors.Wrapf(err, "unable to prepare component %s", cd.Name)
			}
		}

		startFn := time.Now()
		err := e.runComponent(cd, wctx)
		if err != nil {
			e.notifyError(ci, err)
			return errors.Wrapf(err, "workflow %s", wf.Name)
		}
		endFn := time.Since(startFn)

		for _, opt := range e.opts {
			err := opt.OnComponentOutput(ci, endFn)
			if err != nil {
				return errors.Wrapf(err, "unable to run after component %s", cd.Name)
			}
		}
	}

	return e.finishRun(time.Since(start))
}

func (e *Executor) runComponent(cd ComponentDescription, wctx *Context) error {
	values := make([]Value, len(cd.Inputs))
	for i, slot := range cd.Inputs {
		value, err := wctx.Get(slot)
		if err != nil {
			return attribute(err, cd.Name, cd.Output)
		}
		values[i] = value
	}

	result, err := cd.Capability.Generate(wctx, NewInputs(cd.Inputs, values))
	if err != nil {
		return attribute(err, cd.Name, cd.Output)
	}

	if cd.Terminal() {
		return nil
	}

	if cd.Accumulate {
		existing, getErr := wctx.Get(cd.Output)
		merged, err := accumulate(cd.Output, existing, getErr == nil, result)
		if err != nil {
			return attribute(err, cd.Name, cd.Output)
		}
		wctx.Put(cd.Output, merged)

		return nil
	}

	if result.kind == KindInvalid {
		return attribute(GenerationFailure(cd.Output, "capability returned no value"), cd.Name, cd.Output)
	}

	if e.policy == DetectConflict && wctx.Has(cd.Output) && !cd.reads(cd.Output) {
		return &SlotError{Kind: ErrSlotConflict, Slot: cd.Output, Component: cd.Name}
	}

	wctx.Put(cd.Output, result)

	return nil
}

func (e *Executor) notifyError(ci *model.ComponentInfo, err error) {
	for _, opt := range e.opts {
		// the component error is the one reported
		_ = opt.OnComponentError(ci, err)
	}
}

func (e *Executor) finishRun(total time.Duration) error {
	for _, opt := range e.opts {
		err := opt.Finish(total)
		if err != nil {
			return errors.Wrap(err, "unable to finish workflow option")
		}
	}

	return nil
}

// Run executes wf against wctx with a default executor.
func Run(wf *Workflow, wctx *Context) error {
	exec, err := NewExecutor()
	if err != nil {
		return err
	}

	return exec.Run(wf, wctx)
}
