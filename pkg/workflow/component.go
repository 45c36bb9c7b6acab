package workflow

import (
	"github.com/pkg/errors"

	"github.com/event-engine/php-code-generator-cartridge-event-engine/pkg/workflow/model"
)

// Capability produces the value of a component output slot from its resolved inputs.
// The context is live: a capability may read further slots from it.
type Capability interface {
	Generate(wctx *Context, in Inputs) (Value, error)
}

// CapabilityFunc adapts a function to the Capability interface.
type CapabilityFunc func(wctx *Context, in Inputs) (Value, error)

func (f CapabilityFunc) Generate(wctx *Context, in Inputs) (Value, error) {
	return f(wctx, in)
}

// ComponentDescription is one generation step of a workflow.
type ComponentDescription struct {
	Capability Capability
	Name       string
	// Output is the slot written by the component. Terminal components leave it empty.
	Output Slot
	Inputs []Slot
	// Accumulate merges the produced units into the list held by Output instead of
	// replacing it.
	Accumulate bool
}

// NewComponent returns a component overwriting output with the result of capability.
func NewComponent(name string, capability Capability, output Slot, inputs ...Slot) ComponentDescription {
	return ComponentDescription{
		Name:       name,
		Capability: capability,
		Output:     output,
		Inputs:     inputs,
	}
}

// NewAccumulatingComponent returns a component appending the result of capability to output.
func NewAccumulatingComponent(name string, capability Capability, output Slot, inputs ...Slot) ComponentDescription {
	cd := NewComponent(name, capability, output, inputs...)
	cd.Accumulate = true

	return cd
}

// NewTerminalComponent returns a component whose result is discarded, like a file writer.
func NewTerminalComponent(name string, capability Capability, inputs ...Slot) ComponentDescription {
	return NewComponent(name, capability, "", inputs...)
}

// Terminal reports whether the component writes no slot.
func (cd ComponentDescription) Terminal() bool {
	return cd.Output == ""
}

// Validate checks the component can run.
func (cd ComponentDescription) Validate() error {
	switch {
	case cd.Name == "":
		return errors.Wrap(ErrInvalidComponent, "name must be set")
	case cd.Name == model.StartComponentName || cd.Name == model.EndComponentName:
		return errors.Wrapf(ErrInvalidComponent, "name %q is reserved", cd.Name)
	case cd.Capability == nil:
		return errors.Wrapf(ErrInvalidComponent, "%s: capability must be set", cd.Name)
	case cd.Accumulate && cd.Terminal():
		return errors.Wrapf(ErrInvalidComponent, "%s: accumulating component needs an output slot", cd.Name)
	}

	for _, slot := range cd.Inputs {
		if slot == "" {
			return errors.Wrapf(ErrInvalidComponent, "%s: empty input slot", cd.Name)
		}
	}

	return nil
}

func (cd ComponentDescription) reads(slot Slot) bool {
	for _, in := range cd.Inputs {
		if in == slot {
			return true
		}
	}

	return false
}

func (cd ComponentDescription) info(index int) *model.ComponentInfo {
	inputs := make([]string, len(cd.Inputs))
	for i, slot := range cd.Inputs {
		inputs[i] = string(slot)
	}

	return &model.ComponentInfo{
		Name:       cd.Name,
		Output:     string(cd.Output),
		Inputs:     inputs,
		Index:      index,
		Accumulate: cd.Accumulate,
	}
}
