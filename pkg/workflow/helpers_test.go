package workflow_test

import (
	"testing"

	"github.com/event-engine/php-code-generator-cartridge-event-engine/pkg/workflow"
)

func constant(value workflow.Value) workflow.Capability {
	return workflow.CapabilityFunc(func(_ *workflow.Context, _ workflow.Inputs) (workflow.Value, error) {
		return value, nil
	})
}

// appendLine returns a capability adding line to the code of its first input unit.
func appendLine(line string) workflow.Capability {
	return workflow.CapabilityFunc(func(_ *workflow.Context, in workflow.Inputs) (workflow.Value, error) {
		unit, err := in.Unit(0)
		if err != nil {
			return workflow.Value{}, err
		}
		unit.Code += "\n" + line

		return workflow.UnitValue(unit), nil
	})
}

// recorder counts the components which ran.
type recorder struct {
	ran []string
}

func (r *recorder) wrap(name string, capability workflow.Capability) workflow.Capability {
	return workflow.CapabilityFunc(func(wctx *workflow.Context, in workflow.Inputs) (workflow.Value, error) {
		r.ran = append(r.ran, name)
		return capability.Generate(wctx, in)
	})
}

func codeOf(t *testing.T, wctx *workflow.Context, slot workflow.Slot) string {
	t.Helper()
	value, err := wctx.Get(slot)
	if err != nil {
		t.Fatalf("get %s: %v", slot, err)
	}
	units := value.Units()
	if len(units) != 1 {
		t.Fatalf("slot %s holds %d units", slot, len(units))
	}

	return units[0].Code
}
