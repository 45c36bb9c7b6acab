package eventengine

import (
	"github.com/pkg/errors"

	"github.com/event-engine/php-code-generator-cartridge-event-engine/pkg/workflow"
)

var ErrMissingWriter = errors.New("missing file writer")

// FileWriter persists generated code.
type FileWriter interface {
	Write(path, code string) error
	// WriteAll writes every unit to its path.
	WriteAll(units []workflow.Unit) error
}

// StringToFile returns a terminal component writing the unit held by codeSlot to the file
// named by filenameSlot.
func StringToFile(writer FileWriter, codeSlot, filenameSlot workflow.Slot) workflow.ComponentDescription {
	return workflow.NewTerminalComponent(componentName("string-to-file", codeSlot),
		workflow.CapabilityFunc(func(_ *workflow.Context, in workflow.Inputs) (workflow.Value, error) {
			unit, err := in.Unit(0)
			if err != nil {
				return workflow.Value{}, err
			}
			filename, err := in.Path(1)
			if err != nil {
				return workflow.Value{}, err
			}

			err = writer.Write(filename, unit.Code)
			if err != nil {
				return workflow.Value{}, workflow.WriteFailure(codeSlot, err)
			}

			return workflow.Value{}, nil
		}), codeSlot, filenameSlot)
}

// CodeListToFiles returns a terminal component writing every unit held by slot to its own
// path.
func CodeListToFiles(writer FileWriter, slot workflow.Slot) workflow.ComponentDescription {
	return workflow.NewTerminalComponent(componentName("code-list-to-files", slot),
		workflow.CapabilityFunc(func(_ *workflow.Context, in workflow.Inputs) (workflow.Value, error) {
			units, err := in.UnitList(0)
			if err != nil {
				return workflow.Value{}, err
			}

			for _, unit := range units {
				if unit.Path == "" {
					return workflow.Value{}, workflow.GenerationFailure(slot, "unit %s has no path", unit.Name)
				}
			}

			err = writer.WriteAll(units)
			if err != nil {
				return workflow.Value{}, workflow.WriteFailure(slot, err)
			}

			return workflow.Value{}, nil
		}), slot)
}
