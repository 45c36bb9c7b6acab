package workflow

// Inputs are the resolved input values of a component, in declaration order.
type Inputs struct {
	slots  []Slot
	values []Value
}

// NewInputs pairs slots with their values. Both must have the same length.
func NewInputs(slots []Slot, values []Value) Inputs {
	return Inputs{slots: slots, values: values}
}

func (in Inputs) Len() int {
	return len(in.values)
}

// Slot returns the slot of the i-th input.
func (in Inputs) Slot(i int) Slot {
	if i < 0 || i >= len(in.slots) {
		return ""
	}

	return in.slots[i]
}

// Value returns the i-th input.
func (in Inputs) Value(i int) (Value, error) {
	if i < 0 || i >= len(in.values) {
		return Value{}, GenerationFailure(in.Slot(i), "input %d missing, component has %d inputs", i, len(in.values))
	}

	return in.values[i], nil
}

func (in Inputs) expect(i int, kind Kind) (Value, error) {
	value, err := in.Value(i)
	if err != nil {
		return Value{}, err
	}
	if value.kind != kind {
		return Value{}, GenerationFailure(in.Slot(i), "expected %s, got %s", kind, value.kind)
	}

	return value, nil
}

// Path returns the i-th input as a path.
func (in Inputs) Path(i int) (string, error) {
	value, err := in.expect(i, KindPath)
	if err != nil {
		return "", err
	}

	return value.path, nil
}

// Unit returns the i-th input as a single unit.
func (in Inputs) Unit(i int) (Unit, error) {
	value, err := in.expect(i, KindUnit)
	if err != nil {
		return Unit{}, err
	}

	return value.units[0], nil
}

// UnitList returns the i-th input as a list of units. A single unit is returned as a
// list of one.
func (in Inputs) UnitList(i int) ([]Unit, error) {
	value, err := in.Value(i)
	if err != nil {
		return nil, err
	}
	if value.kind != KindUnitList && value.kind != KindUnit {
		return nil, GenerationFailure(in.Slot(i), "expected %s, got %s", KindUnitList, value.kind)
	}

	return value.Units(), nil
}

// Model returns the i-th input as a model handle.
func (in Inputs) Model(i int) (any, error) {
	value, err := in.expect(i, KindModel)
	if err != nil {
		return nil, err
	}

	return value.model, nil
}
