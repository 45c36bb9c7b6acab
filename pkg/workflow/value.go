package workflow

import "fmt"

// Slot is the name of a logical channel carrying one value through a workflow.
type Slot string

// Kind is the shape of a Value.
type Kind int

const (
	KindInvalid Kind = iota
	KindPath
	KindUnit
	KindUnitList
	KindModel
)

func (k Kind) String() string {
	switch k {
	case KindPath:
		return "path"
	case KindUnit:
		return "unit"
	case KindUnitList:
		return "unit list"
	case KindModel:
		return "model"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Unit is one rendered source unit.
type Unit struct {
	// Item is the domain item the unit belongs to, Name is used when empty.
	Item string
	// Name of the unit, usually the generated class name.
	Name string
	// Path is the file the unit is written to, if known.
	Path string
	Code string
}

// Identity returns the key used to group units when accumulating.
func (u Unit) Identity() string {
	if u.Item != "" {
		return u.Item
	}

	return u.Name
}

// Value is the content of a slot: a path, a unit, a list of units or a model handle.
type Value struct {
	model any
	path  string
	units []Unit
	kind  Kind
}

// Path returns a path value.
func Path(path string) Value {
	return Value{kind: KindPath, path: path}
}

// UnitValue returns a single unit value.
func UnitValue(unit Unit) Value {
	return Value{kind: KindUnit, units: []Unit{unit}}
}

// UnitList returns a list value. An empty list is a valid value.
func UnitList(units ...Unit) Value {
	list := make([]Unit, len(units))
	copy(list, units)

	return Value{kind: KindUnitList, units: list}
}

// Model returns a value holding the handle of an analyzed domain model.
func Model(handle any) Value {
	return Value{kind: KindModel, model: handle}
}

func (v Value) Kind() Kind {
	return v.kind
}

// Units returns the units held by a unit or unit list value, nil otherwise.
// The returned slice is a copy.
func (v Value) Units() []Unit {
	if v.kind != KindUnit && v.kind != KindUnitList {
		return nil
	}
	list := make([]Unit, len(v.units))
	copy(list, v.units)

	return list
}

func (v Value) String() string {
	switch v.kind {
	case KindPath:
		return v.path
	case KindUnit:
		return v.units[0].Code
	case KindUnitList:
		return fmt.Sprintf("[%d units]", len(v.units))
	case KindModel:
		return fmt.Sprintf("model(%T)", v.model)
	default:
		return "<invalid>"
	}
}
