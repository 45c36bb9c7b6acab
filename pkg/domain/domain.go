// Package domain describes the structure of an event sourced domain model: aggregates with
// their commands and events, and value objects. Generators consume it through Analyzer.
package domain

import (
	"github.com/pkg/errors"
)

var (
	ErrInvalidModel = errors.New("invalid domain model")
)

// Analyzer is the read side of an analyzed domain model.
type Analyzer interface {
	Aggregates() []Aggregate
	ValueObjects() []ValueObject
	// Commands of every aggregate, in aggregate then declaration order.
	Commands() []Command
	// Events of every aggregate, in aggregate then declaration order.
	Events() []Event
}

// Property is a named, typed field of a message, a state or a value object.
type Property struct {
	Name     string
	Type     string
	Nullable bool
}

type Command struct {
	Name      string
	Aggregate string
	// Initial commands create a new aggregate instance.
	Initial    bool
	Properties []Property
	// Events recorded when the command is handled.
	Events []string
}

type Event struct {
	Name       string
	Aggregate  string
	Properties []Property
}

type Aggregate struct {
	Name string
	// Identifier is the property identifying an aggregate instance.
	Identifier string
	Properties []Property
	Commands   []Command
	Events     []Event
}

// Event returns the event named name.
func (a Aggregate) Event(name string) (Event, bool) {
	for _, event := range a.Events {
		if event.Name == name {
			return event, true
		}
	}

	return Event{}, false
}

type ValueObject struct {
	Name string
	// Type is the scalar type wrapped by the value object.
	Type string
	// Aggregate owning the value object, if any.
	Aggregate  string
	Properties []Property
}

// Model is an in-memory Analyzer.
type Model struct {
	aggregates   []Aggregate
	valueObjects []ValueObject
}

// NewModel validates and returns a model. Commands and events get their aggregate name
// filled in.
func NewModel(aggregates []Aggregate, valueObjects []ValueObject) (*Model, error) {
	m := &Model{
		aggregates:   make([]Aggregate, len(aggregates)),
		valueObjects: make([]ValueObject, len(valueObjects)),
	}
	copy(m.valueObjects, valueObjects)

	for i, aggregate := range aggregates {
		commands := make([]Command, len(aggregate.Commands))
		for j, command := range aggregate.Commands {
			command.Aggregate = aggregate.Name
			commands[j] = command
		}
		events := make([]Event, len(aggregate.Events))
		for j, event := range aggregate.Events {
			event.Aggregate = aggregate.Name
			events[j] = event
		}
		aggregate.Commands = commands
		aggregate.Events = events
		m.aggregates[i] = aggregate
	}

	err := m.Validate()
	if err != nil {
		return nil, err
	}

	return m, nil
}

func (m *Model) Aggregates() []Aggregate {
	return m.aggregates
}

func (m *Model) ValueObjects() []ValueObject {
	return m.valueObjects
}

func (m *Model) Commands() []Command {
	var commands []Command
	for _, aggregate := range m.aggregates {
		commands = append(commands, aggregate.Commands...)
	}

	return commands
}

func (m *Model) Events() []Event {
	var events []Event
	for _, aggregate := range m.aggregates {
		events = append(events, aggregate.Events...)
	}

	return events
}

// Validate checks names are set and unique, and that references resolve.
func (m *Model) Validate() error {
	aggregates := make(map[string]struct{}, len(m.aggregates))
	messages := make(map[string]string)

	for _, aggregate := range m.aggregates {
		if aggregate.Name == "" {
			return errors.Wrap(ErrInvalidModel, "aggregate without name")
		}
		if _, ok := aggregates[aggregate.Name]; ok {
			return errors.Wrapf(ErrInvalidModel, "duplicate aggregate %s", aggregate.Name)
		}
		aggregates[aggregate.Name] = struct{}{}

		if aggregate.Identifier == "" {
			return errors.Wrapf(ErrInvalidModel, "aggregate %s has no identifier", aggregate.Name)
		}

		err := checkProperties("aggregate "+aggregate.Name, aggregate.Properties)
		if err != nil {
			return err
		}

		for _, event := range aggregate.Events {
			err := registerMessage(messages, "event", event.Name)
			if err != nil {
				return err
			}
			err = checkProperties("event "+event.Name, event.Properties)
			if err != nil {
				return err
			}
		}

		for _, command := range aggregate.Commands {
			err := registerMessage(messages, "command", command.Name)
			if err != nil {
				return err
			}
			err = checkProperties("command "+command.Name, command.Properties)
			if err != nil {
				return err
			}
			for _, name := range command.Events {
				if _, ok := aggregate.Event(name); !ok {
					return errors.Wrapf(ErrInvalidModel, "command %s records unknown event %s of aggregate %s",
						command.Name, name, aggregate.Name)
				}
			}
		}
	}

	valueObjects := make(map[string]struct{}, len(m.valueObjects))
	for _, vo := range m.valueObjects {
		if vo.Name == "" {
			return errors.Wrap(ErrInvalidModel, "value object without name")
		}
		if _, ok := valueObjects[vo.Name]; ok {
			return errors.Wrapf(ErrInvalidModel, "duplicate value object %s", vo.Name)
		}
		valueObjects[vo.Name] = struct{}{}

		if vo.Aggregate != "" {
			if _, ok := aggregates[vo.Aggregate]; !ok {
				return errors.Wrapf(ErrInvalidModel, "value object %s references unknown aggregate %s",
					vo.Name, vo.Aggregate)
			}
		}

		err := checkProperties("value object "+vo.Name, vo.Properties)
		if err != nil {
			return err
		}
	}

	return nil
}

func registerMessage(seen map[string]string, kind, name string) error {
	if name == "" {
		return errors.Wrapf(ErrInvalidModel, "%s without name", kind)
	}
	if other, ok := seen[name]; ok {
		return errors.Wrapf(ErrInvalidModel, "%s %s clashes with %s of the same name", kind, name, other)
	}
	seen[name] = kind

	return nil
}

func checkProperties(owner string, properties []Property) error {
	seen := make(map[string]struct{}, len(properties))
	for _, p := range properties {
		if p.Name == "" {
			return errors.Wrapf(ErrInvalidModel, "%s: property without name", owner)
		}
		if _, ok := seen[p.Name]; ok {
			return errors.Wrapf(ErrInvalidModel, "%s: duplicate property %s", owner, p.Name)
		}
		seen[p.Name] = struct{}{}
	}

	return nil
}
