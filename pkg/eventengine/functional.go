package eventengine

import (
	"fmt"

	"github.com/event-engine/php-code-generator-cartridge-event-engine/pkg/domain"
	"github.com/event-engine/php-code-generator-cartridge-event-engine/pkg/workflow"
)

const useUUID = `Ramsey\Uuid\Uuid`

// messageFactory renders one immutable record class per message of a kind.
type messageFactory struct {
	kind messageKind
	cfg  factoryConfig
}

// FileComponent writes the message classes, stored below the directory held by inputPath.
func (f *messageFactory) FileComponent(inputAnalyzer, inputPath, output workflow.Slot) workflow.ComponentDescription {
	return workflow.NewComponent(componentName(f.kind.label+"-file", output),
		workflow.CapabilityFunc(func(_ *workflow.Context, in workflow.Inputs) (workflow.Value, error) {
			analyzer, err := analyzerAt(in, 0)
			if err != nil {
				return workflow.Value{}, err
			}
			base, err := in.Path(1)
			if err != nil {
				return workflow.Value{}, err
			}

			messages := f.kind.list(analyzer)
			units := make([]workflow.Unit, 0, len(messages))
			for _, msg := range messages {
				dir := f.cfg.dir(base, msg.aggregate)
				class := f.cfg.filters.ClassName(msg.name)

				code, err := f.cfg.printer.Class(ClassSpec{
					Namespace:  f.cfg.namespace(dir),
					Name:       class,
					Final:      true,
					Implements: []string{"ImmutableRecord"},
					Uses:       []string{useImmutableRecord, useImmutableRecordLogic},
					Traits:     []string{"ImmutableRecordLogic"},
				})
				if err != nil {
					return workflow.Value{}, workflow.GenerationFailure(output, "%s %s: %v", f.kind.label, msg.name, err)
				}

				units = append(units, workflow.Unit{
					Item: msg.name,
					Name: class,
					Path: f.cfg.classFile(dir, class),
					Code: code,
				})
			}

			return workflow.UnitList(units...), nil
		}), output, inputAnalyzer, inputPath)
}

// PropertyComponent adds a property and its getter per payload field.
func (f *messageFactory) PropertyComponent(inputAnalyzer, inputMessages, output workflow.Slot) workflow.ComponentDescription {
	return workflow.NewComponent(componentName(f.kind.label+"-property", output),
		workflow.CapabilityFunc(func(_ *workflow.Context, in workflow.Inputs) (workflow.Value, error) {
			analyzer, err := analyzerAt(in, 0)
			if err != nil {
				return workflow.Value{}, err
			}
			messages := make(map[string]message)
			for _, msg := range f.kind.list(analyzer) {
				messages[msg.name] = msg
			}

			return refine(in, 1, func(unit workflow.Unit) (string, error) {
				msg, ok := messages[unit.Identity()]
				if !ok {
					return unit.Code, nil
				}

				code := unit.Code
				for _, p := range msg.properties {
					typ := f.cfg.phpType(p, analyzer)
					var err error
					code, err = chain(code,
						func(code string) (string, error) {
							return f.cfg.printer.AddProperty(code, Property{Name: p.Name, Type: typ, Visibility: "private"})
						},
						func(code string) (string, error) {
							return f.cfg.printer.AddMethod(code, Method{
								Name:       p.Name,
								ReturnType: typ,
								Body:       []string{fmt.Sprintf("return $this->%s;", p.Name)},
							})
						},
					)
					if err != nil {
						return "", err
					}
				}

				return code, nil
			})
		}), output, inputAnalyzer, inputMessages)
}

type CommandFactory struct {
	messageFactory
}

func NewCommandFactory(filters Filters, printer Printer, options ...FactoryOption) (*CommandFactory, error) {
	cfg, err := newFactoryConfig(filters, printer, options)
	if err != nil {
		return nil, wrapFactoryError(err, "command")
	}

	return &CommandFactory{messageFactory{kind: commandKind, cfg: cfg}}, nil
}

type EventFactory struct {
	messageFactory
}

func NewEventFactory(filters Filters, printer Printer, options ...FactoryOption) (*EventFactory, error) {
	cfg, err := newFactoryConfig(filters, printer, options)
	if err != nil {
		return nil, wrapFactoryError(err, "event")
	}

	return &EventFactory{messageFactory{kind: eventKind, cfg: cfg}}, nil
}

// ValueObjectFactory renders value object classes wrapping a scalar.
type ValueObjectFactory struct {
	cfg factoryConfig
}

func NewValueObjectFactory(filters Filters, printer Printer, options ...FactoryOption) (*ValueObjectFactory, error) {
	cfg, err := newFactoryConfig(filters, printer, options)
	if err != nil {
		return nil, wrapFactoryError(err, "value object")
	}

	return &ValueObjectFactory{cfg: cfg}, nil
}

// FileComponent writes the value objects of the model, stored below the directory held by
// inputPath. Units of value objects owned by an aggregate are grouped under its name.
func (f *ValueObjectFactory) FileComponent(inputAnalyzer, inputPath, output workflow.Slot) workflow.ComponentDescription {
	return workflow.NewComponent(componentName("value-object-file", output),
		workflow.CapabilityFunc(func(_ *workflow.Context, in workflow.Inputs) (workflow.Value, error) {
			analyzer, err := analyzerAt(in, 0)
			if err != nil {
				return workflow.Value{}, err
			}
			base, err := in.Path(1)
			if err != nil {
				return workflow.Value{}, err
			}

			valueObjects := analyzer.ValueObjects()
			units := make([]workflow.Unit, 0, len(valueObjects))
			for _, vo := range valueObjects {
				unit, err := f.render(base, vo)
				if err != nil {
					return workflow.Value{}, workflow.GenerationFailure(output, "value object %s: %v", vo.Name, err)
				}
				units = append(units, unit)
			}

			return workflow.UnitList(units...), nil
		}), output, inputAnalyzer, inputPath)
}

// ComponentAggregateID adds an <Aggregate>Id value object per aggregate to output, next to
// the value objects of that aggregate. Aggregates whose id value object is modelled
// already are skipped.
func (f *ValueObjectFactory) ComponentAggregateID(inputAnalyzer, inputPath, output workflow.Slot) workflow.ComponentDescription {
	return workflow.NewAccumulatingComponent(componentName("value-object-aggregate-id", output),
		workflow.CapabilityFunc(func(_ *workflow.Context, in workflow.Inputs) (workflow.Value, error) {
			analyzer, err := analyzerAt(in, 0)
			if err != nil {
				return workflow.Value{}, err
			}
			base, err := in.Path(1)
			if err != nil {
				return workflow.Value{}, err
			}

			modelled := make(map[string]bool)
			for _, vo := range analyzer.ValueObjects() {
				modelled[f.cfg.filters.ClassName(vo.Name)] = true
			}

			var units []workflow.Unit
			for _, aggregate := range analyzer.Aggregates() {
				name := f.cfg.filters.ClassName(aggregate.Name) + "Id"
				if modelled[name] {
					continue
				}

				unit, err := f.render(base, domain.ValueObject{Name: name, Type: "string", Aggregate: aggregate.Name})
				if err != nil {
					return workflow.Value{}, workflow.GenerationFailure(output, "aggregate %s: %v", aggregate.Name, err)
				}
				unit.Code, err = chain(unit.Code,
					func(code string) (string, error) { return f.cfg.printer.AddUse(code, useUUID) },
					func(code string) (string, error) {
						return f.cfg.printer.AddMethod(code, Method{
							Name:       "generate",
							Static:     true,
							ReturnType: "self",
							Body:       []string{"return new self(Uuid::uuid4()->toString());"},
						})
					},
				)
				if err != nil {
					return workflow.Value{}, workflow.GenerationFailure(output, "aggregate %s: %v", aggregate.Name, err)
				}
				units = append(units, unit)
			}

			return workflow.UnitList(units...), nil
		}), output, inputAnalyzer, inputPath)
}

func (f *ValueObjectFactory) render(base string, vo domain.ValueObject) (workflow.Unit, error) {
	dir := f.cfg.dir(base, vo.Aggregate)
	class := f.cfg.filters.ClassName(vo.Name)
	typ := scalarType(vo.Type)
	if typ == "" {
		typ = "string"
	}
	native := f.cfg.filters.ClassName(typ)

	code, err := f.cfg.printer.Class(ClassSpec{
		Namespace: f.cfg.namespace(dir),
		Name:      class,
		Final:     true,
	})
	if err != nil {
		return workflow.Unit{}, err
	}

	code, err = chain(code,
		func(code string) (string, error) {
			return f.cfg.printer.AddProperty(code, Property{Name: "value", Type: typ, Visibility: "private"})
		},
		func(code string) (string, error) {
			return f.cfg.printer.AddMethod(code, Method{
				Name:       "from" + native,
				Static:     true,
				Params:     []Param{{Name: "value", Type: typ}},
				ReturnType: "self",
				Body:       []string{"return new self($value);"},
			})
		},
		func(code string) (string, error) {
			return f.cfg.printer.AddMethod(code, Method{
				Name:       "__construct",
				Visibility: "private",
				Params:     []Param{{Name: "value", Type: typ}},
				Body:       []string{"$this->value = $value;"},
			})
		},
		func(code string) (string, error) {
			return f.cfg.printer.AddMethod(code, Method{
				Name:       "to" + native,
				ReturnType: typ,
				Body:       []string{"return $this->value;"},
			})
		},
		func(code string) (string, error) {
			return f.cfg.printer.AddMethod(code, Method{
				Name:       "equals",
				Params:     []Param{{Name: "other"}},
				ReturnType: "bool",
				Body: []string{
					"if (!$other instanceof self) {",
					"    return false;",
					"}",
					"",
					"return $this->value === $other->value;",
				},
			})
		},
	)
	if err != nil {
		return workflow.Unit{}, err
	}

	return workflow.Unit{
		Item: itemOf(vo),
		Name: class,
		Path: f.cfg.classFile(dir, class),
		Code: code,
	}, nil
}

func itemOf(vo domain.ValueObject) string {
	if vo.Aggregate != "" {
		return vo.Aggregate
	}

	return vo.Name
}
