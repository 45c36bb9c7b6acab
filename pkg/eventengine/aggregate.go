package eventengine

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/event-engine/php-code-generator-cartridge-event-engine/pkg/domain"
	"github.com/event-engine/php-code-generator-cartridge-event-engine/pkg/workflow"
)

const (
	useImmutableRecord      = `EventEngine\Data\ImmutableRecord`
	useImmutableRecordLogic = `EventEngine\Data\ImmutableRecordLogic`
	useMessage              = `EventEngine\Messaging\Message`
	useGenerator            = "Generator"
)

// AggregateStateFactory renders one immutable state class per aggregate.
type AggregateStateFactory struct {
	cfg factoryConfig
}

func NewAggregateStateFactory(filters Filters, printer Printer, options ...FactoryOption) (*AggregateStateFactory, error) {
	cfg, err := newFactoryConfig(filters, printer, options)
	if err != nil {
		return nil, wrapFactoryError(err, "aggregate state")
	}

	return &AggregateStateFactory{cfg: cfg}, nil
}

// ClassName returns the state class name of aggregate.
func (f *AggregateStateFactory) ClassName(aggregate string) string {
	return f.cfg.filters.ClassName(aggregate) + "State"
}

// FileComponent writes the state classes, stored below the directory held by inputPath.
func (f *AggregateStateFactory) FileComponent(inputAnalyzer, inputPath, output workflow.Slot) workflow.ComponentDescription {
	return workflow.NewComponent(componentName("aggregate-state-file", output),
		workflow.CapabilityFunc(func(_ *workflow.Context, in workflow.Inputs) (workflow.Value, error) {
			analyzer, err := analyzerAt(in, 0)
			if err != nil {
				return workflow.Value{}, err
			}
			base, err := in.Path(1)
			if err != nil {
				return workflow.Value{}, err
			}

			aggregates := analyzer.Aggregates()
			units := make([]workflow.Unit, 0, len(aggregates))
			for _, aggregate := range aggregates {
				dir := f.cfg.dir(base, aggregate.Name)
				class := f.ClassName(aggregate.Name)

				code, err := f.cfg.printer.Class(ClassSpec{
					Namespace:  f.cfg.namespace(dir),
					Name:       class,
					Final:      true,
					Implements: []string{"ImmutableRecord"},
					Uses:       []string{useImmutableRecord, useImmutableRecordLogic},
					Traits:     []string{"ImmutableRecordLogic"},
				})
				if err != nil {
					return workflow.Value{}, workflow.GenerationFailure(output, "aggregate %s: %v", aggregate.Name, err)
				}
				for _, p := range aggregate.Properties {
					code, err = f.cfg.printer.AddProperty(code, Property{
						Name:       p.Name,
						Type:       f.cfg.phpType(p, analyzer),
						Visibility: "private",
					})
					if err != nil {
						return workflow.Value{}, workflow.GenerationFailure(output, "aggregate %s: %v", aggregate.Name, err)
					}
				}

				units = append(units, workflow.Unit{
					Item: aggregate.Name,
					Name: class,
					Path: f.cfg.classFile(dir, class),
					Code: code,
				})
			}

			return workflow.UnitList(units...), nil
		}), output, inputAnalyzer, inputPath)
}

// ModifyMethodComponent adds a with method per state property.
func (f *AggregateStateFactory) ModifyMethodComponent(inputAnalyzer, inputState, output workflow.Slot) workflow.ComponentDescription {
	return workflow.NewComponent(componentName("aggregate-state-modify", output),
		workflow.CapabilityFunc(func(_ *workflow.Context, in workflow.Inputs) (workflow.Value, error) {
			analyzer, err := analyzerAt(in, 0)
			if err != nil {
				return workflow.Value{}, err
			}
			aggregates := aggregatesByName(analyzer)

			return refine(in, 1, func(unit workflow.Unit) (string, error) {
				aggregate, ok := aggregates[unit.Identity()]
				if !ok {
					return unit.Code, nil
				}

				code := unit.Code
				for _, p := range aggregate.Properties {
					typ := f.cfg.phpType(p, analyzer)
					var err error
					code, err = f.cfg.printer.AddMethod(code, Method{
						Name:       f.cfg.filters.MethodName("with " + p.Name),
						Params:     []Param{{Name: p.Name, Type: typ}},
						ReturnType: "self",
						Body: []string{
							"$instance = clone $this;",
							fmt.Sprintf("$instance->%s = $%s;", p.Name, p.Name),
							"",
							"return $instance;",
						},
					})
					if err != nil {
						return "", err
					}
				}

				return code, nil
			})
		}), output, inputAnalyzer, inputState)
}

// ImmutableRecordOverrideComponent adds the item type map of the array properties of
// each state.
func (f *AggregateStateFactory) ImmutableRecordOverrideComponent(inputAnalyzer, inputState, output workflow.Slot) workflow.ComponentDescription {
	return workflow.NewComponent(componentName("aggregate-state-override", output),
		workflow.CapabilityFunc(func(_ *workflow.Context, in workflow.Inputs) (workflow.Value, error) {
			analyzer, err := analyzerAt(in, 0)
			if err != nil {
				return workflow.Value{}, err
			}
			aggregates := aggregatesByName(analyzer)

			return refine(in, 1, func(unit workflow.Unit) (string, error) {
				aggregate, ok := aggregates[unit.Identity()]
				if !ok {
					return unit.Code, nil
				}

				body := []string{"return ["}
				for _, p := range aggregate.Properties {
					if scalarType(p.Type) == "array" {
						body = append(body, fmt.Sprintf("    '%s' => 'string',", p.Name))
					}
				}
				body = append(body, "];")
				if len(body) == 2 {
					body = []string{"return [];"}
				}

				return f.cfg.printer.AddMethod(unit.Code, Method{
					Name:       "arrayPropItemTypeMap",
					Visibility: "private",
					Static:     true,
					ReturnType: "array",
					Body:       body,
				})
			})
		}), output, inputAnalyzer, inputState)
}

// AggregateBehaviourFactory renders one behaviour class per aggregate with a static method
// per command and per event.
type AggregateBehaviourFactory struct {
	cfg   factoryConfig
	state *AggregateStateFactory
}

func NewAggregateBehaviourFactory(filters Filters, printer Printer, state *AggregateStateFactory, options ...FactoryOption) (*AggregateBehaviourFactory, error) {
	cfg, err := newFactoryConfig(filters, printer, options)
	if err != nil {
		return nil, wrapFactoryError(err, "aggregate behaviour")
	}
	if state == nil {
		return nil, wrapFactoryError(errors.New("aggregate state factory must be set"), "aggregate behaviour")
	}

	return &AggregateBehaviourFactory{cfg: cfg, state: state}, nil
}

// FileComponent writes the behaviour classes below the directory held by inputPath. They
// import the states stored below inputStatePath and the event description held by
// inputEventFilename.
func (f *AggregateBehaviourFactory) FileComponent(inputAnalyzer, inputPath, inputStatePath, inputEventFilename, output workflow.Slot) workflow.ComponentDescription {
	return workflow.NewComponent(componentName("aggregate-behaviour-file", output),
		workflow.CapabilityFunc(func(_ *workflow.Context, in workflow.Inputs) (workflow.Value, error) {
			analyzer, err := analyzerAt(in, 0)
			if err != nil {
				return workflow.Value{}, err
			}
			base, err := in.Path(1)
			if err != nil {
				return workflow.Value{}, err
			}
			stateBase, err := in.Path(2)
			if err != nil {
				return workflow.Value{}, err
			}
			eventFilename, err := in.Path(3)
			if err != nil {
				return workflow.Value{}, err
			}
			eventClass := strings.TrimPrefix(f.cfg.fqcn(filepath.Dir(eventFilename),
				strings.TrimSuffix(filepath.Base(eventFilename), filepath.Ext(eventFilename))), `\`)

			aggregates := analyzer.Aggregates()
			units := make([]workflow.Unit, 0, len(aggregates))
			for _, aggregate := range aggregates {
				dir := f.cfg.dir(base, aggregate.Name)
				stateDir := f.state.cfg.dir(stateBase, aggregate.Name)
				class := f.cfg.filters.ClassName(aggregate.Name)

				uses := []string{eventClass, useMessage, useGenerator}
				if f.cfg.namespace(dir) != f.state.cfg.namespace(stateDir) {
					uses = append(uses, strings.TrimPrefix(f.state.cfg.fqcn(stateDir, f.state.ClassName(aggregate.Name)), `\`))
				}

				code, err := f.cfg.printer.Class(ClassSpec{
					Namespace: f.cfg.namespace(dir),
					Name:      class,
					Final:     true,
					Uses:      uses,
				})
				if err != nil {
					return workflow.Value{}, workflow.GenerationFailure(output, "aggregate %s: %v", aggregate.Name, err)
				}

				units = append(units, workflow.Unit{
					Item: aggregate.Name,
					Name: class,
					Path: f.cfg.classFile(dir, class),
					Code: code,
				})
			}

			return workflow.UnitList(units...), nil
		}), output, inputAnalyzer, inputPath, inputStatePath, inputEventFilename)
}

// EventMethodComponent adds the apply method of every event of each aggregate. Events
// recorded by an initial command create the state.
func (f *AggregateBehaviourFactory) EventMethodComponent(inputAnalyzer, inputBehaviour, output workflow.Slot) workflow.ComponentDescription {
	return workflow.NewComponent(componentName("aggregate-behaviour-event-method", output),
		workflow.CapabilityFunc(func(_ *workflow.Context, in workflow.Inputs) (workflow.Value, error) {
			analyzer, err := analyzerAt(in, 0)
			if err != nil {
				return workflow.Value{}, err
			}
			aggregates := aggregatesByName(analyzer)

			return refine(in, 1, func(unit workflow.Unit) (string, error) {
				aggregate, ok := aggregates[unit.Identity()]
				if !ok {
					return unit.Code, nil
				}

				state := f.state.ClassName(aggregate.Name)
				initial := initialEvents(aggregate)
				code := unit.Code
				for _, event := range aggregate.Events {
					arg := f.cfg.filters.MethodName(event.Name)
					method := Method{
						Name:       f.cfg.filters.MethodName("when " + event.Name),
						Static:     true,
						ReturnType: state,
					}
					if initial[event.Name] {
						method.Params = []Param{{Name: arg, Type: "Message"}}
						method.Body = []string{fmt.Sprintf("return %s::fromArray($%s->payload());", state, arg)}
					} else {
						method.Params = []Param{{Name: "state", Type: state}, {Name: arg, Type: "Message"}}
						method.Body = []string{fmt.Sprintf("return $state->with($%s->payload());", arg)}
					}

					var err error
					code, err = f.cfg.printer.AddMethod(code, method)
					if err != nil {
						return "", err
					}
				}

				return code, nil
			})
		}), output, inputAnalyzer, inputBehaviour)
}

// CommandMethodComponent adds the handle method of every command of each aggregate,
// yielding the events the command records.
func (f *AggregateBehaviourFactory) CommandMethodComponent(inputAnalyzer, inputBehaviour, output workflow.Slot) workflow.ComponentDescription {
	return workflow.NewComponent(componentName("aggregate-behaviour-command-method", output),
		workflow.CapabilityFunc(func(_ *workflow.Context, in workflow.Inputs) (workflow.Value, error) {
			analyzer, err := analyzerAt(in, 0)
			if err != nil {
				return workflow.Value{}, err
			}
			aggregates := aggregatesByName(analyzer)

			return refine(in, 1, func(unit workflow.Unit) (string, error) {
				aggregate, ok := aggregates[unit.Identity()]
				if !ok {
					return unit.Code, nil
				}

				state := f.state.ClassName(aggregate.Name)
				code := unit.Code
				for _, command := range aggregate.Commands {
					arg := f.cfg.filters.MethodName(command.Name)
					method := Method{
						Name:       f.cfg.filters.MethodName(command.Name),
						Static:     true,
						ReturnType: useGenerator,
						Params:     []Param{{Name: arg, Type: "Message"}},
					}
					if !command.Initial {
						method.Params = append([]Param{{Name: "state", Type: state}}, method.Params...)
					}
					for _, event := range command.Events {
						method.Body = append(method.Body,
							fmt.Sprintf("yield [Event::%s, $%s->payload()];", f.cfg.filters.ConstName(event), arg))
					}
					if len(method.Body) == 0 {
						method.Body = []string{"yield from [];"}
					}

					var err error
					code, err = f.cfg.printer.AddMethod(code, method)
					if err != nil {
						return "", err
					}
				}

				return code, nil
			})
		}), output, inputAnalyzer, inputBehaviour)
}

func aggregatesByName(analyzer domain.Analyzer) map[string]domain.Aggregate {
	aggregates := make(map[string]domain.Aggregate)
	for _, aggregate := range analyzer.Aggregates() {
		aggregates[aggregate.Name] = aggregate
	}

	return aggregates
}

// initialEvents returns the events recorded by the initial commands of aggregate.
func initialEvents(aggregate domain.Aggregate) map[string]bool {
	events := make(map[string]bool)
	for _, command := range aggregate.Commands {
		if !command.Initial {
			continue
		}
		for _, event := range command.Events {
			events[event] = true
		}
	}

	return events
}
