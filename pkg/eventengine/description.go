package eventengine

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/event-engine/php-code-generator-cartridge-event-engine/pkg/domain"
	"github.com/event-engine/php-code-generator-cartridge-event-engine/pkg/workflow"
)

const (
	describeMethod = "describe"

	useEventEngine            = `EventEngine\EventEngine`
	useEventEngineDescription = `EventEngine\EventEngineDescription`
	useJSONSchemaArray        = `EventEngine\JsonSchema\JsonSchemaArray`
)

// EmptyClassFactory renders an empty final class named after a file.
type EmptyClassFactory struct {
	cfg factoryConfig
}

func NewEmptyClassFactory(filters Filters, printer Printer, options ...FactoryOption) (*EmptyClassFactory, error) {
	cfg, err := newFactoryConfig(filters, printer, options)
	if err != nil {
		return nil, wrapFactoryError(err, "empty class")
	}

	return &EmptyClassFactory{cfg: cfg}, nil
}

// Component reads the file name held by inputFilename and writes the class to output.
func (f *EmptyClassFactory) Component(inputFilename, output workflow.Slot) workflow.ComponentDescription {
	return workflow.NewComponent(componentName("empty-class", output),
		workflow.CapabilityFunc(func(_ *workflow.Context, in workflow.Inputs) (workflow.Value, error) {
			filename, err := in.Path(0)
			if err != nil {
				return workflow.Value{}, err
			}

			dir := filepath.Dir(filename)
			name := f.cfg.filters.ClassName(strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename)))
			code, err := f.cfg.printer.Class(ClassSpec{
				Namespace: f.cfg.namespace(dir),
				Name:      name,
				Final:     true,
			})
			if err != nil {
				return workflow.Value{}, workflow.GenerationFailure(output, "%v", err)
			}

			return workflow.UnitValue(workflow.Unit{Name: name, Path: filename, Code: code}), nil
		}), output, inputFilename)
}

// DescriptionFileMethodFactory turns a class into an event engine description with an
// empty describe method.
type DescriptionFileMethodFactory struct {
	printer Printer
}

func NewDescriptionFileMethodFactory(printer Printer) (*DescriptionFileMethodFactory, error) {
	if printer == nil {
		return nil, wrapFactoryError(ErrMissingPrinter, "description file method")
	}

	return &DescriptionFileMethodFactory{printer: printer}, nil
}

func (f *DescriptionFileMethodFactory) Component(inputCode, output workflow.Slot) workflow.ComponentDescription {
	return workflow.NewComponent(componentName("describe", output),
		workflow.CapabilityFunc(func(_ *workflow.Context, in workflow.Inputs) (workflow.Value, error) {
			unit, err := in.Unit(0)
			if err != nil {
				return workflow.Value{}, err
			}

			code, err := chain(unit.Code,
				func(code string) (string, error) { return f.printer.AddUse(code, useEventEngine) },
				func(code string) (string, error) { return f.printer.AddUse(code, useEventEngineDescription) },
				func(code string) (string, error) { return f.printer.AddImplements(code, "EventEngineDescription") },
				func(code string) (string, error) {
					return f.printer.AddMethod(code, Method{
						Name:       describeMethod,
						Static:     true,
						Params:     []Param{{Name: "eventEngine", Type: "EventEngine"}},
						ReturnType: "void",
					})
				},
			)
			if err != nil {
				return workflow.Value{}, workflow.GenerationFailure(output, "%v", err)
			}
			unit.Code = code

			return workflow.UnitValue(unit), nil
		}), output, inputCode)
}

type message struct {
	name       string
	aggregate  string
	properties []domain.Property
}

type messageKind struct {
	label    string
	register string
	list     func(domain.Analyzer) []message
}

var (
	commandKind = messageKind{
		label:    "command",
		register: "registerCommand",
		list: func(analyzer domain.Analyzer) []message {
			var messages []message
			for _, command := range analyzer.Commands() {
				messages = append(messages, message{command.Name, command.Aggregate, command.Properties})
			}

			return messages
		},
	}
	eventKind = messageKind{
		label:    "event",
		register: "registerEvent",
		list: func(analyzer domain.Analyzer) []message {
			var messages []message
			for _, event := range analyzer.Events() {
				messages = append(messages, message{event.Name, event.Aggregate, event.Properties})
			}

			return messages
		},
	}
)

// messageDescriptionFactory registers the messages of one kind in a description class,
// each with the JSON schema of its payload.
type messageDescriptionFactory struct {
	kind messageKind
	cfg  factoryConfig
}

// MetadataSchemaComponent writes to output one JSON schema per message, stored below the
// directory held by inputSchemaPath.
func (f *messageDescriptionFactory) MetadataSchemaComponent(inputAnalyzer, inputSchemaPath, output workflow.Slot) workflow.ComponentDescription {
	return workflow.NewComponent(componentName(f.kind.label+"-metadata-schema", output),
		workflow.CapabilityFunc(func(_ *workflow.Context, in workflow.Inputs) (workflow.Value, error) {
			analyzer, err := analyzerAt(in, 0)
			if err != nil {
				return workflow.Value{}, err
			}
			dir, err := in.Path(1)
			if err != nil {
				return workflow.Value{}, err
			}

			messages := f.kind.list(analyzer)
			units := make([]workflow.Unit, 0, len(messages))
			for _, msg := range messages {
				code, err := f.cfg.printer.Schema(payloadSchema(msg.properties))
				if err != nil {
					return workflow.Value{}, workflow.GenerationFailure(output, "%s %s: %v", f.kind.label, msg.name, err)
				}
				name := f.cfg.filters.ConstValue(msg.name)
				units = append(units, workflow.Unit{
					Item: msg.name,
					Name: name,
					Path: filepath.Join(dir, name+".json"),
					Code: code,
				})
			}

			return workflow.UnitList(units...), nil
		}), output, inputAnalyzer, inputSchemaPath)
}

// Component registers every message in the describe method of the description class
// held by inputCode. inputSchema holds the schemas of MetadataSchemaComponent.
func (f *messageDescriptionFactory) Component(inputAnalyzer, inputCode, inputSchema, output workflow.Slot) workflow.ComponentDescription {
	return workflow.NewComponent(componentName(f.kind.label+"-description", output),
		workflow.CapabilityFunc(func(_ *workflow.Context, in workflow.Inputs) (workflow.Value, error) {
			analyzer, err := analyzerAt(in, 0)
			if err != nil {
				return workflow.Value{}, err
			}
			unit, err := in.Unit(1)
			if err != nil {
				return workflow.Value{}, err
			}
			schemas, err := in.UnitList(2)
			if err != nil {
				return workflow.Value{}, err
			}

			code, err := f.cfg.printer.AddUse(unit.Code, useJSONSchemaArray)
			if err != nil {
				return workflow.Value{}, workflow.GenerationFailure(output, "%v", err)
			}

			for _, msg := range f.kind.list(analyzer) {
				schema, ok := findUnit(schemas, msg.name)
				if !ok {
					return workflow.Value{}, workflow.GenerationFailure(in.Slot(2), "no schema for %s %s", f.kind.label, msg.name)
				}
				rel, err := filepath.Rel(filepath.Dir(unit.Path), schema.Path)
				if err != nil {
					rel = schema.Path
				}

				constant := f.cfg.constant(msg.name)
				code, err = chain(code,
					func(code string) (string, error) { return f.cfg.printer.AddConstant(code, constant) },
					func(code string) (string, error) {
						return f.cfg.printer.AppendToMethod(code, describeMethod, fmt.Sprintf(
							"$eventEngine->%s(\n    self::%s,\n    JsonSchemaArray::fromFile(__DIR__ . '/%s')\n);",
							f.kind.register, constant.Name, filepath.ToSlash(rel)))
					},
				)
				if err != nil {
					return workflow.Value{}, workflow.GenerationFailure(output, "%s %s: %v", f.kind.label, msg.name, err)
				}
			}
			unit.Code = code

			return workflow.UnitValue(unit), nil
		}), output, inputAnalyzer, inputCode, inputSchema)
}

type CommandDescriptionFactory struct {
	messageDescriptionFactory
}

func NewCommandDescriptionFactory(filters Filters, printer Printer, options ...FactoryOption) (*CommandDescriptionFactory, error) {
	cfg, err := newFactoryConfig(filters, printer, options)
	if err != nil {
		return nil, wrapFactoryError(err, "command description")
	}

	return &CommandDescriptionFactory{messageDescriptionFactory{kind: commandKind, cfg: cfg}}, nil
}

type EventDescriptionFactory struct {
	messageDescriptionFactory
}

func NewEventDescriptionFactory(filters Filters, printer Printer, options ...FactoryOption) (*EventDescriptionFactory, error) {
	cfg, err := newFactoryConfig(filters, printer, options)
	if err != nil {
		return nil, wrapFactoryError(err, "event description")
	}

	return &EventDescriptionFactory{messageDescriptionFactory{kind: eventKind, cfg: cfg}}, nil
}

// AggregateDescriptionFactory describes how each command is processed by its aggregate.
type AggregateDescriptionFactory struct {
	cfg factoryConfig
}

func NewAggregateDescriptionFactory(filters Filters, printer Printer, options ...FactoryOption) (*AggregateDescriptionFactory, error) {
	cfg, err := newFactoryConfig(filters, printer, options)
	if err != nil {
		return nil, wrapFactoryError(err, "aggregate description")
	}

	return &AggregateDescriptionFactory{cfg: cfg}, nil
}

// Component adds the process definitions to the description class held by inputCode. The
// aggregate classes live below the directory held by inputAggregatePath.
func (f *AggregateDescriptionFactory) Component(inputAnalyzer, inputCode, inputAggregatePath, output workflow.Slot) workflow.ComponentDescription {
	return workflow.NewComponent(componentName("aggregate-description", output),
		workflow.CapabilityFunc(func(_ *workflow.Context, in workflow.Inputs) (workflow.Value, error) {
			analyzer, err := analyzerAt(in, 0)
			if err != nil {
				return workflow.Value{}, err
			}
			unit, err := in.Unit(1)
			if err != nil {
				return workflow.Value{}, err
			}
			base, err := in.Path(2)
			if err != nil {
				return workflow.Value{}, err
			}

			code := unit.Code
			for _, aggregate := range analyzer.Aggregates() {
				constant := f.cfg.constant(aggregate.Name)
				code, err = f.cfg.printer.AddConstant(code, constant)
				if err != nil {
					return workflow.Value{}, workflow.GenerationFailure(output, "aggregate %s: %v", aggregate.Name, err)
				}

				class := f.cfg.fqcn(f.cfg.dir(base, aggregate.Name), f.cfg.filters.ClassName(aggregate.Name))
				for _, command := range aggregate.Commands {
					code, err = f.cfg.printer.AppendToMethod(code, describeMethod, f.process(aggregate, command, constant.Name, class))
					if err != nil {
						return workflow.Value{}, workflow.GenerationFailure(output, "command %s: %v", command.Name, err)
					}
				}
			}
			unit.Code = code

			return workflow.UnitValue(unit), nil
		}), output, inputAnalyzer, inputCode, inputAggregatePath)
}

func (f *AggregateDescriptionFactory) process(aggregate domain.Aggregate, command domain.Command, aggregateConst, class string) string {
	with := "withExisting"
	if command.Initial {
		with = "withNew"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "$eventEngine->process(Command::%s)\n", f.cfg.filters.ConstName(command.Name))
	fmt.Fprintf(&sb, "    ->%s(self::%s)\n", with, aggregateConst)
	fmt.Fprintf(&sb, "    ->identifiedBy('%s')\n", aggregate.Identifier)
	fmt.Fprintf(&sb, "    ->handle([%s::class, '%s'])", class, f.cfg.filters.MethodName(command.Name))
	for i, event := range command.Events {
		record := "recordThen"
		if i > 0 {
			record = "andRecordThen"
		}
		fmt.Fprintf(&sb, "\n    ->%s(Event::%s)", record, f.cfg.filters.ConstName(event))
		fmt.Fprintf(&sb, "\n    ->apply([%s::class, '%s'])", class, f.cfg.filters.MethodName("when "+event))
	}
	sb.WriteString(";")

	return sb.String()
}

func payloadSchema(properties []domain.Property) map[string]any {
	props := make(map[string]any, len(properties))
	required := make([]string, 0, len(properties))
	for _, p := range properties {
		var typ any = jsonType(p.Type)
		if p.Nullable {
			typ = []string{jsonType(p.Type), "null"}
		} else {
			required = append(required, p.Name)
		}
		props[p.Name] = map[string]any{"type": typ}
	}

	return map[string]any{
		"type":                 "object",
		"properties":           props,
		"required":             required,
		"additionalProperties": false,
	}
}

func findUnit(units []workflow.Unit, identity string) (workflow.Unit, bool) {
	for _, unit := range units {
		if unit.Identity() == identity {
			return unit, true
		}
	}

	return workflow.Unit{}, false
}

func chain(code string, edits ...func(string) (string, error)) (string, error) {
	for _, edit := range edits {
		var err error
		code, err = edit(code)
		if err != nil {
			return "", err
		}
	}

	return code, nil
}
