package eventengine

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/event-engine/php-code-generator-cartridge-event-engine/pkg/domain"
	"github.com/event-engine/php-code-generator-cartridge-event-engine/pkg/workflow"
)

// FactoryOption configures a factory.
type FactoryOption func(*factoryConfig)

// WithAggregateFolder nests the files of each aggregate in a folder named after it.
func WithAggregateFolder(enabled bool) FactoryOption {
	return func(c *factoryConfig) {
		c.aggregateFolder = enabled
	}
}

type factoryConfig struct {
	printer         Printer
	filters         Filters
	aggregateFolder bool
}

func newFactoryConfig(filters Filters, printer Printer, options []FactoryOption) (factoryConfig, error) {
	cfg := factoryConfig{filters: filters, printer: printer}
	for _, option := range options {
		option(&cfg)
	}

	err := filters.Validate()
	if err != nil {
		return cfg, err
	}
	if printer == nil {
		return cfg, ErrMissingPrinter
	}

	return cfg, nil
}

// dir returns the folder of the files of aggregate below base.
func (c factoryConfig) dir(base, aggregate string) string {
	if c.aggregateFolder && aggregate != "" {
		return filepath.Join(base, c.filters.ClassName(aggregate))
	}

	return base
}

func (c factoryConfig) namespace(dir string) string {
	return c.filters.DirectoryToNamespace(dir)
}

func (c factoryConfig) classFile(dir, class string) string {
	return filepath.Join(dir, class+".php")
}

// fqcn returns the fully qualified name of class in dir.
func (c factoryConfig) fqcn(dir, class string) string {
	ns := c.namespace(dir)
	if ns == "" {
		return `\` + class
	}

	return `\` + ns + `\` + class
}

func (c factoryConfig) constant(name string) Constant {
	return Constant{
		Name:       c.filters.ConstName(name),
		Value:      "'" + c.filters.ConstValue(name) + "'",
		Visibility: "public",
	}
}

// refine applies edit to the code of every unit of the i-th input.
func refine(in workflow.Inputs, i int, edit func(unit workflow.Unit) (string, error)) (workflow.Value, error) {
	units, err := in.UnitList(i)
	if err != nil {
		return workflow.Value{}, err
	}

	for j, unit := range units {
		code, err := edit(unit)
		if err != nil {
			return workflow.Value{}, workflow.GenerationFailure(in.Slot(i), "%s: %v", unit.Name, err)
		}
		units[j].Code = code
	}

	return workflow.UnitList(units...), nil
}

func analyzerAt(in workflow.Inputs, i int) (domain.Analyzer, error) {
	handle, err := in.Model(i)
	if err != nil {
		return nil, err
	}

	analyzer, ok := handle.(domain.Analyzer)
	if !ok {
		return nil, workflow.GenerationFailure(in.Slot(i), "%T is not a domain analyzer", handle)
	}

	return analyzer, nil
}

func componentName(step string, output workflow.Slot) string {
	return fmt.Sprintf("%s:%s", step, output)
}

// phpType returns the PHP type of p. A property typed by a value object gets the type the
// value object wraps, string by default. Other names become class names.
func (c factoryConfig) phpType(p domain.Property, analyzer domain.Analyzer) string {
	typ := scalarType(p.Type)
	if typ == "" {
		typ = c.filters.ClassName(p.Type)
		for _, vo := range analyzer.ValueObjects() {
			if vo.Name != p.Type {
				continue
			}
			typ = scalarType(vo.Type)
			if typ == "" {
				typ = "string"
			}
			break
		}
	}
	if p.Nullable {
		return "?" + typ
	}

	return typ
}

func scalarType(typ string) string {
	switch strings.ToLower(typ) {
	case "", "string":
		return "string"
	case "int", "integer":
		return "int"
	case "float", "number", "double":
		return "float"
	case "bool", "boolean":
		return "bool"
	case "array", "list":
		return "array"
	default:
		return ""
	}
}

func jsonType(typ string) string {
	switch scalarType(typ) {
	case "int":
		return "integer"
	case "float":
		return "number"
	case "bool":
		return "boolean"
	case "array":
		return "array"
	default:
		return "string"
	}
}

func wrapFactoryError(err error, factory string) error {
	return errors.Wrapf(err, "unable to create %s factory", factory)
}
