package eventengine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/event-engine/php-code-generator-cartridge-event-engine/pkg/eventengine"
	"github.com/event-engine/php-code-generator-cartridge-event-engine/pkg/workflow"
)

func TestFiltersValidate(t *testing.T) {
	t.Parallel()

	require.NoError(t, filters().Validate())

	tests := map[string]func(f *eventengine.Filters){
		"const name":             func(f *eventengine.Filters) { f.ConstName = nil },
		"const value":            func(f *eventengine.Filters) { f.ConstValue = nil },
		"class name":             func(f *eventengine.Filters) { f.ClassName = nil },
		"method name":            func(f *eventengine.Filters) { f.MethodName = nil },
		"directory to namespace": func(f *eventengine.Filters) { f.DirectoryToNamespace = nil },
		"namespace to directory": func(f *eventengine.Filters) { f.NamespaceToDirectory = nil },
	}

	for name, unset := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			f := filters()
			unset(&f)
			err := f.Validate()
			require.ErrorIs(t, err, eventengine.ErrMissingFilter)
			assert.Contains(t, err.Error(), name)
		})
	}
}

func TestFactoryConstructors(t *testing.T) {
	t.Parallel()

	missing := eventengine.Filters{}
	constructors := map[string]func(eventengine.Filters, eventengine.Printer) error{
		"empty class": func(f eventengine.Filters, p eventengine.Printer) error {
			_, err := eventengine.NewEmptyClassFactory(f, p)
			return err
		},
		"command description": func(f eventengine.Filters, p eventengine.Printer) error {
			_, err := eventengine.NewCommandDescriptionFactory(f, p)
			return err
		},
		"event description": func(f eventengine.Filters, p eventengine.Printer) error {
			_, err := eventengine.NewEventDescriptionFactory(f, p)
			return err
		},
		"aggregate description": func(f eventengine.Filters, p eventengine.Printer) error {
			_, err := eventengine.NewAggregateDescriptionFactory(f, p)
			return err
		},
		"aggregate state": func(f eventengine.Filters, p eventengine.Printer) error {
			_, err := eventengine.NewAggregateStateFactory(f, p)
			return err
		},
		"command": func(f eventengine.Filters, p eventengine.Printer) error {
			_, err := eventengine.NewCommandFactory(f, p)
			return err
		},
		"event": func(f eventengine.Filters, p eventengine.Printer) error {
			_, err := eventengine.NewEventFactory(f, p)
			return err
		},
		"value object": func(f eventengine.Filters, p eventengine.Printer) error {
			_, err := eventengine.NewValueObjectFactory(f, p)
			return err
		},
	}

	for name, construct := range constructors {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			require.NoError(t, construct(filters(), printer()))
			require.ErrorIs(t, construct(missing, printer()), eventengine.ErrMissingFilter)
			require.ErrorIs(t, construct(filters(), nil), eventengine.ErrMissingPrinter)
		})
	}

	_, err := eventengine.NewDescriptionFileMethodFactory(nil)
	require.ErrorIs(t, err, eventengine.ErrMissingPrinter)

	_, err = eventengine.NewAggregateBehaviourFactory(filters(), printer(), nil)
	require.Error(t, err)
}

func TestEmptyClassComponent(t *testing.T) {
	t.Parallel()

	factory, err := eventengine.NewEmptyClassFactory(filters(), printer())
	require.NoError(t, err)

	wctx := workflow.NewContext()
	wctx.Put("filename", workflow.Path("/app/src/Api/Command.php"))
	require.NoError(t, workflow.Run(workflow.NewWorkflow("empty", factory.Component("filename", "file")), wctx))

	value, err := wctx.Get("file")
	require.NoError(t, err)
	require.Equal(t, workflow.KindUnit, value.Kind())
	unit := value.Units()[0]
	assert.Equal(t, "Command", unit.Name)
	assert.Equal(t, "/app/src/Api/Command.php", unit.Path)
	assertCode(t, "<?php\n\ndeclare(strict_types=1);\n\nnamespace App\\Api;\n\nfinal class Command\n{\n}\n", unit.Code)
}

func TestAnalyzerShape(t *testing.T) {
	t.Parallel()

	factory, err := eventengine.NewCommandFactory(filters(), printer())
	require.NoError(t, err)

	tests := map[string]workflow.Value{
		"not a model":     workflow.Path("/model.yaml"),
		"not an analyzer": workflow.Model("nope"),
	}

	for name, value := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			wctx := workflow.NewContext()
			wctx.Put(analyzerSlot, value)
			wctx.Put(eventengine.SlotCommandPath, workflow.Path("/gen/cmd"))

			err := workflow.Run(workflow.NewWorkflow("shape",
				factory.FileComponent(analyzerSlot, eventengine.SlotCommandPath, eventengine.SlotCommand)), wctx)
			require.ErrorIs(t, err, workflow.ErrGenerationFailure)
			slot, _, ok := workflow.SlotOf(err)
			require.True(t, ok)
			assert.Equal(t, analyzerSlot, slot)
			assert.False(t, wctx.Has(eventengine.SlotCommand))
		})
	}
}

func TestMissingSchema(t *testing.T) {
	t.Parallel()

	factory, err := eventengine.NewCommandDescriptionFactory(filters(), printer())
	require.NoError(t, err)
	describe, err := eventengine.NewDescriptionFileMethodFactory(printer())
	require.NoError(t, err)
	emptyClass, err := eventengine.NewEmptyClassFactory(filters(), printer())
	require.NoError(t, err)

	wctx := workflow.NewContext()
	wctx.Put(analyzerSlot, workflow.Model(orderModel(t)))
	wctx.Put("filename", workflow.Path("/api/Command.php"))
	wctx.Put("schemas", workflow.UnitList())

	err = workflow.Run(workflow.NewWorkflow("describe",
		emptyClass.Component("filename", "file"),
		describe.Component("file", "file"),
		factory.Component(analyzerSlot, "file", "schemas", "file"),
	), wctx)
	require.ErrorIs(t, err, workflow.ErrGenerationFailure)
	slot, _, ok := workflow.SlotOf(err)
	require.True(t, ok)
	assert.Equal(t, workflow.Slot("schemas"), slot)
}

func TestSlotsCatalogue(t *testing.T) {
	t.Parallel()

	seen := make(map[workflow.Slot]bool)
	for _, slot := range eventengine.Slots() {
		assert.False(t, seen[slot], "slot %s listed twice", slot)
		seen[slot] = true
	}
	assert.NotEqual(t, eventengine.SlotCommandPath, eventengine.SlotEventPath)
}
