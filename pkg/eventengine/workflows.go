package eventengine

import (
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/event-engine/php-code-generator-cartridge-event-engine/pkg/workflow"
)

const (
	PrototypeWorkflowName       = "prototype"
	FunctionalWorkflowName      = "functional"
	PrototypeFilesWorkflowName  = "prototype-files"
	FunctionalFilesWorkflowName = "functional-files"

	apiCommandFile   = "Command.php"
	apiEventFile     = "Event.php"
	apiAggregateFile = "Aggregate.php"
	schemaFolder     = "_schema"
)

// PrototypeConfig seeds wctx with the paths of the prototype flavour and returns its
// workflow. Domain classes go below domainModelPath, event engine descriptions below
// apiDescriptionPath. The model is read from analyzerSlot, which may be bound later.
func PrototypeConfig(
	wctx *workflow.Context,
	analyzerSlot workflow.Slot,
	domainModelPath string,
	apiDescriptionPath string,
	filters Filters,
	printer Printer,
	options ...FactoryOption,
) (*workflow.Workflow, error) {
	if wctx == nil {
		return nil, workflow.ErrContextMustBeSet
	}

	state, err := NewAggregateStateFactory(filters, printer, options...)
	if err != nil {
		return nil, err
	}
	behaviour, err := NewAggregateBehaviourFactory(filters, printer, state, options...)
	if err != nil {
		return nil, err
	}
	aggregateDescription, err := NewAggregateDescriptionFactory(filters, printer, options...)
	if err != nil {
		return nil, err
	}
	commandDescription, err := NewCommandDescriptionFactory(filters, printer, options...)
	if err != nil {
		return nil, err
	}
	eventDescription, err := NewEventDescriptionFactory(filters, printer, options...)
	if err != nil {
		return nil, err
	}
	describe, err := NewDescriptionFileMethodFactory(printer)
	if err != nil {
		return nil, err
	}
	emptyClass, err := NewEmptyClassFactory(filters, printer, options...)
	if err != nil {
		return nil, err
	}

	wctx.Seed(map[workflow.Slot]workflow.Value{
		SlotAggregatePath:             workflow.Path(domainModelPath),
		SlotAggregateStatePath:        workflow.Path(domainModelPath),
		SlotAPICommandFilename:        workflow.Path(filepath.Join(apiDescriptionPath, apiCommandFile)),
		SlotAPIEventFilename:          workflow.Path(filepath.Join(apiDescriptionPath, apiEventFile)),
		SlotAPIAggregateFilename:      workflow.Path(filepath.Join(apiDescriptionPath, apiAggregateFile)),
		SlotCommandMetadataSchemaPath: workflow.Path(filepath.Join(apiDescriptionPath, schemaFolder)),
		SlotEventMetadataSchemaPath:   workflow.Path(filepath.Join(apiDescriptionPath, schemaFolder)),
	})

	wf := workflow.NewWorkflow(PrototypeWorkflowName,
		// description files
		emptyClass.Component(SlotAPICommandFilename, SlotAPICommandFile),
		emptyClass.Component(SlotAPIEventFilename, SlotAPIEventFile),
		emptyClass.Component(SlotAPIAggregateFilename, SlotAPIAggregateFile),
		describe.Component(SlotAPICommandFile, SlotAPICommandFile),
		describe.Component(SlotAPIEventFile, SlotAPIEventFile),
		describe.Component(SlotAPIAggregateFile, SlotAPIAggregateFile),
		// descriptions
		commandDescription.MetadataSchemaComponent(analyzerSlot, SlotCommandMetadataSchemaPath, SlotCommandMetadataSchema),
		commandDescription.Component(analyzerSlot, SlotAPICommandFile, SlotCommandMetadataSchema, SlotAPICommandFile),
		eventDescription.MetadataSchemaComponent(analyzerSlot, SlotEventMetadataSchemaPath, SlotEventMetadataSchema),
		eventDescription.Component(analyzerSlot, SlotAPIEventFile, SlotEventMetadataSchema, SlotAPIEventFile),
		aggregateDescription.Component(analyzerSlot, SlotAPIAggregateFile, SlotAggregatePath, SlotAPIAggregateFile),
		// aggregate state
		state.FileComponent(analyzerSlot, SlotAggregateStatePath, SlotAggregateState),
		state.ModifyMethodComponent(analyzerSlot, SlotAggregateState, SlotAggregateState),
		state.ImmutableRecordOverrideComponent(analyzerSlot, SlotAggregateState, SlotAggregateState),
		// aggregate behaviour
		behaviour.FileComponent(analyzerSlot, SlotAggregatePath, SlotAggregateStatePath, SlotAPIEventFilename, SlotAggregateBehaviour),
		behaviour.EventMethodComponent(analyzerSlot, SlotAggregateBehaviour, SlotAggregateBehaviour),
		behaviour.CommandMethodComponent(analyzerSlot, SlotAggregateBehaviour, SlotAggregateBehaviour),
	)

	return validated(wf, wctx, analyzerSlot)
}

// FunctionalConfig seeds wctx with the paths of the functional flavour and returns its
// workflow.
func FunctionalConfig(
	wctx *workflow.Context,
	analyzerSlot workflow.Slot,
	commandPath string,
	eventPath string,
	valueObjectPath string,
	filters Filters,
	printer Printer,
	options ...FactoryOption,
) (*workflow.Workflow, error) {
	if wctx == nil {
		return nil, workflow.ErrContextMustBeSet
	}

	commands, err := NewCommandFactory(filters, printer, options...)
	if err != nil {
		return nil, err
	}
	events, err := NewEventFactory(filters, printer, options...)
	if err != nil {
		return nil, err
	}
	valueObjects, err := NewValueObjectFactory(filters, printer, options...)
	if err != nil {
		return nil, err
	}

	wctx.Seed(map[workflow.Slot]workflow.Value{
		SlotCommandPath:     workflow.Path(commandPath),
		SlotEventPath:       workflow.Path(eventPath),
		SlotValueObjectPath: workflow.Path(valueObjectPath),
	})

	wf := workflow.NewWorkflow(FunctionalWorkflowName,
		valueObjects.FileComponent(analyzerSlot, SlotValueObjectPath, SlotValueObject),
		valueObjects.ComponentAggregateID(analyzerSlot, SlotValueObjectPath, SlotValueObject),
		commands.FileComponent(analyzerSlot, SlotCommandPath, SlotCommand),
		commands.PropertyComponent(analyzerSlot, SlotCommand, SlotCommand),
		events.FileComponent(analyzerSlot, SlotEventPath, SlotEvent),
		events.PropertyComponent(analyzerSlot, SlotEvent, SlotEvent),
	)

	return validated(wf, wctx, analyzerSlot)
}

// CodeToFilesForPrototypeConfig returns the workflow saving the code of PrototypeConfig.
func CodeToFilesForPrototypeConfig(writer FileWriter) (*workflow.Workflow, error) {
	if writer == nil {
		return nil, ErrMissingWriter
	}

	return workflow.NewWorkflow(PrototypeFilesWorkflowName,
		StringToFile(writer, SlotAPICommandFile, SlotAPICommandFilename),
		StringToFile(writer, SlotAPIEventFile, SlotAPIEventFilename),
		StringToFile(writer, SlotAPIAggregateFile, SlotAPIAggregateFilename),
		CodeListToFiles(writer, SlotAggregateBehaviour),
		CodeListToFiles(writer, SlotAggregateState),
		CodeListToFiles(writer, SlotCommandMetadataSchema),
		CodeListToFiles(writer, SlotEventMetadataSchema),
	), nil
}

// CodeToFilesForFunctionalConfig returns the workflow saving the code of FunctionalConfig.
func CodeToFilesForFunctionalConfig(writer FileWriter) (*workflow.Workflow, error) {
	if writer == nil {
		return nil, ErrMissingWriter
	}

	return workflow.NewWorkflow(FunctionalFilesWorkflowName,
		CodeListToFiles(writer, SlotCommand),
		CodeListToFiles(writer, SlotEvent),
		CodeListToFiles(writer, SlotValueObject),
	), nil
}

func validated(wf *workflow.Workflow, wctx *workflow.Context, analyzerSlot workflow.Slot) (*workflow.Workflow, error) {
	err := wf.Validate(append(wctx.Slots(), analyzerSlot)...)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid %s workflow", wf.Name)
	}

	return wf, nil
}
