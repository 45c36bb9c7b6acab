package eventengine

import "github.com/event-engine/php-code-generator-cartridge-event-engine/pkg/workflow"

const (
	SlotCommandPath        workflow.Slot = "event_engine-command_path"
	SlotEventPath          workflow.Slot = "event_engine-event_path"
	SlotAggregatePath      workflow.Slot = "event_engine-aggregate_path"
	SlotAggregateStatePath workflow.Slot = "event_engine-aggregate_state_path"
	SlotValueObjectPath    workflow.Slot = "event_engine-value_object_path"

	SlotAPICommandFilename   workflow.Slot = "event_engine-ee_api_command_filename"
	SlotAPIEventFilename     workflow.Slot = "event_engine-ee_api_event_filename"
	SlotAPIAggregateFilename workflow.Slot = "event_engine-ee_api_aggregate_filename"

	SlotAPICommandFile   workflow.Slot = "event_engine-ee_api_command_file"
	SlotAPIEventFile     workflow.Slot = "event_engine-ee_api_event_file"
	SlotAPIAggregateFile workflow.Slot = "event_engine-ee_api_aggregate_file"

	SlotAggregateState     workflow.Slot = "event_engine-aggregate_state"
	SlotAggregateBehaviour workflow.Slot = "event_engine-aggregate_behaviour"

	SlotCommand     workflow.Slot = "event_engine-command"
	SlotEvent       workflow.Slot = "event_engine-event"
	SlotValueObject workflow.Slot = "event_engine-value_object"

	SlotCommandMetadataSchemaPath workflow.Slot = "event_engine-command_metadata_schema_path"
	SlotCommandMetadataSchema     workflow.Slot = "event_engine-command_metadata_schema"
	SlotEventMetadataSchemaPath   workflow.Slot = "event_engine-event_metadata_schema_path"
	SlotEventMetadataSchema       workflow.Slot = "event_engine-event_metadata_schema"
)

// Slots lists the slot catalogue, in the order generated code flows through it.
func Slots() []workflow.Slot {
	return []workflow.Slot{
		SlotCommandPath,
		SlotEventPath,
		SlotAggregatePath,
		SlotAggregateStatePath,
		SlotValueObjectPath,
		SlotAPICommandFilename,
		SlotAPIEventFilename,
		SlotAPIAggregateFilename,
		SlotAPICommandFile,
		SlotAPIEventFile,
		SlotAPIAggregateFile,
		SlotAggregateState,
		SlotAggregateBehaviour,
		SlotCommand,
		SlotEvent,
		SlotValueObject,
		SlotCommandMetadataSchemaPath,
		SlotCommandMetadataSchema,
		SlotEventMetadataSchemaPath,
		SlotEventMetadataSchema,
	}
}
