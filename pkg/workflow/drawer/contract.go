package drawer

import (
	"time"

	"github.com/event-engine/php-code-generator-cartridge-event-engine/pkg/workflow/measure"
	"github.com/event-engine/php-code-generator-cartridge-event-engine/pkg/workflow/model"
)

// Drawer is an interface that defines the methods for drawing a workflow.
type Drawer interface {
	// Reset drops everything drawn so far.
	Reset()
	// Load replaces the drawn graph with the dependency graph of a workflow.
	Load(workflow *model.WorkflowInfo) error
	// Draw writes the workflow graph.
	Draw() error
	// SetTotalTime sets the total time for the step.
	SetTotalTime(stepName string, totalTime time.Duration) error
	// AddMeasure adds a measure to the workflow drawer.
	AddMeasure(measure measure.Measure) error
}
