package measure

import (
	"time"

	"github.com/event-engine/php-code-generator-cartridge-event-engine/pkg/workflow/model"
)

type workflowMeasure struct {
	Measure
}

func (wm *workflowMeasure) New() error {
	wm.AddMetric(model.StartComponent.Name)
	wm.AddMetric(model.EndComponent.Name)

	return nil
}

func (wm *workflowMeasure) PrepareWorkflow(_ *model.WorkflowInfo) error {
	return nil
}

func (wm *workflowMeasure) PrepareComponent(component *model.ComponentInfo) error {
	wm.AddMetric(component.Name)
	return nil
}

func (wm *workflowMeasure) OnComponentOutput(component *model.ComponentInfo, computationDuration time.Duration) error {
	wm.GetMetric(component.Name).AddDuration(computationDuration)
	return nil
}

func (wm *workflowMeasure) OnComponentError(_ *model.ComponentInfo, _ error) error {
	return nil
}

func (wm *workflowMeasure) Finish(totalDuration time.Duration) error {
	wm.GetMetric(model.EndComponent.Name).SetTotalDuration(totalDuration)
	return nil
}

// WorkflowMeasure returns an executor option feeding msr with component durations.
func WorkflowMeasure(msr Measure) model.WorkflowOption {
	return &workflowMeasure{msr}
}
