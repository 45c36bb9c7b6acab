package drawer

import (
	"time"

	"github.com/pkg/errors"

	"github.com/event-engine/php-code-generator-cartridge-event-engine/pkg/workflow/measure"
	"github.com/event-engine/php-code-generator-cartridge-event-engine/pkg/workflow/model"
)

type workflowDrawer struct {
	Drawer
	m measure.Measure
}

func (wd *workflowDrawer) New() error {
	return nil
}

func (wd *workflowDrawer) PrepareWorkflow(workflow *model.WorkflowInfo) error {
	wd.Reset()

	return wd.Load(workflow)
}

func (wd *workflowDrawer) PrepareComponent(_ *model.ComponentInfo) error {
	return nil
}

func (wd *workflowDrawer) OnComponentOutput(_ *model.ComponentInfo, _ time.Duration) error {
	return nil
}

func (wd *workflowDrawer) OnComponentError(_ *model.ComponentInfo, _ error) error {
	return nil
}

func (wd *workflowDrawer) Finish(totalDuration time.Duration) error {
	err := wd.SetTotalTime(model.EndComponent.Name, totalDuration)
	if err != nil {
		return errors.Wrap(err, "unable to set total time")
	}

	if wd.m != nil {
		err = wd.AddMeasure(wd.m)
		if err != nil {
			return errors.Wrap(err, "unable to add measure")
		}
	}

	err = wd.Draw()
	if err != nil {
		return errors.Wrap(err, "unable to draw workflow")
	}

	return nil
}

// WorkflowDrawer returns an executor option drawing each run once it succeeded.
// The measure may be nil; when set, it must also be registered on the executor,
// before the drawer.
func WorkflowDrawer(drawer Drawer, measure measure.Measure) model.WorkflowOption {
	return &workflowDrawer{drawer, measure}
}
