// Package logging reports workflow runs through a zap logger.
package logging

import (
	"time"

	"go.uber.org/zap"

	"github.com/event-engine/php-code-generator-cartridge-event-engine/pkg/workflow/model"
)

type workflowLogger struct {
	base *zap.Logger
	// logger carries the fields of the current run.
	logger *zap.Logger
}

// WorkflowLogger returns an executor option logging runs at info level and components
// at debug level.
func WorkflowLogger(logger *zap.Logger) model.WorkflowOption {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &workflowLogger{base: logger, logger: logger}
}

func (wl *workflowLogger) New() error {
	return nil
}

func (wl *workflowLogger) PrepareWorkflow(workflow *model.WorkflowInfo) error {
	wl.logger = wl.base.With(zap.String("workflow", workflow.Name))
	wl.logger.Info("workflow started", zap.Int("components", len(workflow.Components)))

	return nil
}

func (wl *workflowLogger) PrepareComponent(component *model.ComponentInfo) error {
	wl.logger.Debug("component started",
		zap.String("component", component.Name),
		zap.Strings("inputs", component.Inputs),
		zap.String("output", component.Output),
		zap.Bool("accumulate", component.Accumulate),
	)

	return nil
}

func (wl *workflowLogger) OnComponentOutput(component *model.ComponentInfo, computationDuration time.Duration) error {
	wl.logger.Debug("component done",
		zap.String("component", component.Name),
		zap.Duration("duration", computationDuration),
	)

	return nil
}

func (wl *workflowLogger) OnComponentError(component *model.ComponentInfo, err error) error {
	wl.logger.Error("component failed",
		zap.String("component", component.Name),
		zap.Error(err),
	)

	return nil
}

func (wl *workflowLogger) Finish(totalDuration time.Duration) error {
	wl.logger.Info("workflow finished", zap.Duration("duration", totalDuration))
	return nil
}
