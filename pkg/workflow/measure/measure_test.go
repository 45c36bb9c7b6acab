package measure_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/event-engine/php-code-generator-cartridge-event-engine/pkg/workflow"
	"github.com/event-engine/php-code-generator-cartridge-event-engine/pkg/workflow/measure"
	"github.com/event-engine/php-code-generator-cartridge-event-engine/pkg/workflow/model"
)

func TestDefaultMetric(t *testing.T) {
	t.Parallel()

	msr := measure.NewDefaultMeasure()
	mt := msr.AddMetric("step")
	assert.Same(t, mt, msr.AddMetric("step"))

	assert.Equal(t, time.Duration(0), mt.AVGDuration())

	mt.AddDuration(2 * time.Millisecond)
	mt.AddDuration(4 * time.Millisecond)
	assert.Equal(t, int64(2), mt.Count())
	assert.Equal(t, 3*time.Millisecond, mt.AVGDuration())
	assert.Equal(t, 4*time.Millisecond, mt.MaxDuration())

	mt.SetTotalDuration(time.Second)
	assert.Equal(t, time.Second, mt.GetTotalDuration())
}

func TestWorkflowMeasure(t *testing.T) {
	t.Parallel()

	msr := measure.NewDefaultMeasure()
	exec, err := workflow.NewExecutor(workflow.WithOptions(measure.WorkflowMeasure(msr)))
	require.NoError(t, err)

	wf := workflow.NewWorkflow("measured",
		workflow.NewComponent("first", workflow.CapabilityFunc(func(_ *workflow.Context, _ workflow.Inputs) (workflow.Value, error) {
			time.Sleep(time.Millisecond)
			return workflow.Path("/a"), nil
		}), "a"),
		workflow.NewComponent("second", workflow.CapabilityFunc(func(_ *workflow.Context, _ workflow.Inputs) (workflow.Value, error) {
			return workflow.Path("/b"), nil
		}), "b", "a"),
	)
	require.NoError(t, exec.Run(wf, workflow.NewContext()))

	all := msr.AllMetrics()
	assert.Len(t, all, 4)
	assert.Equal(t, int64(1), all["first"].Count())
	assert.GreaterOrEqual(t, all["first"].AVGDuration(), time.Millisecond)
	assert.Equal(t, int64(1), all["second"].Count())
	assert.Positive(t, all[model.EndComponentName].GetTotalDuration())
}
