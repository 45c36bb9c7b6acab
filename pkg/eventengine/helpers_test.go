package eventengine_test

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/event-engine/php-code-generator-cartridge-event-engine/pkg/domain"
	"github.com/event-engine/php-code-generator-cartridge-event-engine/pkg/eventengine"
	"github.com/event-engine/php-code-generator-cartridge-event-engine/pkg/eventengine/filter"
	"github.com/event-engine/php-code-generator-cartridge-event-engine/pkg/eventengine/php"
	"github.com/event-engine/php-code-generator-cartridge-event-engine/pkg/workflow"
)

const analyzerSlot workflow.Slot = "analyzer"

func orderModel(t *testing.T) *domain.Model {
	t.Helper()

	model, err := domain.NewModel([]domain.Aggregate{{
		Name:       "Order",
		Identifier: "orderId",
		Properties: []domain.Property{
			{Name: "orderId", Type: "string"},
			{Name: "total", Type: "float"},
		},
		Commands: []domain.Command{
			{
				Name:    "PlaceOrder",
				Initial: true,
				Properties: []domain.Property{
					{Name: "orderId", Type: "string"},
					{Name: "note", Type: "string", Nullable: true},
				},
				Events: []string{"OrderPlaced"},
			},
			{
				Name:       "CancelOrder",
				Properties: []domain.Property{{Name: "orderId", Type: "string"}},
				Events:     []string{"OrderCancelled"},
			},
		},
		Events: []domain.Event{
			{Name: "OrderPlaced", Properties: []domain.Property{{Name: "orderId", Type: "string"}}},
			{Name: "OrderCancelled", Properties: []domain.Property{{Name: "orderId", Type: "string"}}},
		},
	}}, nil)
	require.NoError(t, err)

	return model
}

func filters() eventengine.Filters {
	return filter.Defaults("/app/src", "App")
}

func printer() eventengine.Printer {
	return php.NewPrinter()
}

func unitsOf(t *testing.T, wctx *workflow.Context, slot workflow.Slot) []workflow.Unit {
	t.Helper()

	value, err := wctx.Get(slot)
	require.NoError(t, err)

	return value.Units()
}

func unitNamed(t *testing.T, units []workflow.Unit, name string) workflow.Unit {
	t.Helper()

	for _, unit := range units {
		if unit.Name == name {
			return unit
		}
	}
	require.Failf(t, "unit not found", "no unit named %s", name)

	return workflow.Unit{}
}

func assertCode(t *testing.T, want, got string) {
	t.Helper()

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("code mismatch (-want +got):\n%s", diff)
	}
}

// memoryWriter records written files.
type memoryWriter struct {
	files map[string]string
	err   error
	mu    sync.Mutex
}

func newMemoryWriter() *memoryWriter {
	return &memoryWriter{files: make(map[string]string)}
}

func (w *memoryWriter) Write(path, code string) error {
	if w.err != nil {
		return w.err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.files[path] = code

	return nil
}

func (w *memoryWriter) WriteAll(units []workflow.Unit) error {
	for _, unit := range units {
		err := w.Write(unit.Path, unit.Code)
		if err != nil {
			return err
		}
	}

	return nil
}

var errDiskFull = errors.New("disk full")
