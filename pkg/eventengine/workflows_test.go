package eventengine_test

import (
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/event-engine/php-code-generator-cartridge-event-engine/pkg/domain"
	"github.com/event-engine/php-code-generator-cartridge-event-engine/pkg/eventengine"
	"github.com/event-engine/php-code-generator-cartridge-event-engine/pkg/eventengine/filewriter"
	"github.com/event-engine/php-code-generator-cartridge-event-engine/pkg/workflow"
)

func runPrototype(t *testing.T, options ...eventengine.FactoryOption) (*workflow.Context, afero.Fs) {
	t.Helper()

	wctx := workflow.NewContext()
	wf, err := eventengine.PrototypeConfig(wctx, analyzerSlot, "/app/src/Domain", "/app/src/Api", filters(), printer(), options...)
	require.NoError(t, err)

	fs := afero.NewMemMapFs()
	files, err := eventengine.CodeToFilesForPrototypeConfig(filewriter.New(filewriter.WithFs(fs)))
	require.NoError(t, err)

	wctx.Put(analyzerSlot, workflow.Model(orderModel(t)))
	exec, err := workflow.NewExecutor(workflow.WithWritePolicy(workflow.DetectConflict))
	require.NoError(t, err)
	require.NoError(t, exec.Run(workflow.Concat("prototype", wf, files), wctx))

	return wctx, fs
}

func readFile(t *testing.T, fs afero.Fs, path string) string {
	t.Helper()

	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)

	return string(data)
}

func TestPrototypeCommandDescription(t *testing.T) {
	t.Parallel()

	_, fs := runPrototype(t)

	assertCode(t, `<?php

declare(strict_types=1);

namespace App\Api;

use EventEngine\EventEngine;
use EventEngine\EventEngineDescription;
use EventEngine\JsonSchema\JsonSchemaArray;

final class Command implements EventEngineDescription
{
    public const PLACE_ORDER = 'PlaceOrder';
    public const CANCEL_ORDER = 'CancelOrder';

    public static function describe(EventEngine $eventEngine): void
    {
        $eventEngine->registerCommand(
            self::PLACE_ORDER,
            JsonSchemaArray::fromFile(__DIR__ . '/_schema/PlaceOrder.json')
        );

        $eventEngine->registerCommand(
            self::CANCEL_ORDER,
            JsonSchemaArray::fromFile(__DIR__ . '/_schema/CancelOrder.json')
        );
    }
}
`, readFile(t, fs, "/app/src/Api/Command.php"))

	assertCode(t, `{
    "additionalProperties": false,
    "properties": {
        "note": {
            "type": [
                "string",
                "null"
            ]
        },
        "orderId": {
            "type": "string"
        }
    },
    "required": [
        "orderId"
    ],
    "type": "object"
}
`, readFile(t, fs, "/app/src/Api/_schema/PlaceOrder.json"))

	event := readFile(t, fs, "/app/src/Api/Event.php")
	assert.Contains(t, event, "public const ORDER_PLACED = 'OrderPlaced';")
	assert.Contains(t, event, "$eventEngine->registerEvent(\n            self::ORDER_CANCELLED,")
}

func TestPrototypeAggregateDescription(t *testing.T) {
	t.Parallel()

	_, fs := runPrototype(t)

	assertCode(t, `<?php

declare(strict_types=1);

namespace App\Api;

use EventEngine\EventEngine;
use EventEngine\EventEngineDescription;

final class Aggregate implements EventEngineDescription
{
    public const ORDER = 'Order';

    public static function describe(EventEngine $eventEngine): void
    {
        $eventEngine->process(Command::PLACE_ORDER)
            ->withNew(self::ORDER)
            ->identifiedBy('orderId')
            ->handle([\App\Domain\Order::class, 'placeOrder'])
            ->recordThen(Event::ORDER_PLACED)
            ->apply([\App\Domain\Order::class, 'whenOrderPlaced']);

        $eventEngine->process(Command::CANCEL_ORDER)
            ->withExisting(self::ORDER)
            ->identifiedBy('orderId')
            ->handle([\App\Domain\Order::class, 'cancelOrder'])
            ->recordThen(Event::ORDER_CANCELLED)
            ->apply([\App\Domain\Order::class, 'whenOrderCancelled']);
    }
}
`, readFile(t, fs, "/app/src/Api/Aggregate.php"))
}

func TestPrototypeBehaviourMethodOrder(t *testing.T) {
	t.Parallel()

	wctx, fs := runPrototype(t)

	behaviour := unitsOf(t, wctx, eventengine.SlotAggregateBehaviour)
	require.Len(t, behaviour, 1)
	assert.Equal(t, "/app/src/Domain/Order.php", behaviour[0].Path)

	assertCode(t, `<?php

declare(strict_types=1);

namespace App\Domain;

use App\Api\Event;
use EventEngine\Messaging\Message;
use Generator;

final class Order
{
    public static function whenOrderPlaced(Message $orderPlaced): OrderState
    {
        return OrderState::fromArray($orderPlaced->payload());
    }

    public static function whenOrderCancelled(OrderState $state, Message $orderCancelled): OrderState
    {
        return $state->with($orderCancelled->payload());
    }

    public static function placeOrder(Message $placeOrder): Generator
    {
        yield [Event::ORDER_PLACED, $placeOrder->payload()];
    }

    public static function cancelOrder(OrderState $state, Message $cancelOrder): Generator
    {
        yield [Event::ORDER_CANCELLED, $cancelOrder->payload()];
    }
}
`, readFile(t, fs, "/app/src/Domain/Order.php"))

	code := behaviour[0].Code
	assert.Less(t, strings.Index(code, "function whenOrderPlaced("), strings.Index(code, "function placeOrder("))
}

func TestPrototypeAggregateState(t *testing.T) {
	t.Parallel()

	_, fs := runPrototype(t)

	state := readFile(t, fs, "/app/src/Domain/OrderState.php")
	for _, fragment := range []string{
		"final class OrderState implements ImmutableRecord\n{\n    use ImmutableRecordLogic;\n\n    private string $orderId;\n    private float $total;\n",
		"    public function withOrderId(string $orderId): self\n    {\n        $instance = clone $this;\n        $instance->orderId = $orderId;\n\n        return $instance;\n    }\n",
		"    public function withTotal(float $total): self\n",
		"    private static function arrayPropItemTypeMap(): array\n    {\n        return [];\n    }\n}\n",
	} {
		assert.Contains(t, state, fragment)
	}
}

func TestPrototypeDeterministic(t *testing.T) {
	t.Parallel()

	first, _ := runPrototype(t)
	second, _ := runPrototype(t)

	assert.Equal(t, first.Slots(), second.Slots())
	for _, slot := range first.Slots() {
		a, err := first.Get(slot)
		require.NoError(t, err)
		b, err := second.Get(slot)
		require.NoError(t, err)
		if slot == analyzerSlot {
			continue
		}
		assert.Equal(t, a.Units(), b.Units(), "slot %s", slot)
		assert.Equal(t, a.String(), b.String(), "slot %s", slot)
	}
}

func runFunctional(t *testing.T, model domain.Analyzer, options ...eventengine.FactoryOption) *workflow.Context {
	t.Helper()

	wctx := workflow.NewContext()
	wf, err := eventengine.FunctionalConfig(wctx, analyzerSlot, "/gen/cmd", "/gen/event", "/gen/vo", filters(), printer(), options...)
	require.NoError(t, err)

	wctx.Put(analyzerSlot, workflow.Model(model))
	require.NoError(t, workflow.Run(wf, wctx))

	return wctx
}

func TestFunctionalPlaceOrder(t *testing.T) {
	t.Parallel()

	wctx := runFunctional(t, orderModel(t))

	commands := unitsOf(t, wctx, eventengine.SlotCommand)
	require.Len(t, commands, 2)
	place := commands[0]
	assert.Equal(t, "PlaceOrder", place.Name)
	assert.Equal(t, "/gen/cmd/PlaceOrder.php", place.Path)

	assertCode(t, `<?php

declare(strict_types=1);

namespace App\gen\cmd;

use EventEngine\Data\ImmutableRecord;
use EventEngine\Data\ImmutableRecordLogic;

final class PlaceOrder implements ImmutableRecord
{
    use ImmutableRecordLogic;

    private string $orderId;
    private ?string $note;

    public function orderId(): string
    {
        return $this->orderId;
    }

    public function note(): ?string
    {
        return $this->note;
    }
}
`, place.Code)

	events := unitsOf(t, wctx, eventengine.SlotEvent)
	require.Len(t, events, 2)
	assert.Equal(t, "/gen/event/OrderPlaced.php", events[0].Path)
	assert.Equal(t, "/gen/event/OrderCancelled.php", events[1].Path)
}

func TestFunctionalValueObjectPropertyTypes(t *testing.T) {
	t.Parallel()

	model, err := domain.NewModel(
		[]domain.Aggregate{{
			Name:       "Order",
			Identifier: "orderId",
			Commands: []domain.Command{{
				Name:    "PlaceOrder",
				Initial: true,
				Properties: []domain.Property{
					{Name: "total", Type: "OrderTotal"},
					{Name: "reference", Type: "OrderReference"},
					{Name: "price", Type: "Money", Nullable: true},
				},
				Events: []string{"OrderPlaced"},
			}},
			Events: []domain.Event{{Name: "OrderPlaced"}},
		}},
		[]domain.ValueObject{
			{Name: "OrderTotal", Type: "float", Aggregate: "Order"},
			{Name: "OrderReference", Aggregate: "Order"},
		},
	)
	require.NoError(t, err)

	wctx := runFunctional(t, model)

	code := unitNamed(t, unitsOf(t, wctx, eventengine.SlotCommand), "PlaceOrder").Code
	assert.Contains(t, code, "    private float $total;\n")
	assert.Contains(t, code, "    private string $reference;\n")
	assert.Contains(t, code, "    private ?Money $price;\n")
	assert.Contains(t, code, "    public function total(): float\n")
}

func TestFunctionalAggregateFolder(t *testing.T) {
	t.Parallel()

	wctx := runFunctional(t, orderModel(t), eventengine.WithAggregateFolder(true))

	commands := unitsOf(t, wctx, eventengine.SlotCommand)
	assert.Equal(t, "/gen/cmd/Order/PlaceOrder.php", commands[0].Path)
	assert.Contains(t, commands[0].Code, `namespace App\gen\cmd\Order;`)
}

func TestFunctionalAggregateIDValueObjects(t *testing.T) {
	t.Parallel()

	model, err := domain.NewModel(
		[]domain.Aggregate{
			{Name: "Order", Identifier: "orderId"},
			{Name: "Invoice", Identifier: "invoiceId"},
			{Name: "Shipment", Identifier: "shipmentId"},
		},
		[]domain.ValueObject{
			{Name: "OrderTotal", Type: "float", Aggregate: "Order"},
			{Name: "Sku", Type: "string"},
			{Name: "InvoiceNumber", Type: "int", Aggregate: "Invoice"},
			{Name: "ShipmentId", Type: "string", Aggregate: "Shipment"},
		},
	)
	require.NoError(t, err)

	wctx := runFunctional(t, model)

	var names []string
	for _, unit := range unitsOf(t, wctx, eventengine.SlotValueObject) {
		names = append(names, unit.Name)
	}
	assert.Equal(t, []string{"OrderTotal", "OrderId", "Sku", "InvoiceNumber", "InvoiceId", "ShipmentId"}, names)

	units := unitsOf(t, wctx, eventengine.SlotValueObject)
	orderID := unitNamed(t, units, "OrderId")
	assert.Equal(t, "/gen/vo/OrderId.php", orderID.Path)
	assert.Contains(t, orderID.Code, "use Ramsey\\Uuid\\Uuid;")
	assert.Contains(t, orderID.Code, "return new self(Uuid::uuid4()->toString());")

	total := unitNamed(t, units, "OrderTotal")
	assert.Contains(t, total.Code, "    private float $value;\n")
	assert.Contains(t, total.Code, "    public static function fromFloat(float $value): self\n")
	assert.Contains(t, total.Code, "    public function toFloat(): float\n")
}

func TestFunctionalFiles(t *testing.T) {
	t.Parallel()

	wctx := workflow.NewContext()
	wf, err := eventengine.FunctionalConfig(wctx, analyzerSlot, "/gen/cmd", "/gen/event", "/gen/vo", filters(), printer())
	require.NoError(t, err)
	writer := newMemoryWriter()
	files, err := eventengine.CodeToFilesForFunctionalConfig(writer)
	require.NoError(t, err)

	wctx.Put(analyzerSlot, workflow.Model(orderModel(t)))
	require.NoError(t, workflow.Run(workflow.Concat("functional", wf, files), wctx))

	var paths []string
	for path := range writer.files {
		paths = append(paths, path)
	}
	assert.ElementsMatch(t, []string{
		"/gen/cmd/PlaceOrder.php",
		"/gen/cmd/CancelOrder.php",
		"/gen/event/OrderPlaced.php",
		"/gen/event/OrderCancelled.php",
		"/gen/vo/OrderId.php",
	}, paths)
}

func TestWorkflowBuildersRejectMissingFilters(t *testing.T) {
	t.Parallel()

	missing := filters()
	missing.ConstValue = nil

	_, err := eventengine.PrototypeConfig(workflow.NewContext(), analyzerSlot, "/d", "/a", missing, printer())
	require.ErrorIs(t, err, eventengine.ErrMissingFilter)

	_, err = eventengine.FunctionalConfig(workflow.NewContext(), analyzerSlot, "/c", "/e", "/v", missing, printer())
	require.ErrorIs(t, err, eventengine.ErrMissingFilter)

	_, err = eventengine.FunctionalConfig(workflow.NewContext(), analyzerSlot, "/c", "/e", "/v", filters(), nil)
	require.ErrorIs(t, err, eventengine.ErrMissingPrinter)

	_, err = eventengine.PrototypeConfig(nil, analyzerSlot, "/d", "/a", filters(), printer())
	require.ErrorIs(t, err, workflow.ErrContextMustBeSet)

	_, err = eventengine.CodeToFilesForPrototypeConfig(nil)
	require.ErrorIs(t, err, eventengine.ErrMissingWriter)
	_, err = eventengine.CodeToFilesForFunctionalConfig(nil)
	require.ErrorIs(t, err, eventengine.ErrMissingWriter)
}

func TestPrototypeSeedsPaths(t *testing.T) {
	t.Parallel()

	wctx := workflow.NewContext()
	_, err := eventengine.PrototypeConfig(wctx, analyzerSlot, "/d", "/a", filters(), printer())
	require.NoError(t, err)

	for slot, want := range map[workflow.Slot]string{
		eventengine.SlotAggregatePath:             "/d",
		eventengine.SlotAggregateStatePath:        "/d",
		eventengine.SlotAPICommandFilename:        "/a/Command.php",
		eventengine.SlotAPIEventFilename:          "/a/Event.php",
		eventengine.SlotAPIAggregateFilename:      "/a/Aggregate.php",
		eventengine.SlotCommandMetadataSchemaPath: "/a/_schema",
		eventengine.SlotEventMetadataSchemaPath:   "/a/_schema",
	} {
		value, err := wctx.Get(slot)
		require.NoError(t, err)
		assert.Equal(t, want, value.String(), "slot %s", slot)
	}
	assert.False(t, wctx.Has(analyzerSlot))
}

func TestFunctionalEventPathIsDistinct(t *testing.T) {
	t.Parallel()

	wctx := workflow.NewContext()
	_, err := eventengine.FunctionalConfig(wctx, analyzerSlot, "/c", "/e", "/v", filters(), printer())
	require.NoError(t, err)

	command, err := wctx.Get(eventengine.SlotCommandPath)
	require.NoError(t, err)
	event, err := wctx.Get(eventengine.SlotEventPath)
	require.NoError(t, err)
	assert.Equal(t, "/c", command.String())
	assert.Equal(t, "/e", event.String())
}

func TestRunWithoutAnalyzer(t *testing.T) {
	t.Parallel()

	wctx := workflow.NewContext()
	wf, err := eventengine.FunctionalConfig(wctx, analyzerSlot, "/c", "/e", "/v", filters(), printer())
	require.NoError(t, err)

	err = workflow.Run(wf, wctx)
	require.ErrorIs(t, err, workflow.ErrSlotUnresolved)
	assert.False(t, wctx.Has(eventengine.SlotValueObject))
}
