package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(units []Unit) []string {
	res := make([]string, len(units))
	for i, u := range units {
		res[i] = u.Name
	}

	return res
}

func TestAccumulate(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		existing Value
		bound    bool
		result   Value
		expected []string
	}{
		"unbound slot": {
			result:   UnitValue(Unit{Name: "Order"}),
			expected: []string{"Order"},
		},
		"append unknown item": {
			existing: UnitList(Unit{Name: "Order"}, Unit{Name: "Invoice"}),
			bound:    true,
			result:   UnitList(Unit{Name: "Customer"}),
			expected: []string{"Order", "Invoice", "Customer"},
		},
		"group with item": {
			existing: UnitList(Unit{Item: "Order", Name: "Order"}, Unit{Item: "Invoice", Name: "Invoice"}),
			bound:    true,
			result:   UnitList(Unit{Item: "Order", Name: "OrderId"}, Unit{Item: "Invoice", Name: "InvoiceId"}),
			expected: []string{"Order", "OrderId", "Invoice", "InvoiceId"},
		},
		"after last of the group": {
			existing: UnitList(Unit{Item: "Order", Name: "Order"}, Unit{Item: "Order", Name: "OrderState"}, Unit{Name: "Invoice"}),
			bound:    true,
			result:   UnitValue(Unit{Item: "Order", Name: "OrderId"}),
			expected: []string{"Order", "OrderState", "OrderId", "Invoice"},
		},
		"single unit existing": {
			existing: UnitValue(Unit{Name: "Order"}),
			bound:    true,
			result:   UnitValue(Unit{Name: "Order", Code: "fragment"}),
			expected: []string{"Order", "Order"},
		},
		"empty result": {
			existing: UnitList(Unit{Name: "Order"}),
			bound:    true,
			result:   UnitList(),
			expected: []string{"Order"},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := accumulate("slot", tc.existing, tc.bound, tc.result)
			require.NoError(t, err)
			assert.Equal(t, KindUnitList, got.Kind())
			assert.Equal(t, tc.expected, names(got.Units()))
		})
	}
}

func TestAccumulateNeverShortens(t *testing.T) {
	t.Parallel()

	existing := UnitList(Unit{Item: "A", Name: "a1"}, Unit{Item: "B", Name: "b1"}, Unit{Item: "A", Name: "a2"})
	result := UnitList(Unit{Item: "B", Name: "b2"}, Unit{Item: "C", Name: "c1"}, Unit{Item: "A", Name: "a3"})

	got, err := accumulate("slot", existing, true, result)
	require.NoError(t, err)

	units := got.Units()
	assert.Len(t, units, 6)

	// prior entries keep their relative order
	var prior []string
	for _, u := range units {
		switch u.Name {
		case "a1", "b1", "a2":
			prior = append(prior, u.Name)
		}
	}
	assert.Equal(t, []string{"a1", "b1", "a2"}, prior)
	assert.Equal(t, []string{"a1", "b1", "b2", "a2", "a3", "c1"}, names(units))
}

func TestAccumulateWrongShapes(t *testing.T) {
	t.Parallel()

	_, err := accumulate("slot", Path("/x"), true, UnitValue(Unit{Name: "A"}))
	assert.ErrorIs(t, err, ErrGenerationFailure)

	_, err = accumulate("slot", UnitList(), true, Path("/x"))
	assert.ErrorIs(t, err, ErrGenerationFailure)
}
