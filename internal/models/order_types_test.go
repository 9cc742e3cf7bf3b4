package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderItemsRoundTrip(t *testing.T) {
	price := decimal.RequireFromString("40.50")
	items := OrderItems{
		{ID: "tomato", Name: "Tomato", Quantity: 2, Weight: Weight{Grams: 3000, Unit: UnitKilogram}},
		{ID: "okra", Name: "Okra", Quantity: 1, Weight: Weight{Grams: 250, Unit: UnitGram}, Price: &price},
	}

	stored, err := items.Value()
	require.NoError(t, err)

	var loaded OrderItems
	require.NoError(t, loaded.Scan([]byte(stored.(string))))
	require.Len(t, loaded, 2)
	assert.Equal(t, items[0], loaded[0])
	assert.Equal(t, "250g", loaded[1].Weight.String())
	require.NotNil(t, loaded[1].Price)
	assert.True(t, price.Equal(*loaded[1].Price))
}

func TestOrderItemsScanNull(t *testing.T) {
	var items OrderItems
	require.NoError(t, items.Scan(nil))
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestPlanDeductions(t *testing.T) {
	items := []OrderItem{
		{ID: "tomato", Quantity: 2, Weight: Weight{Grams: 3000}},
		{ID: "carrot", Quantity: 4, Weight: Weight{Grams: 250}},
		{ID: "tomato", Quantity: 1, Weight: Weight{Grams: 500}},
	}

	plan, err := PlanDeductions(items)
	require.NoError(t, err)
	assert.Equal(t, []Deduction{
		{VegetableID: "carrot", Grams: 1000},
		{VegetableID: "tomato", Grams: 6500},
	}, plan)
}

func TestPlanDeductionsRejectsOutOfRange(t *testing.T) {
	tests := []struct {
		name  string
		items []OrderItem
	}{
		{name: "line over max", items: []OrderItem{
			{ID: "tomato", Quantity: 2, Weight: Weight{Grams: 9223372036854775308}},
		}},
		{name: "quantity times weight over max", items: []OrderItem{
			{ID: "tomato", Quantity: 1001, Weight: Weight{Grams: 1_000_000_000}},
		}},
		{name: "sum over max", items: []OrderItem{
			{ID: "tomato", Quantity: 1, Weight: Weight{Grams: MaxGrams}},
			{ID: "tomato", Quantity: 1, Weight: Weight{Grams: 1}},
		}},
		{name: "negative weight", items: []OrderItem{
			{ID: "tomato", Quantity: 1, Weight: Weight{Grams: -1000}},
		}},
		{name: "zero quantity", items: []OrderItem{
			{ID: "tomato", Quantity: 0, Weight: Weight{Grams: 1000}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := PlanDeductions(tt.items)
			assert.ErrorIs(t, err, ErrOrderTooLarge)
			assert.Nil(t, plan)
		})
	}
}

func TestPlanDeductionsAtMax(t *testing.T) {
	plan, err := PlanDeductions([]OrderItem{
		{ID: "tomato", Quantity: 1, Weight: Weight{Grams: MaxGrams - 1}},
		{ID: "tomato", Quantity: 1, Weight: Weight{Grams: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, []Deduction{{VegetableID: "tomato", Grams: MaxGrams}}, plan)
}

func TestOrderJSONShape(t *testing.T) {
	o := Order{
		ID:          7,
		Items:       OrderItems{},
		TotalAmount: decimal.RequireFromString("120.50"),
		Status:      OrderPending,
	}
	out, err := json.Marshal(o)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, 120.5, decoded["total_amount"])
	assert.Equal(t, "pending", decoded["status"])
	assert.Contains(t, decoded, "timestamp")
}

func TestStockJSON(t *testing.T) {
	var s Stock
	require.NoError(t, json.Unmarshal([]byte(`3.75`), &s))
	assert.Equal(t, Stock(3750), s)

	out, err := json.Marshal(Stock(10000))
	require.NoError(t, err)
	assert.Equal(t, "10", string(out))

	assert.Error(t, json.Unmarshal([]byte(`-1`), &s))
	assert.Error(t, json.Unmarshal([]byte(`0.0001`), &s))
	assert.Error(t, json.Unmarshal([]byte(`"lots"`), &s))
	// Would wrap to -1 gram as an int64.
	assert.Error(t, json.Unmarshal([]byte(`18446744073709550.616`), &s))
	assert.Error(t, json.Unmarshal([]byte(`1000000000.001`), &s))

	require.NoError(t, json.Unmarshal([]byte(`1000000000`), &s))
	assert.Equal(t, Stock(MaxGrams), s)
}
