package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// ErrOrderTooLarge is returned when an order asks for an amount of stock
// that cannot be represented.
var ErrOrderTooLarge = errors.New("order quantity out of range")

func init() {
	// total_amount travels as a JSON number, not a quoted string.
	decimal.MarshalJSONWithoutQuotes = true
}

// Order is the model for the 'orders' table
type Order struct {
	ID              int64           `json:"id" db:"id"`
	CustomerName    string          `json:"customer_name" db:"customer_name"`
	CustomerMobile  string          `json:"customer_mobile" db:"customer_mobile"`
	CustomerAddress string          `json:"customer_address" db:"customer_address"`
	Items           OrderItems      `json:"items" db:"items"`
	TotalAmount     decimal.Decimal `json:"total_amount" db:"total_amount"`
	Status          OrderStatus     `json:"status" db:"status"`
	PaymentStatus   PaymentStatus   `json:"payment_status" db:"payment_status"`
	Timestamp       time.Time       `json:"timestamp" db:"created_at"`
}

// OrderItem is one line of an order. It is stored inside the order row,
// not in a table of its own.
type OrderItem struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Quantity int              `json:"quantity"`
	Weight   Weight           `json:"weight"`
	Price    *decimal.Decimal `json:"price,omitempty"`
}

// Grams is the total stock this line consumes. Callers must have checked
// the line with PlanDeductions first; Grams itself does not guard overflow.
func (i OrderItem) Grams() int64 {
	return int64(i.Quantity) * i.Weight.Grams
}

// OrderItems is the JSON column holding an order's lines.
type OrderItems []OrderItem

func (items OrderItems) Value() (driver.Value, error) {
	if items == nil {
		items = OrderItems{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (items *OrderItems) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	case nil:
		*items = OrderItems{}
		return nil
	default:
		return fmt.Errorf("cannot scan %T into order items", src)
	}
	return json.Unmarshal(raw, items)
}

// Deduction is the stock to take from one vegetable for an order.
type Deduction struct {
	VegetableID string
	Grams       int64
}

// PlanDeductions folds the order's lines into one deduction per vegetable,
// sorted by vegetable id so concurrent orders lock rows in the same order.
// A line or per-vegetable total that is not positive or exceeds MaxGrams
// fails with ErrOrderTooLarge.
func PlanDeductions(items []OrderItem) ([]Deduction, error) {
	totals := make(map[string]int64, len(items))
	for _, item := range items {
		if item.Quantity <= 0 || item.Weight.Grams <= 0 {
			return nil, fmt.Errorf("%w: %s needs a positive quantity and weight", ErrOrderTooLarge, item.ID)
		}
		if item.Weight.Grams > MaxGrams/int64(item.Quantity) {
			return nil, fmt.Errorf("%w: %s asks for more than %d grams", ErrOrderTooLarge, item.ID, MaxGrams)
		}
		grams := item.Grams()
		if totals[item.ID] > MaxGrams-grams {
			return nil, fmt.Errorf("%w: %s asks for more than %d grams", ErrOrderTooLarge, item.ID, MaxGrams)
		}
		totals[item.ID] += grams
	}

	plan := make([]Deduction, 0, len(totals))
	for id, grams := range totals {
		plan = append(plan, Deduction{VegetableID: id, Grams: grams})
	}
	sort.Slice(plan, func(i, j int) bool { return plan[i].VegetableID < plan[j].VegetableID })
	return plan, nil
}
