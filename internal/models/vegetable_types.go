package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Vegetable is the model for the 'vegetables' table.
// The ID is assigned by the caller (e.g. "tomato"), not by the database.
type Vegetable struct {
	ID        string `json:"id" db:"id"`
	Name      string `json:"name" db:"name"`
	Price     int64  `json:"price" db:"price"`
	Stock     Stock  `json:"stock" db:"stock_grams"`
	Available bool   `json:"available" db:"available"`
}

// Stock is an on-hand quantity held in whole grams.
// On the wire it is a plain number of kilograms (10, 3.75).
type Stock int64

var gramsPerKilo = decimal.NewFromInt(1000)

// StockFromKilos converts a kilogram amount into Stock.
// It rejects negative amounts, anything finer than one gram and anything
// above MaxGrams.
func StockFromKilos(kg decimal.Decimal) (Stock, error) {
	grams := kg.Mul(gramsPerKilo)
	if !grams.IsInteger() {
		return 0, fmt.Errorf("stock %s kg is finer than one gram", kg)
	}
	if grams.Sign() < 0 {
		return 0, fmt.Errorf("stock %s kg is negative", kg)
	}
	if grams.GreaterThan(maxGrams) {
		return 0, fmt.Errorf("stock %s kg is more than %d grams", kg, MaxGrams)
	}
	return Stock(grams.IntPart()), nil
}

// Kilos returns the stock as an exact kilogram amount.
func (s Stock) Kilos() decimal.Decimal {
	return decimal.New(int64(s), -3)
}

func (s Stock) String() string {
	return s.Kilos().String() + "kg"
}

// MarshalJSON renders the stock as a bare kilogram number.
func (s Stock) MarshalJSON() ([]byte, error) {
	return []byte(s.Kilos().String()), nil
}

// UnmarshalJSON accepts a kilogram number (quoted or not).
func (s *Stock) UnmarshalJSON(data []byte) error {
	var kg decimal.Decimal
	if err := kg.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("stock must be a number of kilograms: %w", err)
	}
	parsed, err := StockFromKilos(kg)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
