package repository

import (
	"errors"
	"fmt"

	"github.com/01moynul/vegshop-golang/internal/models"
)

var (
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrOrderNotFound     = errors.New("order not found")
	ErrVegetableExists   = errors.New("vegetable already exists")
)

// InsufficientStockError names the vegetable whose conditional stock update
// matched no row: either the id is unknown or there is not enough left.
type InsufficientStockError struct {
	VegetableID string
	Requested   models.Stock
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q (requested %s)", e.VegetableID, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}
