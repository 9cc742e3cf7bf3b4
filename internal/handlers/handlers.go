package handlers

import (
	"context"
	"time"

	"github.com/01moynul/vegshop-golang/internal/models"
	"github.com/rs/zerolog"
)

// VegetableStore is the catalog persistence the handlers need.
type VegetableStore interface {
	List(ctx context.Context) ([]models.Vegetable, error)
	Create(ctx context.Context, v *models.Vegetable) error
	Update(ctx context.Context, v *models.Vegetable) error
	Delete(ctx context.Context, id string) error
}

// OrderStore is the order persistence the handlers need.
type OrderStore interface {
	Place(ctx context.Context, o *models.Order) (int64, error)
	List(ctx context.Context) ([]models.Order, error)
	Get(ctx context.Context, id int64) (*models.Order, error)
	UpdateStatus(ctx context.Context, id int64, update models.StatusUpdate) error
}

// Pinger is satisfied by *sqlx.DB and *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Handlers struct holds all dependencies for our handlers.
type Handlers struct {
	Vegetables VegetableStore
	Orders     OrderStore
	DB         Pinger
	Log        zerolog.Logger

	// Now stamps new orders; defaults to time.Now.
	Now func() time.Time
}

func (h *Handlers) now() time.Time {
	if h.Now != nil {
		return h.Now().UTC()
	}
	return time.Now().UTC()
}
