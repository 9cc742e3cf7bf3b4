package repository

import (
	"context"
	"fmt"

	"github.com/01moynul/vegshop-golang/internal/database"
	"github.com/01moynul/vegshop-golang/internal/models"
	"github.com/jmoiron/sqlx"
)

// VegetableRepository reads and writes the catalog.
type VegetableRepository struct {
	db *sqlx.DB
}

func NewVegetableRepository(db *sqlx.DB) *VegetableRepository {
	return &VegetableRepository{db: db}
}

// List returns every vegetable ordered by name.
func (r *VegetableRepository) List(ctx context.Context) ([]models.Vegetable, error) {
	query := "SELECT id, name, price, stock_grams, available FROM vegetables ORDER BY name ASC"

	vegetables := []models.Vegetable{}
	if err := r.db.SelectContext(ctx, &vegetables, query); err != nil {
		return nil, fmt.Errorf("list vegetables: %w", err)
	}
	return vegetables, nil
}

// Create inserts a vegetable under its caller supplied id.
func (r *VegetableRepository) Create(ctx context.Context, v *models.Vegetable) error {
	query := `
		INSERT INTO vegetables (id, name, price, stock_grams, available)
		VALUES (?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, r.db.Rebind(query), v.ID, v.Name, v.Price, v.Stock, v.Available)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return fmt.Errorf("%w: %q", ErrVegetableExists, v.ID)
		}
		return fmt.Errorf("create vegetable %q: %w", v.ID, err)
	}
	return nil
}

// Update replaces name, price, stock and availability. An unknown id is not
// an error: nothing matches and nothing changes.
func (r *VegetableRepository) Update(ctx context.Context, v *models.Vegetable) error {
	query := "UPDATE vegetables SET name = ?, price = ?, stock_grams = ?, available = ? WHERE id = ?"

	if _, err := r.db.ExecContext(ctx, r.db.Rebind(query), v.Name, v.Price, v.Stock, v.Available, v.ID); err != nil {
		return fmt.Errorf("update vegetable %q: %w", v.ID, err)
	}
	return nil
}

// Delete removes a vegetable. Deleting an absent id succeeds.
func (r *VegetableRepository) Delete(ctx context.Context, id string) error {
	query := "DELETE FROM vegetables WHERE id = ?"

	if _, err := r.db.ExecContext(ctx, r.db.Rebind(query), id); err != nil {
		return fmt.Errorf("delete vegetable %q: %w", id, err)
	}
	return nil
}
