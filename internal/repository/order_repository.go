package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/01moynul/vegshop-golang/internal/database"
	"github.com/01moynul/vegshop-golang/internal/models"
	"github.com/jmoiron/sqlx"
)

const orderColumns = `id, customer_name, customer_mobile, customer_address, items,
	total_amount, status, payment_status, created_at`

// deductStockQuery only matches while enough stock is left, so two orders
// racing for the last kilo cannot both succeed.
const deductStockQuery = `
	UPDATE vegetables
	SET stock_grams = stock_grams - ?
	WHERE id = ? AND stock_grams >= ?`

// OrderRepository reads and writes orders.
type OrderRepository struct {
	db *sqlx.DB
}

func NewOrderRepository(db *sqlx.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Place stores the order and takes its stock in one transaction. If any
// vegetable cannot cover its deduction the whole order is rolled back,
// including the order row itself.
func (r *OrderRepository) Place(ctx context.Context, o *models.Order) (int64, error) {
	plan, err := models.PlanDeductions(o.Items)
	if err != nil {
		return 0, err
	}

	// 1. --- Begin Transaction ---
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin order transaction: %w", err)
	}
	defer tx.Rollback()

	// 2. --- Insert the Order ---
	orderID, err := insertOrder(ctx, tx, o)
	if err != nil {
		return 0, err
	}

	// 3. --- Deduct Stock ---
	for _, d := range plan {
		result, err := tx.ExecContext(ctx, tx.Rebind(deductStockQuery), d.Grams, d.VegetableID, d.Grams)
		if err != nil {
			return 0, fmt.Errorf("deduct stock for %q: %w", d.VegetableID, err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("deduct stock for %q: %w", d.VegetableID, err)
		}
		if affected == 0 {
			return 0, &InsufficientStockError{VegetableID: d.VegetableID, Requested: models.Stock(d.Grams)}
		}
	}

	// 4. --- Commit ---
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit order: %w", err)
	}

	o.ID = orderID
	return orderID, nil
}

func insertOrder(ctx context.Context, tx *sqlx.Tx, o *models.Order) (int64, error) {
	query := `
		INSERT INTO orders
		(customer_name, customer_mobile, customer_address, items, total_amount, status, payment_status, created_at)
		VALUES
		(?, ?, ?, ?, ?, ?, ?, ?)`

	args := []interface{}{
		o.CustomerName,
		o.CustomerMobile,
		o.CustomerAddress,
		o.Items,
		o.TotalAmount,
		o.Status,
		o.PaymentStatus,
		o.Timestamp,
	}

	// PostgreSQL has no LastInsertId; ask for the id back instead.
	if database.IsPostgres(tx) {
		var id int64
		if err := tx.QueryRowxContext(ctx, tx.Rebind(query+" RETURNING id"), args...).Scan(&id); err != nil {
			return 0, fmt.Errorf("insert order: %w", err)
		}
		return id, nil
	}

	result, err := tx.ExecContext(ctx, tx.Rebind(query), args...)
	if err != nil {
		return 0, fmt.Errorf("insert order: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read new order id: %w", err)
	}
	return id, nil
}

// List returns every order, newest first.
func (r *OrderRepository) List(ctx context.Context) ([]models.Order, error) {
	query := "SELECT " + orderColumns + " FROM orders ORDER BY created_at DESC, id DESC"

	orders := []models.Order{}
	if err := r.db.SelectContext(ctx, &orders, query); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// Get returns one order or ErrOrderNotFound.
func (r *OrderRepository) Get(ctx context.Context, id int64) (*models.Order, error) {
	query := "SELECT " + orderColumns + " FROM orders WHERE id = ?"

	var o models.Order
	if err := r.db.GetContext(ctx, &o, r.db.Rebind(query), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("get order %d: %w", id, err)
	}
	return &o, nil
}

// UpdateStatus applies a partial status change. Only the supplied fields are
// written, and only if the transition is allowed from the current value.
// An unknown order id is a silent no-op.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id int64, update models.StatusUpdate) error {
	if update.Empty() {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin status transaction: %w", err)
	}
	defer tx.Rollback()

	var current struct {
		Status        models.OrderStatus   `db:"status"`
		PaymentStatus models.PaymentStatus `db:"payment_status"`
	}
	err = tx.GetContext(ctx, &current, tx.Rebind("SELECT status, payment_status FROM orders WHERE id = ? FOR UPDATE"), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		return fmt.Errorf("lock order %d: %w", id, err)
	}

	status, payment, err := update.Apply(current.Status, current.PaymentStatus)
	if err != nil {
		return err
	}

	var sets []string
	var args []interface{}
	if update.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, status)
	}
	if update.PaymentStatus != nil {
		sets = append(sets, "payment_status = ?")
		args = append(args, payment)
	}
	args = append(args, id)

	query := "UPDATE orders SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	if _, err := tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
		return fmt.Errorf("update order %d status: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit order %d status: %w", id, err)
	}
	return nil
}
