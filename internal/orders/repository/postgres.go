package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"order-fulfillment/internal/orders"
)

const healthCheckTimeout = 2 * time.Second

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const productColumns = `id, name, type, available, lead_time, season_start_date, season_end_date, expiry_date, created_at`

func (r *PostgresRepository) GetProduct(ctx context.Context, id int64) (orders.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE id = $1
	`

	var p orders.Product
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Type, &p.Available, &p.LeadTime,
		&p.SeasonStartDate, &p.SeasonEndDate, &p.ExpiryDate, &p.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return orders.Product{}, orders.ErrNotFound
	}
	if err != nil {
		return orders.Product{}, fmt.Errorf("select product %d: %w", id, err)
	}
	return p, nil
}

// GetOrder resolves an order id to the order and the products it references,
// in the order they were attached.
func (r *PostgresRepository) GetOrder(ctx context.Context, id int64) (orders.Order, error) {
	var o orders.Order
	err := r.db.QueryRowContext(ctx, `SELECT id, created_at FROM orders WHERE id = $1`, id).Scan(&o.ID, &o.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return orders.Order{}, orders.ErrOrderNotFound
	}
	if err != nil {
		return orders.Order{}, fmt.Errorf("select order %d: %w", id, err)
	}

	query := `
		SELECT p.id, p.name, p.type, p.available, p.lead_time, p.season_start_date, p.season_end_date, p.expiry_date, p.created_at
		FROM order_products op
		JOIN products p ON p.id = op.product_id
		WHERE op.order_id = $1
		ORDER BY op.position
	`

	rows, err := r.db.QueryContext(ctx, query, id)
	if err != nil {
		return orders.Order{}, fmt.Errorf("query order %d products: %w", id, err)
	}
	defer rows.Close()

	o.Products = make([]orders.Product, 0)
	for rows.Next() {
		var p orders.Product
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Type, &p.Available, &p.LeadTime,
			&p.SeasonStartDate, &p.SeasonEndDate, &p.ExpiryDate, &p.CreatedAt,
		); err != nil {
			return orders.Order{}, fmt.Errorf("scan product: %w", err)
		}
		o.Products = append(o.Products, p)
	}

	if err := rows.Err(); err != nil {
		return orders.Order{}, fmt.Errorf("iterate products: %w", err)
	}

	return o, nil
}

// UpdateProduct writes only the fields present in the update. An empty update
// is a no-op.
func (r *PostgresRepository) UpdateProduct(ctx context.Context, id int64, update orders.ProductUpdate) error {
	if update.IsZero() {
		return nil
	}

	set := make([]string, 0, 2)
	args := make([]any, 0, 3)
	if update.Available != nil {
		args = append(args, *update.Available)
		set = append(set, fmt.Sprintf("available = $%d", len(args)))
	}
	if update.LeadTime != nil {
		args = append(args, *update.LeadTime)
		set = append(set, fmt.Sprintf("lead_time = $%d", len(args)))
	}
	args = append(args, id)

	query := fmt.Sprintf("UPDATE products SET %s WHERE id = $%d", strings.Join(set, ", "), len(args))

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update product %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return orders.ErrNotFound
	}

	return nil
}

func (r *PostgresRepository) Health() error {
	ctx, cancel := context.WithTimeout(context.Background(), healthCheckTimeout)
	defer cancel()
	return r.db.PingContext(ctx)
}
