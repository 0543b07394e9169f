package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/bazaarika/storefront-service/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, o *model.Order) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	orderQuery := `
        INSERT INTO orders (
            id, session_id, payment_method, status, subtotal, shipping, total,
            created_at, updated_at
        )
        VALUES (
            :id, :session_id, :payment_method, :status, :subtotal, :shipping, :total,
            :created_at, :updated_at
        )
    `
	if _, err := tx.NamedExecContext(ctx, orderQuery, o); err != nil {
		return err
	}

	itemQuery := `
        INSERT INTO order_items (
            id, order_id, product_id, variant_id, name, unit_price, quantity,
            line_total, created_at
        )
        VALUES (
            :id, :order_id, :product_id, :variant_id, :name, :unit_price, :quantity,
            :line_total, :created_at
        )
    `
	for i := range o.Items {
		if _, err := tx.NamedExecContext(ctx, itemQuery, &o.Items[i]); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Order, error) {
	var order model.Order
	err := r.DB.GetContext(ctx, &order, `SELECT * FROM orders WHERE id = $1 LIMIT 1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	itemsQuery := `SELECT * FROM order_items WHERE order_id = $1 ORDER BY created_at`
	if err := r.DB.SelectContext(ctx, &order.Items, itemsQuery, id); err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *PGRepository) FindBySession(ctx context.Context, sessionID string, page, pageSize int) ([]model.Order, int, error) {
	var orders []model.Order
	var count int

	countQuery := `SELECT count(*) FROM orders WHERE session_id = $1`
	if err := r.DB.GetContext(ctx, &count, countQuery, sessionID); err != nil {
		return nil, 0, err
	}

	query := `SELECT * FROM orders WHERE session_id = $1 ORDER BY created_at DESC`
	if pageSize > 0 {
		offset := (page - 1) * pageSize
		if offset < 0 {
			offset = 0
		}
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", pageSize, offset)
	}

	if err := r.DB.SelectContext(ctx, &orders, query, sessionID); err != nil {
		return nil, 0, err
	}

	return orders, count, nil
}
