package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/bazaarika/storefront-service/internal/catalog/dto"
	"github.com/bazaarika/storefront-service/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, p *model.Product) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
        INSERT INTO products (
            id, category_id, sku, name, description, base_price,
            compare_at_price, track_inventory, image_url, is_active,
            created_at, updated_at
        )
        VALUES (
            :id, :category_id, :sku, :name, :description, :base_price,
            :compare_at_price, :track_inventory, :image_url, :is_active,
            :created_at, :updated_at
        )
    `
	if _, err := tx.NamedExecContext(ctx, query, p); err != nil {
		return err
	}

	if err := insertOptionsAndVariants(ctx, tx, p); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *PGRepository) Update(ctx context.Context, p *model.Product) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
        UPDATE products
        SET category_id = :category_id,
            sku = :sku,
            name = :name,
            description = :description,
            base_price = :base_price,
            compare_at_price = :compare_at_price,
            track_inventory = :track_inventory,
            image_url = :image_url,
            is_active = :is_active,
            updated_at = :updated_at
        WHERE id = :id
    `
	if _, err := tx.NamedExecContext(ctx, query, p); err != nil {
		return err
	}

	// Options and variants are replaced wholesale; the usecase has already
	// merged preserved price/stock into p.Variants.
	if _, err := tx.ExecContext(ctx, `DELETE FROM product_options WHERE product_id = $1`, p.ID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM product_variants WHERE product_id = $1`, p.ID); err != nil {
		return err
	}
	if err := insertOptionsAndVariants(ctx, tx, p); err != nil {
		return err
	}

	return tx.Commit()
}

func insertOptionsAndVariants(ctx context.Context, tx *sqlx.Tx, p *model.Product) error {
	for i := range p.Options {
		opt := &p.Options[i]
		opt.ProductID = p.ID
		opt.Position = i
		query := `
            INSERT INTO product_options (id, product_id, name, option_values, position)
            VALUES (:id, :product_id, :name, :option_values, :position)
        `
		if _, err := tx.NamedExecContext(ctx, query, opt); err != nil {
			return err
		}
	}

	for i := range p.Variants {
		v := &p.Variants[i]
		v.ProductID = p.ID
		v.Position = i
		query := `
            INSERT INTO product_variants (product_id, label, attributes, price, stock, position)
            VALUES (:product_id, :label, :attributes, :price, :stock, :position)
        `
		if _, err := tx.NamedExecContext(ctx, query, v); err != nil {
			return err
		}
	}

	return nil
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	var product model.Product
	query := `SELECT * FROM products WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &product, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	if err := r.loadRelations(ctx, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *PGRepository) loadRelations(ctx context.Context, p *model.Product) error {
	optQuery := `SELECT * FROM product_options WHERE product_id = $1 ORDER BY position`
	if err := r.DB.SelectContext(ctx, &p.Options, optQuery, p.ID); err != nil {
		return err
	}

	// Variant enumeration order matches generation order via the position
	// column, which the usecase writes in generator output order.
	varQuery := `SELECT * FROM product_variants WHERE product_id = $1 ORDER BY position`
	if err := r.DB.SelectContext(ctx, &p.Variants, varQuery, p.ID); err != nil {
		return err
	}

	if p.CategoryID != nil {
		var cat model.Category
		err := r.DB.GetContext(ctx, &cat, `SELECT * FROM categories WHERE id = $1`, *p.CategoryID)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return err
		}
		if err == nil {
			p.Category = &cat
		}
	}
	return nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.ProductFilters) ([]model.Product, int, error) {
	var products []model.Product
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.CategoryID != "" {
		conditions = append(conditions, "category_id = :category_id")
		args["category_id"] = f.CategoryID
	}
	if f.IsActive != nil {
		conditions = append(conditions, "is_active = :is_active")
		args["is_active"] = *f.IsActive
	}
	if f.SearchQuery != "" {
		conditions = append(conditions, "(name ILIKE :search OR sku ILIKE :search)")
		args["search"] = "%" + f.SearchQuery + "%"
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM products" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		rows.Scan(&count)
	}

	orderBy := "created_at DESC"
	if f.SortBy != "" {
		// Whitelist sortable fields
		switch f.SortBy {
		case "name":
			orderBy = "name"
		case "price":
			orderBy = "base_price"
		case "created_at":
			orderBy = "created_at"
		}
		if strings.ToLower(f.SortOrder) == "asc" {
			orderBy += " ASC"
		} else {
			orderBy += " DESC"
		}
	}

	query := fmt.Sprintf("SELECT * FROM products%s ORDER BY %s", whereClause, orderBy)

	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		if offset < 0 {
			offset = 0
		}
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	if err := nstmt.SelectContext(ctx, &products, args); err != nil {
		return nil, 0, err
	}

	return products, count, nil
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	// Options and variants cascade via FK.
	_, err := r.DB.ExecContext(ctx, "DELETE FROM products WHERE id = $1", id)
	return err
}

func (r *PGRepository) IsSKUUnique(ctx context.Context, sku, excludeID string) (bool, error) {
	var count int
	query := `SELECT count(*) FROM products WHERE sku = $1`
	args := []interface{}{sku}
	if excludeID != "" {
		query += ` AND id != $2`
		args = append(args, excludeID)
	}

	if err := r.DB.GetContext(ctx, &count, query, args...); err != nil {
		return false, err
	}
	return count == 0, nil
}
