package model

import "time"

type Inventory struct {
	ID           string     `db:"id"`
	ProductID    string     `db:"product_id"`
	VariantID    *string    `db:"variant_id"`
	Quantity     int        `db:"quantity"`
	ReorderPoint int        `db:"reorder_point"`
	LastCounted  *time.Time `db:"last_counted_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
}

type InventoryMovement struct {
	ID             string    `db:"id"`
	ProductID      string    `db:"product_id"`
	VariantID      *string   `db:"variant_id"`
	MovementType   string    `db:"movement_type"`
	QuantityChange int       `db:"quantity_change"`
	QuantityBefore int       `db:"quantity_before"`
	QuantityAfter  int       `db:"quantity_after"`
	ReferenceType  *string   `db:"reference_type"`
	ReferenceID    *string   `db:"reference_id"`
	Notes          string    `db:"notes"`
	CreatedAt      time.Time `db:"created_at"`
}
