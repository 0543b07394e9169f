package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	OrderStatusPlaced    = "placed"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"

	PaymentMethodCOD = "COD"
)

type Order struct {
	BaseModel
	SessionID     string          `db:"session_id" json:"session_id"`
	PaymentMethod string          `db:"payment_method" json:"payment_method"` // "COD" or a gateway transaction id
	Status        string          `db:"status" json:"status"`
	Subtotal      decimal.Decimal `db:"subtotal" json:"subtotal"`
	Shipping      decimal.Decimal `db:"shipping" json:"shipping"`
	Total         decimal.Decimal `db:"total" json:"total"`
	Items         []OrderItem     `db:"-" json:"items"`
}

type OrderItem struct {
	ID        string          `db:"id" json:"id"`
	OrderID   string          `db:"order_id" json:"order_id"`
	ProductID string          `db:"product_id" json:"product_id"`
	VariantID *string         `db:"variant_id" json:"variant_id"`
	Name      string          `db:"name" json:"name"`
	UnitPrice decimal.Decimal `db:"unit_price" json:"unit_price"`
	Quantity  int             `db:"quantity" json:"quantity"`
	LineTotal decimal.Decimal `db:"line_total" json:"line_total"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}
