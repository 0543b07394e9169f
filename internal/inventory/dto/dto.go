package dto

import "time"

type InventoryFilters struct {
	ProductID string
	LowStock  bool // If true, filter by quantity <= reorder_point
	Page      int
	PageSize  int
}

type MovementFilters struct {
	ProductID    string
	MovementType string
	StartDate    *time.Time
	EndDate      *time.Time
	Page         int
	PageSize     int
}
