package dto

type AdjustInventoryInput struct {
	ProductID      string
	VariantID      *string
	QuantityChange int
	Reason         string
	ReferenceID    string
	ReferenceType  string // 'manual_adjustment', 'sale', 'return'
}
