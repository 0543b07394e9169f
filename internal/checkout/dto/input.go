package dto

// BuyNowInput is the single ad hoc line for the buy-now bypass. The
// persistent cart is never read or cleared on this path.
type BuyNowInput struct {
	ProductID string            `json:"product_id"`
	Selection map[string]string `json:"selection"`
	Quantity  int               `json:"quantity"`
}

type PlaceOrderInput struct {
	// PaymentMethod is "COD" or an opaque payment-gateway transaction id.
	PaymentMethod string       `json:"payment_method"`
	BuyNow        *BuyNowInput `json:"buy_now"`
}
