package validation

import "strings"

// CheckoutItem is a single cart line as submitted by the web client.
type CheckoutItem struct {
	FoodID   int      `json:"id"` // remote catalog id, used for order confirmation
	Category string   `json:"category" validate:"required"`
	Name     string   `json:"name" validate:"required"`
	Qty      int      `json:"qty"`                    // non-positive quantities are dropped, not rejected
	Price    float64  `json:"price" validate:"gte=0"` // base unit price
	Adds     []string `json:"adds"`
	Removes  []string `json:"removes"`
}

// CheckoutRequest is the payload of POST /genera.
type CheckoutRequest struct {
	Cart      []CheckoutItem `json:"cart" validate:"required,min=1,dive"`
	Currency  string         `json:"currency"`
	AutoPrint bool           `json:"auto_print"`
	Table     string         `json:"tavolo" validate:"required"`
	Customer  string         `json:"cliente" validate:"required"`
	Payment   string         `json:"pagamento" validate:"required,oneof=CONTANTI POS"`
}

// Normalize trims operator-entered fields and uppercases the payment
// method before validation.
func (r *CheckoutRequest) Normalize() {
	r.Table = strings.TrimSpace(r.Table)
	r.Customer = strings.TrimSpace(r.Customer)
	r.Payment = strings.ToUpper(strings.TrimSpace(r.Payment))
}
