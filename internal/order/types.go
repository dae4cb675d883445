package order

import "github.com/shopspring/decimal"

// CartItem is a single cart entry as submitted at checkout.
type CartItem struct {
	Category string
	Name     string
	Qty      int
	Price    decimal.Decimal // base unit price, before modifier surcharges
	Adds     []string
	Removes  []string
}

// Group holds one category's items and their subtotal.
type Group struct {
	Category string
	Items    []CartItem
	Subtotal decimal.Decimal
}

// Summary is the aggregation of a whole cart: per-category groups in
// presentation order, the flattened item list for the aggregate receipt,
// and the grand total.
type Summary struct {
	Groups     []Group
	AllItems   []CartItem // names qualified with their source category
	GrandTotal decimal.Decimal
}
