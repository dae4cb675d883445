package validation

import (
	validatorv10 "github.com/go-playground/validator/v10"
)

// New returns a configured validator with struct-level validation
// registered for checkout requests.
func New() *validatorv10.Validate {
	v := validatorv10.New()

	// a cart made entirely of zero-quantity lines would pass the tag
	// rules but produce an empty order
	v.RegisterStructValidation(checkoutStructValidation, CheckoutRequest{})

	return v
}

// checkoutStructValidation requires at least one cart line with a
// positive quantity.
func checkoutStructValidation(sl validatorv10.StructLevel) {
	req := sl.Current().Interface().(CheckoutRequest)

	for _, it := range req.Cart {
		if it.Qty >= 1 {
			return
		}
	}
	sl.ReportError(req.Cart, "cart", "Cart", "cart_has_printable_items", "")
}
