// Package pricing computes effective item prices for receipts.
//
// Every added modifier on an item costs a fixed surcharge on top of the
// base unit price. Removed modifiers never change the price.
package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// SurchargePerAdd is the fixed amount charged once per added modifier.
var SurchargePerAdd = decimal.New(50, -2) // 0.50

// UnitPrice returns the effective unit price for an item: base price plus
// the surcharge for each non-blank added modifier.
func UnitPrice(base decimal.Decimal, adds []string) decimal.Decimal {
	n := 0
	for _, a := range adds {
		if strings.TrimSpace(a) != "" {
			n++
		}
	}
	if n == 0 {
		return base
	}
	return base.Add(SurchargePerAdd.Mul(decimal.NewFromInt(int64(n))))
}

// LineTotal returns quantity times the effective unit price.
func LineTotal(qty int, unit decimal.Decimal) decimal.Decimal {
	return unit.Mul(decimal.NewFromInt(int64(qty)))
}
