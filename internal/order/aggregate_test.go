package order

import (
	"testing"

	"github.com/shopspring/decimal"
)

func item(category, name string, qty int, price float64, adds ...string) CartItem {
	return CartItem{
		Category: category,
		Name:     name,
		Qty:      qty,
		Price:    decimal.NewFromFloat(price),
		Adds:     adds,
	}
}

func TestAggregate_SingleCategorySubtotal(t *testing.T) {
	// 2 x (6.00 + 0.50 per added modifier) = 13.00
	sum := Aggregate([]CartItem{item("Pizzeria", "Margherita", 2, 6.00, "bufala")})

	if len(sum.Groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(sum.Groups))
	}
	want := decimal.NewFromFloat(13.00)
	if !sum.Groups[0].Subtotal.Equal(want) {
		t.Fatalf("expected subtotal %s, got %s", want, sum.Groups[0].Subtotal)
	}
	if !sum.GrandTotal.Equal(want) {
		t.Fatalf("expected grand total %s, got %s", want, sum.GrandTotal)
	}
}

func TestAggregate_GrandTotalEqualsSumOfSubtotals(t *testing.T) {
	sum := Aggregate([]CartItem{
		item("Cucina", "Polenta", 1, 4.50),
		item("Pizzeria", "Diavola", 3, 7.00, "salame"),
		item("Bar", "Acqua", 2, 1.00),
		item("Cucina", "Salamella", 2, 5.00),
	})

	total := decimal.Zero
	for _, g := range sum.Groups {
		total = total.Add(g.Subtotal)
	}
	if !sum.GrandTotal.Equal(total) {
		t.Fatalf("grand total %s != sum of subtotals %s", sum.GrandTotal, total)
	}
}

func TestAggregate_DropsNonPositiveQuantities(t *testing.T) {
	sum := Aggregate([]CartItem{
		item("Bar", "Acqua", 0, 1.00),
		item("Bar", "Birra", -1, 4.00),
		item("Bar", "Coca", 1, 2.50),
	})

	if len(sum.Groups) != 1 || len(sum.Groups[0].Items) != 1 {
		t.Fatalf("expected only the positive-quantity item, got %+v", sum.Groups)
	}
	if sum.Groups[0].Items[0].Name != "Coca" {
		t.Fatalf("unexpected surviving item %q", sum.Groups[0].Items[0].Name)
	}
	if len(sum.AllItems) != 1 {
		t.Fatalf("expected 1 aggregate item, got %d", len(sum.AllItems))
	}
}

func TestAggregate_PizzeriaAlwaysFirst(t *testing.T) {
	for _, label := range []string{"Pizzeria", "pizzeria", "PIZZERIA"} {
		sum := Aggregate([]CartItem{
			item("Bar", "Acqua", 1, 1.00),
			item("Cucina", "Polenta", 1, 4.50),
			item(label, "Margherita", 1, 6.00),
		})

		if sum.Groups[0].Category != label {
			t.Fatalf("expected %q first, got %q", label, sum.Groups[0].Category)
		}
		// the rest keep first-seen order
		if sum.Groups[1].Category != "Bar" || sum.Groups[2].Category != "Cucina" {
			t.Fatalf("non-priority categories out of order: %+v", sum.Groups)
		}
	}
}

func TestAggregate_AllItemsCarryCategoryQualifiedNames(t *testing.T) {
	sum := Aggregate([]CartItem{
		item("Bar", "Acqua", 1, 1.00),
		item("Pizzeria", "Margherita", 1, 6.00),
	})

	if sum.AllItems[0].Name != "Bar - Acqua" {
		t.Fatalf("expected qualified name, got %q", sum.AllItems[0].Name)
	}
	// aggregate list keeps cart order, not presentation order
	if sum.AllItems[1].Name != "Pizzeria - Margherita" {
		t.Fatalf("expected qualified name, got %q", sum.AllItems[1].Name)
	}
}
