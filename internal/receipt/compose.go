// Package receipt renders aggregated order data into styled receipt
// lines for thermal printing and into printable HTML.
package receipt

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/MySagra/mycassa/internal/order"
	"github.com/MySagra/mycassa/internal/pricing"
)

// AggregateCategory is the synthetic category label of the receipt that
// covers the whole cart.
const AggregateCategory = "TOTALE COMPLESSIVO"

// Meta carries the order-level fields shared by every receipt of one
// checkout.
type Meta struct {
	OrderCode string // e.g. "ORDINE N° 123"; empty hides the code block
	Table     string
	Customer  string
	Payment   string
}

// Document is one composed receipt: its category, the ordered styled
// lines, and the subtotal recomputed over its items.
type Document struct {
	Category string
	Lines    []StyledLine
	Subtotal decimal.Decimal
}

// Composer renders receipts at a fixed character width.
type Composer struct {
	Width    int
	Currency string
	Venue    string

	nowFunc func() time.Time
}

// NewComposer returns a Composer. Width and currency come from the
// settings snapshot; venue is the fixed header text.
func NewComposer(width int, currency, venue string) *Composer {
	return &Composer{
		Width:    width,
		Currency: currency,
		Venue:    venue,
		nowFunc:  time.Now,
	}
}

// Compose renders one category's receipt. The returned subtotal is
// recomputed here and must match the aggregator's subtotal for the same
// items.
func (c *Composer) Compose(category string, items []order.CartItem, meta Meta) Document {
	var lines []StyledLine
	w := c.Width

	lines = append(lines,
		Line(center(c.Venue, w), StyleNormal),
		Line("", StyleNormal),
		Line(center("Emesso: "+c.nowFunc().Format("2006-01-02 15:04:05"), w), StyleNormal),
		Line("", StyleNormal),
		Line(center("** "+strings.ToUpper(category)+" **", w), StyleDoubleHeight),
		Line(strings.Repeat("-", w), StyleNormal),
	)

	total := decimal.Zero
	for _, it := range items {
		unit := pricing.UnitPrice(it.Price, it.Adds)
		sub := pricing.LineTotal(it.Qty, unit)
		total = total.Add(sub)

		lines = append(lines, Line(truncate(it.Name+":", w), StyleDoubleHeight))
		if adds := cleanModifiers(it.Adds); len(adds) > 0 {
			lines = append(lines, Line(truncate("    - aggiunte: "+strings.Join(adds, ", "), w), StyleDoubleHeight))
		}
		if rems := cleanModifiers(it.Removes); len(rems) > 0 {
			lines = append(lines, Line(truncate("    - rimozioni: "+strings.Join(rems, ", "), w), StyleDoubleHeight))
		}

		left := fmt.Sprintf("x%d", it.Qty)
		right := sub.StringFixed(2) + c.Currency
		lines = append(lines,
			Line(padBetween(left, right, w, 1), StyleDoubleHeight),
			Line("", StyleNormal),
		)
	}

	lines = append(lines,
		Line(strings.Repeat("-", w), StyleNormal),
		Line(padBetween("TOTALE", total.StringFixed(2)+c.Currency, w, 0), StyleNormal),
	)

	if meta.Payment != "" {
		lines = append(lines, Line("Pagamento: "+meta.Payment, StyleNormal))
	}

	if meta.OrderCode != "" {
		lines = append(lines,
			Line("", StyleNormal),
			Line("", StyleNormal),
			Line(meta.OrderCode, StyleNormal),
			Line("", StyleNormal),
		)
	}

	if meta.Table != "" || meta.Customer != "" {
		lines = append(lines, Line("", StyleNormal))
		if meta.Table != "" {
			lines = append(lines, Line("TAVOLO N° "+meta.Table, StyleNormal))
		}
		if meta.Customer != "" {
			lines = append(lines, Line("CLIENTE: "+meta.Customer, StyleNormal))
		}
	}
	lines = append(lines, Line("", StyleNormal))

	return Document{Category: category, Lines: lines, Subtotal: total}
}

func cleanModifiers(in []string) []string {
	var out []string
	for _, m := range in {
		if t := strings.TrimSpace(m); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// center pads text to width with the extra space on the right. Text at
// or over the width is returned unchanged.
func center(text string, width int) string {
	n := utf8.RuneCountInString(text)
	if n >= width {
		return text
	}
	left := (width - n) / 2
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", width-n-left)
}

// truncate cuts text to exactly width runes when it is longer.
func truncate(text string, width int) string {
	if utf8.RuneCountInString(text) <= width {
		return text
	}
	return string([]rune(text)[:width])
}

// padBetween joins a left and right label with the spaces needed to fill
// the width, never fewer than floor.
func padBetween(left, right string, width, floor int) string {
	pad := width - utf8.RuneCountInString(left) - utf8.RuneCountInString(right)
	if pad < floor {
		pad = floor
	}
	return left + strings.Repeat(" ", pad) + right
}
