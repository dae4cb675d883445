package receipt

import (
	"fmt"
	"html"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MySagra/mycassa/internal/order"
	"github.com/MySagra/mycassa/internal/pricing"
)

const htmlStyle = "body{font-family:ui-sans-serif,system-ui,-apple-system,Segoe UI,Roboto,Arial;}" +
	".receipt{width:320px;margin:0 auto;}" +
	"h1{text-align:center;font-size:18px;margin:6px 0;}" +
	".evt{text-align:center;font-size:12px;margin:0 0 6px 0;font-weight:600;}" +
	".dt{text-align:center;font-size:12px;margin:0 0 6px 0;}" +
	"table{width:100%;border-collapse:collapse;font-size:12px;}" +
	"th,td{padding:4px 0;}" +
	"th{text-align:left;border-bottom:1px solid #000;}" +
	"td.q,td.p,td.s{text-align:right;}" +
	".total{border-top:1px solid #000;margin-top:6px;padding-top:6px;font-weight:700;}" +
	".first{font-size:16px;font-weight:600;}" +
	".q{font-size:16px;font-weight:700;text-align:right;}" +
	".tc{text-align:center;font-size:18px;margin-top:8px;font-weight:800;}" +
	".ord{text-align:center;font-size:22px;margin-top:8px;font-weight:800;}" +
	".pay{text-align:center;font-size:13px;margin-top:6px;}" +
	"@media print{.no-print{display:none;}body{margin:0;}}"

// RenderHTML renders the printable web version of a receipt over the
// same items and metadata used for the thermal output.
func (c *Composer) RenderHTML(category string, items []order.CartItem, meta Meta, total decimal.Decimal) string {
	var rows strings.Builder
	for _, it := range items {
		unit := pricing.UnitPrice(it.Price, it.Adds)
		sub := pricing.LineTotal(it.Qty, unit)

		var name strings.Builder
		fmt.Fprintf(&name, "<div>%s:</div>", html.EscapeString(it.Name))
		adds := cleanModifiers(it.Adds)
		rems := cleanModifiers(it.Removes)
		if len(adds) > 0 || len(rems) > 0 {
			name.WriteString("<ul class='mb-0'>")
			if len(adds) > 0 {
				fmt.Fprintf(&name, "<li>aggiunte: %s</li>", html.EscapeString(strings.Join(adds, ", ")))
			}
			if len(rems) > 0 {
				fmt.Fprintf(&name, "<li>rimozioni: %s</li>", html.EscapeString(strings.Join(rems, ", ")))
			}
			name.WriteString("</ul>")
		}

		fmt.Fprintf(&rows,
			"<tr><td class='first'>%s</td><td class='q'>%d</td><td class='p'>%s %s</td><td class='s'>%s %s</td></tr>\n",
			name.String(), it.Qty,
			unit.StringFixed(2), c.Currency,
			sub.StringFixed(2), c.Currency)
	}

	var tableCustomer string
	if meta.Table != "" || meta.Customer != "" {
		var tc []string
		if meta.Table != "" {
			tc = append(tc, "TAVOLO N° "+html.EscapeString(meta.Table))
		}
		if meta.Customer != "" {
			tc = append(tc, "CLIENTE: "+html.EscapeString(meta.Customer))
		}
		tableCustomer = "<div class='tc'>" + strings.Join(tc, "<br/>") + "</div>"
	}

	var payment string
	if meta.Payment != "" {
		payment = "<div class='pay'>Pagamento: " + html.EscapeString(meta.Payment) + "</div>"
	}

	var b strings.Builder
	b.WriteString("<!doctype html><html><head><meta charset='utf-8'>")
	fmt.Fprintf(&b, "<title>Scontrino - %s</title>", html.EscapeString(category))
	b.WriteString("<style>" + htmlStyle + "</style></head><body>")
	b.WriteString("<div class='receipt'>")
	fmt.Fprintf(&b, "<div class='evt'>%s</div>", html.EscapeString(c.Venue))
	fmt.Fprintf(&b, "<div class='dt'>Emesso: %s</div>", c.nowFunc().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "<h1>%s</h1>", html.EscapeString(category))
	b.WriteString("<table><thead><tr><th>Prodotto</th><th class='q'>Qtà</th><th class='p'>Prezzo</th><th class='s'>Subtot.</th></tr></thead><tbody>")
	b.WriteString(rows.String())
	b.WriteString("</tbody></table>")
	fmt.Fprintf(&b, "<div class='total'>TOTALE: %s %s</div>", total.StringFixed(2), c.Currency)
	b.WriteString(payment)
	fmt.Fprintf(&b, "<div class='ord'>%s</div>", html.EscapeString(meta.OrderCode))
	b.WriteString(tableCustomer)
	b.WriteString("<div style='height:60px'></div>")
	b.WriteString("<div class='no-print' style='text-align:center;margin-top:10px;'><button onclick='window.print()'>Stampa</button></div>")
	b.WriteString("</div></body></html>")
	return b.String()
}
