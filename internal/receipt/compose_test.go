package receipt

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/MySagra/mycassa/internal/order"
)

func testComposer() *Composer {
	c := NewComposer(42, "€", "Oratorio di Petosino - SeptemberFest")
	c.nowFunc = func() time.Time {
		return time.Date(2026, 8, 28, 19, 30, 0, 0, time.UTC)
	}
	return c
}

func margherita() order.CartItem {
	return order.CartItem{
		Category: "Pizzeria",
		Name:     "Margherita",
		Qty:      2,
		Price:    decimal.NewFromFloat(6.00),
		Adds:     []string{"bufala"},
		Removes:  []string{"origano"},
	}
}

func textOf(lines []StyledLine) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Text
	}
	return out
}

func TestCompose_HeaderAndTitle(t *testing.T) {
	c := testComposer()

	doc := c.Compose("Pizzeria", []order.CartItem{margherita()}, Meta{})
	got := textOf(doc.Lines)

	if strings.TrimSpace(got[0]) != "Oratorio di Petosino - SeptemberFest" {
		t.Fatalf("unexpected header %q", got[0])
	}
	if utf8.RuneCountInString(got[0]) != 42 {
		t.Fatalf("header not centered to width: %q", got[0])
	}
	if strings.TrimSpace(got[2]) != "Emesso: 2026-08-28 19:30:00" {
		t.Fatalf("unexpected timestamp line %q", got[2])
	}
	if strings.TrimSpace(got[4]) != "** PIZZERIA **" {
		t.Fatalf("unexpected title %q", got[4])
	}
	if doc.Lines[4].Style != StyleDoubleHeight {
		t.Fatalf("title must be double height, got %v", doc.Lines[4].Style)
	}
	if got[5] != strings.Repeat("-", 42) {
		t.Fatalf("unexpected separator %q", got[5])
	}
}

func TestCompose_ItemBlock(t *testing.T) {
	c := testComposer()

	doc := c.Compose("Pizzeria", []order.CartItem{margherita()}, Meta{})
	got := textOf(doc.Lines)

	if got[6] != "Margherita:" || doc.Lines[6].Style != StyleDoubleHeight {
		t.Fatalf("unexpected name line %q (%v)", got[6], doc.Lines[6].Style)
	}
	if got[7] != "    - aggiunte: bufala" {
		t.Fatalf("unexpected adds line %q", got[7])
	}
	if got[8] != "    - rimozioni: origano" {
		t.Fatalf("unexpected removes line %q", got[8])
	}

	// 2 x (6.00 + 0.50) = 13.00, padded to the full width
	qtyLine := got[9]
	if !strings.HasPrefix(qtyLine, "x2") || !strings.HasSuffix(qtyLine, "13.00€") {
		t.Fatalf("unexpected quantity line %q", qtyLine)
	}
	if utf8.RuneCountInString(qtyLine) != 42 {
		t.Fatalf("quantity line not padded to width: %d runes", utf8.RuneCountInString(qtyLine))
	}
	if doc.Lines[9].Style != StyleDoubleHeight {
		t.Fatalf("quantity line must be double height")
	}
	if got[10] != "" || doc.Lines[10].Style != StyleNormal {
		t.Fatalf("expected normal blank separator after item block")
	}
}

func TestCompose_ItemPaddingFloorIsOneSpace(t *testing.T) {
	c := testComposer()
	c.Width = 8 // force left+right beyond the width

	doc := c.Compose("Bar", []order.CartItem{{
		Category: "Bar", Name: "Acqua", Qty: 100,
		Price: decimal.NewFromFloat(1234.00),
	}}, Meta{})

	for _, l := range doc.Lines {
		if strings.HasPrefix(l.Text, "x100") {
			if !strings.Contains(l.Text, "x100 ") {
				t.Fatalf("expected at least one space between labels: %q", l.Text)
			}
			return
		}
	}
	t.Fatal("quantity line not found")
}

func TestCompose_TotalLinePaddingHasNoFloor(t *testing.T) {
	c := testComposer()

	doc := c.Compose("Pizzeria", []order.CartItem{margherita()}, Meta{})
	got := textOf(doc.Lines)

	total := got[12]
	if !strings.HasPrefix(total, "TOTALE") || !strings.HasSuffix(total, "13.00€") {
		t.Fatalf("unexpected total line %q", total)
	}
	// pad == width - len("TOTALE") - len("13.00€") exactly
	if utf8.RuneCountInString(total) != 42 {
		t.Fatalf("total line not padded to width: %q", total)
	}
}

func TestCompose_TruncatesLongLinesToWidth(t *testing.T) {
	c := testComposer()

	long := strings.Repeat("Gnocchi al gorgonzola ", 4)
	doc := c.Compose("Cucina", []order.CartItem{{
		Category: "Cucina", Name: long, Qty: 1,
		Price: decimal.NewFromFloat(7.00),
	}}, Meta{})

	name := doc.Lines[6].Text
	if utf8.RuneCountInString(name) != 42 {
		t.Fatalf("expected truncation to exactly 42 runes, got %d", utf8.RuneCountInString(name))
	}
}

func TestCompose_MetaBlocks(t *testing.T) {
	c := testComposer()

	meta := Meta{
		OrderCode: "ORDINE N° 7",
		Table:     "5",
		Customer:  "Mario",
		Payment:   "POS",
	}
	doc := c.Compose("Pizzeria", []order.CartItem{margherita()}, meta)
	got := textOf(doc.Lines)

	if got[13] != "Pagamento: POS" {
		t.Fatalf("unexpected payment line %q", got[13])
	}
	// code block: two blank lines, the code, one blank line
	if got[14] != "" || got[15] != "" || got[16] != "ORDINE N° 7" || got[17] != "" {
		t.Fatalf("unexpected order code block %q", got[14:18])
	}
	if doc.Lines[16].Kind != KindOrderCode {
		t.Fatalf("order code line must be classified, got %v", doc.Lines[16].Kind)
	}
	if got[18] != "" || got[19] != "TAVOLO N° 5" || got[20] != "CLIENTE: Mario" {
		t.Fatalf("unexpected table/customer block %q", got[18:21])
	}
	if doc.Lines[19].Kind != KindTable || doc.Lines[20].Kind != KindCustomer {
		t.Fatal("table and customer lines must be classified")
	}
	if got[len(got)-1] != "" {
		t.Fatal("expected trailing blank line")
	}
}

func TestCompose_SubtotalMatchesAggregator(t *testing.T) {
	c := testComposer()

	cart := []order.CartItem{
		margherita(),
		{Category: "Pizzeria", Name: "Diavola", Qty: 1, Price: decimal.NewFromFloat(7.50)},
	}
	sum := order.Aggregate(cart)
	doc := c.Compose("Pizzeria", sum.Groups[0].Items, Meta{})

	if !doc.Subtotal.Equal(sum.Groups[0].Subtotal) {
		t.Fatalf("composer subtotal %s != aggregator subtotal %s",
			doc.Subtotal, sum.Groups[0].Subtotal)
	}
}

func TestClassify(t *testing.T) {
	cases := map[string]Kind{
		"TAVOLO N° 12":   KindTable,
		"CLIENTE: Mario": KindCustomer,
		"ORDINE N° 7":    KindOrderCode,
		"ORDINE #7":      KindOrderCode,
		"Margherita:":    KindPlain,
		"":               KindPlain,
	}
	for text, want := range cases {
		if got := Classify(text); got != want {
			t.Fatalf("Classify(%q) = %v, want %v", text, got, want)
		}
	}
}
