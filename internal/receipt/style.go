package receipt

import "strings"

// Style selects the print emphasis of a line.
type Style int

const (
	StyleNormal Style = iota
	StyleDoubleHeight
	StyleDoubleHeightWidth
)

// Kind classifies a line by content role. Table, customer and order-code
// lines are always printed at maximum emphasis regardless of the style
// state around them.
type Kind int

const (
	KindPlain Kind = iota
	KindTable
	KindCustomer
	KindOrderCode
)

// AlwaysLarge reports whether lines of this kind override the current
// print mode with double height and width.
func (k Kind) AlwaysLarge() bool {
	return k == KindTable || k == KindCustomer || k == KindOrderCode
}

// StyledLine is one line of receipt content. Marker lines carry no
// printable text: they exist only to switch the print mode.
type StyledLine struct {
	Text   string
	Style  Style
	Kind   Kind
	Marker bool
}

// kindPrefixes maps the fixed line prefixes used on receipts to their
// kind. Classification is by prefix so that operator-entered values
// (table number, customer name) never change the outcome.
var kindPrefixes = []struct {
	prefix string
	kind   Kind
}{
	{"TAVOLO N°", KindTable},
	{"CLIENTE:", KindCustomer},
	{"ORDINE N°", KindOrderCode},
	{"ORDINE #", KindOrderCode},
}

// Classify returns the kind of a line from its text prefix.
func Classify(text string) Kind {
	trimmed := strings.TrimSpace(text)
	for _, p := range kindPrefixes {
		if strings.HasPrefix(trimmed, p.prefix) {
			return p.kind
		}
	}
	return KindPlain
}

// Line returns a plain styled line, classifying its kind from the text.
func Line(text string, style Style) StyledLine {
	return StyledLine{Text: text, Style: style, Kind: Classify(text)}
}

// StyleMarker returns a style-only line that switches the print mode
// without printing anything.
func StyleMarker(style Style) StyledLine {
	return StyledLine{Style: style, Marker: true}
}
