// Package escpos translates styled receipt lines into the binary
// command stream understood by line-oriented thermal printers.
package escpos

import (
	"bytes"

	"golang.org/x/text/encoding/charmap"

	"github.com/MySagra/mycassa/internal/receipt"
)

// Encoder turns styled lines into printer bytes. Each Encode call is an
// independent pass: the printer is reset, the codepage selected, and the
// print mode starts at normal.
type Encoder struct {
	cm         *charmap.Charmap
	codepage   byte
	extraFeeds int
}

// NewEncoder builds an Encoder for one target configuration.
// encodingName selects the character table used for text conversion;
// codepage is the numeric argument of the ESC t command; extraFeeds is
// the number of blank lines emitted before a cut so content clears the
// cutter.
func NewEncoder(encodingName string, codepage, extraFeeds int) *Encoder {
	return &Encoder{
		cm:         charmapFor(encodingName),
		codepage:   byte(codepage),
		extraFeeds: extraFeeds,
	}
}

// Encode produces the full command stream for one receipt. Output is
// deterministic for a given line sequence and configuration.
func (e *Encoder) Encode(lines []receipt.StyledLine, cut bool) []byte {
	var buf bytes.Buffer
	buf.Write(cmdInit)
	buf.Write(cmdSelectCodepage(e.codepage))

	mode := byte(modeNormal)
	for _, ln := range lines {
		if ln.Kind.AlwaysLarge() {
			// Table, customer and order-code lines print at maximum
			// emphasis and always leave the printer in normal mode,
			// whatever was active before.
			if mode != modeDoubleHeightWidth {
				buf.Write(cmdPrintMode(modeDoubleHeightWidth))
			}
			buf.Write(encodeText(e.cm, ln.Text))
			buf.WriteByte(lineFeed)
			buf.Write(cmdPrintMode(modeNormal))
			mode = modeNormal
			continue
		}

		if m := modeFor(ln.Style); m != mode {
			buf.Write(cmdPrintMode(m))
			mode = m
		}
		if ln.Marker {
			// Style-only line: no text, no terminator.
			continue
		}
		buf.Write(encodeText(e.cm, ln.Text))
		buf.WriteByte(lineFeed)
	}

	for i := 0; i < e.extraFeeds; i++ {
		buf.WriteByte(lineFeed)
	}
	if cut {
		buf.Write(cmdFullCut)
	}
	return buf.Bytes()
}
