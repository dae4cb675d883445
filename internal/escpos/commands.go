package escpos

import "github.com/MySagra/mycassa/internal/receipt"

// Base ESC/POS commands. The byte values are fixed by the printer
// protocol and must not change.
var (
	cmdInit    = []byte{0x1B, 0x40}       // ESC @  reset printer state
	cmdFullCut = []byte{0x1D, 0x56, 0x00} // GS V 0 full paper cut
)

const lineFeed = 0x0A

// Print mode arguments for ESC ! n.
const (
	modeNormal            = 0x00
	modeDoubleHeight      = 0x10
	modeDoubleHeightWidth = 0x30
)

func cmdSelectCodepage(n byte) []byte {
	return []byte{0x1B, 0x74, n}
}

func cmdPrintMode(m byte) []byte {
	return []byte{0x1B, 0x21, m}
}

func modeFor(s receipt.Style) byte {
	switch s {
	case receipt.StyleDoubleHeight:
		return modeDoubleHeight
	case receipt.StyleDoubleHeightWidth:
		return modeDoubleHeightWidth
	default:
		return modeNormal
	}
}
