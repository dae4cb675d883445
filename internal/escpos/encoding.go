package escpos

import (
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// DefaultEncoding is the codepage used when the configured name is empty
// or unknown. CP858 is Latin-1 plus the euro sign, the usual table on
// European thermal printers.
const DefaultEncoding = "cp858"

// charmapFor resolves a configured encoding name to its character table.
func charmapFor(name string) *charmap.Charmap {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "cp437", "ibm437":
		return charmap.CodePage437
	case "cp850", "ibm850":
		return charmap.CodePage850
	case "cp852", "ibm852":
		return charmap.CodePage852
	case "cp858", "ibm858", "":
		return charmap.CodePage858
	case "cp1252", "windows-1252", "windows1252":
		return charmap.Windows1252
	default:
		return charmap.CodePage858
	}
}

// encodeText converts a line of text to the target codepage. It first
// tries a strict conversion; if any rune is outside the table, the euro
// sign is spelled out as " EUR " and the remainder is converted with
// replacement, so encoding never fails.
func encodeText(cm *charmap.Charmap, text string) []byte {
	strict := cm.NewEncoder()
	if b, err := strict.Bytes([]byte(text)); err == nil {
		return b
	}

	fallback := encoding.ReplaceUnsupported(cm.NewEncoder())
	b, err := fallback.Bytes([]byte(strings.ReplaceAll(text, "€", " EUR ")))
	if err != nil {
		// ReplaceUnsupported never reports repertoire errors; anything
		// else means invalid UTF-8 input, drop the line content.
		return nil
	}
	return b
}
