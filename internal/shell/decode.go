package shell

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// DecodeWindows1252 converts console output from code page 1252 to UTF-8.
// Bytes without a mapping are dropped rather than reported.
func DecodeWindows1252(b []byte) string {
	if len(b) == 0 {
		return ""
	}

	t := transform.Chain(
		charmap.Windows1252.NewDecoder(),
		runes.Remove(runes.Predicate(func(r rune) bool { return r == utf8.RuneError })),
	)

	decoded, _, err := transform.Bytes(t, b)
	if err != nil {
		return string(b)
	}
	return string(decoded)
}
