package market

import "unicode"

// MinSymbolLen is the shortest symbol accepted for trading (EURUSD, XAUUSD).
const MinSymbolLen = 5

// ValidSymbol reports whether s is an upper-cased, letters-only symbol of at
// least MinSymbolLen characters.
func ValidSymbol(s string) bool {
	if len(s) < MinSymbolLen {
		return false
	}
	for _, r := range s {
		if !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}
