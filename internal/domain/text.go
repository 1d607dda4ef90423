package domain

import (
	"strings"
	"unicode/utf8"
)

// CleanText makes text storable as XML character data. Invalid UTF-8 bytes
// become U+FFFD and code points outside the XML 1.0 Char range are dropped.
func CleanText(text string) string {
	if ValidText(text) {
		return text
	}
	text = strings.ToValidUTF8(text, string(utf8.RuneError))
	return strings.Map(func(r rune) rune {
		if !isXMLChar(r) {
			return -1
		}
		return r
	}, text)
}

// ValidText reports whether text survives an XML round trip unchanged.
func ValidText(text string) bool {
	if !utf8.ValidString(text) {
		return false
	}
	for _, r := range text {
		if !isXMLChar(r) {
			return false
		}
	}
	return true
}

func isXMLChar(r rune) bool {
	switch {
	case r == '\t', r == '\n', r == '\r':
		return true
	case r >= 0x20 && r <= 0xD7FF:
		return true
	case r >= 0xE000 && r <= 0xFFFD:
		return true
	case r >= 0x10000 && r <= 0x10FFFF:
		return true
	}
	return false
}
