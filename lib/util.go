package folio

import (
	"strings"
	"unicode"
)

// toPascalCase joins whitespace separated words, capitalizing each
func toPascalCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, "")
}
