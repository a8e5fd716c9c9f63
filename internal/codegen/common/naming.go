package common

import (
	"strings"
	"unicode"
)

// TitleCase upper-cases the first letter of every word and lower-cases the
// rest. Words are runs of letters and digits; everything else is kept as a
// separator. Words written entirely in upper case are left alone, so
// acronyms survive.
// Examples: "data.service.models" -> "Data.Service.Models", "IO.stream" -> "IO.Stream"
func TitleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	word := make([]rune, 0, 16)
	flush := func() {
		if len(word) == 0 {
			return
		}
		if isUpperWord(word) {
			b.WriteString(string(word))
		} else {
			b.WriteRune(unicode.ToUpper(word[0]))
			for _, r := range word[1:] {
				b.WriteRune(unicode.ToLower(r))
			}
		}
		word = word[:0]
	}

	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			word = append(word, r)
			continue
		}
		flush()
		b.WriteRune(r)
	}
	flush()
	return b.String()
}

func isUpperWord(word []rune) bool {
	hasLetter := false
	for _, r := range word {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	return hasLetter
}

// ToPascalCase joins dot-separated parts after title-casing them.
// Example: "data.service" -> "DataService"
func ToPascalCase(s string) string {
	return strings.ReplaceAll(TitleCase(s), ".", "")
}
