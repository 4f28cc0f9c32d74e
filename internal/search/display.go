package search

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// DisplayName title-cases each word of a library name. Hyphenated segments that already
// contain an uppercase letter are left alone so acronyms survive ("EZ-bar curl" -> "EZ-Bar Curl").
func DisplayName(name string) string {
	words := strings.Fields(name)
	for i, word := range words {
		segments := strings.Split(word, "-")
		for j, seg := range segments {
			segments[j] = titleSegment(seg)
		}
		words[i] = strings.Join(segments, "-")
	}
	return strings.Join(words, " ")
}

func titleSegment(seg string) string {
	if seg == "" || strings.IndexFunc(seg, unicode.IsUpper) >= 0 {
		return seg
	}
	lower := strings.ToLower(seg)
	r, size := utf8.DecodeRuneInString(lower)
	return string(unicode.ToUpper(r)) + lower[size:]
}
