package sentiment

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// minTokenLength is the rune length a token must exceed to be kept, unless
// it is a negation word.
const minTokenLength = 2

// Tokenize normalizes text and splits it into lower-case word tokens.
// Punctuation other than sentence terminators is treated as whitespace,
// repeated terminators are collapsed, and short tokens are dropped except
// for negation words such as "não".
func (l *Lexicon) Tokenize(text string) []string {
	if text == "" {
		return nil
	}

	text = strings.ToLower(norm.NFC.String(text))

	var b strings.Builder
	b.Grow(len(text))
	var last rune
	for _, r := range text {
		switch {
		case isWordRune(r), unicode.IsSpace(r):
		case r == '.' || r == '!' || r == '?':
			if r == last {
				continue
			}
		default:
			r = ' '
		}
		b.WriteRune(r)
		last = r
	}

	fields := strings.Fields(b.String())
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		word := strings.Map(keepWordRune, f)
		if utf8.RuneCountInString(word) > minTokenLength || l.IsNegation(word) {
			tokens = append(tokens, word)
		}
	}
	if len(tokens) == 0 {
		return nil
	}
	return tokens
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

func keepWordRune(r rune) rune {
	if isWordRune(r) {
		return r
	}
	return -1
}
