package sentiment

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/bbalet/stopwords"
)

// Defaults for word-cloud extraction.
const (
	DefaultMinWordLength = 4
	DefaultMaxWords      = 50
)

// fillerWords are frequent in news text but carry no topic.
var fillerWords = map[string]struct{}{
	"para": {}, "com": {}, "uma": {}, "como": {},
	"mais": {}, "ser": {}, "ter": {}, "fazer": {},
}

// WordCount is a word and the number of times it occurs.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// WordFrequency counts content words across texts, most frequent first and
// alphabetical within equal counts. Words shorter than minLength runes,
// neutral words and Portuguese stopwords are skipped; informative words are
// never treated as stopwords. minLength <= 0 selects DefaultMinWordLength.
func (c *Classifier) WordFrequency(texts []string, minLength int) []WordCount {
	if minLength <= 0 {
		minLength = DefaultMinWordLength
	}

	counts := make(map[string]int)
	stop := make(map[string]bool)
	for _, text := range texts {
		for _, tok := range c.lex.Tokenize(text) {
			if utf8.RuneCountInString(tok) < minLength || c.lex.IsNeutral(tok) {
				continue
			}
			if _, ok := fillerWords[tok]; ok {
				continue
			}
			if !c.lex.IsInformative(tok) {
				isStop, seen := stop[tok]
				if !seen {
					isStop = isStopword(tok)
					stop[tok] = isStop
				}
				if isStop {
					continue
				}
			}
			counts[tok]++
		}
	}

	out := make([]WordCount, 0, len(counts))
	for w, n := range counts {
		out = append(out, WordCount{Word: w, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Word < out[j].Word
	})
	return out
}

// TopWords returns at most max entries of freq. max <= 0 selects
// DefaultMaxWords.
func TopWords(freq []WordCount, max int) []WordCount {
	if max <= 0 {
		max = DefaultMaxWords
	}
	if len(freq) > max {
		return freq[:max]
	}
	return freq
}

// isStopword reports whether the stopword filter removes word entirely.
// The filter also strips digits, so only an empty result counts; mixed
// tokens such as "covid19" survive and purely numeric ones do not.
func isStopword(word string) bool {
	return strings.TrimSpace(stopwords.CleanString(word, "pt", false)) == ""
}
