package sentiment

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

// ErrInvalidLexicon is returned when lexicon tables violate an invariant.
var ErrInvalidLexicon = errors.New("invalid lexicon")

// LexiconData is the raw, serializable form of a lexicon. It is also the
// shape of lexicon override files (YAML or JSON).
type LexiconData struct {
	Positive     map[string]float64 `yaml:"positive"     json:"positive"`
	Negative     map[string]float64 `yaml:"negative"     json:"negative"`
	Negations    []string           `yaml:"negations"    json:"negations"`
	Breakers     []string           `yaml:"breakers"     json:"breakers"`
	Intensifiers map[string]float64 `yaml:"intensifiers" json:"intensifiers"`
	Neutral      []string           `yaml:"neutral"      json:"neutral"`
	Informative  []string           `yaml:"informative"  json:"informative"`
}

// Lexicon holds the word tables used by the classifier. It is never mutated
// after construction and is safe to share between goroutines.
type Lexicon struct {
	positive     map[string]float64
	negative     map[string]float64
	negations    map[string]struct{}
	breakers     map[string]struct{}
	intensifiers map[string]float64
	neutral      map[string]struct{}
	informative  map[string]struct{}
}

// LexiconSizes reports the number of entries in each table.
type LexiconSizes struct {
	Positive     int `json:"positive"`
	Negative     int `json:"negative"`
	Negations    int `json:"negations"`
	Breakers     int `json:"breakers"`
	Intensifiers int `json:"intensifiers"`
	Neutral      int `json:"neutral"`
	Informative  int `json:"informative"`
}

var (
	defaultLexicon     *Lexicon
	defaultLexiconOnce sync.Once
)

// DefaultLexicon returns the embedded Portuguese lexicon. It is built on
// first use and shared by every caller.
func DefaultLexicon() *Lexicon {
	defaultLexiconOnce.Do(func() {
		lex, err := NewLexicon(portugueseLexicon())
		if err != nil {
			panic(fmt.Sprintf("sentiment: embedded lexicon: %v", err))
		}
		defaultLexicon = lex
	})
	return defaultLexicon
}

// NewLexicon builds a lexicon from explicit tables. Keys are normalized to
// NFC lower case.
func NewLexicon(data LexiconData) (*Lexicon, error) {
	lex := &Lexicon{
		positive:     make(map[string]float64, len(data.Positive)),
		negative:     make(map[string]float64, len(data.Negative)),
		negations:    toSet(data.Negations),
		breakers:     toSet(data.Breakers),
		intensifiers: make(map[string]float64, len(data.Intensifiers)),
		neutral:      toSet(data.Neutral),
		informative:  toSet(data.Informative),
	}

	for word, w := range data.Positive {
		if w < 0 {
			return nil, fmt.Errorf("%w: negative weight %.2f for positive word %q", ErrInvalidLexicon, w, word)
		}
		lex.positive[normalizeKey(word)] = w
	}
	for word, w := range data.Negative {
		if w < 0 {
			return nil, fmt.Errorf("%w: negative weight %.2f for negative word %q", ErrInvalidLexicon, w, word)
		}
		key := normalizeKey(word)
		if lex.positive[key] > 0 && w > 0 {
			return nil, fmt.Errorf("%w: word %q is weighted in both polarity tables", ErrInvalidLexicon, word)
		}
		lex.negative[key] = w
	}
	for word, m := range data.Intensifiers {
		if m <= 0 {
			return nil, fmt.Errorf("%w: non-positive multiplier %.2f for intensifier %q", ErrInvalidLexicon, m, word)
		}
		lex.intensifiers[normalizeKey(word)] = m
	}

	return lex, nil
}

// LoadLexiconFile reads an override file and merges it over base. Entries
// in the file replace entries in base; a word moved to the other polarity
// table is removed from its previous one. A file that weights the same word
// in both tables is rejected with ErrInvalidLexicon. base itself is left
// untouched.
func LoadLexiconFile(path string, base *Lexicon) (*Lexicon, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lexicon file: %w", err)
	}

	// YAML is a superset of JSON, so both formats decode here.
	var override LexiconData
	if err := yaml.Unmarshal(raw, &override); err != nil {
		return nil, fmt.Errorf("parse lexicon file %s: %w", path, err)
	}

	positive := make(map[string]struct{}, len(override.Positive))
	for word := range override.Positive {
		positive[normalizeKey(word)] = struct{}{}
	}
	for word := range override.Negative {
		if _, ok := positive[normalizeKey(word)]; ok {
			return nil, fmt.Errorf("lexicon file %s: %w: word %q is weighted in both polarity tables", path, ErrInvalidLexicon, word)
		}
	}

	var merged LexiconData
	if base != nil {
		merged = base.Data()
	} else {
		merged = LexiconData{
			Positive:     map[string]float64{},
			Negative:     map[string]float64{},
			Intensifiers: map[string]float64{},
		}
	}

	for word, w := range override.Positive {
		key := normalizeKey(word)
		delete(merged.Negative, key)
		merged.Positive[key] = w
	}
	for word, w := range override.Negative {
		key := normalizeKey(word)
		delete(merged.Positive, key)
		merged.Negative[key] = w
	}
	for word, m := range override.Intensifiers {
		merged.Intensifiers[normalizeKey(word)] = m
	}
	merged.Negations = append(merged.Negations, override.Negations...)
	merged.Breakers = append(merged.Breakers, override.Breakers...)
	merged.Neutral = append(merged.Neutral, override.Neutral...)
	merged.Informative = append(merged.Informative, override.Informative...)

	lex, err := NewLexicon(merged)
	if err != nil {
		return nil, fmt.Errorf("lexicon file %s: %w", path, err)
	}
	return lex, nil
}

// Data returns a deep copy of the lexicon tables.
func (l *Lexicon) Data() LexiconData {
	d := LexiconData{
		Positive:     make(map[string]float64, len(l.positive)),
		Negative:     make(map[string]float64, len(l.negative)),
		Intensifiers: make(map[string]float64, len(l.intensifiers)),
		Negations:    fromSet(l.negations),
		Breakers:     fromSet(l.breakers),
		Neutral:      fromSet(l.neutral),
		Informative:  fromSet(l.informative),
	}
	for k, v := range l.positive {
		d.Positive[k] = v
	}
	for k, v := range l.negative {
		d.Negative[k] = v
	}
	for k, v := range l.intensifiers {
		d.Intensifiers[k] = v
	}
	return d
}

// PositiveWeight returns the base positive weight of word, or 0.
func (l *Lexicon) PositiveWeight(word string) float64 {
	return l.positive[word]
}

// NegativeWeight returns the base negative weight of word, or 0.
func (l *Lexicon) NegativeWeight(word string) float64 {
	return l.negative[word]
}

// IsNegation reports whether word inverts the polarity of nearby words.
func (l *Lexicon) IsNegation(word string) bool {
	_, ok := l.negations[word]
	return ok
}

// IsBreaker reports whether word closes an open negation scope.
func (l *Lexicon) IsBreaker(word string) bool {
	_, ok := l.breakers[word]
	return ok
}

// Intensifier returns the multiplier word applies to the following token.
func (l *Lexicon) Intensifier(word string) (float64, bool) {
	m, ok := l.intensifiers[word]
	return m, ok
}

// IsNeutral reports whether word is in the neutral/stopword set.
func (l *Lexicon) IsNeutral(word string) bool {
	_, ok := l.neutral[word]
	return ok
}

// IsInformative reports whether word marks informative or technical text.
func (l *Lexicon) IsInformative(word string) bool {
	_, ok := l.informative[word]
	return ok
}

// Sizes returns the number of entries in each table.
func (l *Lexicon) Sizes() LexiconSizes {
	return LexiconSizes{
		Positive:     len(l.positive),
		Negative:     len(l.negative),
		Negations:    len(l.negations),
		Breakers:     len(l.breakers),
		Intensifiers: len(l.intensifiers),
		Neutral:      len(l.neutral),
		Informative:  len(l.informative),
	}
}

func normalizeKey(word string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFC.String(word)))
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		if key := normalizeKey(w); key != "" {
			set[key] = struct{}{}
		}
	}
	return set
}

func fromSet(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for w := range set {
		out = append(out, w)
	}
	return out
}
