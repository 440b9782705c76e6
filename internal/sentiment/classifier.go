// Package sentiment implements a deterministic lexicon-and-rules sentiment
// classifier for Portuguese text.
//
// A text is tokenized, each token is annotated with its negation and
// intensifier context, lexicon weights are summed per polarity, and the
// label and confidence are derived from the two sums. Classification never
// fails: empty or meaningless input degrades to a neutral result.
package sentiment

import (
	"io"
	"math"

	"github.com/sirupsen/logrus"
)

// Label is a sentiment class.
type Label string

const (
	Positive Label = "positivo"
	Negative Label = "negativo"
	Neutral  Label = "neutro"
)

// Labels lists every label in display order.
var Labels = []Label{Positive, Negative, Neutral}

// Valid reports whether l is one of the three labels.
func (l Label) Valid() bool {
	switch l {
	case Positive, Negative, Neutral:
		return true
	}
	return false
}

// Details explains how a result was reached.
type Details struct {
	PositiveWords  []string `json:"positivas"`
	NegativeWords  []string `json:"negativas"`
	TotalWords     int      `json:"total_palavras"`
	SentimentWords int      `json:"palavras_sentimento"`
	PositiveWeight float64  `json:"peso_positivo"`
	NegativeWeight float64  `json:"peso_negativo"`
	Negations      int      `json:"negacoes_detectadas"`
	Intensifiers   int      `json:"intensificadores_detectados"`
	Clamped        bool     `json:"clamped,omitempty"`
}

// Result is the outcome of classifying one text.
type Result struct {
	Sentiment  Label   `json:"sentiment"`
	Confidence float64 `json:"confidence"`
	Details    Details `json:"details"`
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger *logrus.Entry) Option {
	return func(c *Classifier) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithNegationWindow sets how many preceding tokens are scanned for
// negation. Values below 1 keep the default.
func WithNegationWindow(n int) Option {
	return func(c *Classifier) {
		if n > 0 {
			c.window = n
		}
	}
}

// Classifier labels texts using a shared, read-only lexicon. It holds no
// per-call state and is safe for concurrent use.
type Classifier struct {
	lex    *Lexicon
	window int
	logger *logrus.Entry
}

// NewClassifier creates a classifier over lex. A nil lexicon selects the
// built-in Portuguese one.
func NewClassifier(lex *Lexicon, opts ...Option) *Classifier {
	if lex == nil {
		lex = DefaultLexicon()
	}
	c := &Classifier{
		lex:    lex,
		window: DefaultNegationWindow,
		logger: discardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Lexicon returns the lexicon the classifier reads from.
func (c *Classifier) Lexicon() *Lexicon { return c.lex }

// NegationWindow returns the configured negation look-back.
func (c *Classifier) NegationWindow() int { return c.window }

type ordering int

const (
	noSignal ordering = iota
	positiveWins
	negativeWins
	tie
)

func compareScores(pos, neg float64) ordering {
	switch {
	case pos == 0 && neg == 0:
		return noSignal
	case pos > neg:
		return positiveWins
	case neg > pos:
		return negativeWins
	default:
		return tie
	}
}

// Classify labels text and reports a confidence in [0.1, 0.85].
func (c *Classifier) Classify(text string) Result {
	tokens := c.lex.Tokenize(text)
	if len(tokens) == 0 {
		return Result{
			Sentiment:  Neutral,
			Confidence: EmptyConfidence,
			Details:    Details{PositiveWords: []string{}, NegativeWords: []string{}},
		}
	}

	score := c.lex.Score(c.lex.Annotate(tokens, c.window))

	var (
		label      Label
		confidence float64
		event      *ClampEvent
	)
	switch compareScores(score.PositiveScore, score.NegativeScore) {
	case noSignal:
		label = Neutral
		confidence, event = c.lex.neutralConfidence(tokens)
	case positiveWins:
		label = Positive
		confidence, event = polarityConfidence(score.PositiveCount(), score.NegativeCount(),
			score.PositiveScore, score.NegativeScore, len(tokens))
	case negativeWins:
		label = Negative
		confidence, event = polarityConfidence(score.PositiveCount(), score.NegativeCount(),
			score.PositiveScore, score.NegativeScore, len(tokens))
	case tie:
		label = Neutral
		confidence = TieConfidence(len(tokens))
	}

	if event != nil {
		c.logger.WithFields(logrus.Fields{
			"formula":    event.Formula,
			"clamp_from": event.From,
			"clamp_to":   event.To,
			"label":      label,
		}).Debug("confidence clamped")
	}

	return Result{
		Sentiment:  label,
		Confidence: confidence,
		Details: Details{
			PositiveWords:  uniqueWords(score.PositiveWords),
			NegativeWords:  uniqueWords(score.NegativeWords),
			TotalWords:     len(tokens),
			SentimentWords: score.PositiveCount() + score.NegativeCount(),
			PositiveWeight: round2(score.PositiveScore),
			NegativeWeight: round2(score.NegativeScore),
			Negations:      score.Negations,
			Intensifiers:   score.Intensifiers,
			Clamped:        event != nil,
		},
	}
}

// uniqueWords renders tagged words and removes duplicates, keeping the
// first occurrence of each.
func uniqueWords(words []TaggedWord) []string {
	out := make([]string, 0, len(words))
	seen := make(map[string]struct{}, len(words))
	for _, w := range words {
		s := w.String()
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func discardLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}
