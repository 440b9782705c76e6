package sentiment

// DefaultNegationWindow is the number of preceding tokens scanned for a
// negation word.
const DefaultNegationWindow = 3

// AnnotatedToken is a token together with the context that modifies it.
type AnnotatedToken struct {
	Word       string
	Negated    bool
	Multiplier float64
}

// Annotate marks each token with its negation state and intensifier
// multiplier. The multiplier comes only from the immediately preceding
// token. Negation is decided by scanning the window of up to window
// preceding tokens left to right: a negation word opens the scope and a
// breaker closes it, and the state after the last token of the window wins.
func (l *Lexicon) Annotate(tokens []string, window int) []AnnotatedToken {
	if window <= 0 {
		window = DefaultNegationWindow
	}

	out := make([]AnnotatedToken, len(tokens))
	for i, word := range tokens {
		at := AnnotatedToken{Word: word, Multiplier: 1.0}

		if i > 0 {
			if m, ok := l.Intensifier(tokens[i-1]); ok {
				at.Multiplier = m
			}
		}

		for _, prev := range tokens[max(0, i-window):i] {
			switch {
			case l.IsNegation(prev):
				at.Negated = true
			case l.IsBreaker(prev):
				at.Negated = false
			}
		}

		out[i] = at
	}
	return out
}
