package sentiment

// WordTag records how context modified a contributing word.
type WordTag int

const (
	TagNone WordTag = iota
	TagNegated
	TagIntensified
)

// TaggedWord is a word that contributed to a score.
type TaggedWord struct {
	Word string
	Tag  WordTag
}

// String renders the word with its context prefix, e.g. "não_boa" or
// "muito_excelente".
func (w TaggedWord) String() string {
	switch w.Tag {
	case TagNegated:
		return "não_" + w.Word
	case TagIntensified:
		return "muito_" + w.Word
	default:
		return w.Word
	}
}

// ScoreResult accumulates the weighted polarity of a token stream. The word
// slices hold one entry per contribution, so repeated words appear once per
// occurrence.
type ScoreResult struct {
	PositiveScore float64
	NegativeScore float64
	PositiveWords []TaggedWord
	NegativeWords []TaggedWord
	Negations     int
	Intensifiers  int
}

// Score sums lexicon weights over annotated tokens. A negated word adds its
// weight to the opposite polarity.
func (l *Lexicon) Score(annotated []AnnotatedToken) ScoreResult {
	var res ScoreResult
	for _, at := range annotated {
		if at.Negated {
			res.Negations++
		}
		if at.Multiplier != 1.0 {
			res.Intensifiers++
		}

		pos := l.PositiveWeight(at.Word) * at.Multiplier
		neg := l.NegativeWeight(at.Word) * at.Multiplier

		switch {
		case at.Negated && pos > 0:
			res.NegativeScore += pos
			res.NegativeWords = append(res.NegativeWords, TaggedWord{at.Word, TagNegated})
		case at.Negated && neg > 0:
			res.PositiveScore += neg
			res.PositiveWords = append(res.PositiveWords, TaggedWord{at.Word, TagNegated})
		case !at.Negated && pos > 0:
			res.PositiveScore += pos
			res.PositiveWords = append(res.PositiveWords, TaggedWord{at.Word, intensityTag(at.Multiplier)})
		case !at.Negated && neg > 0:
			res.NegativeScore += neg
			res.NegativeWords = append(res.NegativeWords, TaggedWord{at.Word, intensityTag(at.Multiplier)})
		}
	}
	return res
}

// PositiveCount is the number of positive contributions.
func (r ScoreResult) PositiveCount() int { return len(r.PositiveWords) }

// NegativeCount is the number of negative contributions.
func (r ScoreResult) NegativeCount() int { return len(r.NegativeWords) }

func intensityTag(multiplier float64) WordTag {
	if multiplier > 1.0 {
		return TagIntensified
	}
	return TagNone
}
