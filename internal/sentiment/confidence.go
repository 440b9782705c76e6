package sentiment

import "math"

// Confidence bounds for each branch of the classifier.
const (
	EmptyConfidence = 0.1

	neutralMin = 0.15
	neutralMax = 0.7

	polarityMin = 0.2
	polarityMax = 0.85

	tieBase     = 0.4
	tieMaxBonus = 0.2
)

// ClampEvent describes a confidence value that fell outside its range and
// was pulled back into it.
type ClampEvent struct {
	Formula string
	From    float64
	To      float64
}

// NeutralConfidence scores a text with no sentiment-bearing words. Longer
// texts and texts rich in informative vocabulary are more confidently
// neutral.
func (l *Lexicon) NeutralConfidence(tokens []string) float64 {
	c, _ := l.neutralConfidence(tokens)
	return c
}

func (l *Lexicon) neutralConfidence(tokens []string) (float64, *ClampEvent) {
	n := len(tokens)
	if n == 0 {
		return EmptyConfidence, nil
	}

	var base float64
	switch {
	case n < 3:
		base = 0.15
	case n < 8:
		base = 0.25
	case n < 15:
		base = 0.35
	default:
		base = 0.45
	}

	informative := 0
	for _, t := range tokens {
		if l.IsInformative(t) {
			informative++
		}
	}
	ratio := float64(informative) / float64(n)
	bonus := math.Min(ratio*0.3, 0.25)

	return clamp("neutral", base+bonus, neutralMin, neutralMax)
}

// PolarityConfidence scores a positive or negative decision from the
// balance, density and strength of the contributing words.
func PolarityConfidence(posCount, negCount int, posScore, negScore float64, totalTokens int) float64 {
	c, _ := polarityConfidence(posCount, negCount, posScore, negScore, totalTokens)
	return c
}

func polarityConfidence(posCount, negCount int, posScore, negScore float64, totalTokens int) (float64, *ClampEvent) {
	contributions := posCount + negCount
	if contributions == 0 {
		return EmptyConfidence, nil
	}

	density := float64(contributions) / float64(max(totalTokens, 1))
	total := posScore + negScore

	base := 0.35
	if total > 0 {
		ratio := math.Max(posScore, negScore) / total
		base = 0.35 + (ratio-0.5)*0.6
	}

	densityBonus := math.Min(density*0.3, 0.15)

	avg := total / float64(contributions)
	weightBonus := math.Min((avg-1)*0.05, 0.1)

	var clarity float64
	if total > 0 {
		clarity = math.Abs(posScore-negScore) / total
	}
	clarityBonus := clarity * 0.1

	return clamp("polarity", base+densityBonus+weightBonus+clarityBonus, polarityMin, polarityMax)
}

// TieConfidence scores a text whose positive and negative weights cancel
// out exactly. It grows with length and plateaus at ten tokens.
func TieConfidence(tokenCount int) float64 {
	return tieBase + math.Min(float64(tokenCount)/50, tieMaxBonus)
}

func clamp(formula string, v, lo, hi float64) (float64, *ClampEvent) {
	switch {
	case v < lo:
		return lo, &ClampEvent{Formula: formula, From: v, To: lo}
	case v > hi:
		return hi, &ClampEvent{Formula: formula, From: v, To: hi}
	default:
		return v, nil
	}
}
