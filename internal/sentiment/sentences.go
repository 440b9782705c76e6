package sentiment

import (
	"strings"
	"sync"

	"gopkg.in/neurosnap/sentences.v1"
)

// SentenceResult is the classification of one sentence of a longer text.
type SentenceResult struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
	Result
}

// ptTraining seeds the punkt segmenter with common Portuguese
// abbreviations so "Sr. Silva" or "Dra. Ana" do not end a sentence.
const ptTraining = `{
	"AbbrevTypes": {
		"sr": 1, "sra": 1, "srs": 1, "dr": 1, "dra": 1, "drs": 1,
		"prof": 1, "profa": 1, "exmo": 1, "exma": 1, "gov": 1,
		"dep": 1, "sen": 1, "min": 1, "pres": 1, "art": 1, "inc": 1,
		"etc": 1, "av": 1, "nº": 1, "pág": 1, "séc": 1
	},
	"Collocations": {},
	"SentStarters": {},
	"OrthoContext": {}
}`

var (
	segmenter     *sentences.DefaultSentenceTokenizer
	segmenterOnce sync.Once
)

func sentenceSegmenter() *sentences.DefaultSentenceTokenizer {
	segmenterOnce.Do(func() {
		storage, err := sentences.LoadTraining([]byte(ptTraining))
		if err != nil {
			panic("sentiment: sentence training data: " + err.Error())
		}
		segmenter = sentences.NewSentenceTokenizer(storage)
	})
	return segmenter
}

// SplitSentences segments text into trimmed, non-empty sentences.
func SplitSentences(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	var out []string
	for _, s := range sentenceSegmenter().Tokenize(text) {
		if t := strings.TrimSpace(s.Text); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// ClassifySentences classifies each sentence of text independently.
func (c *Classifier) ClassifySentences(text string) []SentenceResult {
	parts := SplitSentences(text)
	out := make([]SentenceResult, len(parts))
	for i, s := range parts {
		out[i] = SentenceResult{Index: i, Text: s, Result: c.Classify(s)}
	}
	return out
}
