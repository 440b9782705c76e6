package sentiment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	lex := DefaultLexicon()

	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"whitespace only", "  \t\n ", nil},
		{"punctuation only", "...!!!", nil},
		{"lower cases and strips punctuation", "Olá,   MUNDO!!! Tudo bem??", []string{"olá", "mundo", "tudo", "bem"}},
		{"drops short tokens", "A IA é boa", []string{"boa"}},
		{"keeps short negation", "Não é uma boa solução", []string{"não", "uma", "boa", "solução"}},
		{"hyphen splits", "e-mail institucional", []string{"mail", "institucional"}},
		{"underscore is a word rune", "modelo snake_case", []string{"modelo", "snake_case"}},
		{"digits kept", "ano 2024 foi bom", []string{"ano", "2024", "foi", "bom"}},
		{"decomposed accents compose", "Inovac\u0327a\u0303o", []string{"inovação"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, lex.Tokenize(tt.in))
		})
	}
}

func TestTokenize_CustomNegationKeptWhenShort(t *testing.T) {
	lex, err := NewLexicon(LexiconData{Negations: []string{"no"}})
	assert.NoError(t, err)
	assert.Equal(t, []string{"no", "gusta"}, lex.Tokenize("no gusta"))
}

func TestAnnotate(t *testing.T) {
	lex := DefaultLexicon()

	t.Run("negation opens scope", func(t *testing.T) {
		got := lex.Annotate([]string{"não", "uma", "boa"}, 3)
		assert.False(t, got[0].Negated)
		assert.True(t, got[1].Negated)
		assert.True(t, got[2].Negated)
	})

	t.Run("window of three", func(t *testing.T) {
		got := lex.Annotate([]string{"não", "uma", "duas", "três", "excelente"}, 3)
		assert.True(t, got[3].Negated)
		assert.False(t, got[4].Negated)
	})

	t.Run("breaker after negation cancels", func(t *testing.T) {
		got := lex.Annotate([]string{"não", "mas", "excelente"}, 3)
		assert.False(t, got[2].Negated)
	})

	t.Run("breaker before negation has no effect", func(t *testing.T) {
		got := lex.Annotate([]string{"mas", "não", "excelente"}, 3)
		assert.True(t, got[2].Negated)
	})

	t.Run("intensifier applies to next token only", func(t *testing.T) {
		got := lex.Annotate([]string{"muito", "excelente", "iniciativa"}, 3)
		assert.Equal(t, 1.0, got[0].Multiplier)
		assert.Equal(t, 1.5, got[1].Multiplier)
		assert.Equal(t, 1.0, got[2].Multiplier)
	})

	t.Run("wider window", func(t *testing.T) {
		got := lex.Annotate([]string{"não", "uma", "duas", "três", "excelente"}, 5)
		assert.True(t, got[4].Negated)
	})

	t.Run("one annotation per token", func(t *testing.T) {
		tokens := []string{"sistema", "não", "funciona"}
		got := lex.Annotate(tokens, 0)
		assert.Len(t, got, len(tokens))
		for i, at := range got {
			assert.Equal(t, tokens[i], at.Word)
		}
	})
}

func TestScore(t *testing.T) {
	lex := DefaultLexicon()
	score := func(text string) ScoreResult {
		return lex.Score(lex.Annotate(lex.Tokenize(text), DefaultNegationWindow))
	}

	t.Run("negated positive goes negative", func(t *testing.T) {
		res := score("Não é uma boa solução")
		assert.Zero(t, res.PositiveScore)
		assert.Equal(t, 2.0, res.NegativeScore)
		assert.Equal(t, []TaggedWord{{"boa", TagNegated}, {"solução", TagNegated}}, res.NegativeWords)
		assert.Equal(t, 3, res.Negations)
	})

	t.Run("negated negative goes positive", func(t *testing.T) {
		res := score("não tem problema")
		assert.Equal(t, 2.0, res.PositiveScore)
		assert.Equal(t, "não_problema", res.PositiveWords[0].String())
	})

	t.Run("intensified", func(t *testing.T) {
		res := score("Muito excelente iniciativa")
		assert.Equal(t, 5.5, res.PositiveScore)
		assert.Equal(t, "muito_excelente", res.PositiveWords[0].String())
		assert.Equal(t, "iniciativa", res.PositiveWords[1].String())
		assert.Equal(t, 1, res.Intensifiers)
	})

	t.Run("repeats all count", func(t *testing.T) {
		res := score("excelente excelente excelente")
		assert.Equal(t, 9.0, res.PositiveScore)
		assert.Equal(t, 3, res.PositiveCount())
	})

	t.Run("unknown words contribute nothing", func(t *testing.T) {
		res := score("relatório sobre tecnologia")
		assert.Zero(t, res.PositiveScore)
		assert.Zero(t, res.NegativeScore)
		assert.Empty(t, res.PositiveWords)
		assert.Empty(t, res.NegativeWords)
	})
}
