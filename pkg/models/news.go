package models

import "time"

// NewsArticle is a news item collected for one search term. JSON field
// names follow the column names of the collector's CSV exports.
type NewsArticle struct {
	ID          string    `json:"id"`
	Term        string    `json:"termo_busca"`
	Title       string    `json:"titulo"`
	URL         string    `json:"link"`
	Description string    `json:"descricao"`
	Source      string    `json:"fonte,omitempty"`
	PublishedAt time.Time `json:"data_publicacao"`
	CollectedAt time.Time `json:"data_coleta"`
	FullText    string    `json:"texto_completo"`
}

// AnalyzedArticle is a news article together with its sentiment.
type AnalyzedArticle struct {
	NewsArticle
	Sentiment     string   `json:"sentimento"`
	Confidence    float64  `json:"confianca"`
	PositiveWords []string `json:"palavras_positivas"`
	NegativeWords []string `json:"palavras_negativas"`
}
