package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/seenimoa/monitoria/internal/sentiment"
)

// --- Analyze Command ---

var analyzeCmd = &cobra.Command{
	Use:   "analyze [text]",
	Short: "Classify the sentiment of a text",
	Long: `Classify a Portuguese text as positivo, negativo or neutro.

Examples:
  monitoria analyze "A iniciativa é excelente"
  monitoria analyze --file artigo.txt --sentences
  echo "não é bom" | monitoria analyze --file - --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		asJSON, _ := cmd.Flags().GetBool("json")
		bySentence, _ := cmd.Flags().GetBool("sentences")

		text := strings.Join(args, " ")
		if file != "" {
			content, err := readInput(file)
			if err != nil {
				return err
			}
			text = content
		} else if len(args) == 0 {
			return errors.New("provide a text or use --file")
		}

		clf, err := newClassifier()
		if err != nil {
			return err
		}
		result := clf.Classify(text)
		var parts []sentiment.SentenceResult
		if bySentence {
			parts = clf.ClassifySentences(text)
		}

		if asJSON {
			return writeJSON(cmd.OutOrStdout(), struct {
				sentiment.Result
				Sentences []sentiment.SentenceResult `json:"sentences,omitempty"`
			}{result, parts})
		}

		out := cmd.OutOrStdout()
		printResult(out, result)
		for _, p := range parts {
			fmt.Fprintf(out, "\n  [%d] %s %s  %s\n", p.Index+1, renderLabel(p.Sentiment),
				renderConfidence(p.Confidence), styleDim.Render(p.Text))
		}
		return nil
	},
}

func init() {
	analyzeCmd.Flags().String("file", "", "read the text from a file (- for stdin)")
	analyzeCmd.Flags().Bool("json", false, "print the result as JSON")
	analyzeCmd.Flags().Bool("sentences", false, "also classify each sentence")
}

func printResult(w io.Writer, r sentiment.Result) {
	d := r.Details
	fmt.Fprintf(w, "Sentimento:   %s (%s)\n", renderLabel(r.Sentiment), renderConfidence(r.Confidence))
	fmt.Fprintf(w, "Positivas:    %s\n", joinOrDash(d.PositiveWords))
	fmt.Fprintf(w, "Negativas:    %s\n", joinOrDash(d.NegativeWords))
	fmt.Fprintf(w, "Pesos:        +%.2f / -%.2f\n", d.PositiveWeight, d.NegativeWeight)
	fmt.Fprintf(w, "Palavras:     %d (%d com sentimento)\n", d.TotalWords, d.SentimentWords)
	fmt.Fprintf(w, "Negações:     %d   Intensificadores: %d\n", d.Negations, d.Intensifiers)
}

// --- Batch Command ---

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Classify many texts and summarize the distribution",
	Long: `Classify every text of a file concurrently. The file holds either a
JSON array of strings or one text per line.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		workers, _ := cmd.Flags().GetInt("workers")
		asJSON, _ := cmd.Flags().GetBool("json")

		content, err := readInput(file)
		if err != nil {
			return err
		}
		texts, err := splitTexts(content)
		if err != nil {
			return err
		}
		if workers <= 0 {
			workers = cfg.Analysis.Workers
		}

		clf, err := newClassifier()
		if err != nil {
			return err
		}
		items, err := clf.ClassifyBatch(cmd.Context(), texts, workers)
		if err != nil {
			return err
		}
		stats := sentiment.ComputeStats(sentiment.Results(items))

		if asJSON {
			return writeJSON(cmd.OutOrStdout(), struct {
				Items []sentiment.BatchItem `json:"items"`
				Stats sentiment.Stats       `json:"stats"`
			}{items, stats})
		}

		out := cmd.OutOrStdout()
		for _, it := range items {
			fmt.Fprintf(out, "%4d  %-8s %5s  %s\n", it.Index+1, renderLabel(it.Sentiment),
				renderConfidence(it.Confidence), truncate(it.Text, 70))
		}
		fmt.Fprintln(out)
		printStats(out, stats)
		return nil
	},
}

func init() {
	batchCmd.Flags().String("file", "-", "input file (- for stdin)")
	batchCmd.Flags().Int("workers", 0, "concurrent workers (default: analysis.workers)")
	batchCmd.Flags().Bool("json", false, "print items and stats as JSON")
}

func printStats(w io.Writer, s sentiment.Stats) {
	fmt.Fprintf(w, "Total: %d   Confiança média: %s\n", s.Total, renderConfidence(s.MeanConfidence))
	for _, label := range sentiment.Labels {
		n, ok := s.Counts[label]
		if !ok {
			continue
		}
		fmt.Fprintf(w, "  %-8s %4d  %5.1f%%\n", renderLabel(label), n, s.Percentages[label])
	}
}

// --- Word Frequency Command ---

var wordfreqCmd = &cobra.Command{
	Use:   "wordfreq",
	Short: "List the most frequent content words",
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		minLen, _ := cmd.Flags().GetInt("min-length")
		maxWords, _ := cmd.Flags().GetInt("max")
		asJSON, _ := cmd.Flags().GetBool("json")

		content, err := readInput(file)
		if err != nil {
			return err
		}
		texts, err := splitTexts(content)
		if err != nil {
			return err
		}
		if minLen <= 0 {
			minLen = cfg.Analysis.MinWordLength
		}
		if maxWords <= 0 {
			maxWords = cfg.Analysis.MaxCloudWords
		}

		clf, err := newClassifier()
		if err != nil {
			return err
		}
		words := sentiment.TopWords(clf.WordFrequency(texts, minLen), maxWords)

		if asJSON {
			return writeJSON(cmd.OutOrStdout(), words)
		}
		for _, wc := range words {
			fmt.Fprintf(cmd.OutOrStdout(), "%5d  %s\n", wc.Count, wc.Word)
		}
		return nil
	},
}

func init() {
	wordfreqCmd.Flags().String("file", "-", "input file (- for stdin)")
	wordfreqCmd.Flags().Int("min-length", 0, "minimum word length (default: analysis.min_word_length)")
	wordfreqCmd.Flags().Int("max", 0, "maximum words listed (default: analysis.max_cloud_words)")
	wordfreqCmd.Flags().Bool("json", false, "print as JSON")
}

// --- Input helpers ---

// readInput reads a whole file, or stdin when path is "-".
func readInput(path string) (string, error) {
	if path == "-" {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(b), nil
}

// splitTexts parses content as a JSON array of strings when it looks like
// one, otherwise as one text per non-blank line.
func splitTexts(content string) ([]string, error) {
	trimmed := strings.TrimSpace(content)
	if strings.HasPrefix(trimmed, "[") {
		var texts []string
		if err := json.Unmarshal([]byte(trimmed), &texts); err != nil {
			return nil, fmt.Errorf("parse JSON texts: %w", err)
		}
		return texts, nil
	}

	texts := []string{}
	for _, line := range strings.Split(content, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			texts = append(texts, line)
		}
	}
	return texts, nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func joinOrDash(words []string) string {
	if len(words) == 0 {
		return "-"
	}
	return strings.Join(words, ", ")
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
