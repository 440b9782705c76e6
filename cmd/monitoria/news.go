package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/seenimoa/monitoria/api"
	"github.com/seenimoa/monitoria/internal/monitor"
	"github.com/seenimoa/monitoria/internal/news"
	"github.com/seenimoa/monitoria/internal/sentiment"
	"github.com/seenimoa/monitoria/pkg/utils"
)

// --- Collect Command ---

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Fetch news for the search terms and classify them",
	Long: `Fetch Google News articles for every configured search term, classify
each one and print the articles with a summary.

Examples:
  monitoria collect
  monitoria collect --term "IA Piauí" --sentiment negativo
  monitoria collect --since 2026-03-01
  monitoria collect --json > noticias.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		terms, _ := cmd.Flags().GetStringSlice("term")
		label, _ := cmd.Flags().GetString("sentiment")
		minConf, _ := cmd.Flags().GetFloat64("min-confidence")
		asJSON, _ := cmd.Flags().GetBool("json")
		sinceStr, _ := cmd.Flags().GetString("since")

		if label != "" && !sentiment.Label(label).Valid() {
			return fmt.Errorf("invalid sentiment %q; use positivo, negativo or neutro", label)
		}
		if !cmd.Flags().Changed("min-confidence") {
			minConf = cfg.Analysis.MinConfidence
		}
		var since time.Time
		if sinceStr != "" {
			var err error
			if since, err = utils.ParseSinceBRT(sinceStr); err != nil {
				return err
			}
		}

		clf, err := newClassifier()
		if err != nil {
			return err
		}
		mon := newMonitor(clf, terms)
		if _, err := mon.Refresh(cmd.Context()); err != nil {
			return err
		}
		view := mon.View(monitor.Filter{Label: sentiment.Label(label), MinConfidence: minConf, Since: since})

		if asJSON {
			return writeJSON(cmd.OutOrStdout(), view)
		}

		out := cmd.OutOrStdout()
		for _, a := range view.Articles {
			fmt.Fprintf(out, "%s  %-8s %5s  %s\n", utils.FormatDateTimeBRT(a.PublishedAt),
				renderLabel(sentiment.Label(a.Sentiment)), renderConfidence(a.Confidence), truncate(a.Title, 80))
			if a.Source != "" {
				fmt.Fprintf(out, "%s  %s\n", styleDim.Render("                  "), styleDim.Render(a.Source+" · "+a.Term))
			}
		}
		fmt.Fprintln(out)
		printStats(out, view.Stats)
		if len(view.Words) > 0 {
			top := view.Words[:min(10, len(view.Words))]
			words := make([]string, len(top))
			for i, wc := range top {
				words[i] = fmt.Sprintf("%s (%d)", wc.Word, wc.Count)
			}
			fmt.Fprintf(out, "Palavras:  %s\n", joinOrDash(words))
		}
		return nil
	},
}

func init() {
	collectCmd.Flags().StringSlice("term", nil, "search term (repeatable; default: news.search_terms)")
	collectCmd.Flags().String("sentiment", "", "only show positivo, negativo or neutro articles")
	collectCmd.Flags().Float64("min-confidence", 0, "only show articles at or above this confidence")
	collectCmd.Flags().String("since", "", "only show articles published on or after this date (YYYY-MM-DD)")
	collectCmd.Flags().Bool("json", false, "print the snapshot as JSON")
}

// --- Serve Command (API Server) ---

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start the HTTP API server. When schedule.enabled is set (or --schedule
is given) news is collected immediately and then refreshed on the cron
schedule.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if port, _ := cmd.Flags().GetInt("port"); port > 0 {
			cfg.API.Port = port
		}
		if spec, _ := cmd.Flags().GetString("schedule"); spec != "" {
			cfg.Schedule.Enabled = true
			cfg.Schedule.Spec = spec
		}

		clf, err := newClassifier()
		if err != nil {
			return err
		}
		mon := newMonitor(clf, nil)

		if cfg.Schedule.Enabled {
			if err := mon.Start(cfg.Schedule.Spec); err != nil {
				return err
			}
			defer func() { <-mon.Stop().Done() }()

			go func() {
				if _, err := mon.Refresh(cmd.Context()); err != nil && !errors.Is(err, cmd.Context().Err()) {
					logger.WithError(err).Warn("initial news refresh failed")
				}
			}()
		}

		srv := api.NewServer(cfg, api.Options{
			Classifier: clf,
			Monitor:    mon,
			Logger:     logrus.NewEntry(logger),
			Version:    version,
		})
		fmt.Printf("🌐 Starting monitoria API server on %s\n", cfg.API.Addr())
		return srv.ListenAndServe(cmd.Context(), cfg.API.Addr())
	},
}

func init() {
	serveCmd.Flags().Int("port", 0, "listen port (default: api.port)")
	serveCmd.Flags().String("schedule", "", "refresh schedule, e.g. \"@every 30m\" (enables scheduling)")
}

// newMonitor wires the news collector and classifier. Empty terms select
// the configured search terms.
func newMonitor(clf *sentiment.Classifier, terms []string) *monitor.Monitor {
	if len(terms) == 0 {
		terms = cfg.News.SearchTerms
	}
	entry := logrus.NewEntry(logger)
	collector := news.NewCollector(news.Options{
		BaseURL:         cfg.News.BaseURL,
		Timeout:         cfg.News.Timeout(),
		MaxRetries:      cfg.News.MaxRetries,
		BackoffBase:     cfg.News.BackoffBase(),
		RequestInterval: cfg.News.RequestInterval(),
		CacheTTL:        cfg.News.CacheDuration(),
		Logger:          entry,
	})
	return monitor.New(collector, clf, monitor.Options{
		Terms:         terms,
		PerTerm:       cfg.News.MaxPerTerm,
		Workers:       cfg.Analysis.Workers,
		MinWordLength: cfg.Analysis.MinWordLength,
		MaxWords:      cfg.Analysis.MaxCloudWords,
		Logger:        entry,
	})
}
