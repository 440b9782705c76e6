// Monitor IA: sentiment monitoring of Portuguese news about artificial
// intelligence in Piauí.
//
// Main CLI entrypoint using cobra command framework.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/seenimoa/monitoria/internal/config"
	"github.com/seenimoa/monitoria/internal/sentiment"
	"github.com/seenimoa/monitoria/pkg/utils"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Global config and logger, set up before any command runs.
var (
	cfg    *config.Config
	logger *logrus.Logger
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, styleError.Render("erro: ")+err.Error())
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "monitoria",
	Short: "Monitor IA: Portuguese news sentiment analysis",
	Long: `Monitor IA
Lexicon-based sentiment analysis of Portuguese text, with a news monitor
that collects Google News articles about artificial intelligence in Piauí
and classifies them as positivo, negativo or neutro.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		envFile, _ := cmd.Flags().GetString("env-file")
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", envFile, err)
		}

		var err error
		configFile, _ := cmd.Flags().GetString("config")
		if configFile != "" {
			cfg, err = config.LoadFromFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
			cfg.Logging.Level = lvl
		}
		logger, err = config.NewLogger(cfg.Logging)
		if err != nil {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("env-file", ".env", "dotenv file with MONITORIA_* overrides")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(wordfreqCmd)
	rootCmd.AddCommand(collectCmd)
	rootCmd.AddCommand(serveCmd)
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("monitoria %s\n", version)
		fmt.Printf("  commit:  %s\n", commit)
		fmt.Printf("  built:   %s\n", date)
	},
}

// --- Status Command ---

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show configuration and lexicon summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		clf, err := newClassifier()
		if err != nil {
			return err
		}
		sizes := clf.Lexicon().Sizes()

		fmt.Println(styleBanner.Render("═══════════════════════════════════════"))
		fmt.Println(styleBanner.Render("  Monitor IA Status"))
		fmt.Println(styleBanner.Render("═══════════════════════════════════════"))
		fmt.Printf("  Version:       %s (%s)\n", version, commit)
		fmt.Printf("  Time (BRT):    %s\n", utils.FormatDateTimeBRT(utils.NowBRT()))
		fmt.Println()

		fmt.Println("  Lexicon:")
		source := "built-in"
		if cfg.Analysis.LexiconFile != "" {
			source = "built-in + " + cfg.Analysis.LexiconFile
		}
		fmt.Printf("    Source:        %s\n", source)
		fmt.Printf("    Positive:      %d\n", sizes.Positive)
		fmt.Printf("    Negative:      %d\n", sizes.Negative)
		fmt.Printf("    Negations:     %d (window %d)\n", sizes.Negations, clf.NegationWindow())
		fmt.Printf("    Intensifiers:  %d\n", sizes.Intensifiers)
		fmt.Println()

		fmt.Println("  News:")
		fmt.Printf("    Feed:          %s\n", cfg.News.BaseURL)
		fmt.Printf("    Per term:      %d\n", cfg.News.MaxPerTerm)
		for _, term := range cfg.News.SearchTerms {
			fmt.Printf("    - %s\n", term)
		}
		schedule := styleDim.Render("disabled")
		if cfg.Schedule.Enabled {
			schedule = cfg.Schedule.Spec
		}
		fmt.Printf("    Schedule:      %s\n", schedule)
		fmt.Println()

		fmt.Printf("  API Server:    %s\n", cfg.API.Addr())
		fmt.Println(styleBanner.Render("═══════════════════════════════════════"))
		return nil
	},
}

// newClassifier builds the classifier from the analysis config, merging the
// optional lexicon override file over the built-in lexicon.
func newClassifier() (*sentiment.Classifier, error) {
	lex := sentiment.DefaultLexicon()
	if path := cfg.Analysis.LexiconFile; path != "" {
		var err error
		lex, err = sentiment.LoadLexiconFile(path, lex)
		if err != nil {
			return nil, err
		}
		logger.WithField("file", path).Debug("lexicon override loaded")
	}
	return sentiment.NewClassifier(lex,
		sentiment.WithNegationWindow(cfg.Analysis.NegationWindow),
		sentiment.WithLogger(logger.WithField("component", "sentiment")),
	), nil
}
