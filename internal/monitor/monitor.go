// Package monitor ties news collection to sentiment classification and
// keeps the latest analyzed snapshot available to readers.
package monitor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/seenimoa/monitoria/internal/sentiment"
	"github.com/seenimoa/monitoria/pkg/models"
	"github.com/seenimoa/monitoria/pkg/utils"
)

// ErrAlreadyStarted is returned by Start when a schedule is already running.
var ErrAlreadyStarted = errors.New("monitor already started")

// Source provides news articles for a set of search terms.
type Source interface {
	CollectAll(ctx context.Context, terms []string, perTerm int) ([]models.NewsArticle, error)
}

// CachingSource is a Source that keeps fetched results for a while.
// Flush drops everything; Prune drops only expired results and reports
// how many were removed.
type CachingSource interface {
	Source
	Flush()
	Prune() int
}

// Options configures a Monitor.
type Options struct {
	Terms         []string
	PerTerm       int
	Workers       int
	MinWordLength int
	MaxWords      int
	Logger        *logrus.Entry
}

// Snapshot is the result of one refresh.
type Snapshot struct {
	Articles  []models.AnalyzedArticle `json:"articles"`
	Stats     sentiment.Stats          `json:"stats"`
	Words     []sentiment.WordCount    `json:"words"`
	Terms     []string                 `json:"terms"`
	UpdatedAt time.Time                `json:"updated_at"`
}

// Monitor periodically collects and classifies news.
type Monitor struct {
	source     Source
	classifier *sentiment.Classifier
	opts       Options
	logger     *logrus.Entry

	current atomic.Pointer[Snapshot]
	refresh sync.Mutex

	cronMu sync.Mutex
	cron   *cron.Cron

	now func() time.Time
}

// New creates a monitor. Refresh must be called (directly or via Start)
// before a snapshot is available.
func New(source Source, classifier *sentiment.Classifier, opts Options) *Monitor {
	if opts.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		opts.Logger = logrus.NewEntry(l)
	}
	if opts.MinWordLength <= 0 {
		opts.MinWordLength = sentiment.DefaultMinWordLength
	}
	if opts.MaxWords <= 0 {
		opts.MaxWords = sentiment.DefaultMaxWords
	}
	return &Monitor{
		source:     source,
		classifier: classifier,
		opts:       opts,
		logger:     opts.Logger.WithField("component", "monitor"),
		now:        utils.NowBRT,
	}
}

// Snapshot returns the latest snapshot, or nil before the first refresh.
func (m *Monitor) Snapshot() *Snapshot {
	return m.current.Load()
}

// Refresh collects news, classifies every article and publishes a new
// snapshot. Concurrent calls are serialized. On failure the previous
// snapshot stays in place. A caching source may answer from its cache.
func (m *Monitor) Refresh(ctx context.Context) (*Snapshot, error) {
	m.refresh.Lock()
	defer m.refresh.Unlock()
	return m.collect(ctx)
}

// ForceRefresh is Refresh with the source cache flushed first, so every
// term is fetched again.
func (m *Monitor) ForceRefresh(ctx context.Context) (*Snapshot, error) {
	m.refresh.Lock()
	defer m.refresh.Unlock()
	if cs, ok := m.source.(CachingSource); ok {
		cs.Flush()
	}
	return m.collect(ctx)
}

// scheduledRefresh is the cron job: expired cache entries are pruned and
// the snapshot refreshed.
func (m *Monitor) scheduledRefresh() {
	if cs, ok := m.source.(CachingSource); ok {
		if n := cs.Prune(); n > 0 {
			m.logger.WithField("entries", n).Debug("pruned expired feed cache")
		}
	}
	if _, err := m.Refresh(context.Background()); err != nil {
		m.logger.WithError(err).Warn("scheduled refresh failed")
	}
}

func (m *Monitor) collect(ctx context.Context) (*Snapshot, error) {
	start := time.Now()
	articles, err := m.source.CollectAll(ctx, m.opts.Terms, m.opts.PerTerm)
	if err != nil {
		return nil, fmt.Errorf("collect news: %w", err)
	}

	snap, err := m.analyze(ctx, articles)
	if err != nil {
		return nil, err
	}
	m.current.Store(snap)

	m.logger.WithFields(logrus.Fields{
		"articles": len(snap.Articles),
		"counts":   snap.Stats.Counts,
		"elapsed":  time.Since(start).Round(time.Millisecond),
	}).Info("snapshot refreshed")
	return snap, nil
}

func (m *Monitor) analyze(ctx context.Context, articles []models.NewsArticle) (*Snapshot, error) {
	texts := make([]string, len(articles))
	for i, a := range articles {
		texts[i] = a.FullText
	}

	items, err := m.classifier.ClassifyBatch(ctx, texts, m.opts.Workers)
	if err != nil {
		return nil, fmt.Errorf("classify news: %w", err)
	}

	analyzed := make([]models.AnalyzedArticle, len(articles))
	for i, it := range items {
		analyzed[i] = models.AnalyzedArticle{
			NewsArticle:   articles[i],
			Sentiment:     string(it.Sentiment),
			Confidence:    it.Confidence,
			PositiveWords: it.Details.PositiveWords,
			NegativeWords: it.Details.NegativeWords,
		}
	}

	return m.summarize(analyzed, m.now()), nil
}

// summarize builds a snapshot over already analyzed articles.
func (m *Monitor) summarize(articles []models.AnalyzedArticle, at time.Time) *Snapshot {
	results := make([]sentiment.Result, len(articles))
	texts := make([]string, len(articles))
	termSet := make(map[string]struct{})
	terms := []string{}
	for i, a := range articles {
		results[i] = sentiment.Result{Sentiment: sentiment.Label(a.Sentiment), Confidence: a.Confidence}
		texts[i] = a.FullText
		if _, ok := termSet[a.Term]; !ok {
			termSet[a.Term] = struct{}{}
			terms = append(terms, a.Term)
		}
	}

	return &Snapshot{
		Articles:  articles,
		Stats:     sentiment.ComputeStats(results),
		Words:     sentiment.TopWords(m.classifier.WordFrequency(texts, m.opts.MinWordLength), m.opts.MaxWords),
		Terms:     terms,
		UpdatedAt: at,
	}
}

// Filter narrows the articles shown to readers. Zero fields match
// everything.
type Filter struct {
	Label         sentiment.Label
	Term          string
	MinConfidence float64
	Since         time.Time
}

// Match reports whether a passes every criterion of f.
func (f Filter) Match(a models.AnalyzedArticle) bool {
	if f.Label != "" && sentiment.Label(a.Sentiment) != f.Label {
		return false
	}
	if f.Term != "" && !strings.EqualFold(a.Term, f.Term) {
		return false
	}
	if a.Confidence < f.MinConfidence {
		return false
	}
	if !f.Since.IsZero() && a.PublishedAt.Before(f.Since) {
		return false
	}
	return true
}

// FilterArticles returns the articles matching f, preserving order.
func FilterArticles(articles []models.AnalyzedArticle, f Filter) []models.AnalyzedArticle {
	out := make([]models.AnalyzedArticle, 0, len(articles))
	for _, a := range articles {
		if f.Match(a) {
			out = append(out, a)
		}
	}
	return out
}

// View returns the latest snapshot restricted to f, with statistics and
// word frequencies recomputed over the matching articles. It returns nil
// before the first refresh.
func (m *Monitor) View(f Filter) *Snapshot {
	snap := m.Snapshot()
	if snap == nil {
		return nil
	}
	view := m.summarize(FilterArticles(snap.Articles, f), snap.UpdatedAt)
	view.Terms = snap.Terms
	return view
}

// Start schedules Refresh according to spec, a standard five-field cron
// expression or a descriptor such as "@every 1h". Overlapping runs are
// skipped.
func (m *Monitor) Start(spec string) error {
	m.cronMu.Lock()
	defer m.cronMu.Unlock()
	if m.cron != nil {
		return ErrAlreadyStarted
	}

	cronLog := cron.PrintfLogger(m.logger.WithField("scheduler", "cron"))
	c := cron.New(
		cron.WithLocation(utils.BRT),
		cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)),
	)
	if _, err := c.AddFunc(spec, m.scheduledRefresh); err != nil {
		return fmt.Errorf("schedule %q: %w", spec, err)
	}

	c.Start()
	m.cron = c
	m.logger.WithField("spec", spec).Info("refresh scheduled")
	return nil
}

// Stop halts the schedule. The returned context is done once a running
// refresh has finished.
func (m *Monitor) Stop() context.Context {
	m.cronMu.Lock()
	defer m.cronMu.Unlock()
	if m.cron == nil {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		return ctx
	}
	ctx := m.cron.Stop()
	m.cron = nil
	return ctx
}
