// Package news collects news articles from Google News RSS search feeds.
package news

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mmcdole/gofeed"
	"github.com/sirupsen/logrus"

	"github.com/seenimoa/monitoria/pkg/models"
	"github.com/seenimoa/monitoria/pkg/utils"
)

// --- Sentinel errors ---

// ErrNoTerms is returned when a collection is requested without terms.
var ErrNoTerms = errors.New("no search terms")

// ErrEmptyTerm is returned when a search term is blank.
var ErrEmptyTerm = errors.New("empty search term")

// ErrHTTP wraps a non-2xx feed response.
type ErrHTTP struct {
	StatusCode int
	Status     string
}

func (e *ErrHTTP) Error() string {
	return fmt.Sprintf("HTTP %d %s", e.StatusCode, e.Status)
}

// Temporary reports whether retrying the request may succeed.
func (e *ErrHTTP) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// --- Collector ---

const (
	// DefaultBaseURL is the Google News RSS search endpoint.
	DefaultBaseURL = "https://news.google.com/rss/search"

	// MaxItemsPerTerm caps how many feed items are read per term.
	MaxItemsPerTerm = 50

	// DefaultUserAgent is sent with every feed request.
	DefaultUserAgent = "Mozilla/5.0 (compatible; monitoria/1.0; +https://github.com/seenimoa/monitoria)"
)

// Options configures a Collector. Zero values select the defaults.
type Options struct {
	BaseURL         string
	Timeout         time.Duration // per request, default 15s
	MaxRetries      int           // attempts per term, default 3
	BackoffBase     time.Duration // delay before retry n is BackoffBase * 2^n, default 1s
	RequestInterval time.Duration // minimum spacing between requests, 0 disables
	CacheTTL        time.Duration // 0 disables caching
	HTTPClient      *http.Client
	Logger          *logrus.Entry
}

// Collector fetches and normalizes news for search terms.
type Collector struct {
	baseURL     string
	maxRetries  int
	backoffBase time.Duration
	parser      *gofeed.Parser
	cache       *Cache[[]models.NewsArticle]
	limiter     *RateLimiter
	logger      *logrus.Entry
	now         func() time.Time
}

// NewCollector creates a collector from opts.
func NewCollector(opts Options) *Collector {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = 3
	}
	if opts.BackoffBase <= 0 {
		opts.BackoffBase = time.Second
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: opts.Timeout}
	}
	if opts.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		opts.Logger = logrus.NewEntry(l)
	}

	parser := gofeed.NewParser()
	parser.Client = opts.HTTPClient
	parser.UserAgent = DefaultUserAgent

	return &Collector{
		baseURL:     opts.BaseURL,
		maxRetries:  opts.MaxRetries,
		backoffBase: opts.BackoffBase,
		parser:      parser,
		cache:       NewCache[[]models.NewsArticle](opts.CacheTTL),
		limiter:     NewRateLimiter(1, opts.RequestInterval),
		logger:      opts.Logger.WithField("component", "news"),
		now:         utils.NowBRT,
	}
}

// SearchURL returns the feed URL for term.
func (c *Collector) SearchURL(term string) string {
	q := url.Values{}
	q.Set("q", term)
	q.Set("hl", "pt-BR")
	q.Set("gl", "BR")
	q.Set("ceid", "BR:pt")
	return c.baseURL + "?" + q.Encode()
}

// FetchTerm returns up to limit articles for term (MaxItemsPerTerm when
// limit <= 0 or larger). Failed requests are retried with exponential
// backoff; the last error is returned once attempts are exhausted.
func (c *Collector) FetchTerm(ctx context.Context, term string, limit int) ([]models.NewsArticle, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, ErrEmptyTerm
	}
	if limit <= 0 || limit > MaxItemsPerTerm {
		limit = MaxItemsPerTerm
	}

	cacheKey := fmt.Sprintf("term:%s:%d", strings.ToLower(term), limit)
	if cached, ok := c.cache.Get(cacheKey); ok {
		return cached, nil
	}

	log := c.logger.WithField("term", term)
	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			delay := c.backoffBase << (attempt - 1)
			log.WithFields(logrus.Fields{"attempt": attempt + 1, "delay": delay}).Debug("retrying feed")
			if err := sleepCtx(ctx, delay); err != nil {
				return nil, err
			}
		}

		articles, err := c.fetchOnce(ctx, term, limit)
		if err == nil {
			c.cache.Set(cacheKey, articles)
			log.WithField("articles", len(articles)).Debug("feed fetched")
			return articles, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		var httpErr *ErrHTTP
		if errors.As(err, &httpErr) && !httpErr.Temporary() {
			break
		}
		log.WithError(err).WithField("attempt", attempt+1).Warn("feed request failed")
	}

	return nil, fmt.Errorf("fetch %q: %w", term, lastErr)
}

// CollectAll fetches every term in order, skipping terms that fail. Articles
// found under several terms are kept once, under the first term. The result
// is sorted newest first. An error is returned only when ctx is cancelled or
// every term failed.
func (c *Collector) CollectAll(ctx context.Context, terms []string, perTerm int) ([]models.NewsArticle, error) {
	if len(terms) == 0 {
		return nil, ErrNoTerms
	}

	var (
		all  []models.NewsArticle
		seen = make(map[string]struct{})
		errs []error
	)
	for _, term := range terms {
		articles, err := c.FetchTerm(ctx, term, perTerm)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			c.logger.WithError(err).WithField("term", term).Warn("skipping term")
			errs = append(errs, err)
			continue
		}
		for _, a := range articles {
			if _, dup := seen[a.ID]; dup {
				continue
			}
			seen[a.ID] = struct{}{}
			all = append(all, a)
		}
	}

	if len(errs) == len(terms) {
		return nil, fmt.Errorf("all %d terms failed: %w", len(terms), errors.Join(errs...))
	}

	sortArticlesByDate(all)
	c.logger.WithFields(logrus.Fields{"terms": len(terms), "failed": len(errs), "articles": len(all)}).
		Info("news collected")
	return all, nil
}

// Flush drops every cached feed, so the next fetch of each term goes to
// the network.
func (c *Collector) Flush() {
	c.cache.Flush()
	c.logger.Debug("feed cache flushed")
}

// Prune drops expired cached feeds and reports how many were removed.
func (c *Collector) Prune() int {
	return c.cache.Cleanup()
}

// --- Internal helpers ---

func (c *Collector) fetchOnce(ctx context.Context, term string, limit int) ([]models.NewsArticle, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	feed, err := c.parser.ParseURLWithContext(c.SearchURL(term), ctx)
	if err != nil {
		var he gofeed.HTTPError
		if errors.As(err, &he) {
			return nil, &ErrHTTP{StatusCode: he.StatusCode, Status: he.Status}
		}
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	collected := c.now()
	articles := make([]models.NewsArticle, 0, min(len(feed.Items), limit))
	for _, item := range feed.Items {
		if len(articles) == limit {
			break
		}
		if a, ok := toArticle(item, term, collected); ok {
			articles = append(articles, a)
		}
	}
	return articles, nil
}

// toArticle maps a feed item to an article. The publisher suffix of a
// Google News headline is moved to Source and kept out of FullText, so it
// never reaches sentiment scoring or word counts.
func toArticle(item *gofeed.Item, term string, collected time.Time) (models.NewsArticle, bool) {
	title := CleanText(item.Title)
	if title == "" {
		return models.NewsArticle{}, false
	}
	desc := CleanText(item.Description)
	headline, source := splitSource(title)

	key := item.Link
	if key == "" {
		key = term + "\x00" + title
	}

	a := models.NewsArticle{
		ID:          uuid.NewSHA1(uuid.NameSpaceURL, []byte(key)).String(),
		Term:        term,
		Title:       headline,
		URL:         item.Link,
		Description: desc,
		Source:      source,
		CollectedAt: collected,
		FullText:    strings.TrimSpace(headline + " " + strings.TrimSuffix(desc, source)),
	}
	if item.PublishedParsed != nil {
		a.PublishedAt = utils.ToBRT(*item.PublishedParsed)
	}
	return a, true
}

// sortArticlesByDate sorts articles newest first; undated articles go last.
func sortArticlesByDate(articles []models.NewsArticle) {
	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].PublishedAt.After(articles[j].PublishedAt)
	})
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
