package news

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const feedTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
<title>%s - Google Notícias</title>
<link>https://news.google.com</link>
<description>Google Notícias</description>
%s
</channel>
</rss>`

type feedItem struct {
	title, link, desc, pub string
}

func renderFeed(term string, items ...feedItem) string {
	var b strings.Builder
	for _, it := range items {
		fmt.Fprintf(&b, "<item><title>%s</title><link>%s</link><description><![CDATA[%s]]></description><pubDate>%s</pubDate></item>\n",
			it.title, it.link, it.desc, it.pub)
	}
	return fmt.Sprintf(feedTemplate, term, b.String())
}

func testCollector(t *testing.T, srvURL string, opts Options) *Collector {
	t.Helper()
	opts.BaseURL = srvURL
	if opts.BackoffBase == 0 {
		opts.BackoffBase = time.Millisecond
	}
	return NewCollector(opts)
}

// ════════════════════════════════════════════════════════════════════
// FetchTerm
// ════════════════════════════════════════════════════════════════════

func TestFetchTerm(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, renderFeed("IA Piauí",
			feedItem{
				title: "Piauí lança plano de inteligência artificial - Portal O Dia",
				link:  "https://example.com/a",
				desc:  `<a href="https://example.com/a">Piauí lança plano</a>&nbsp;<font color="#6f6f6f">Portal O Dia</font>`,
				pub:   "Mon, 10 Mar 2025 15:00:00 GMT",
			},
			feedItem{title: "   ", link: "https://example.com/blank", pub: "Mon, 10 Mar 2025 14:00:00 GMT"},
			feedItem{title: "Segunda notícia", link: "https://example.com/b", desc: "texto", pub: "Mon, 10 Mar 2025 13:00:00 GMT"},
		))
	}))
	defer srv.Close()

	c := testCollector(t, srv.URL, Options{})
	articles, err := c.FetchTerm(context.Background(), "IA Piauí", 5)
	require.NoError(t, err)

	assert.Equal(t, "IA Piauí", gotQuery.Get("q"))
	assert.Equal(t, "pt-BR", gotQuery.Get("hl"))
	assert.Equal(t, "BR", gotQuery.Get("gl"))
	assert.Equal(t, "BR:pt", gotQuery.Get("ceid"))

	require.Len(t, articles, 2, "blank titles are dropped")
	a := articles[0]
	assert.Equal(t, "IA Piauí", a.Term)
	assert.Equal(t, "Piauí lança plano de inteligência artificial", a.Title)
	assert.Equal(t, "Portal O Dia", a.Source)
	assert.Equal(t, "https://example.com/a", a.URL)
	assert.Equal(t, "Piauí lança plano Portal O Dia", a.Description)
	assert.Equal(t, "Piauí lança plano de inteligência artificial Piauí lança plano", a.FullText)
	assert.NotContains(t, a.FullText, "Portal O Dia")
	assert.Equal(t, 12, a.PublishedAt.Hour(), "published time is converted to BRT")
	assert.False(t, a.CollectedAt.IsZero())
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, articles[1].ID)
}

func TestFetchTerm_StableIDs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, renderFeed("x", feedItem{title: "Notícia", link: "https://example.com/n"}))
	}))
	defer srv.Close()

	first, err := testCollector(t, srv.URL, Options{}).FetchTerm(context.Background(), "x", 1)
	require.NoError(t, err)
	second, err := testCollector(t, srv.URL, Options{}).FetchTerm(context.Background(), "outro", 1)
	require.NoError(t, err)
	assert.Equal(t, first[0].ID, second[0].ID)
}

func TestFetchTerm_Limit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		items := make([]feedItem, 60)
		for i := range items {
			items[i] = feedItem{title: fmt.Sprintf("Notícia %d", i), link: fmt.Sprintf("https://example.com/%d", i)}
		}
		fmt.Fprint(w, renderFeed("x", items...))
	}))
	defer srv.Close()

	c := testCollector(t, srv.URL, Options{})
	got, err := c.FetchTerm(context.Background(), "x", 3)
	require.NoError(t, err)
	assert.Len(t, got, 3)

	got, err = c.FetchTerm(context.Background(), "x", 0)
	require.NoError(t, err)
	assert.Len(t, got, MaxItemsPerTerm)
}

func TestFetchTerm_RetriesThenSucceeds(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 3 {
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, renderFeed("x", feedItem{title: "Enfim", link: "https://example.com/ok"}))
	}))
	defer srv.Close()

	got, err := testCollector(t, srv.URL, Options{MaxRetries: 3}).FetchTerm(context.Background(), "x", 5)
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, int32(3), hits.Load())
}

func TestFetchTerm_RetriesExhausted(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := testCollector(t, srv.URL, Options{MaxRetries: 2}).FetchTerm(context.Background(), "x", 5)
	require.Error(t, err)
	assert.Equal(t, int32(2), hits.Load())
}

func TestFetchTerm_EmptyTerm(t *testing.T) {
	_, err := NewCollector(Options{}).FetchTerm(context.Background(), "  ", 5)
	assert.ErrorIs(t, err, ErrEmptyTerm)
}

func TestFetchTerm_Cached(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		fmt.Fprint(w, renderFeed("x", feedItem{title: "Notícia", link: "https://example.com/n"}))
	}))
	defer srv.Close()

	c := testCollector(t, srv.URL, Options{CacheTTL: time.Minute})
	for i := 0; i < 3; i++ {
		_, err := c.FetchTerm(context.Background(), "x", 5)
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), hits.Load())
}

func TestCollector_Flush(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := hits.Add(1)
		fmt.Fprint(w, renderFeed("x", feedItem{title: fmt.Sprintf("Notícia %d", n), link: fmt.Sprintf("https://example.com/%d", n)}))
	}))
	defer srv.Close()

	c := testCollector(t, srv.URL, Options{CacheTTL: time.Hour})
	first, err := c.FetchTerm(context.Background(), "x", 5)
	require.NoError(t, err)

	c.Flush()
	second, err := c.FetchTerm(context.Background(), "x", 5)
	require.NoError(t, err)

	assert.Equal(t, int32(2), hits.Load())
	assert.Equal(t, "Notícia 1", first[0].Title)
	assert.Equal(t, "Notícia 2", second[0].Title)
}

func TestCollector_Prune(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, renderFeed("x", feedItem{title: "Notícia", link: "https://example.com/n"}))
	}))
	defer srv.Close()

	c := testCollector(t, srv.URL, Options{CacheTTL: 10 * time.Millisecond})
	_, err := c.FetchTerm(context.Background(), "x", 5)
	require.NoError(t, err)
	_, err = c.FetchTerm(context.Background(), "y", 5)
	require.NoError(t, err)
	assert.Zero(t, c.Prune(), "entries are still fresh")

	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, 2, c.Prune())
}

func TestFetchTerm_Cancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "slow down", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := testCollector(t, srv.URL, Options{}).FetchTerm(ctx, "x", 5)
	assert.ErrorIs(t, err, context.Canceled)
}

// ════════════════════════════════════════════════════════════════════
// CollectAll
// ════════════════════════════════════════════════════════════════════

func TestCollectAll(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("q") {
		case "IA Piauí":
			fmt.Fprint(w, renderFeed("IA Piauí",
				feedItem{title: "Antiga", link: "https://example.com/old", pub: "Mon, 03 Mar 2025 10:00:00 GMT"},
				feedItem{title: "Compartilhada", link: "https://example.com/shared", pub: "Tue, 04 Mar 2025 10:00:00 GMT"},
			))
		case "SIA Piauí":
			fmt.Fprint(w, renderFeed("SIA Piauí",
				feedItem{title: "Compartilhada", link: "https://example.com/shared", pub: "Tue, 04 Mar 2025 10:00:00 GMT"},
				feedItem{title: "Nova", link: "https://example.com/new", pub: "Wed, 05 Mar 2025 10:00:00 GMT"},
			))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := testCollector(t, srv.URL, Options{MaxRetries: 1})
	got, err := c.CollectAll(context.Background(), []string{"IA Piauí", "SIA Piauí", "Desconhecido"}, 5)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "Nova", got[0].Title)
	assert.Equal(t, "Compartilhada", got[1].Title)
	assert.Equal(t, "IA Piauí", got[1].Term, "duplicates keep the first term")
	assert.Equal(t, "Antiga", got[2].Title)
}

func TestCollectAll_Errors(t *testing.T) {
	_, err := NewCollector(Options{}).CollectAll(context.Background(), nil, 5)
	assert.ErrorIs(t, err, ErrNoTerms)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer srv.Close()

	_, err = testCollector(t, srv.URL, Options{MaxRetries: 1}).CollectAll(context.Background(), []string{"a", "b"}, 5)
	assert.Error(t, err)
}

// ════════════════════════════════════════════════════════════════════
// Helpers
// ════════════════════════════════════════════════════════════════════

func TestCleanText(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"Texto   simples", "Texto simples"},
		{"<b>IA</b> no <i>Piauí</i>", "IA no Piauí"},
		{"Inovação &amp; tecnologia", "Inovação tecnologia"},
		{"Preço: R$ 10,50 (estimado) #tag", "Preço: R 10,50 estimado tag"},
		{"Olá! Tudo bem? Sim - claro.", "Olá! Tudo bem? Sim - claro."},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, CleanText(tc.in), tc.in)
	}
}

func TestSplitSource(t *testing.T) {
	h, s := splitSource("Governo anuncia IA - G1")
	assert.Equal(t, "Governo anuncia IA", h)
	assert.Equal(t, "G1", s)

	h, s = splitSource("Sem fonte")
	assert.Equal(t, "Sem fonte", h)
	assert.Empty(t, s)
}

func TestErrHTTP(t *testing.T) {
	e := &ErrHTTP{StatusCode: 503, Status: "503 Service Unavailable"}
	assert.True(t, e.Temporary())
	assert.Contains(t, e.Error(), "503")
	assert.False(t, (&ErrHTTP{StatusCode: 404}).Temporary())
}
