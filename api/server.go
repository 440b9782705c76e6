// Package api provides the HTTP REST API server for monitoria.
//
// It exposes endpoints for text sentiment classification, batch analysis,
// statistics, word frequencies and the monitored news snapshot.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	"github.com/seenimoa/monitoria/internal/config"
	"github.com/seenimoa/monitoria/internal/monitor"
	"github.com/seenimoa/monitoria/internal/sentiment"
	"github.com/seenimoa/monitoria/pkg/utils"
)

// MaxBatchSize caps the number of texts accepted by one batch request.
const MaxBatchSize = 1000

// Options wires the server's collaborators. Monitor may be nil, in which
// case the news endpoints answer 503.
type Options struct {
	Classifier *sentiment.Classifier
	Monitor    *monitor.Monitor
	Logger     *logrus.Entry
	Version    string
}

// Server is the HTTP API server.
type Server struct {
	router     chi.Router
	cfg        *config.Config
	classifier *sentiment.Classifier
	monitor    *monitor.Monitor
	logger     *logrus.Entry
	version    string
}

// NewServer creates a configured API server with all routes and middleware.
func NewServer(cfg *config.Config, opts Options) *Server {
	if opts.Classifier == nil {
		opts.Classifier = sentiment.NewClassifier(nil, sentiment.WithNegationWindow(cfg.Analysis.NegationWindow))
	}
	if opts.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		opts.Logger = logrus.NewEntry(l)
	}
	if opts.Version == "" {
		opts.Version = "dev"
	}

	srv := &Server{
		cfg:        cfg,
		classifier: opts.Classifier,
		monitor:    opts.Monitor,
		logger:     opts.Logger.WithField("component", "api"),
		version:    opts.Version,
	}
	srv.router = srv.buildRouter()
	return srv
}

// Router returns the chi router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}

// ListenAndServe serves HTTP on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpSrv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 150 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.WithField("addr", addr).Info("HTTP server listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}

// buildRouter configures all routes and middleware.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(120 * time.Second))

	// CORS
	origins := []string{"*"}
	if len(s.cfg.API.CORSOrigins) > 0 {
		origins = s.cfg.API.CORSOrigins
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	// Health check
	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		// Sentiment
		r.Post("/sentiment", s.handleSentiment)
		r.Post("/sentiment/batch", s.handleSentimentBatch)
		r.Post("/stats", s.handleStats)
		r.Post("/wordfreq", s.handleWordFreq)
		r.Get("/lexicon", s.handleLexicon)

		// News
		r.Get("/news", s.handleNews)
		r.Post("/news/refresh", s.handleNewsRefresh)

		// Configuration
		r.Get("/config", s.handleGetConfig)
	})

	return r
}

// requestLogger logs one line per request through logrus.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.WithFields(logrus.Fields{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"bytes":      ww.BytesWritten(),
			"elapsed":    time.Since(start).Round(time.Microsecond),
			"request_id": middleware.GetReqID(r.Context()),
		}).Debug("request")
	})
}

// ============================================================
// Request / Response types
// ============================================================

// APIResponse is the standard JSON envelope.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// SentimentRequest is the body for POST /api/v1/sentiment.
type SentimentRequest struct {
	Text      string `json:"text"`
	Sentences bool   `json:"sentences,omitempty"`
}

// SentimentResponse is a classification, optionally broken down by sentence.
type SentimentResponse struct {
	sentiment.Result
	Sentences []sentiment.SentenceResult `json:"sentences,omitempty"`
}

// BatchRequest is the body for POST /api/v1/sentiment/batch.
type BatchRequest struct {
	Texts   []string `json:"texts"`
	Workers int      `json:"workers,omitempty"`
}

// BatchResponse holds per-text results and their aggregate statistics.
type BatchResponse struct {
	Items []sentiment.BatchItem `json:"items"`
	Stats sentiment.Stats       `json:"stats"`
}

// StatsRequest is the body for POST /api/v1/stats.
type StatsRequest struct {
	Results []sentiment.Result `json:"results"`
}

// WordFreqRequest is the body for POST /api/v1/wordfreq.
type WordFreqRequest struct {
	Texts     []string `json:"texts"`
	MinLength int      `json:"min_length,omitempty"`
	MaxWords  int      `json:"max_words,omitempty"`
}

// RefreshResponse summarizes a completed news refresh.
type RefreshResponse struct {
	Articles  int             `json:"articles"`
	Stats     sentiment.Stats `json:"stats"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ============================================================
// Handlers
// ============================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	data := map[string]interface{}{
		"status":   "ok",
		"version":  s.version,
		"time_brt": utils.FormatDateTimeBRT(utils.NowBRT()),
	}
	if s.monitor != nil {
		last := "-"
		if snap := s.monitor.Snapshot(); snap != nil {
			last = utils.FormatDateTimeBRT(snap.UpdatedAt)
		}
		data["news_updated"] = last
	}
	s.writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: data})
}

func (s *Server) handleSentiment(w http.ResponseWriter, r *http.Request) {
	var req SentimentRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// An empty text is not an error: it classifies as neutral.
	resp := SentimentResponse{Result: s.classifier.Classify(req.Text)}
	if req.Sentences {
		resp.Sentences = s.classifier.ClassifySentences(req.Text)
	}

	s.writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: resp})
}

func (s *Server) handleSentimentBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Texts == nil {
		s.writeError(w, http.StatusBadRequest, "texts is required")
		return
	}
	if len(req.Texts) > MaxBatchSize {
		s.writeError(w, http.StatusRequestEntityTooLarge, "too many texts in one batch")
		return
	}

	workers := req.Workers
	if workers <= 0 {
		workers = s.cfg.Analysis.Workers
	}
	items, err := s.classifier.ClassifyBatch(r.Context(), req.Texts, workers)
	if err != nil {
		s.writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    BatchResponse{Items: items, Stats: sentiment.ComputeStats(sentiment.Results(items))},
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	var req StatsRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: sentiment.ComputeStats(req.Results)})
}

func (s *Server) handleWordFreq(w http.ResponseWriter, r *http.Request) {
	var req WordFreqRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	minLen := req.MinLength
	if minLen <= 0 {
		minLen = s.cfg.Analysis.MinWordLength
	}
	maxWords := req.MaxWords
	if maxWords <= 0 {
		maxWords = s.cfg.Analysis.MaxCloudWords
	}

	words := sentiment.TopWords(s.classifier.WordFrequency(req.Texts, minLen), maxWords)
	s.writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: words})
}

func (s *Server) handleLexicon(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"sizes":           s.classifier.Lexicon().Sizes(),
			"negation_window": s.classifier.NegationWindow(),
		},
	})
}

// ============================================================
// Helpers
// ============================================================

// decodeBody decodes a JSON request body. An empty body decodes to the
// zero value.
func decodeBody(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.WithError(err).WithField("status", status).Warn("failed to write JSON response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, APIResponse{
		Success: false,
		Error:   msg,
	})
}
