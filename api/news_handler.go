package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/seenimoa/monitoria/internal/monitor"
	"github.com/seenimoa/monitoria/internal/sentiment"
	"github.com/seenimoa/monitoria/pkg/utils"
)

// refreshTimeout bounds a manual news refresh.
const refreshTimeout = 110 * time.Second

// handleNews returns the latest news snapshot narrowed by the query
// parameters sentiment, term, min_confidence and since (YYYY-MM-DD or an
// RFC 3339 timestamp, counted from midnight BRT).
func (s *Server) handleNews(w http.ResponseWriter, r *http.Request) {
	if s.monitor == nil {
		s.writeError(w, http.StatusServiceUnavailable, "news monitoring is not enabled")
		return
	}

	f, err := s.parseFilter(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	view := s.monitor.View(f)
	if view == nil {
		s.writeError(w, http.StatusServiceUnavailable, "news not collected yet")
		return
	}
	s.writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: view})
}

// handleNewsRefresh collects news right away, bypassing the feed cache.
func (s *Server) handleNewsRefresh(w http.ResponseWriter, r *http.Request) {
	if s.monitor == nil {
		s.writeError(w, http.StatusServiceUnavailable, "news monitoring is not enabled")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), refreshTimeout)
	defer cancel()

	snap, err := s.monitor.ForceRefresh(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("manual refresh failed")
		s.writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: RefreshResponse{
			Articles:  len(snap.Articles),
			Stats:     snap.Stats,
			UpdatedAt: snap.UpdatedAt,
		},
	})
}

func (s *Server) parseFilter(r *http.Request) (monitor.Filter, error) {
	q := r.URL.Query()
	f := monitor.Filter{
		Term:          q.Get("term"),
		MinConfidence: s.cfg.Analysis.MinConfidence,
	}

	if v := q.Get("sentiment"); v != "" {
		label := sentiment.Label(v)
		if !label.Valid() {
			return f, errors.New("invalid sentiment; use positivo, negativo or neutro")
		}
		f.Label = label
	}

	if v := q.Get("min_confidence"); v != "" {
		c, err := strconv.ParseFloat(v, 64)
		if err != nil || c < 0 || c > 1 {
			return f, errors.New("min_confidence must be a number within [0, 1]")
		}
		f.MinConfidence = c
	}

	if v := q.Get("since"); v != "" {
		t, err := utils.ParseSinceBRT(v)
		if err != nil {
			return f, errors.New("invalid since date; use YYYY-MM-DD or an RFC 3339 timestamp")
		}
		f.Since = t
	}

	return f, nil
}
