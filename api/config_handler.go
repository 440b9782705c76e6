package api

import (
	"net/http"

	"github.com/seenimoa/monitoria/internal/config"
)

// ConfigResponse is the JSON envelope returned by GET /api/v1/config.
type ConfigResponse struct {
	Config *config.Config `json:"config"`
	Terms  int            `json:"terms"`
}

// handleGetConfig returns the running configuration. It holds no secrets.
func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: ConfigResponse{
			Config: s.cfg,
			Terms:  len(s.cfg.News.SearchTerms),
		},
	})
}
