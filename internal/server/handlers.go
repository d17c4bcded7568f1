package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"decathlonminds/internal/core"
	"decathlonminds/internal/feed"
)

// HealthResponse is the /health payload.
type HealthResponse struct {
	Status    string `json:"status"`
	CacheSize int    `json:"cacheSize"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		CacheSize: s.cache.Len(),
	})
}

// handleGetFeed assembles a feed from query parameters.
func (s *Server) handleGetFeed(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := feed.Request{
		Mood:   q.Get("mood"),
		Reason: q.Get("reason"),
	}
	if raw := q.Get("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "count must be an integer")
			return
		}
		req.Count = n
	}
	req.Refresh = q.Get("refresh") == "true" || q.Get("refresh") == "1"

	s.assembleAndRespond(w, r, req)
}

// handlePostFeed assembles a feed from a JSON body.
func (s *Server) handlePostFeed(w http.ResponseWriter, r *http.Request) {
	var req feed.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	s.assembleAndRespond(w, r, req)
}

func (s *Server) assembleAndRespond(w http.ResponseWriter, r *http.Request, req feed.Request) {
	resp, err := s.assembler.Assemble(r.Context(), req)
	if err != nil {
		s.log.Error("feed assembly failed", "error", err)
		s.respondError(w, http.StatusInternalServerError, "feed assembly failed")
		return
	}
	s.respondJSON(w, http.StatusOK, resp)
}

// handleArticles serves the bulk science feed built from the RSS sources.
func (s *Server) handleArticles(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit := 0
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		limit = n
	}

	items, err := s.assembler.AssembleScientific(r.Context(), q.Get("mood"), q.Get("reason"), limit)
	if err != nil {
		if errors.Is(err, feed.ErrAllSourcesFailed) {
			s.respondError(w, http.StatusBadGateway, "article sources are unavailable")
			return
		}
		s.log.Error("article feed failed", "error", err)
		s.respondError(w, http.StatusInternalServerError, "article feed failed")
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"items": core.ItemList(items),
		"count": len(items),
	})
}

// handleImageCheck probes whether an image URL is reachable.
func (s *Server) handleImageCheck(w http.ResponseWriter, r *http.Request) {
	url := r.URL.Query().Get("url")
	if url == "" {
		s.respondError(w, http.StatusBadRequest, "url parameter is required")
		return
	}
	s.respondJSON(w, http.StatusOK, s.checker.CheckAccessibility(r.Context(), url))
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error("failed to encode JSON response", "error", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]any{
		"error": map[string]any{
			"status":  status,
			"message": message,
		},
	})
}
