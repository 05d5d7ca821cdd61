package main

import (
	"net/http"
	"time"

	"github.com/Simplici0/cbglow/internal/db"
)

func (s *server) handleLive(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"db": "not configured"})
		return
	}

	timeout := s.readyTimeout
	if timeout <= 0 {
		timeout = 500 * time.Millisecond
	}
	if err := db.Ping(r.Context(), s.db, timeout); err != nil {
		s.log.Warn().Err(err).Msg("readiness check failed")
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"db": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"db": "ok"})
}
