package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/itchan-dev/threadboard/shared/logger"
)

const readyTimeout = 2 * time.Second

func writePlain(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	w.Write([]byte(body))
}

// Health answers liveness checks without touching the database.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writePlain(w, http.StatusOK, "ok")
}

// Ready pings the database and reports 503 when it does not answer within readyTimeout.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	if err := h.health.Ping(ctx); err != nil {
		logger.Log.Warn("readiness check failed", "error", err)
		writePlain(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	writePlain(w, http.StatusOK, "ok")
}
