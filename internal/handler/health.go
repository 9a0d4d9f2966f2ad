// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"time"
)

// healthPingTimeout bounds the database check.
const healthPingTimeout = 2 * time.Second

// HealthHandler handles health check requests.
type HealthHandler struct {
	db *sql.DB
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(db *sql.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// HealthStatus is the health response body.
type HealthStatus struct {
	Status string `json:"status"`
}

// Health handles GET /health. It answers 503 when the database does not
// respond to a ping.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
	defer cancel()

	w.Header().Set("Cache-Control", "no-store")
	if err := h.db.PingContext(ctx); err != nil {
		slog.WarnContext(r.Context(), "health check failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, HealthStatus{Status: "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, HealthStatus{Status: "ok"})
}
