// Copyright (c) 2025 The Tangle developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package admin

import (
	"encoding/json"
	"net/http"

	"github.com/tangle-network/lrt/health"
	"github.com/tangle-network/lrt/log"
	"github.com/tangle-network/lrt/metrics"
)

type logLevelRequest struct {
	Level string `json:"level"`
}

type logLevelResponse struct {
	CurrentLevel string `json:"currentLevel"`
}

type errorResponse struct {
	ErrorCode    int    `json:"errorCode"`
	ErrorMessage string `json:"errorMessage"`
}

func writeError(w http.ResponseWriter, errCode int, errMsg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(errCode)
	json.NewEncoder(w).Encode(errorResponse{
		ErrorCode:    errCode,
		ErrorMessage: errMsg,
	})
}

func getLogLevelHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		response := logLevelResponse{
			CurrentLevel: log.GetLevel().String(),
		}
		if err := json.NewEncoder(w).Encode(response); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to encode response")
		}
	}
}

func postLogLevelHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req logLevelRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		lvl, err := log.ParseLevel(req.Level)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid verbosity level")
			return
		}
		log.SetLevel(lvl)

		w.Header().Set("Content-Type", "application/json")
		response := logLevelResponse{
			CurrentLevel: log.GetLevel().String(),
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(response)
	}
}

func healthHandler(h *health.Health) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		status, err := h.Status()
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to read health status")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if !status.Healthy {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		json.NewEncoder(w).Encode(status)
	}
}

func metricsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		handler := metrics.HTTPHandler()
		if handler == nil {
			writeError(w, http.StatusNotImplemented, "Metrics are not enabled")
			return
		}
		handler.ServeHTTP(w, r)
	}
}
