package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, logger *zap.Logger, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Warn("error encoding response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, logger *zap.Logger, status int, err error) {
	writeJSON(w, logger, status, errorResponse{Error: err.Error()})
}
