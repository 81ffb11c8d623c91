package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/smartcram/smartcram-api/config"
	"github.com/smartcram/smartcram-api/generation"
	"github.com/smartcram/smartcram-api/transfer"
)

// DBHandler bundles the dependencies every endpoint needs.
type DBHandler struct {
	DB  *gorm.DB
	Gen *generation.Generator
	Cfg *config.Config
	Log *zap.SugaredLogger
}

// genContext bounds the completion round trip so a stuck upstream call
// cannot hold the request open indefinitely.
func (h *DBHandler) genContext(r *http.Request) (context.Context, context.CancelFunc) {
	timeout := h.Cfg.GenTimeout
	if timeout <= 0 {
		timeout = 45 * time.Second
	}
	return context.WithTimeout(r.Context(), timeout)
}

// pagination reads skip/limit query parameters with the list defaults.
func pagination(r *http.Request) (skip, limit int) {
	limit = 50
	if v, err := strconv.Atoi(r.URL.Query().Get("skip")); err == nil && v > 0 {
		skip = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 && v <= 100 {
		limit = v
	}
	return skip, limit
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// writeError maps the error taxonomy to status codes so the frontend can
// tell "try again" failures from "fix your input" ones.
func (h *DBHandler) writeError(w http.ResponseWriter, err error) {
	var invalidInput *generation.InvalidInputError
	var unavailable *generation.UnavailableError
	var malformed *generation.MalformedError
	var invalidDoc *transfer.InvalidDocumentError

	switch {
	case errors.As(err, &invalidInput):
		http.Error(w, invalidInput.Error(), http.StatusBadRequest)
	case errors.As(err, &invalidDoc):
		http.Error(w, invalidDoc.Error(), http.StatusBadRequest)
	case errors.As(err, &unavailable):
		h.Log.Warnw("completion service unavailable", "error", err)
		http.Error(w, "Generation service unavailable, please try again", http.StatusBadGateway)
	case errors.As(err, &malformed):
		h.Log.Warnw("completion output rejected", "error", err)
		http.Error(w, "Generated content failed validation, please try again", http.StatusBadGateway)
	case errors.Is(err, gorm.ErrRecordNotFound):
		http.Error(w, "Not found", http.StatusNotFound)
	default:
		h.Log.Errorw("internal error", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
