package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/AnshRaj112/evolve-backend/internal/services"
	"github.com/AnshRaj112/evolve-backend/internal/store"
	"github.com/AnshRaj112/evolve-backend/internal/wellbeing"
)

// Dependencies are shared by every handler. Insights, Notifications and Hub
// are optional.
type Dependencies struct {
	Store          store.Store
	Sessions       services.Sessions
	Pipeline       *services.JournalPipeline
	Weekly         *wellbeing.WeeklyAnalyzer
	Insights       services.InsightsCache
	Notifications  services.NotificationStore
	Hub            *services.NotificationHub
	AllowedOrigins []string
	Logger         *zap.Logger
}

var deps Dependencies

// Init sets the dependencies used by all handlers. Call it before serving.
func Init(d Dependencies) {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	deps = d
}

// maxBodyBytes caps request bodies; journal content is at most 5000 characters.
const maxBodyBytes = 64 * 1024

type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Success: false, Message: message})
}

// maxAudioBodyBytes admits a meditation with a few minutes of inline 24kHz audio.
const maxAudioBodyBytes = 16 << 20

// decodeBody reads a JSON body into dst, writing a 400 on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	return decodeBodyLimit(w, r, dst, maxBodyBytes)
}

// decodeBodyLimit is decodeBody with a caller-chosen size cap.
func decodeBodyLimit(w http.ResponseWriter, r *http.Request, dst interface{}, limit int64) bool {
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// writeServiceError maps domain errors to status codes.
func writeServiceError(w http.ResponseWriter, err error, fallback string) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, verr.Message)
	case errors.Is(err, services.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "Authentication required")
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, store.ErrConflict):
		writeError(w, http.StatusConflict, "Already exists")
	default:
		deps.Logger.Error(fallback, zap.Error(err))
		writeError(w, http.StatusInternalServerError, fallback)
	}
}

// queryInt parses a non-negative integer query parameter, clamped to max.
func queryInt(r *http.Request, key string, def, max int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	if max > 0 && n > max {
		return max
	}
	return n
}
