// Package server exposes the word checker over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/gorilla/mux"

	"github.com/at-ishikawa/wordcheck/internal/dictionary"
)

// WordChecker is the part of dictionary.Service used by the handlers.
type WordChecker interface {
	CheckWord(ctx context.Context, rawWord string) (bool, error)
	Stats() dictionary.Stats
}

type CheckWordResponse struct {
	IsValid bool `json:"isValid"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type PingResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	dictionary.Stats
}

// WordHandler serves /check-word/{word} and /ping.
type WordHandler struct {
	checker WordChecker
}

func NewWordHandler(checker WordChecker) *WordHandler {
	return &WordHandler{
		checker: checker,
	}
}

// Router returns the routes of the handler. CORS is applied by the caller
// so that preflight requests reach it before route matching.
//
// Routes match on the encoded path so that a word may contain "%2F".
func (h *WordHandler) Router() *mux.Router {
	router := mux.NewRouter()
	router.UseEncodedPath()
	router.HandleFunc("/check-word/{word}", h.CheckWord).Methods(http.MethodGet)
	router.HandleFunc("/ping", h.Ping).Methods(http.MethodGet)
	return router
}

func (h *WordHandler) CheckWord(w http.ResponseWriter, r *http.Request) {
	word, err := url.PathUnescape(mux.Vars(r)["word"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "Bad Request",
			Message: "The word is not a valid path segment",
		})
		return
	}

	isValid, err := h.checker.CheckWord(r.Context(), word)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, CheckWordResponse{IsValid: isValid})
	case errors.Is(err, dictionary.ErrInvalidWord):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "Bad Request",
			Message: "The word must not be empty",
		})
	case errors.Is(err, dictionary.ErrRateLimitExceeded):
		slog.Default().Warn("Word check rate limited", "word", word, "error", err)
		writeJSON(w, http.StatusTooManyRequests, ErrorResponse{
			Error:   "Too Many Requests",
			Message: "Please try again in a few seconds",
		})
	case errors.Is(err, context.Canceled):
		// The client went away; there is nobody to answer.
		slog.Default().Debug("Word check canceled by client", "word", word)
	default:
		slog.Default().Error("Word check failed", "word", word, "error", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error:   "Internal Server Error",
			Message: "An error occurred while checking the word",
		})
	}
}

func (h *WordHandler) Ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, PingResponse{
		Status:  "ok",
		Message: "Word check server is running",
		Stats:   h.checker.Stats(),
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Default().Error("Failed to write response", "error", err)
	}
}
