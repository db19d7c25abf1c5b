package handlers

import (
	"net/http"

	"github.com/AnshRaj112/evolve-backend/internal/middleware"
	"github.com/AnshRaj112/evolve-backend/internal/models"
	"github.com/AnshRaj112/evolve-backend/internal/services"
)

const (
	defaultJournalPageSize = 20
	maxJournalPageSize     = 100
)

type CreateJournalRequest struct {
	Content string `json:"content"`
}

type CreateJournalResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	*services.SubmissionResult
}

type GetJournalsResponse struct {
	Success bool                  `json:"success"`
	Entries []models.JournalEntry `json:"entries"`
	Total   int64                 `json:"total"`
	Limit   int                   `json:"limit"`
	Skip    int                   `json:"skip"`
}

// CreateJournal saves an entry and returns everything generated for it.
func CreateJournal(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	var req CreateJournalRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := deps.Pipeline.Submit(r.Context(), userID, req.Content)
	if err != nil {
		writeServiceError(w, err, "Failed to save journal entry")
		return
	}

	writeJSON(w, http.StatusCreated, CreateJournalResponse{
		Success:          true,
		Message:          "Journal entry saved",
		SubmissionResult: result,
	})
}

// GetJournals lists the caller's entries newest first. Query: limit, skip.
func GetJournals(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	limit := queryInt(r, "limit", defaultJournalPageSize, maxJournalPageSize)
	if limit == 0 {
		limit = defaultJournalPageSize
	}
	skip := queryInt(r, "skip", 0, 0)

	entries, err := deps.Store.ListJournalEntries(r.Context(), userID, limit, skip)
	if err != nil {
		writeServiceError(w, err, "Failed to load journal entries")
		return
	}
	total, err := deps.Store.CountJournalEntries(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err, "Failed to load journal entries")
		return
	}

	writeJSON(w, http.StatusOK, GetJournalsResponse{
		Success: true,
		Entries: entries,
		Total:   total,
		Limit:   limit,
		Skip:    skip,
	})
}
