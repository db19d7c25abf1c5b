package handlers

import (
	"errors"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/AnshRaj112/evolve-backend/internal/middleware"
	"github.com/AnshRaj112/evolve-backend/internal/models"
	"github.com/AnshRaj112/evolve-backend/internal/store"
)

// recentLimit is how many affirmations or meditations the list endpoints return.
const recentLimit = 10

const maxRecordContentLength = 2000

type CreateAffirmationRequest struct {
	Content string `json:"content"`
}

type AffirmationResponse struct {
	Success     bool                `json:"success"`
	Message     string              `json:"message,omitempty"`
	Affirmation *models.Affirmation `json:"affirmation,omitempty"`
}

type GetAffirmationsResponse struct {
	Success      bool                 `json:"success"`
	Affirmations []models.Affirmation `json:"affirmations"`
}

type CreateMeditationRequest struct {
	Content      string  `json:"content"`
	AudioDataURI *string `json:"audioDataUri"`
}

type MeditationResponse struct {
	Success    bool               `json:"success"`
	Message    string             `json:"message,omitempty"`
	Meditation *models.Meditation `json:"meditation,omitempty"`
}

type GetMeditationsResponse struct {
	Success     bool                `json:"success"`
	Meditations []models.Meditation `json:"meditations"`
}

type UpdateGoalProgressRequest struct {
	Progress *float64 `json:"progress"`
}

type GoalResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Goal    *models.Goal `json:"goal"`
}

func validRecordContent(content string) (string, bool) {
	content = strings.TrimSpace(content)
	return content, content != "" && utf8.RuneCountInString(content) <= maxRecordContentLength
}

// GetAffirmations returns the caller's latest affirmations.
func GetAffirmations(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	list, err := deps.Store.ListAffirmations(r.Context(), userID, recentLimit)
	if err != nil {
		writeServiceError(w, err, "Failed to load affirmations")
		return
	}
	writeJSON(w, http.StatusOK, GetAffirmationsResponse{Success: true, Affirmations: list})
}

// CreateAffirmation saves an affirmation written by the user.
func CreateAffirmation(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	var req CreateAffirmationRequest
	if !decodeBody(w, r, &req) {
		return
	}
	content, ok := validRecordContent(req.Content)
	if !ok {
		writeError(w, http.StatusBadRequest, "Content is required and must be at most 2000 characters")
		return
	}

	a := &models.Affirmation{UserID: userID, Content: content}
	if err := deps.Store.CreateAffirmation(r.Context(), a); err != nil {
		writeServiceError(w, err, "Failed to save affirmation")
		return
	}
	writeJSON(w, http.StatusCreated, AffirmationResponse{Success: true, Message: "Affirmation saved", Affirmation: a})
}

// GetMeditations returns the caller's latest meditations.
func GetMeditations(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	list, err := deps.Store.ListMeditations(r.Context(), userID, recentLimit)
	if err != nil {
		writeServiceError(w, err, "Failed to load meditations")
		return
	}
	writeJSON(w, http.StatusOK, GetMeditationsResponse{Success: true, Meditations: list})
}

// CreateMeditation saves a meditation, optionally with audio as a data URI.
func CreateMeditation(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	var req CreateMeditationRequest
	if !decodeBodyLimit(w, r, &req, maxAudioBodyBytes) {
		return
	}
	content, ok := validRecordContent(req.Content)
	if !ok {
		writeError(w, http.StatusBadRequest, "Content is required and must be at most 2000 characters")
		return
	}
	if req.AudioDataURI != nil && !strings.HasPrefix(*req.AudioDataURI, "data:audio/") {
		writeError(w, http.StatusBadRequest, "audioDataUri must be an audio data URI")
		return
	}

	m := &models.Meditation{UserID: userID, Content: content, AudioDataURI: req.AudioDataURI}
	if err := deps.Store.CreateMeditation(r.Context(), m); err != nil {
		writeServiceError(w, err, "Failed to save meditation")
		return
	}
	writeJSON(w, http.StatusCreated, MeditationResponse{Success: true, Message: "Meditation saved", Meditation: m})
}

// GetGoal returns the caller's goal, or null before the first journal entry.
func GetGoal(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	goal, err := deps.Store.GetGoal(r.Context(), userID)
	if errors.Is(err, store.ErrNotFound) {
		writeJSON(w, http.StatusOK, GoalResponse{Success: true})
		return
	}
	if err != nil {
		writeServiceError(w, err, "Failed to load goal")
		return
	}
	writeJSON(w, http.StatusOK, GoalResponse{Success: true, Goal: goal})
}

// UpdateGoalProgress sets progress, which must lie within [0, target].
func UpdateGoalProgress(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	var req UpdateGoalProgressRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Progress == nil {
		writeError(w, http.StatusBadRequest, "progress is required")
		return
	}

	goal, err := deps.Store.GetGoal(r.Context(), userID)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "No goal yet. Write a journal entry to get one.")
		return
	}
	if err != nil {
		writeServiceError(w, err, "Failed to update goal")
		return
	}
	if *req.Progress < 0 || *req.Progress > goal.Target {
		writeError(w, http.StatusBadRequest, "progress must be between 0 and the goal target")
		return
	}

	goal, err = deps.Store.UpdateGoalProgress(r.Context(), userID, *req.Progress)
	if err != nil {
		writeServiceError(w, err, "Failed to update goal")
		return
	}
	writeJSON(w, http.StatusOK, GoalResponse{Success: true, Message: "Goal updated", Goal: goal})
}
