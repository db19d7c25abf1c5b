package models

import (
	"time"

	"github.com/google/uuid"
)

// DefaultGoalTarget is the target assigned to suggested goals.
const DefaultGoalTarget = 5

// Goal is unique per user. Upserting replaces title and description, resets
// progress and keeps the ID.
type Goal struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Target      float64   `json:"target"`
	Progress    float64   `json:"progress"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SocialSuggestion is a volunteering idea that seeds the user's goal.
type SocialSuggestion struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}
