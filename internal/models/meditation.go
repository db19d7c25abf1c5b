package models

import (
	"time"

	"github.com/google/uuid"
)

// Meditation is inserted without audio and updated in place once synthesis
// finishes. AudioURL is set only when the WAV was archived to Cloudinary.
type Meditation struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	Content      string    `json:"content"`
	AudioDataURI *string   `json:"audio_data_uri"`
	AudioURL     *string   `json:"audio_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
