package models

import (
	"time"

	"github.com/google/uuid"
)

// Sentiment labels produced by the keyword classifier. Model output may carry
// other values; those are stored as-is.
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// MaxJournalContentLength is measured in characters, not bytes.
const MaxJournalContentLength = 5000

// JournalEntry is immutable once created.
type JournalEntry struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	Content      string    `json:"content"`
	Sentiment    string    `json:"sentiment"`
	MoodKeywords []string  `json:"mood_keywords"`
	CreatedAt    time.Time `json:"created_at"`
}

// SentimentResult is the transient classification of one entry.
type SentimentResult struct {
	Sentiment    string   `json:"sentiment"`
	Confidence   float64  `json:"confidence"`
	MoodKeywords []string `json:"mood_keywords"`
}
