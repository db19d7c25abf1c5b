package models

import "time"

// WeekEntry is one journal entry as fed to the weekly analyzers.
type WeekEntry struct {
	Date      time.Time `json:"date"`
	Content   string    `json:"content"`
	Sentiment string    `json:"sentiment"`
}

// WeeklySummary is the lightweight weekly check run after each submission.
type WeeklySummary struct {
	IsBadWeek bool   `json:"is_bad_week"`
	Summary   string `json:"summary"`
}

// Weekly trend labels.
const (
	TrendChallenging = "challenging"
	TrendPositive    = "positive"
	TrendBalanced    = "balanced"
)

// WeeklyTrend is the richer weekly report served by the insights endpoint.
type WeeklyTrend struct {
	OverallTrend    string   `json:"overall_trend"`
	Insights        []string `json:"insights"`
	Recommendations []string `json:"recommendations"`
	NeedsSupport    bool     `json:"needs_support"`
}
