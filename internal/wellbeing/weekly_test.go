package wellbeing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnshRaj112/evolve-backend/internal/ai/aitest"
	"github.com/AnshRaj112/evolve-backend/internal/models"
)

func week(sentiments ...string) []models.WeekEntry {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	entries := make([]models.WeekEntry, len(sentiments))
	for i, s := range sentiments {
		entries[i] = models.WeekEntry{Date: start.AddDate(0, 0, i), Content: "entry", Sentiment: s}
	}
	return entries
}

func TestWeeklyShortCircuitSkipsModel(t *testing.T) {
	histories := [][]models.WeekEntry{
		week("negative", "positive", "positive", "neutral"),
		week("negative", "negative", "positive", "neutral", "neutral"),
		week("neutral", "neutral", "neutral", "neutral", "neutral", "neutral", "neutral"),
		week(),
	}
	for _, entries := range histories {
		provider := &aitest.Provider{Responses: map[string]string{
			"weekly_check": `{"isBadWeek":true,"summary":"bad"}`,
			"weekly_trend": `{"overallTrend":"challenging","insights":[],"recommendations":[],"needsSupport":true}`,
		}}
		analyzer := NewWeeklyAnalyzer(provider, Options{})

		summary := analyzer.AnalyzeWeek(context.Background(), entries)
		assert.Equal(t, SourceRule, summary.Source)
		assert.False(t, summary.Value.IsBadWeek)
		assert.Equal(t, mixedWeekSummary, summary.Value.Summary)

		trend := analyzer.AnalyzeTrend(context.Background(), entries)
		assert.Equal(t, SourceRule, trend.Source)
		assert.False(t, trend.Value.NeedsSupport)

		assert.Zero(t, provider.TotalCalls())
	}
}

func TestWeeklyMostlyNegativeInvokesModel(t *testing.T) {
	provider := &aitest.Provider{Responses: map[string]string{
		"weekly_check": `{"isBadWeek":true,"summary":"A heavy week."}`,
		"weekly_trend": `{"overallTrend":"challenging","insights":["a"],"recommendations":["b"],"needsSupport":true}`,
	}}
	analyzer := NewWeeklyAnalyzer(provider, Options{})
	entries := week("negative", "negative", "negative", "positive")

	summary := analyzer.AnalyzeWeek(context.Background(), entries)
	require.Equal(t, SourceAI, summary.Source)
	assert.Equal(t, models.WeeklySummary{IsBadWeek: true, Summary: "A heavy week."}, summary.Value)
	assert.Equal(t, 1, provider.Calls("weekly_check"))

	trend := analyzer.AnalyzeTrend(context.Background(), entries)
	require.Equal(t, SourceAI, trend.Source)
	assert.Equal(t, models.TrendChallenging, trend.Value.OverallTrend)
	assert.Equal(t, 1, provider.Calls("weekly_trend"))
}

func TestWeeklyRejectsUnknownTrend(t *testing.T) {
	provider := &aitest.Provider{Responses: map[string]string{
		"weekly_trend": `{"overallTrend":"stormy","insights":[],"recommendations":[],"needsSupport":false}`,
	}}
	out := NewWeeklyAnalyzer(provider, Options{}).AnalyzeTrend(context.Background(), week("negative", "negative", "positive", "positive"))

	assert.True(t, out.FellBack())
	assert.Equal(t, models.TrendBalanced, out.Value.OverallTrend)
}

func TestWeeklyFallbacks(t *testing.T) {
	tests := []struct {
		name         string
		entries      []models.WeekEntry
		badWeek      bool
		trend        string
		needsSupport bool
	}{
		{"supermajority negative", week("negative", "negative", "negative", "negative", "positive"), true, models.TrendChallenging, true},
		{"exactly sixty percent", week("negative", "negative", "negative", "positive", "neutral"), true, models.TrendChallenging, false},
		{"tie", week("negative", "negative", "positive", "positive"), true, models.TrendBalanced, false},
		{"half negative rest neutral", week("negative", "negative", "neutral", "neutral"), true, models.TrendChallenging, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analyzer := NewWeeklyAnalyzer(nil, Options{})

			summary := analyzer.AnalyzeWeek(context.Background(), tt.entries)
			require.True(t, summary.FellBack())
			assert.Equal(t, tt.badWeek, summary.Value.IsBadWeek)

			trend := analyzer.AnalyzeTrend(context.Background(), tt.entries)
			require.True(t, trend.FellBack())
			assert.Equal(t, tt.trend, trend.Value.OverallTrend)
			assert.Equal(t, tt.needsSupport, trend.Value.NeedsSupport)
			assert.Len(t, trend.Value.Insights, 3)
			assert.Len(t, trend.Value.Recommendations, 3)
		})
	}
}

func TestTrendFromCountsPositive(t *testing.T) {
	trend := trendFromCounts(week("positive", "positive", "neutral", "negative"))
	assert.Equal(t, models.TrendPositive, trend.OverallTrend)
	assert.False(t, trend.NeedsSupport)
}
