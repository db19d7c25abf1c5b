package wellbeing

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/AnshRaj112/evolve-backend/internal/ai"
	"github.com/AnshRaj112/evolve-backend/internal/models"
)

const (
	// MinWeeklyEntries is the smallest history worth analyzing.
	MinWeeklyEntries = 4
	// WeeklyWindow is how many recent entries make up a week.
	WeeklyWindow = 7

	mixedWeekSummary    = "A mix of emotions this week, but not overwhelmingly negative."
	negativeWeekSummary = "Most of this week's entries were negative. It may help to reach out to someone you trust."
)

type weekOutput struct {
	IsBadWeek bool   `json:"isBadWeek" jsonschema:"required" jsonschema_description:"True if the week was predominantly negative"`
	Summary   string `json:"summary" jsonschema:"required" jsonschema_description:"A brief summary of the week"`
}

func (o weekOutput) Validate() error {
	if strings.TrimSpace(o.Summary) == "" {
		return errors.New("summary is empty")
	}
	return nil
}

type trendOutput struct {
	OverallTrend    string   `json:"overallTrend" jsonschema:"required,enum=challenging,enum=positive,enum=balanced"`
	Insights        []string `json:"insights" jsonschema:"required" jsonschema_description:"Key insights about emotional patterns"`
	Recommendations []string `json:"recommendations" jsonschema:"required" jsonschema_description:"Personalized recommendations"`
	NeedsSupport    bool     `json:"needsSupport" jsonschema:"required" jsonschema_description:"Whether the user might need additional support"`
}

func (o trendOutput) Validate() error {
	switch strings.ToLower(o.OverallTrend) {
	case models.TrendChallenging, models.TrendPositive, models.TrendBalanced:
		return nil
	default:
		return fmt.Errorf("unknown overall trend %q", o.OverallTrend)
	}
}

var (
	weekSchema  = ai.SchemaFor[weekOutput]("weekly_check", "Whether the week was predominantly negative")
	trendSchema = ai.SchemaFor[trendOutput]("weekly_trend", "Emotional trends across a week of journal entries")
)

const (
	weekSystem = `You review a week of someone's journal entries. Decide whether it was a "bad week",
meaning negative emotions such as sadness, stress or anxiety prevailed, and write a short summary.`
	trendSystem = `You review a week of someone's journal entries. Describe the overall emotional trend
(challenging, positive or balanced), give a few insights about their patterns, a few gentle
recommendations, and say whether they might need additional support.`
)

// WeeklyAnalyzer has two variants with different thresholds and output
// shapes: AnalyzeWeek runs after every submission, AnalyzeTrend backs the
// insights report.
type WeeklyAnalyzer struct {
	week  Strategy[[]models.WeekEntry, models.WeeklySummary]
	trend Strategy[[]models.WeekEntry, models.WeeklyTrend]
}

func NewWeeklyAnalyzer(gen ai.TextGenerator, opts Options) *WeeklyAnalyzer {
	opts = opts.withDefaults()
	w := &WeeklyAnalyzer{
		week: Strategy[[]models.WeekEntry, models.WeeklySummary]{
			Op:       "weekly_check",
			Fallback: badWeekSummary,
			Timeout:  opts.Timeout,
			Logger:   opts.Logger,
		},
		trend: Strategy[[]models.WeekEntry, models.WeeklyTrend]{
			Op:       "weekly_trend",
			Fallback: trendFromCounts,
			Timeout:  opts.Timeout,
			Logger:   opts.Logger,
		},
	}
	if gen != nil {
		w.week.Primary = func(ctx context.Context, entries []models.WeekEntry) (models.WeeklySummary, error) {
			out, err := ai.Complete[weekOutput](ctx, gen, ai.Request{
				Op:     "weekly_check",
				System: weekSystem,
				Prompt: describeWeek(entries),
				Schema: weekSchema,
			})
			if err != nil {
				return models.WeeklySummary{}, err
			}
			return models.WeeklySummary{IsBadWeek: out.IsBadWeek, Summary: strings.TrimSpace(out.Summary)}, nil
		}
		w.trend.Primary = func(ctx context.Context, entries []models.WeekEntry) (models.WeeklyTrend, error) {
			out, err := ai.Complete[trendOutput](ctx, gen, ai.Request{
				Op:     "weekly_trend",
				System: trendSystem,
				Prompt: describeWeek(entries),
				Schema: trendSchema,
			})
			if err != nil {
				return models.WeeklyTrend{}, err
			}
			return models.WeeklyTrend{
				OverallTrend:    strings.ToLower(out.OverallTrend),
				Insights:        out.Insights,
				Recommendations: out.Recommendations,
				NeedsSupport:    out.NeedsSupport,
			}, nil
		}
	}
	return w
}

// AnalyzeWeek decides whether the week was predominantly negative. When fewer
// than half the entries are negative it answers without calling the model.
func (w *WeeklyAnalyzer) AnalyzeWeek(ctx context.Context, entries []models.WeekEntry) Outcome[models.WeeklySummary] {
	if mostlyNotNegative(entries) {
		return Outcome[models.WeeklySummary]{
			Value:  models.WeeklySummary{IsBadWeek: false, Summary: mixedWeekSummary},
			Source: SourceRule,
		}
	}
	return w.week.Run(ctx, entries)
}

// AnalyzeTrend produces the richer report. It shares AnalyzeWeek's guard and
// answers from counts when the guard applies.
func (w *WeeklyAnalyzer) AnalyzeTrend(ctx context.Context, entries []models.WeekEntry) Outcome[models.WeeklyTrend] {
	if mostlyNotNegative(entries) {
		return Outcome[models.WeeklyTrend]{Value: trendFromCounts(entries), Source: SourceRule}
	}
	return w.trend.Run(ctx, entries)
}

func countSentiments(entries []models.WeekEntry) (positive, negative int) {
	for _, e := range entries {
		switch e.Sentiment {
		case models.SentimentPositive:
			positive++
		case models.SentimentNegative:
			negative++
		}
	}
	return positive, negative
}

// mostlyNotNegative reports negative < total/2. An empty week counts as not negative.
func mostlyNotNegative(entries []models.WeekEntry) bool {
	_, negative := countSentiments(entries)
	return len(entries) == 0 || negative*2 < len(entries)
}

// badWeekSummary is the fallback once the guard has passed: at least half the
// entries were negative.
func badWeekSummary([]models.WeekEntry) models.WeeklySummary {
	return models.WeeklySummary{IsBadWeek: true, Summary: negativeWeekSummary}
}

func trendFromCounts(entries []models.WeekEntry) models.WeeklyTrend {
	positive, negative := countSentiments(entries)
	total := len(entries)

	switch {
	case negative > positive:
		return models.WeeklyTrend{
			OverallTrend: models.TrendChallenging,
			NeedsSupport: float64(negative) > float64(total)*0.6,
			Insights: []string{
				"This week has been difficult with more negative entries than positive ones.",
				"It's normal to have challenging periods - consider reaching out to friends or family.",
				"Remember that difficult times are temporary and you have the strength to get through them.",
			},
			Recommendations: []string{
				"Consider talking to a trusted friend about how you're feeling.",
				"Try a short mindfulness exercise to help process these emotions.",
				"Remember to be kind to yourself during tough times.",
			},
		}
	case positive > negative:
		return models.WeeklyTrend{
			OverallTrend: models.TrendPositive,
			Insights: []string{
				"You've had a good week with more positive entries!",
				"Your positive outlook is serving you well.",
				"Keep nurturing the activities and thoughts that bring you joy.",
			},
			Recommendations: []string{
				"Continue the positive activities that are working for you.",
				"Consider sharing your positive energy with others.",
				"Take a moment to appreciate your progress this week.",
			},
		}
	default:
		return models.WeeklyTrend{
			OverallTrend: models.TrendBalanced,
			Insights: []string{
				"Your week has been relatively balanced.",
				"A mix of experiences is normal and healthy.",
				"You're maintaining good emotional awareness.",
			},
			Recommendations: []string{
				"Keep up the good work maintaining balance.",
				"Continue journaling to stay in touch with your emotions.",
				"Consider setting a small goal for next week.",
			},
		}
	}
}

func describeWeek(entries []models.WeekEntry) string {
	var b strings.Builder
	b.WriteString("Journal entries for the week:\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "- Date: %s, Sentiment: %s, Content: %q\n", e.Date.Format("2006-01-02"), e.Sentiment, e.Content)
	}
	return b.String()
}
