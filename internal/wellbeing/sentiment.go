package wellbeing

import (
	"context"
	"strings"

	"github.com/AnshRaj112/evolve-backend/internal/ai"
	"github.com/AnshRaj112/evolve-backend/internal/models"
)

type sentimentOutput struct {
	Sentiment    string   `json:"sentiment" jsonschema:"required" jsonschema_description:"positive, negative or neutral"`
	Confidence   float64  `json:"confidence" jsonschema:"required" jsonschema_description:"Confidence between 0 and 1"`
	MoodKeywords []string `json:"moodKeywords" jsonschema:"required" jsonschema_description:"Short words describing the writer's mood"`
}

var sentimentSchema = ai.SchemaFor[sentimentOutput]("journal_sentiment", "Sentiment classification of a journal entry")

const sentimentSystem = `You are an empathetic assistant that reads private journal entries.
Classify the overall sentiment as positive, negative or neutral, give your confidence between 0 and 1,
and list a few single-word mood keywords in lowercase.`

var (
	positiveSentimentWords = []string{"happy", "great", "wonderful", "excited"}
	negativeSentimentWords = []string{"sad", "bad", "terrible", "angry"}
)

// SentimentAnalyzer classifies journal text.
type SentimentAnalyzer struct {
	strategy Strategy[string, models.SentimentResult]
}

func NewSentimentAnalyzer(gen ai.TextGenerator, opts Options) *SentimentAnalyzer {
	opts = opts.withDefaults()
	a := &SentimentAnalyzer{
		strategy: Strategy[string, models.SentimentResult]{
			Op:       "sentiment",
			Fallback: classifySentiment,
			Timeout:  opts.Timeout,
			Logger:   opts.Logger,
		},
	}
	if gen != nil {
		a.strategy.Primary = func(ctx context.Context, text string) (models.SentimentResult, error) {
			out, err := ai.Complete[sentimentOutput](ctx, gen, ai.Request{
				Op:     "sentiment",
				System: sentimentSystem,
				Prompt: "Journal entry:\n" + text,
				Schema: sentimentSchema,
			})
			if err != nil {
				return models.SentimentResult{}, err
			}
			return models.SentimentResult{
				Sentiment:    strings.ToLower(strings.TrimSpace(out.Sentiment)),
				Confidence:   out.Confidence,
				MoodKeywords: out.MoodKeywords,
			}, nil
		}
	}
	return a
}

func (a *SentimentAnalyzer) Analyze(ctx context.Context, text string) Outcome[models.SentimentResult] {
	return a.strategy.Run(ctx, text)
}

// classifySentiment is the keyword classifier used when the model is unavailable.
func classifySentiment(text string) models.SentimentResult {
	lower := strings.ToLower(text)
	switch {
	case containsAny(lower, positiveSentimentWords):
		return models.SentimentResult{
			Sentiment:    models.SentimentPositive,
			Confidence:   0.7,
			MoodKeywords: []string{"happy", "positive", "content"},
		}
	case containsAny(lower, negativeSentimentWords):
		return models.SentimentResult{
			Sentiment:    models.SentimentNegative,
			Confidence:   0.7,
			MoodKeywords: []string{"sad", "upset", "frustrated"},
		}
	default:
		return models.SentimentResult{
			Sentiment:    models.SentimentNeutral,
			Confidence:   0.6,
			MoodKeywords: []string{"calm", "neutral", "balanced"},
		}
	}
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// hasAnyKeyword reports whether any keyword exactly equals one of words.
// Keywords must already be lowercase.
func hasAnyKeyword(keywords []string, words ...string) bool {
	for _, k := range keywords {
		for _, w := range words {
			if k == w {
				return true
			}
		}
	}
	return false
}
