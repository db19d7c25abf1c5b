package wellbeing

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/AnshRaj112/evolve-backend/internal/ai"
)

// MoodInput is the sentiment and keywords of one entry.
type MoodInput struct {
	Sentiment    string
	MoodKeywords []string
}

func (in MoodInput) describe() string {
	return fmt.Sprintf("Sentiment: %s\nMood keywords: %s", in.Sentiment, strings.Join(in.MoodKeywords, ", "))
}

type meditationOutput struct {
	MeditationRecommendation string `json:"meditationRecommendation" jsonschema:"required" jsonschema_description:"Two or three sentences describing a guided meditation"`
}

func (o meditationOutput) Validate() error {
	if strings.TrimSpace(o.MeditationRecommendation) == "" {
		return errors.New("meditation recommendation is empty")
	}
	return nil
}

var meditationSchema = ai.SchemaFor[meditationOutput]("meditation_recommendation", "A guided meditation suited to the user's mood")

const meditationSystem = `You are a meditation guide. Recommend one short guided meditation suited to the
writer's sentiment and mood. Describe it in two or three calm sentences addressed to the writer.`

// MeditationRecommender picks guidance text for a mood.
type MeditationRecommender struct {
	strategy Strategy[MoodInput, string]
}

func NewMeditationRecommender(gen ai.TextGenerator, opts Options) *MeditationRecommender {
	opts = opts.withDefaults()
	r := &MeditationRecommender{
		strategy: Strategy[MoodInput, string]{
			Op: "meditation",
			Fallback: func(in MoodInput) string {
				return opts.pick(fallbackMeditations[meditationBucket(in)])
			},
			Timeout: opts.Timeout,
			Logger:  opts.Logger,
		},
	}
	if gen != nil {
		r.strategy.Primary = func(ctx context.Context, in MoodInput) (string, error) {
			out, err := ai.Complete[meditationOutput](ctx, gen, ai.Request{
				Op:     "meditation",
				System: meditationSystem,
				Prompt: in.describe(),
				Schema: meditationSchema,
			})
			if err != nil {
				return "", err
			}
			return strings.TrimSpace(out.MeditationRecommendation), nil
		}
	}
	return r
}

func (r *MeditationRecommender) Recommend(ctx context.Context, in MoodInput) Outcome[string] {
	return r.strategy.Run(ctx, in)
}

// meditationBucket checks the sentiment text first, then exact keyword
// membership, in a fixed priority order.
func meditationBucket(in MoodInput) string {
	sentiment := strings.ToLower(in.Sentiment)
	keywords := make([]string, len(in.MoodKeywords))
	for i, k := range in.MoodKeywords {
		keywords[i] = strings.ToLower(k)
	}

	switch {
	case strings.Contains(sentiment, "positive") || hasAnyKeyword(keywords, "happy", "excited", "joyful", "energetic"):
		return bucketPositive
	case strings.Contains(sentiment, "negative") || hasAnyKeyword(keywords, "sad", "upset", "down", "disappointed"):
		return bucketNegative
	case hasAnyKeyword(keywords, "stressed", "overwhelmed", "tense", "pressure"):
		return bucketStressed
	case hasAnyKeyword(keywords, "anxious", "worried", "nervous", "fearful"):
		return bucketAnxious
	case hasAnyKeyword(keywords, "excited", "enthusiastic", "eager", "anticipating"):
		return bucketExcited
	case hasAnyKeyword(keywords, "sad", "down", "blue", "melancholy"):
		return bucketSad
	case hasAnyKeyword(keywords, "happy", "content", "pleased", "satisfied"):
		return bucketHappy
	default:
		return bucketNeutral
	}
}
