package wellbeing

import (
	"context"
	"errors"
	"strings"

	"github.com/AnshRaj112/evolve-backend/internal/ai"
)

type affirmationOutput struct {
	Affirmation string `json:"affirmation" jsonschema:"required" jsonschema_description:"One short, encouraging first-person sentence"`
}

func (o affirmationOutput) Validate() error {
	if strings.TrimSpace(o.Affirmation) == "" {
		return errors.New("affirmation is empty")
	}
	return nil
}

var affirmationSchema = ai.SchemaFor[affirmationOutput]("daily_affirmation", "A personalized daily affirmation")

const affirmationSystem = `You write short, warm, first-person daily affirmations for someone keeping a wellness journal.
Return exactly one sentence tailored to the mood you are given.`

// AffirmationGenerator turns a mood descriptor into one affirmation.
type AffirmationGenerator struct {
	strategy Strategy[string, string]
}

func NewAffirmationGenerator(gen ai.TextGenerator, opts Options) *AffirmationGenerator {
	opts = opts.withDefaults()
	g := &AffirmationGenerator{
		strategy: Strategy[string, string]{
			Op: "affirmation",
			Fallback: func(mood string) string {
				return opts.pick(fallbackAffirmations[affirmationBucket(mood)])
			},
			Timeout: opts.Timeout,
			Logger:  opts.Logger,
		},
	}
	if gen != nil {
		g.strategy.Primary = func(ctx context.Context, mood string) (string, error) {
			out, err := ai.Complete[affirmationOutput](ctx, gen, ai.Request{
				Op:     "affirmation",
				System: affirmationSystem,
				Prompt: "Current mood: " + mood,
				Schema: affirmationSchema,
			})
			if err != nil {
				return "", err
			}
			return strings.TrimSpace(out.Affirmation), nil
		}
	}
	return g
}

// Generate accepts a comma-joined keyword list or a bare sentiment.
func (g *AffirmationGenerator) Generate(ctx context.Context, mood string) Outcome[string] {
	return g.strategy.Run(ctx, mood)
}

// affirmationBucket checks substrings in a fixed order; the first match wins.
func affirmationBucket(mood string) string {
	mood = strings.ToLower(mood)
	switch {
	case containsAny(mood, []string{"positive", "happy", "excited", "joyful"}):
		return bucketPositive
	case containsAny(mood, []string{"negative", "sad", "upset"}):
		return bucketNegative
	case containsAny(mood, []string{"stressed", "overwhelmed"}):
		return bucketStressed
	case containsAny(mood, []string{"anxious", "worried"}):
		return bucketAnxious
	case containsAny(mood, []string{"excited", "energetic"}):
		return bucketExcited
	case containsAny(mood, []string{"sad", "down"}):
		return bucketSad
	case containsAny(mood, []string{"happy", "content"}):
		return bucketHappy
	default:
		return bucketNeutral
	}
}
