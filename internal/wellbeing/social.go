package wellbeing

import (
	"context"
	"errors"
	"strings"

	"github.com/AnshRaj112/evolve-backend/internal/ai"
	"github.com/AnshRaj112/evolve-backend/internal/models"
)

type socialOutput struct {
	Title       string `json:"title" jsonschema:"required" jsonschema_description:"A short title for the volunteering goal"`
	Description string `json:"description" jsonschema:"required" jsonschema_description:"One or two sentences describing the activity"`
}

func (o socialOutput) Validate() error {
	if strings.TrimSpace(o.Title) == "" || strings.TrimSpace(o.Description) == "" {
		return errors.New("title and description are required")
	}
	return nil
}

var socialSchema = ai.SchemaFor[socialOutput]("social_service_suggestion", "A community service activity suited to the user's mood")

const socialSystem = `You suggest one concrete community service or volunteering activity that fits
the writer's current mood. Keep the title under six words.`

// fallbackSocial is keyed by exact sentiment; anything else gets the neutral entry.
var fallbackSocial = map[string]models.SocialSuggestion{
	models.SentimentPositive: {
		Title:       "Share Your Joy",
		Description: "Consider volunteering at a local community center or helping organize a neighborhood event. Your positive energy can brighten someone else's day!",
	},
	models.SentimentNegative: {
		Title:       "Help Others Heal",
		Description: "Support those going through similar challenges by volunteering at a crisis hotline or joining a support group. Helping others can be therapeutic for your own healing.",
	},
	models.SentimentNeutral: {
		Title:       "Community Connection",
		Description: "Get involved in local community service - help at a food bank, participate in environmental cleanup, or assist at an animal shelter. Small acts of service can bring fulfillment.",
	},
}

// SocialSuggester proposes a volunteering goal.
type SocialSuggester struct {
	strategy Strategy[MoodInput, models.SocialSuggestion]
}

func NewSocialSuggester(gen ai.TextGenerator, opts Options) *SocialSuggester {
	opts = opts.withDefaults()
	s := &SocialSuggester{
		strategy: Strategy[MoodInput, models.SocialSuggestion]{
			Op:       "social_suggestion",
			Fallback: suggestFromSentiment,
			Timeout:  opts.Timeout,
			Logger:   opts.Logger,
		},
	}
	if gen != nil {
		s.strategy.Primary = func(ctx context.Context, in MoodInput) (models.SocialSuggestion, error) {
			out, err := ai.Complete[socialOutput](ctx, gen, ai.Request{
				Op:     "social_suggestion",
				System: socialSystem,
				Prompt: in.describe(),
				Schema: socialSchema,
			})
			if err != nil {
				return models.SocialSuggestion{}, err
			}
			return models.SocialSuggestion{
				Title:       strings.TrimSpace(out.Title),
				Description: strings.TrimSpace(out.Description),
			}, nil
		}
	}
	return s
}

func (s *SocialSuggester) Suggest(ctx context.Context, in MoodInput) Outcome[models.SocialSuggestion] {
	return s.strategy.Run(ctx, in)
}

func suggestFromSentiment(in MoodInput) models.SocialSuggestion {
	if s, ok := fallbackSocial[in.Sentiment]; ok {
		return s
	}
	return fallbackSocial[models.SentimentNeutral]
}
