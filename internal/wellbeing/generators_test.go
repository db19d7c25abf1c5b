package wellbeing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnshRaj112/evolve-backend/internal/ai"
	"github.com/AnshRaj112/evolve-backend/internal/ai/aitest"
	"github.com/AnshRaj112/evolve-backend/internal/models"
)

func firstPicker(int) int { return 0 }

func lastPicker(n int) int { return n - 1 }

func TestAffirmationBucket(t *testing.T) {
	tests := []struct {
		mood string
		want string
	}{
		{"happy, positive, content", bucketPositive},
		{"Joyful", bucketPositive},
		{"sad, upset, frustrated", bucketNegative},
		{"negative", bucketNegative},
		{"stressed, tired", bucketStressed},
		{"overwhelmed", bucketStressed},
		{"worried", bucketAnxious},
		{"energetic", bucketExcited},
		{"feeling down", bucketSad},
		{"content", bucketHappy},
		{"calm, neutral, balanced", bucketNeutral},
		{"", bucketNeutral},
	}
	for _, tt := range tests {
		t.Run(tt.mood, func(t *testing.T) {
			assert.Equal(t, tt.want, affirmationBucket(tt.mood))
		})
	}
}

func TestFallbackTablesHaveTenEntries(t *testing.T) {
	for _, table := range []map[string][]string{fallbackAffirmations, fallbackMeditations} {
		require.Len(t, table, 8)
		for bucket, entries := range table {
			assert.Len(t, entries, 10, bucket)
		}
	}
}

func TestAffirmationGeneratorFallbackUsesPicker(t *testing.T) {
	gen := NewAffirmationGenerator(nil, Options{Picker: lastPicker})

	out := gen.Generate(context.Background(), "sad, upset, frustrated")

	assert.True(t, out.FellBack())
	assert.Equal(t, fallbackAffirmations[bucketNegative][9], out.Value)
}

func TestAffirmationGeneratorRejectsEmptyModelOutput(t *testing.T) {
	provider := &aitest.Provider{Responses: map[string]string{"affirmation": `{"affirmation":"   "}`}}
	gen := NewAffirmationGenerator(provider, Options{Picker: firstPicker})

	out := gen.Generate(context.Background(), "happy")

	assert.Equal(t, ai.KindSchema, ai.KindOf(out.Err))
	assert.Equal(t, fallbackAffirmations[bucketPositive][0], out.Value)
}

func TestAffirmationGeneratorPrimary(t *testing.T) {
	provider := &aitest.Provider{Responses: map[string]string{"affirmation": `{"affirmation":"I am enough."}`}}
	out := NewAffirmationGenerator(provider, Options{}).Generate(context.Background(), "calm")

	assert.Equal(t, SourceAI, out.Source)
	assert.Equal(t, "I am enough.", out.Value)
}

func TestMeditationBucket(t *testing.T) {
	tests := []struct {
		name string
		in   MoodInput
		want string
	}{
		{"positive sentiment", MoodInput{Sentiment: "positive"}, bucketPositive},
		{"positive keyword beats negative sentiment", MoodInput{Sentiment: "negative", MoodKeywords: []string{"Joyful"}}, bucketPositive},
		{"negative sentiment", MoodInput{Sentiment: "Very Negative"}, bucketNegative},
		{"disappointed keyword", MoodInput{Sentiment: "neutral", MoodKeywords: []string{"disappointed"}}, bucketNegative},
		{"stressed", MoodInput{Sentiment: "neutral", MoodKeywords: []string{"tense"}}, bucketStressed},
		{"anxious", MoodInput{Sentiment: "neutral", MoodKeywords: []string{"nervous"}}, bucketAnxious},
		{"excited", MoodInput{Sentiment: "neutral", MoodKeywords: []string{"eager"}}, bucketExcited},
		{"sad", MoodInput{Sentiment: "neutral", MoodKeywords: []string{"melancholy"}}, bucketSad},
		{"happy", MoodInput{Sentiment: "neutral", MoodKeywords: []string{"pleased"}}, bucketHappy},
		{"keyword substring does not match", MoodInput{Sentiment: "neutral", MoodKeywords: []string{"unhappy"}}, bucketNeutral},
		{"default", MoodInput{Sentiment: "mixed"}, bucketNeutral},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, meditationBucket(tt.in))
		})
	}
}

func TestMeditationRecommenderFallback(t *testing.T) {
	rec := NewMeditationRecommender(aitest.Failing(errors.New("down")), Options{})

	out := rec.Recommend(context.Background(), MoodInput{Sentiment: "negative", MoodKeywords: []string{"sad"}})

	assert.True(t, out.FellBack())
	assert.Contains(t, fallbackMeditations[bucketNegative], out.Value)
}

func TestSocialSuggesterFallback(t *testing.T) {
	tests := []struct {
		sentiment string
		title     string
	}{
		{models.SentimentPositive, "Share Your Joy"},
		{models.SentimentNegative, "Help Others Heal"},
		{models.SentimentNeutral, "Community Connection"},
		{"Positive", "Community Connection"},
		{"other", "Community Connection"},
	}
	s := NewSocialSuggester(nil, Options{})
	for _, tt := range tests {
		t.Run(tt.sentiment, func(t *testing.T) {
			out := s.Suggest(context.Background(), MoodInput{Sentiment: tt.sentiment, MoodKeywords: []string{"happy"}})
			assert.Equal(t, tt.title, out.Value.Title)
			assert.NotEmpty(t, out.Value.Description)
		})
	}
}

func TestSocialSuggesterPrimary(t *testing.T) {
	provider := &aitest.Provider{Responses: map[string]string{
		"social_suggestion": `{"title":"Park Cleanup","description":"Join a Saturday cleanup."}`,
	}}
	out := NewSocialSuggester(provider, Options{}).Suggest(context.Background(), MoodInput{Sentiment: "neutral"})

	assert.Equal(t, SourceAI, out.Source)
	assert.Equal(t, models.SocialSuggestion{Title: "Park Cleanup", Description: "Join a Saturday cleanup."}, out.Value)
}
