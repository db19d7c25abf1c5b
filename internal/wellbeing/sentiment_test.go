package wellbeing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnshRaj112/evolve-backend/internal/ai"
	"github.com/AnshRaj112/evolve-backend/internal/ai/aitest"
	"github.com/AnshRaj112/evolve-backend/internal/models"
)

func TestClassifySentiment(t *testing.T) {
	tests := []struct {
		text       string
		sentiment  string
		confidence float64
		keywords   []string
	}{
		{"I feel happy and great", models.SentimentPositive, 0.7, []string{"happy", "positive", "content"}},
		{"What a WONDERFUL morning", models.SentimentPositive, 0.7, []string{"happy", "positive", "content"}},
		{"I had a terrible day", models.SentimentNegative, 0.7, []string{"sad", "upset", "frustrated"}},
		{"So angry at the bus", models.SentimentNegative, 0.7, []string{"sad", "upset", "frustrated"}},
		{"Happy but also sad", models.SentimentPositive, 0.7, []string{"happy", "positive", "content"}},
		{"Went to the store", models.SentimentNeutral, 0.6, []string{"calm", "neutral", "balanced"}},
		{"", models.SentimentNeutral, 0.6, []string{"calm", "neutral", "balanced"}},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got := classifySentiment(tt.text)
			assert.Equal(t, tt.sentiment, got.Sentiment)
			assert.InDelta(t, tt.confidence, got.Confidence, 1e-9)
			assert.Equal(t, tt.keywords, got.MoodKeywords)
		})
	}
}

func TestSentimentAnalyzerUsesModelOutput(t *testing.T) {
	provider := &aitest.Provider{Responses: map[string]string{
		"sentiment": `{"sentiment":" Positive ","confidence":1.7,"moodKeywords":["grateful"]}`,
	}}
	analyzer := NewSentimentAnalyzer(provider, Options{})

	out := analyzer.Analyze(context.Background(), "a day")

	assert.Equal(t, SourceAI, out.Source)
	assert.NoError(t, out.Err)
	assert.Equal(t, "positive", out.Value.Sentiment)
	assert.InDelta(t, 1.7, out.Value.Confidence, 1e-9, "confidence is not range checked")
	assert.Equal(t, []string{"grateful"}, out.Value.MoodKeywords)
	assert.Equal(t, 1, provider.Calls("sentiment"))
}

func TestSentimentAnalyzerFallsBack(t *testing.T) {
	tests := []struct {
		name     string
		provider ai.TextGenerator
		wantKind ai.Kind
		timeout  time.Duration
	}{
		{name: "no provider", provider: nil, wantKind: ai.KindUnavailable},
		{name: "quota", provider: aitest.Failing(&ai.Error{Kind: ai.KindQuota, Err: errors.New("429")}), wantKind: ai.KindQuota},
		{name: "schema mismatch", provider: &aitest.Provider{Responses: map[string]string{
			"sentiment": `{"mood":"fine"}`,
		}}, wantKind: ai.KindSchema},
		{name: "timeout", provider: &aitest.Provider{Hang: true}, wantKind: ai.KindTimeout, timeout: 10 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analyzer := NewSentimentAnalyzer(tt.provider, Options{Timeout: tt.timeout})

			out := analyzer.Analyze(context.Background(), "I had a terrible day")

			require.True(t, out.FellBack())
			assert.Equal(t, tt.wantKind, ai.KindOf(out.Err))
			assert.Equal(t, models.SentimentNegative, out.Value.Sentiment)
			assert.InDelta(t, 0.7, out.Value.Confidence, 1e-9)
		})
	}
}
