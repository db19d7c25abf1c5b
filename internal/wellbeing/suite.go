package wellbeing

import "github.com/AnshRaj112/evolve-backend/internal/ai"

// Suite bundles every component behind one provider.
type Suite struct {
	Sentiment    *SentimentAnalyzer
	Affirmations *AffirmationGenerator
	Meditations  *MeditationRecommender
	Audio        *AudioSynthesizer
	Social       *SocialSuggester
	Weekly       *WeeklyAnalyzer
}

// NewSuite wires all components to provider. A nil provider yields a suite
// that runs on fallbacks only.
func NewSuite(provider ai.Provider, opts Options) *Suite {
	var (
		gen    ai.TextGenerator
		speech ai.SpeechSynthesizer
	)
	if provider != nil {
		gen, speech = provider, provider
	}
	return NewSuiteWith(gen, speech, opts)
}

// NewSuiteWith wires text and speech capabilities separately. Either may be nil.
func NewSuiteWith(gen ai.TextGenerator, speech ai.SpeechSynthesizer, opts Options) *Suite {
	return &Suite{
		Sentiment:    NewSentimentAnalyzer(gen, opts),
		Affirmations: NewAffirmationGenerator(gen, opts),
		Meditations:  NewMeditationRecommender(gen, opts),
		Audio:        NewAudioSynthesizer(speech, opts),
		Social:       NewSocialSuggester(gen, opts),
		Weekly:       NewWeeklyAnalyzer(gen, opts),
	}
}
