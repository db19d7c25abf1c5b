package wellbeing

import (
	"context"

	"github.com/AnshRaj112/evolve-backend/internal/ai"
)

// PlaceholderAudioDataURI is a tiny silent WAV returned when synthesis fails.
const PlaceholderAudioDataURI = "data:audio/wav;base64,UklGRnoGAABXQVZFZm10IAAAAAEAAQARAAAAEAAAAAEACABkYXRhAgAAAAEA"

// Audio is a synthesized meditation clip.
type Audio struct {
	DataURI string
	// WAV is nil for the placeholder.
	WAV         []byte
	Placeholder bool
}

// AudioSynthesizer reads meditation text aloud.
type AudioSynthesizer struct {
	strategy Strategy[string, Audio]
}

func NewAudioSynthesizer(speech ai.SpeechSynthesizer, opts Options) *AudioSynthesizer {
	opts = opts.withDefaults()
	s := &AudioSynthesizer{
		strategy: Strategy[string, Audio]{
			Op: "audio",
			Fallback: func(string) Audio {
				return Audio{DataURI: PlaceholderAudioDataURI, Placeholder: true}
			},
			Timeout: opts.AudioTimeout,
			Logger:  opts.Logger,
		},
	}
	if speech != nil {
		s.strategy.Primary = func(ctx context.Context, text string) (Audio, error) {
			clip, err := speech.Synthesize(ctx, text)
			if err != nil {
				return Audio{}, err
			}
			wav, err := ai.EncodeWAV(clip)
			if err != nil {
				return Audio{}, &ai.Error{Kind: ai.KindEmpty, Op: "audio", Err: err}
			}
			return Audio{DataURI: ai.WAVDataURI(wav), WAV: wav}, nil
		}
	}
	return s
}

// Synthesize always returns a playable data URI. Check Value.Placeholder to
// tell real audio from the silent stand-in.
func (s *AudioSynthesizer) Synthesize(ctx context.Context, text string) Outcome[Audio] {
	return s.strategy.Run(ctx, text)
}
