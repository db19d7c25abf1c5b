package wellbeing

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnshRaj112/evolve-backend/internal/ai"
	"github.com/AnshRaj112/evolve-backend/internal/ai/aitest"
)

func TestAudioSynthesizerWrapsPCM(t *testing.T) {
	provider := &aitest.Provider{Speech: aitest.Silence()}
	out := NewAudioSynthesizer(provider, Options{}).Synthesize(context.Background(), "Breathe in.")

	require.Equal(t, SourceAI, out.Source)
	assert.False(t, out.Value.Placeholder)
	assert.True(t, strings.HasPrefix(out.Value.DataURI, ai.WAVDataURIPrefix))
	assert.Len(t, out.Value.WAV, 44+4800)
}

func TestAudioSynthesizerPlaceholder(t *testing.T) {
	tests := []struct {
		name     string
		speech   ai.SpeechSynthesizer
		wantKind ai.Kind
	}{
		{name: "no provider", speech: nil, wantKind: ai.KindUnavailable},
		{name: "provider error", speech: aitest.Failing(errors.New("connection reset")), wantKind: ai.KindTransport},
		{name: "empty payload", speech: &aitest.Provider{Speech: &ai.Speech{SampleRate: 24000, Channels: 1, BitDepth: 16}}, wantKind: ai.KindEmpty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := NewAudioSynthesizer(tt.speech, Options{}).Synthesize(context.Background(), "Breathe in.")

			assert.True(t, out.FellBack())
			assert.Equal(t, tt.wantKind, ai.KindOf(out.Err))
			assert.True(t, out.Value.Placeholder)
			assert.Equal(t, PlaceholderAudioDataURI, out.Value.DataURI)
			assert.Nil(t, out.Value.WAV)
		})
	}
}
