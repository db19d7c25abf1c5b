package ai

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"google.golang.org/genai"
)

const (
	defaultGeminiModel    = "gemini-2.5-flash"
	defaultGeminiTTSModel = "gemini-2.5-flash-preview-tts"
	defaultGeminiVoice    = "Algenib"

	// Gemini TTS returns signed 16-bit mono PCM.
	geminiSampleRate = 24000
)

// Gemini talks to the Gemini API for both JSON completions and speech.
type Gemini struct {
	client   *genai.Client
	model    string
	ttsModel string
	voice    string
}

func NewGemini(ctx context.Context, apiKey, model, ttsModel, voice string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}
	if model == "" {
		model = defaultGeminiModel
	}
	if ttsModel == "" {
		ttsModel = defaultGeminiTTSModel
	}
	if voice == "" {
		voice = defaultGeminiVoice
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &Gemini{client: client, model: model, ttsModel: ttsModel, voice: voice}, nil
}

func (g *Gemini) Name() string { return "gemini" }

func (g *Gemini) GenerateJSON(ctx context.Context, req Request) ([]byte, error) {
	config := &genai.GenerateContentConfig{
		ResponseMIMEType:   "application/json",
		ResponseJsonSchema: req.Schema.JSON(),
		Temperature:        genai.Ptr[float32](0.7),
	}
	if req.System != "" {
		config.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(req.Prompt), config)
	if err != nil {
		return nil, g.wrap(req.Op, err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return nil, &Error{Kind: KindEmpty, Provider: g.Name(), Op: req.Op, Err: errors.New("no text in response")}
	}
	return []byte(text), nil
}

func (g *Gemini) Synthesize(ctx context.Context, text string) (*Speech, error) {
	const op = "speech"
	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: g.voice},
			},
		},
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.ttsModel, genai.Text(text), config)
	if err != nil {
		return nil, g.wrap(op, err)
	}

	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.InlineData == nil || len(part.InlineData.Data) == 0 {
				continue
			}
			return &Speech{
				PCM:        part.InlineData.Data,
				SampleRate: sampleRateFromMIME(part.InlineData.MIMEType, geminiSampleRate),
				Channels:   1,
				BitDepth:   16,
			}, nil
		}
	}
	return nil, &Error{Kind: KindEmpty, Provider: g.Name(), Op: op, Err: errors.New("no audio media returned")}
}

func (g *Gemini) wrap(op string, err error) *Error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return classify(g.Name(), op, apiErr.Code, err)
	}
	return classify(g.Name(), op, 0, err)
}

// sampleRateFromMIME reads the rate parameter of e.g. "audio/L16;codec=pcm;rate=24000".
func sampleRateFromMIME(mime string, fallback int) int {
	for _, param := range strings.Split(mime, ";") {
		key, value, ok := strings.Cut(strings.TrimSpace(param), "=")
		if !ok || !strings.EqualFold(key, "rate") {
			continue
		}
		if rate, err := strconv.Atoi(value); err == nil && rate > 0 {
			return rate
		}
	}
	return fallback
}
