package ai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// OpenAI's "pcm" speech format is 24kHz signed 16-bit mono.
const openAISampleRate = 24000

// OpenAI talks to the OpenAI API for both JSON completions and speech.
type OpenAI struct {
	client   *openai.Client
	model    string
	ttsModel openai.SpeechModel
}

func NewOpenAI(apiKey, model, ttsModel string) (*OpenAI, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	if model == "" {
		model = openai.GPT4oMini
	}
	speechModel := openai.TTSModel1
	if ttsModel != "" {
		speechModel = openai.SpeechModel(ttsModel)
	}
	return &OpenAI{
		client:   openai.NewClient(apiKey),
		model:    model,
		ttsModel: speechModel,
	}, nil
}

func (o *OpenAI) Name() string { return "openai" }

func (o *OpenAI) GenerateJSON(ctx context.Context, req Request) ([]byte, error) {
	var messages []openai.ChatCompletionMessage
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Prompt,
	})

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       o.model,
		Messages:    messages,
		Temperature: 0.7,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:        req.Schema.Name,
				Description: req.Schema.Description,
				Schema:      req.Schema.JSON(),
				Strict:      true,
			},
		},
	})
	if err != nil {
		return nil, o.wrap(req.Op, err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return nil, &Error{Kind: KindEmpty, Provider: o.Name(), Op: req.Op, Err: errors.New("no choices returned")}
	}
	return []byte(resp.Choices[0].Message.Content), nil
}

func (o *OpenAI) Synthesize(ctx context.Context, text string) (*Speech, error) {
	const op = "speech"
	resp, err := o.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          o.ttsModel,
		Input:          text,
		Voice:          openai.VoiceAlloy,
		ResponseFormat: openai.SpeechResponseFormatPcm,
	})
	if err != nil {
		return nil, o.wrap(op, err)
	}
	defer resp.Close()

	pcm, err := io.ReadAll(resp)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Provider: o.Name(), Op: op, Err: err}
	}
	if len(pcm) == 0 {
		return nil, &Error{Kind: KindEmpty, Provider: o.Name(), Op: op, Err: errors.New("no audio returned")}
	}
	return &Speech{PCM: pcm, SampleRate: openAISampleRate, Channels: 1, BitDepth: 16}, nil
}

func (o *OpenAI) wrap(op string, err error) *Error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return classify(o.Name(), op, apiErr.HTTPStatusCode, err)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return classify(o.Name(), op, reqErr.HTTPStatusCode, err)
	}
	return classify(o.Name(), op, 0, err)
}
