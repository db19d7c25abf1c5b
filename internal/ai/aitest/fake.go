// Package aitest provides an in-memory ai.Provider for tests.
package aitest

import (
	"context"
	"errors"
	"sync"

	"github.com/AnshRaj112/evolve-backend/internal/ai"
)

// SpeechOp is the key used for speech calls in Errors and Calls.
const SpeechOp = "speech"

// Provider answers structured completions from canned JSON keyed by
// ai.Request.Op and counts every call.
type Provider struct {
	// Responses maps an op to the raw JSON returned for it.
	Responses map[string]string
	// Errors maps an op to the error returned for it. Errors win over Responses.
	Errors map[string]error
	// Err, when set, fails every call.
	Err error
	// Speech is returned by Synthesize.
	Speech *ai.Speech
	// Hang makes every call block until its context is done.
	Hang bool
	// Before, when set, runs at the start of every call; a non-nil error fails it.
	Before func(ctx context.Context, op string) error

	mu    sync.Mutex
	calls map[string]int
}

// Failing returns a provider whose every call fails with err.
func Failing(err error) *Provider {
	return &Provider{Err: err}
}

func (p *Provider) Name() string { return "fake" }

func (p *Provider) GenerateJSON(ctx context.Context, req ai.Request) ([]byte, error) {
	p.record(req.Op)
	if err := p.failure(ctx, req.Op); err != nil {
		return nil, err
	}
	resp, ok := p.Responses[req.Op]
	if !ok {
		return nil, &ai.Error{Kind: ai.KindTransport, Provider: p.Name(), Op: req.Op, Err: errors.New("no canned response")}
	}
	return []byte(resp), nil
}

func (p *Provider) Synthesize(ctx context.Context, text string) (*ai.Speech, error) {
	p.record(SpeechOp)
	if err := p.failure(ctx, SpeechOp); err != nil {
		return nil, err
	}
	if p.Speech == nil {
		return nil, &ai.Error{Kind: ai.KindEmpty, Provider: p.Name(), Op: SpeechOp, Err: errors.New("no audio")}
	}
	return p.Speech, nil
}

// Calls returns how many times op was called.
func (p *Provider) Calls(op string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls[op]
}

// TotalCalls returns the number of calls across all ops.
func (p *Provider) TotalCalls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	total := 0
	for _, n := range p.calls {
		total += n
	}
	return total
}

func (p *Provider) record(op string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.calls == nil {
		p.calls = make(map[string]int)
	}
	p.calls[op]++
}

func (p *Provider) failure(ctx context.Context, op string) error {
	if p.Before != nil {
		if err := p.Before(ctx, op); err != nil {
			return err
		}
	}
	if p.Hang {
		<-ctx.Done()
		return ctx.Err()
	}
	if err, ok := p.Errors[op]; ok {
		return err
	}
	return p.Err
}

// Silence returns a short clip of 24kHz mono 16-bit silence.
func Silence() *ai.Speech {
	return &ai.Speech{PCM: make([]byte, 4800), SampleRate: 24000, Channels: 1, BitDepth: 16}
}
