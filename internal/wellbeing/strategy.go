package wellbeing

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/AnshRaj112/evolve-backend/internal/ai"
)

// Source reports which path produced a result.
type Source string

const (
	SourceAI       Source = "ai"
	SourceFallback Source = "fallback"
	// SourceRule means a deterministic guard answered without calling the model.
	SourceRule Source = "rule"
)

// Outcome is a component result. Err holds the primary-path failure when
// Source is SourceFallback.
type Outcome[T any] struct {
	Value  T
	Source Source
	Err    error
}

func (o Outcome[T]) FellBack() bool { return o.Source == SourceFallback }

// PrimaryFunc calls the generative model.
type PrimaryFunc[In, Out any] func(ctx context.Context, in In) (Out, error)

// FallbackFunc must never fail.
type FallbackFunc[In, Out any] func(in In) Out

// Strategy runs Primary under a timeout and substitutes Fallback on any
// failure. A nil Primary means the provider lacks the capability. No retries.
type Strategy[In, Out any] struct {
	Op       string
	Primary  PrimaryFunc[In, Out]
	Fallback FallbackFunc[In, Out]
	Timeout  time.Duration
	Logger   *zap.Logger
}

func (s Strategy[In, Out]) Run(ctx context.Context, in In) Outcome[Out] {
	if s.Primary == nil {
		return s.fallBack(in, &ai.Error{Kind: ai.KindUnavailable, Op: s.Op, Err: ai.ErrNoProvider})
	}

	callCtx, cancel := ctx, context.CancelFunc(func() {})
	if s.Timeout > 0 {
		callCtx, cancel = context.WithTimeout(ctx, s.Timeout)
	}
	out, err := s.Primary(callCtx, in)
	cancel()
	if err != nil {
		return s.fallBack(in, err)
	}
	return Outcome[Out]{Value: out, Source: SourceAI}
}

func (s Strategy[In, Out]) fallBack(in In, err error) Outcome[Out] {
	kind := ai.KindOf(err)
	fields := []zap.Field{zap.String("op", s.Op), zap.String("error_kind", string(kind)), zap.Error(err)}
	switch {
	case errors.Is(err, ai.ErrNoProvider):
		s.Logger.Debug("AI disabled, using fallback", fields...)
	case kind == ai.KindSchema || kind == ai.KindRejected:
		s.Logger.Error("AI response rejected, using fallback", fields...)
	default:
		s.Logger.Warn("AI call failed, using fallback", fields...)
	}
	return Outcome[Out]{Value: s.Fallback(in), Source: SourceFallback, Err: err}
}

// Picker returns an index in [0, n). It selects canned fallback texts.
type Picker func(n int) int

// Options configures every component.
type Options struct {
	// Timeout bounds each structured completion.
	Timeout time.Duration
	// AudioTimeout bounds each speech synthesis call.
	AudioTimeout time.Duration
	Logger       *zap.Logger
	Picker       Picker
}

func (o Options) withDefaults() Options {
	if o.Timeout <= 0 {
		o.Timeout = 20 * time.Second
	}
	if o.AudioTimeout <= 0 {
		o.AudioTimeout = 60 * time.Second
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.Picker == nil {
		o.Picker = rand.IntN
	}
	return o
}

func (o Options) pick(options []string) string {
	return options[o.Picker(len(options))]
}
