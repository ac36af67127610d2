package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/sant0-9/mindppt/internal/llm"
	"github.com/sant0-9/mindppt/internal/logger"
)

// callParams tunes one kind of model call.
type callParams struct {
	op          string
	maxTokens   int
	temperature float64
	topP        float64
	timeout     time.Duration
}

var (
	analyzeCall = callParams{op: "analyze", maxTokens: 2048, temperature: 0.7, timeout: 90 * time.Second}
	outlineCall = callParams{op: "outline", maxTokens: 4096, temperature: 0.7, topP: 0.9, timeout: 3 * time.Minute}
)

// complete asks a fresh provider for a JSON answer and decodes it into out.
func (p *Pipeline) complete(ctx context.Context, log *logger.Logger, cp callParams, system, user string, out any) error {
	provider, err := p.newProvider()
	if err != nil {
		return err
	}
	provider = p.guard.Wrap(provider)

	ctx, cancel := context.WithTimeout(ctx, cp.timeout)
	defer cancel()

	req := &llm.CompletionRequest{
		Messages: []llm.Message{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		MaxTokens:   cp.maxTokens,
		Temperature: cp.temperature,
		TopP:        cp.topP,
	}

	start := time.Now()
	resp, err := provider.Complete(ctx, req)
	elapsed := time.Since(start)
	p.observe(cp.op, elapsed, err)

	log = log.With("provider", provider.Name(), "duration", elapsed)
	if err != nil {
		log.Warn("completion failed", "error", err)
		return fmt.Errorf("%s completion: %w", cp.op, err)
	}
	log.Debug("completion finished",
		"prompt_chars", RuneLen(user),
		"answer_chars", RuneLen(resp.Content),
		"finish_reason", resp.FinishReason)

	if err := llm.DecodeJSON(resp.Content, out); err != nil {
		log.Warn("unparseable completion", "error", err, "answer_chars", RuneLen(resp.Content))
		return err
	}
	return nil
}

func (p *Pipeline) observe(op string, d time.Duration, err error) {
	if p.observer != nil {
		p.observer(op, d, err)
	}
}
