package llm

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker"
)

// GuardConfig tunes the circuit breaker in front of the completion API.
type GuardConfig struct {
	Name             string
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold float64
	MinRequests      uint32
}

func DefaultGuardConfig() GuardConfig {
	return GuardConfig{
		Name:             "llm",
		MaxRequests:      2,
		Interval:         60 * time.Second,
		Timeout:          30 * time.Second,
		FailureThreshold: 0.6,
		MinRequests:      5,
	}
}

// Guard is a circuit breaker shared by every provider built for a request.
// Only upstream failures count against it: a rejected key or a malformed
// answer says nothing about the health of the API.
type Guard struct {
	cb *gobreaker.CircuitBreaker
}

func NewGuard(cfg GuardConfig, onChange func(name string, from, to string)) *Guard {
	return &Guard{cb: gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			if onChange != nil {
				onChange(name, from.String(), to.String())
			}
		},
		IsSuccessful: countsAsSuccess,
	})}
}

// State reports the breaker state ("closed", "half-open" or "open").
func (g *Guard) State() string {
	if g == nil {
		return "disabled"
	}
	return g.cb.State().String()
}

// Wrap returns p with every Complete call routed through the breaker.
func (g *Guard) Wrap(p Provider) Provider {
	if g == nil {
		return p
	}
	return &guarded{Provider: p, cb: g.cb}
}

type guarded struct {
	Provider
	cb *gobreaker.CircuitBreaker
}

func (g *guarded) Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	out, err := g.cb.Execute(func() (interface{}, error) {
		return g.Provider.Complete(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	return out.(*CompletionResponse), nil
}

func countsAsSuccess(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return true
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Status < 500 && !se.RateLimited()
	}
	return false
}
