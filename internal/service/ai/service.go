package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/sony/gobreaker/v2"
)

// ErrUnavailable is returned while the circuit breaker is open.
var ErrUnavailable = errors.New("completion service unavailable")

// Generator is the part of an eino chat model the client needs.
type Generator interface {
	Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error)
}

// BreakerConfig controls fail-fast behaviour once the provider keeps failing.
type BreakerConfig struct {
	Enabled          bool
	FailureThreshold uint32
	OpenTimeout      time.Duration
}

// Client sends single-turn prompts to a chat model.
type Client struct {
	model   Generator
	breaker *gobreaker.CircuitBreaker[*schema.Message]
	logger  *slog.Logger
}

func NewClient(gen Generator, cfg BreakerConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Client{model: gen, logger: logger}
	if cfg.Enabled {
		threshold := cfg.FailureThreshold
		if threshold == 0 {
			threshold = 5
		}
		c.breaker = gobreaker.NewCircuitBreaker[*schema.Message](gobreaker.Settings{
			Name:        "completion",
			MaxRequests: 1,
			Timeout:     cfg.OpenTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= threshold
			},
			IsSuccessful: providerHealthy,
			OnStateChange: func(name string, from, to gobreaker.State) {
				logger.Info("circuit breaker state changed",
					"breaker", name,
					"from", from.String(),
					"to", to.String(),
				)
			},
		})
	}
	return c
}

// providerHealthy reports whether err says nothing bad about the provider.
// A caller that went away is not a provider failure; a deadline is.
func providerHealthy(err error) bool {
	return err == nil || errors.Is(err, context.Canceled)
}

// Complete sends the system and user prompts with provider-default sampling and returns the reply text.
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	messages := []*schema.Message{
		{
			Role:    schema.System,
			Content: systemPrompt,
		},
		{
			Role:    schema.User,
			Content: userPrompt,
		},
	}

	generate := func() (*schema.Message, error) {
		return c.model.Generate(ctx, messages)
	}

	var (
		resp *schema.Message
		err  error
	)
	if c.breaker != nil {
		resp, err = c.breaker.Execute(generate)
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
	} else {
		resp, err = generate()
	}
	if err != nil {
		return "", fmt.Errorf("generate completion failed: %w", err)
	}
	if resp == nil {
		return "", errors.New("generate completion failed: empty response")
	}
	return resp.Content, nil
}
