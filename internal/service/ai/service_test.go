package ai

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chefwho/internal/config"
)

type fakeGenerator struct {
	reply   *schema.Message
	err     error
	calls   int
	lastIn  []*schema.Message
	lastOpt int
}

func (f *fakeGenerator) Generate(_ context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	f.calls++
	f.lastIn = input
	f.lastOpt = len(opts)
	return f.reply, f.err
}

func TestCompleteSendsSystemAndUserMessages(t *testing.T) {
	gen := &fakeGenerator{reply: &schema.Message{Role: schema.Assistant, Content: "Make pesto."}}
	client := NewClient(gen, BreakerConfig{}, nil)

	text, err := client.Complete(context.Background(), "sys", "usr")
	require.NoError(t, err)
	assert.Equal(t, "Make pesto.", text)

	require.Len(t, gen.lastIn, 2)
	assert.Equal(t, schema.System, gen.lastIn[0].Role)
	assert.Equal(t, "sys", gen.lastIn[0].Content)
	assert.Equal(t, schema.User, gen.lastIn[1].Role)
	assert.Equal(t, "usr", gen.lastIn[1].Content)
	assert.Zero(t, gen.lastOpt, "no sampling options")
}

func TestCompletePropagatesErrors(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("429 rate limited")}
	client := NewClient(gen, BreakerConfig{}, nil)

	_, err := client.Complete(context.Background(), "sys", "usr")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429 rate limited")
	assert.Equal(t, 1, gen.calls, "no retries")

	gen = &fakeGenerator{}
	_, err = NewClient(gen, BreakerConfig{}, nil).Complete(context.Background(), "sys", "usr")
	require.Error(t, err)
}

func TestCompleteBreakerOpensAfterThreshold(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("upstream 502")}
	client := NewClient(gen, BreakerConfig{Enabled: true, FailureThreshold: 2, OpenTimeout: time.Minute}, nil)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := client.Complete(ctx, "s", "u")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrUnavailable)
	}
	_, err := client.Complete(ctx, "s", "u")
	require.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, 2, gen.calls, "open breaker must not reach the provider")
}

func TestCompleteBreakerIgnoresCanceledCallers(t *testing.T) {
	gen := &fakeGenerator{err: context.Canceled}
	client := NewClient(gen, BreakerConfig{Enabled: true, FailureThreshold: 2, OpenTimeout: time.Minute}, nil)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := client.Complete(ctx, "s", "u")
		require.ErrorIs(t, err, context.Canceled)
	}

	gen.err = nil
	gen.reply = &schema.Message{Content: "Roast it."}
	text, err := client.Complete(ctx, "s", "u")
	require.NoError(t, err)
	assert.Equal(t, "Roast it.", text)
	assert.Equal(t, 6, gen.calls)
}

func TestCompleteBreakerCountsDeadlines(t *testing.T) {
	gen := &fakeGenerator{err: context.DeadlineExceeded}
	client := NewClient(gen, BreakerConfig{Enabled: true, FailureThreshold: 2, OpenTimeout: time.Minute}, nil)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := client.Complete(ctx, "s", "u")
		require.ErrorIs(t, err, context.DeadlineExceeded)
	}
	_, err := client.Complete(ctx, "s", "u")
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestCompleteBreakerPassesSuccess(t *testing.T) {
	gen := &fakeGenerator{reply: &schema.Message{Content: "ok"}}
	client := NewClient(gen, BreakerConfig{Enabled: true}, nil)
	text, err := client.Complete(context.Background(), "s", "u")
	require.NoError(t, err)
	assert.Equal(t, "ok", text)
}

func TestNewChatModelRejectsUnknownProvider(t *testing.T) {
	_, err := NewChatModel(context.Background(), "mistral", config.ProviderConfig{Model: "x"})
	require.Error(t, err)

	_, err = NewChatModel(context.Background(), "claude", config.ProviderConfig{})
	require.Error(t, err)
}

func TestNewChatModelOpenAIDefaults(t *testing.T) {
	chatModel, err := NewChatModel(context.Background(), "openai", config.ProviderConfig{APIKey: "test"})
	require.NoError(t, err)
	assert.NotNil(t, chatModel)
}
