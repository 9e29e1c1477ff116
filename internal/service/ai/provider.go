package ai

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/claude"
	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"google.golang.org/genai"

	"chefwho/internal/config"
)

const defaultClaudeMaxTokens = 1024

// NewChatModel builds the eino chat model for a configured provider.
func NewChatModel(ctx context.Context, provider string, provCfg config.ProviderConfig) (model.BaseChatModel, error) {
	modelName := provCfg.Model
	if modelName == "" && provider == "openai" {
		modelName = config.DefaultModel
	}
	if modelName == "" {
		return nil, fmt.Errorf("model must be configured for provider %s", provider)
	}

	switch provider {
	case "openai":
		baseURL := provCfg.BaseURL
		if baseURL == "" {
			baseURL = config.DefaultBaseURL
		}
		chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
			BaseURL: baseURL,
			Model:   modelName,
			APIKey:  provCfg.APIKey,
		})
		if err != nil {
			return nil, fmt.Errorf("init openai model: %w", err)
		}
		return chatModel, nil
	case "gemini":
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey: provCfg.APIKey,
		})
		if err != nil {
			return nil, fmt.Errorf("init gemini client: %w", err)
		}
		chatModel, err := gemini.NewChatModel(ctx, &gemini.Config{
			Client: client,
			Model:  modelName,
		})
		if err != nil {
			return nil, fmt.Errorf("init gemini model: %w", err)
		}
		return chatModel, nil
	case "claude":
		var baseURLPtr *string
		if provCfg.BaseURL != "" {
			baseURLPtr = &provCfg.BaseURL
		}
		maxTokens := provCfg.MaxTokens
		if maxTokens <= 0 {
			// claude rejects requests without max_tokens
			maxTokens = defaultClaudeMaxTokens
		}
		chatModel, err := claude.NewChatModel(ctx, &claude.Config{
			APIKey:    provCfg.APIKey,
			Model:     modelName,
			BaseURL:   baseURLPtr,
			MaxTokens: maxTokens,
		})
		if err != nil {
			return nil, fmt.Errorf("init claude model: %w", err)
		}
		return chatModel, nil
	default:
		return nil, fmt.Errorf("invalid provider: %s", provider)
	}
}
