package assistant

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"

	logx "github.com/kaleem-core/server/pkg/logger"
)

// ChatModel is the narrow chat-model surface the assistant needs. The eino
// Gemini model satisfies it; tests substitute fakes.
type ChatModel interface {
	Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error)
}

// ModelsConfig holds everything needed to construct both chat models against
// one Gemini client.
type ModelsConfig struct {
	APIKey     string
	BaseURL    string
	Extraction ExtractionModelConfig
	Chat       ChatModelConfig
}

// Models holds the extraction and conversation chat models.
type Models struct {
	Extraction ChatModel
	Chat       ChatModel
}

// NewModels creates the Gemini client and both chat models.
func NewModels(ctx context.Context, cfg ModelsConfig) (*Models, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions.BaseURL = cfg.BaseURL
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		logx.Error().Err(err).Msg("Error creating Gemini client")
		return nil, fmt.Errorf("error creating Gemini client: %w", err)
	}

	extraction, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      client,
		Model:       cfg.Extraction.Model,
		Temperature: &cfg.Extraction.Temperature,
		MaxTokens:   &cfg.Extraction.MaxTokens,
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating extraction model")
		return nil, fmt.Errorf("error creating extraction model: %w", err)
	}

	chat, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      client,
		Model:       cfg.Chat.Model,
		Temperature: &cfg.Chat.Temperature,
		MaxTokens:   &cfg.Chat.MaxTokens,
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating chat model")
		return nil, fmt.Errorf("error creating chat model: %w", err)
	}

	return &Models{Extraction: extraction, Chat: chat}, nil
}
