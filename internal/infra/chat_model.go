package infra

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dehaka844/chatbot-pedidos/internal/domain"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
)

var ErrEmptyCompletion = errors.New("model returned no choices")

type ChatModelConfig struct {
	APIKey      string
	Model       string
	BaseURL     string
	Temperature float64
	Timeout     time.Duration
}

// ChatModel calls an OpenAI-compatible chat completion endpoint in JSON mode.
type ChatModel struct {
	llm         llms.Model
	model       string
	temperature float64
	timeout     time.Duration
}

func NewChatModel(cfg ChatModelConfig) (*ChatModel, error) {
	opts := []openai.Option{
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.Model),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}

	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("init openai client: %w", err)
	}
	return NewChatModelWith(llm, cfg), nil
}

// NewChatModelWith wraps an existing llms.Model.
func NewChatModelWith(llm llms.Model, cfg ChatModelConfig) *ChatModel {
	return &ChatModel{
		llm:         llm,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		timeout:     cfg.Timeout,
	}
}

func (c *ChatModel) Complete(ctx context.Context, messages []domain.Message) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	content := make([]llms.MessageContent, 0, len(messages))
	for _, m := range messages {
		content = append(content, llms.TextParts(messageType(m.Role), m.Content))
	}

	resp, err := c.llm.GenerateContent(ctx, content,
		llms.WithModel(c.model),
		llms.WithTemperature(c.temperature),
		llms.WithJSONMode(),
	)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}
	return resp.Choices[0].Content, nil
}

func messageType(role string) schema.ChatMessageType {
	switch role {
	case domain.RoleSystem:
		return schema.ChatMessageTypeSystem
	case domain.RoleAssistant:
		return schema.ChatMessageTypeAI
	case domain.RoleUser:
		return schema.ChatMessageTypeHuman
	default:
		return schema.ChatMessageTypeGeneric
	}
}
