package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Dehaka844/chatbot-pedidos/internal/domain"
	"github.com/Dehaka844/chatbot-pedidos/internal/infra"
	"github.com/Dehaka844/chatbot-pedidos/internal/prompt"
	"github.com/Dehaka844/chatbot-pedidos/internal/repository"
)

var ErrInvalidModelOutput = errors.New("model output is not a JSON object")

var fallbackBody = mustMarshal(domain.FallbackReply())

// ChatResult is the outcome of one chat turn. Body is always a valid JSON
// object; when Fallback is set it is the fixed apology payload and Err says why.
type ChatResult struct {
	Body     json.RawMessage
	Fallback bool
	Err      error
}

func fallback(err error) ChatResult {
	return ChatResult{Body: fallbackBody, Fallback: true, Err: err}
}

type ChatService struct {
	menu  repository.MenuRepository
	model infra.ChatModelInterface
}

func NewChatService(menu repository.MenuRepository, model infra.ChatModelInterface) *ChatService {
	return &ChatService{menu: menu, model: model}
}

// Reply asks the model for the cart state implied by history. It never
// returns an error: every failure degrades to the fallback result.
func (s *ChatService) Reply(ctx context.Context, history []domain.Turn) ChatResult {
	products, err := s.menu.All(ctx)
	if err != nil {
		return fallback(fmt.Errorf("load menu: %w", err))
	}

	messages := make([]domain.Message, 0, len(history)+1)
	messages = append(messages, domain.Message{Role: domain.RoleSystem, Content: prompt.System(products)})
	messages = append(messages, TurnsToMessages(history)...)

	out, err := s.model.Complete(ctx, messages)
	if err != nil {
		return fallback(err)
	}

	body, err := parseModelOutput(out)
	if err != nil {
		return fallback(err)
	}
	return ChatResult{Body: body}
}

// TurnsToMessages keeps the order of the history. Unknown shapes are passed
// through: a non-string content is sent as its JSON encoding.
func TurnsToMessages(history []domain.Turn) []domain.Message {
	out := make([]domain.Message, 0, len(history))
	for _, t := range history {
		out = append(out, domain.Message{
			Role:    stringify(t["role"]),
			Content: stringify(t["content"]),
		})
	}
	return out
}

func stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprint(x)
		}
		return string(b)
	}
}

func parseModelOutput(out string) (json.RawMessage, error) {
	raw := bytes.TrimSpace([]byte(out))
	if !json.Valid(raw) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidModelOutput, truncate(out, 200))
	}
	if len(raw) == 0 || raw[0] != '{' {
		return nil, fmt.Errorf("%w: got %q", ErrInvalidModelOutput, truncate(out, 200))
	}
	return json.RawMessage(raw), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func mustMarshal(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}

// FallbackBody returns the fixed apology payload.
func FallbackBody() json.RawMessage {
	return fallbackBody
}
