package infra

import (
	"context"

	"github.com/Dehaka844/chatbot-pedidos/internal/domain"
)

// ChatModelInterface returns the raw text of a single model completion.
type ChatModelInterface interface {
	Complete(ctx context.Context, messages []domain.Message) (string, error)
}

var _ ChatModelInterface = (*ChatModel)(nil)
