package repository

import (
	"context"

	"github.com/Dehaka844/chatbot-pedidos/internal/domain"
)

type MenuRepository interface {
	All(ctx context.Context) ([]domain.Product, error)
}
