package repository

import (
	"context"

	"github.com/Dehaka844/chatbot-pedidos/internal/domain"
)

type OrderRepository interface {
	// Save inserts the order and all of its items atomically and sets their IDs.
	Save(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, id uint64) (*domain.Order, error)
}
