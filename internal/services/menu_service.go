package services

import (
	"context"

	"github.com/Dehaka844/chatbot-pedidos/internal/domain"
	"github.com/Dehaka844/chatbot-pedidos/internal/repository"
)

type MenuService struct {
	repo repository.MenuRepository
}

func NewMenuService(r repository.MenuRepository) *MenuService {
	return &MenuService{repo: r}
}

func (m *MenuService) List(ctx context.Context) ([]domain.Product, error) {
	return m.repo.All(ctx)
}
