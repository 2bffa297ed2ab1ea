package sqlite

import (
	"context"
	"log"

	"github.com/Dehaka844/chatbot-pedidos/internal/domain"
	"github.com/Dehaka844/chatbot-pedidos/internal/repository"

	"gorm.io/gorm"
)

type menuRepo struct {
	db *gorm.DB
}

func NewMenuRepository(db *gorm.DB) repository.MenuRepository {
	return &menuRepo{db: db}
}

// All is uncached: the menu is re-read on every call.
func (r *menuRepo) All(ctx context.Context) ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.WithContext(ctx).Connection(func(conn *gorm.DB) error {
		return conn.Order("id ASC").Find(&out).Error
	})
	if err != nil {
		log.Printf("menu: read products: %v", err)
		return nil, err
	}
	return out, nil
}
