package sqlite

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/Dehaka844/chatbot-pedidos/internal/domain"
	"github.com/Dehaka844/chatbot-pedidos/internal/repository"

	"gorm.io/gorm"
)

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepo{db: db}
}

func (r *orderRepo) Save(ctx context.Context, order *domain.Order) error {
	err := r.db.WithContext(ctx).Connection(func(conn *gorm.DB) error {
		return conn.Transaction(func(tx *gorm.DB) error {
			if err := tx.Omit("Items").Create(order).Error; err != nil {
				return fmt.Errorf("insert order: %w", err)
			}
			if order.ID == 0 {
				return errors.New("failed to assign order ID")
			}

			for i := range order.Items {
				order.Items[i].ID = 0
				order.Items[i].OrderID = order.ID
				if err := tx.Create(&order.Items[i]).Error; err != nil {
					return fmt.Errorf("insert item %q: %w", order.Items[i].ProductName, err)
				}
			}
			return nil
		})
	})
	if err != nil {
		log.Printf("Database save error: %v", err)
		resetIDs(order)
		return err
	}

	log.Printf("Order saved successfully with ID: %d (%d items)", order.ID, len(order.Items))
	return nil
}

func (r *orderRepo) FindByID(ctx context.Context, id uint64) (*domain.Order, error) {
	var o domain.Order
	err := r.db.WithContext(ctx).Connection(func(conn *gorm.DB) error {
		return conn.Preload("Items").First(&o, id).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("FindByID error: %v", err)
		return nil, err
	}
	return &o, nil
}

// resetIDs clears ids assigned by inserts that were rolled back.
func resetIDs(order *domain.Order) {
	order.ID = 0
	for i := range order.Items {
		order.Items[i].ID = 0
		order.Items[i].OrderID = 0
	}
}
