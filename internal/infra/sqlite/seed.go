package sqlite

import (
	"fmt"
	"log"

	"github.com/Dehaka844/chatbot-pedidos/internal/domain"

	"gorm.io/gorm"
)

var DefaultMenu = []domain.Product{
	{Name: "Margarita", Price: 10.0, Category: "Pizzas"},
	{Name: "Pepperoni", Price: 12.0, Category: "Pizzas"},
	{Name: "Cuatro Quesos", Price: 13.0, Category: "Pizzas"},
	{Name: "Vegetal", Price: 11.0, Category: "Pizzas"},
	{Name: "Salsa", Price: 1.0, Category: "Extras en pizza"},
	{Name: "Queso", Price: 0.5, Category: "Extras en pizza"},
	{Name: "Borde relleno", Price: 2.0, Category: "Extras en pizza"},
	{Name: "Refresco de Cola", Price: 2.0, Category: "Bebidas"},
	{Name: "Agua", Price: 1.5, Category: "Bebidas"},
	{Name: "Cerveza", Price: 2.5, Category: "Bebidas"},
	{Name: "Tarta de Queso", Price: 5.0, Category: "Postres"},
	{Name: "Helado", Price: 3.0, Category: "Postres"},
	{Name: "Pan de ajo", Price: 1.5, Category: "Extras"},
}

// SeedMenu inserts DefaultMenu only when productos is empty.
func SeedMenu(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&domain.Product{}).Count(&count).Error; err != nil {
			return fmt.Errorf("count products: %w", err)
		}
		if count > 0 {
			log.Printf("Menu already has %d products, skipping seed", count)
			return nil
		}

		products := make([]domain.Product, len(DefaultMenu))
		copy(products, DefaultMenu)
		if err := tx.Create(&products).Error; err != nil {
			return fmt.Errorf("seed products: %w", err)
		}
		log.Printf("Seeded %d products", len(products))
		return nil
	})
}
