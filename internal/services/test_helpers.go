package services

import (
	"github.com/Dehaka844/chatbot-pedidos/internal/domain"
)

func CreateMockMenu() []domain.Product {
	return []domain.Product{
		{ID: 1, Name: "Margarita", Price: TestMargaritaPrice, Category: "Pizzas"},
		{ID: 2, Name: "Pepperoni", Price: 12.0, Category: "Pizzas"},
		{ID: 3, Name: "Agua", Price: 1.5, Category: "Bebidas"},
	}
}

func CreateMockOrderRequest(address string, items ...domain.CartItem) domain.OrderRequest {
	var total float64
	for _, it := range items {
		total += float64(it.Quantity) * it.Price
	}
	return domain.OrderRequest{
		Address:    address,
		TotalPrice: total,
		Items:      items,
	}
}

const (
	TestOrderID        = uint64(1)
	TestAddress        = "Calle Mayor 1, Madrid"
	TestMargaritaPrice = 10.0
	TestIdempotencyKey = "9b2f6c1e-client-retry"
)
