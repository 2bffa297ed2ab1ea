package http

import "github.com/Dehaka844/chatbot-pedidos/internal/domain"

type ChatRequest struct {
	ConversationHistory []domain.Turn `json:"conversation_history"`
}

type CreateOrderItem struct {
	Name     string  `json:"name" binding:"required"`
	Quantity int     `json:"quantity" binding:"required,min=1"`
	Price    float64 `json:"price" binding:"min=0"`
}

type CreateOrderRequest struct {
	Address    string            `json:"address" binding:"required"`
	TotalPrice float64           `json:"total_price" binding:"min=0"`
	Items      []CreateOrderItem `json:"items" binding:"required,min=1,dive"`
}

func (r CreateOrderRequest) toDomain() domain.OrderRequest {
	items := make([]domain.CartItem, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, domain.CartItem{Name: it.Name, Quantity: it.Quantity, Price: it.Price})
	}
	return domain.OrderRequest{Address: r.Address, TotalPrice: r.TotalPrice, Items: items}
}

type CreateOrderResponse struct {
	ID uint64 `json:"id"`
}
