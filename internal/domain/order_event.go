package domain

import "time"

type OrderCreatedEvent struct {
	OrderID    uint64           `json:"order_id"`
	Address    string           `json:"address"`
	TotalPrice float64          `json:"total_price"`
	Items      []OrderEventItem `json:"items"`
	CreatedAt  time.Time        `json:"created_at"`
}

type OrderEventItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

func NewOrderCreatedEvent(o *Order) OrderCreatedEvent {
	items := make([]OrderEventItem, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderEventItem{Name: it.ProductName, Quantity: it.Quantity, Price: it.UnitPrice})
	}
	return OrderCreatedEvent{
		OrderID:    o.ID,
		Address:    o.DeliveryAddress,
		TotalPrice: o.TotalPrice,
		Items:      items,
		CreatedAt:  o.CreatedAt,
	}
}
