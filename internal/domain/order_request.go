package domain

// OrderRequest is a finalized cart submitted for persistence.
type OrderRequest struct {
	Address    string     `json:"address"`
	TotalPrice float64    `json:"total_price"`
	Items      []CartItem `json:"items"`
}

func (r OrderRequest) ToOrder() *Order {
	items := make([]OrderItem, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, OrderItem{
			ProductName: it.Name,
			Quantity:    it.Quantity,
			UnitPrice:   it.Price,
		})
	}
	return &Order{
		DeliveryAddress: r.Address,
		TotalPrice:      r.TotalPrice,
		Status:          StatusPending,
		Items:           items,
	}
}
