package domain

// CartItem carries the unit price, never the line total.
type CartItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// Cart is rebuilt by the model on every chat turn and never stored as such.
type Cart struct {
	Items      []CartItem `json:"items"`
	TotalPrice float64    `json:"total_price"`
	Address    *string    `json:"address"`
}

type ChatReply struct {
	ResponseForUser string `json:"response_for_user"`
	Cart            Cart   `json:"cart"`
}

const FallbackMessage = "Lo siento, he tenido un problema interno. Por favor, inténtalo de nuevo."

// FallbackReply is the always-valid body returned when a chat turn fails.
func FallbackReply() ChatReply {
	return ChatReply{
		ResponseForUser: FallbackMessage,
		Cart: Cart{
			Items:      []CartItem{},
			TotalPrice: 0,
			Address:    nil,
		},
	}
}
