package domain

import "time"

type OrderStatus string

// StatusPending is the only status this service writes; estado is kept for the existing schema.
const StatusPending OrderStatus = "pending"

// Order is a finalized purchase. Column names follow the existing pedidos schema.
type Order struct {
	ID              uint64      `json:"id" gorm:"primaryKey;autoIncrement"`
	DeliveryAddress string      `json:"address" gorm:"column:direccion_entrega"`
	CreatedAt       time.Time   `json:"created_at" gorm:"column:fecha_pedido;autoCreateTime"`
	TotalPrice      float64     `json:"total_price" gorm:"column:precio_total"`
	Status          OrderStatus `json:"status" gorm:"column:estado;default:'pending'"`
	Items           []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
}

func (Order) TableName() string { return "pedidos" }

// OrderItem is one product line of an Order. It is only ever created with its parent.
type OrderItem struct {
	ID          uint64  `json:"id" gorm:"primaryKey;autoIncrement"`
	OrderID     uint64  `json:"order_id" gorm:"column:pedido_id;not null;index"`
	ProductName string  `json:"name" gorm:"column:nombre_producto"`
	Quantity    int     `json:"quantity" gorm:"column:cantidad"`
	UnitPrice   float64 `json:"price" gorm:"column:precio_unitario"`
}

func (OrderItem) TableName() string { return "items_pedido" }
