package domain

// Product is a menu entry. The table is seeded once and read-only afterwards.
type Product struct {
	ID          uint64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string  `json:"name" gorm:"column:nombre;uniqueIndex"`
	Price       float64 `json:"price" gorm:"column:precio"`
	Category    string  `json:"category" gorm:"column:categoria"`
	Description string  `json:"description" gorm:"column:descripcion"`
}

func (Product) TableName() string { return "productos" }
