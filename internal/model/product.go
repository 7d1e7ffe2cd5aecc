package model

type Product struct {
	ID        string  `gorm:"type:varchar(64);primaryKey" json:"id"`
	Name      string  `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	SKU       string  `gorm:"type:varchar(50)" json:"sku"` // display code, not unique
	Stock     int     `gorm:"default:0" json:"stock"`
	BasePrice float64 `gorm:"default:0" json:"base_price"`
	Category  string  `gorm:"type:varchar(100);not null" json:"category" validate:"required"`
	Image     string  `gorm:"type:text" json:"image,omitempty"`

	// Box/pack sale variant. Zero means the product sells per unit only.
	UnitsPerBox int     `gorm:"default:0" json:"units_per_box,omitempty"`
	BoxPrice    float64 `gorm:"default:0" json:"box_price,omitempty"`
}

// SellsByBox reports whether the box sale variant is configured.
func (p Product) SellsByBox() bool {
	return p.UnitsPerBox > 1 && p.BoxPrice > 0
}
