package model

import "time"

type Customer struct {
	ID          string    `gorm:"type:varchar(64);primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	CI          string    `gorm:"type:varchar(50)" json:"ci,omitempty"` // identity / tax number
	Phone       string    `gorm:"type:varchar(30)" json:"phone,omitempty"`
	Email       string    `gorm:"type:varchar(255)" json:"email,omitempty" validate:"omitempty,email"`
	Notes       string    `gorm:"type:text" json:"notes,omitempty"`
	DateCreated time.Time `json:"date_created"`
}
