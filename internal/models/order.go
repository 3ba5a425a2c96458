// internal/models/order.go
package models

import (
	"github.com/google/uuid"
)

type Order struct {
	BaseModel
	UserID       uuid.UUID   `json:"userId" gorm:"type:uuid;not null;index"`
	Items        []OrderItem `json:"products" gorm:"foreignKey:OrderID"`
	TotalPrice   float64     `json:"totalPrice" gorm:"type:decimal(10,2);not null"`
	Address      string      `json:"address" gorm:"size:512;not null"`
	Phone        string      `json:"phone" gorm:"size:32;not null"`
	Status       OrderStatus `json:"status" gorm:"type:varchar(10);default:'Pending';index"`
	WhatsappLink string      `json:"whatsappLink" gorm:"type:text"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// OrderItem is a line item: a price/size/quantity snapshot taken at order
// time. The referenced product may be deleted later; the snapshot survives.
type OrderItem struct {
	BaseModel
	OrderID   uuid.UUID `json:"-" gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID `json:"productId" gorm:"type:uuid;not null;index"`
	Title     string    `json:"title" gorm:"size:200;not null"`
	Serial    string    `json:"serial,omitempty" gorm:"size:20"`
	Size      string    `json:"size" gorm:"size:20;not null"`
	Quantity  int       `json:"quantity" gorm:"not null"`
	Price     float64   `json:"price" gorm:"type:decimal(10,2);not null"`
	Image     string    `json:"image" gorm:"size:512"`
}
