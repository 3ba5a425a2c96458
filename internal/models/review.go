// internal/models/review.go
package models

import (
	"github.com/google/uuid"
)

// One review per (user, product), enforced by the composite unique index.
type Review struct {
	BaseModel
	ProductID uuid.UUID   `json:"productId" gorm:"type:uuid;not null;uniqueIndex:idx_reviews_product_user;index"`
	UserID    uuid.UUID   `json:"userId" gorm:"type:uuid;not null;uniqueIndex:idx_reviews_product_user;index"`
	UserName  string      `json:"userName" gorm:"size:50;not null"`
	UserPhoto string      `json:"userPhoto" gorm:"size:512"`
	Rating    int         `json:"rating" gorm:"not null"`
	Comment   string      `json:"comment" gorm:"type:text;not null"`
	Images    StringArray `json:"images" gorm:"type:text"`

	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}
