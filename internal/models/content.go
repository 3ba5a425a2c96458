// internal/models/content.go
package models

import (
	"time"
)

// Marketing-content resources: independent flat CRUD, no cross-entity logic.

type HeroSlide struct {
	BaseModel
	Title        string    `json:"title" gorm:"size:100;not null"`
	Subtitle     string    `json:"subtitle" gorm:"size:100;not null"`
	Description  string    `json:"description" gorm:"size:500;not null"`
	CTA          string    `json:"cta" gorm:"size:50;not null"`
	Link         string    `json:"link" gorm:"size:512;not null"`
	Type         SlideType `json:"type" gorm:"type:varchar(10);not null"`
	MediaURL     string    `json:"mediaUrl" gorm:"size:512;not null"`
	VideoURL     string    `json:"videoUrl" gorm:"size:512"`
	ThumbnailURL string    `json:"thumbnailUrl" gorm:"size:512"`
	// Display duration in milliseconds; videos use their own length.
	Duration int  `json:"duration" gorm:"default:5000"`
	Order    int  `json:"order" gorm:"column:position;default:0"`
	IsActive bool `json:"isActive" gorm:"default:true;index"`
}

type OfferBanner struct {
	BaseModel
	Title                  string `json:"title" gorm:"size:100;not null"`
	Description            string `json:"description" gorm:"size:500;not null"`
	DiscountText           string `json:"discountText" gorm:"size:50;not null"`
	ButtonText             string `json:"buttonText" gorm:"size:50;default:'Shop Now'"`
	ButtonLink             string `json:"buttonLink" gorm:"size:512;not null"`
	BackgroundGradientFrom string `json:"backgroundGradientFrom" gorm:"size:16;default:'#f97316'"`
	BackgroundGradientTo   string `json:"backgroundGradientTo" gorm:"size:16;default:'#dc2626'"`
	IsActive               bool   `json:"isActive" gorm:"default:true;index"`
	Order                  int    `json:"order" gorm:"column:position;default:0"`
}

type CountdownTimer struct {
	BaseModel
	Title    string    `json:"title" gorm:"size:100;default:'Special Offer'"`
	EndDate  time.Time `json:"endDate" gorm:"not null"`
	IsActive bool      `json:"isActive" gorm:"default:true;index"`
}

type DynamicLink struct {
	BaseModel
	Label    string          `json:"label" gorm:"size:100;not null"`
	Type     DynamicLinkType `json:"type" gorm:"type:varchar(10);not null"`
	Value    string          `json:"value" gorm:"size:255;not null"`
	Path     string          `json:"path" gorm:"size:512"`
	IsActive bool            `json:"isActive" gorm:"default:false;index"`
	Order    int             `json:"order" gorm:"column:position;default:0"`
}
