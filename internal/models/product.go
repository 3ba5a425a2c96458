// internal/models/product.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// ProductDescription is a paragraph plus bullet points, stored as JSON.
type ProductDescription struct {
	Paragraph string   `json:"paragraph"`
	Bullets   []string `json:"bullets"`
}

func (d ProductDescription) Value() (driver.Value, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (d *ProductDescription) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*d = ProductDescription{}
		return nil
	case []byte:
		return json.Unmarshal(v, d)
	case string:
		return json.Unmarshal([]byte(v), d)
	default:
		return fmt.Errorf("unsupported type %T for ProductDescription", value)
	}
}

type Product struct {
	BaseModel
	Title string `json:"title" gorm:"size:200;not null"`
	// Serial is the generated human-readable identifier, e.g. STLSHO00001.
	// Category code plus a zero-padded sequence; unique across products.
	Serial          string             `json:"serial" gorm:"uniqueIndex;size:20;not null"`
	Category        string             `json:"category" gorm:"size:50;not null;index"`
	Price           float64            `json:"price" gorm:"type:decimal(10,2);not null"`
	DiscountPrice   float64            `json:"discountPrice" gorm:"type:decimal(10,2);default:0"`
	Sizes           StringArray        `json:"sizes" gorm:"type:text"`
	Status          ProductStatus      `json:"status" gorm:"type:varchar(20);default:'Available';index"`
	Description     ProductDescription `json:"description" gorm:"type:text"`
	Images          StringArray        `json:"images" gorm:"type:text"`
	Gender          ProductGender      `json:"gender" gorm:"type:varchar(10);not null;index"`
	Season          string             `json:"season" gorm:"size:20;index"`
	Tags            StringArray        `json:"tags" gorm:"type:text"`
	IsOffer         bool               `json:"isOffer" gorm:"default:false;index"`
	DiscountPercent int                `json:"discountPercent" gorm:"default:0"`
	BadgeText       string             `json:"badgeText" gorm:"size:50"`
	AverageRating   float64            `json:"averageRating" gorm:"type:decimal(3,1);default:0"`
	ReviewCount     int64              `json:"reviewCount" gorm:"default:0"`
	Stock           int                `json:"stock" gorm:"default:0"`
}
