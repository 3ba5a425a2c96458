// internal/models/category.go
package models

type Category struct {
	BaseModel
	Name        string       `json:"name" gorm:"uniqueIndex;size:50;not null"`
	Code        string       `json:"code" gorm:"uniqueIndex;size:5;not null"`
	Slug        string       `json:"slug" gorm:"uniqueIndex;size:64;not null"`
	Description string       `json:"description" gorm:"size:500"`
	Image       string       `json:"image" gorm:"size:512"`
	Type        CategoryType `json:"type" gorm:"type:varchar(20);default:'category'"`
	IsActive    bool         `json:"isActive" gorm:"default:true;index"`
}
