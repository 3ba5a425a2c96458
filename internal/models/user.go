// internal/models/user.go
package models

type User struct {
	BaseModel
	Name      string   `json:"name" gorm:"size:50;not null"`
	Email     string   `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PhotoURL  string   `json:"photoURL" gorm:"size:512"`
	Phone     string   `json:"phone" gorm:"size:32"`
	Address   string   `json:"address" gorm:"size:512"`
	Role      UserRole `json:"role" gorm:"type:varchar(10);default:'user';index"`
	IsBlocked bool     `json:"isBlocked" gorm:"default:false;index"`

	// Relationships
	Orders  []Order  `json:"orders,omitempty" gorm:"foreignKey:UserID"`
	Reviews []Review `json:"reviews,omitempty" gorm:"foreignKey:UserID"`
}
