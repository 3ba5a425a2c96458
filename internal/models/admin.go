// internal/models/admin.go
package models

import (
	"golang.org/x/crypto/bcrypt"
)

// Admin is a separate identity class from User. Admins log in with a
// password and register FCM device tokens for order push notifications.
type Admin struct {
	BaseModel
	Name         string      `json:"name" gorm:"size:50;not null"`
	Email        string      `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string      `json:"-" gorm:"size:255;not null"`
	Role         string      `json:"role" gorm:"type:varchar(10);default:'admin'"`
	FCMTokens    StringArray `json:"fcmTokens" gorm:"type:text"`
}

func (a *Admin) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return err
	}
	a.PasswordHash = string(hashedPassword)
	return nil
}

func (a *Admin) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password))
}

func (a *Admin) HasFCMToken(token string) bool {
	for _, t := range a.FCMTokens {
		if t == token {
			return true
		}
	}
	return false
}
