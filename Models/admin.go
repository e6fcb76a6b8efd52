package Models

import (
	"gorm.io/gorm"
)

// Admin is the single principal type of the app. The mobile number is the
// login identifier, password is a bcrypt hash.
type Admin struct {
	gorm.Model
	Mobile   string `json:"mobile" gorm:"not null;uniqueIndex"`
	Password string `json:"-" gorm:"not null"`
}
