package models

import "time"

// Admin is the single site owner. Password holds a bcrypt hash and is never serialized.
type Admin struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"uniqueIndex;size:100;not null"`
	Password  string    `json:"-" gorm:"not null"`
	Email     string    `json:"email,omitempty" gorm:"size:255"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
