package models

import (
	"time"

	"gorm.io/datatypes"
)

// SingletonID is the fixed primary key of every single-record table
// (Profile, About, Contact, MessageSettings).
const SingletonID uint = 1

// Profile is the hero section of the site.
type Profile struct {
	ID            uint                        `json:"id" gorm:"primaryKey"`
	Name          string                      `json:"name"`
	Title         string                      `json:"title"`
	Bio           string                      `json:"bio" gorm:"type:text"`
	Email         string                      `json:"email"`
	Github        string                      `json:"github"`
	Linkedin      string                      `json:"linkedin"`
	Image         string                      `json:"image"`
	ProfileImages datatypes.JSONSlice[string] `json:"profileImages"`
	UpdatedAt     time.Time                   `json:"updatedAt"`
}

type About struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"not null"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Contact struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"not null"`
	Phone     *string   `json:"phone"`
	Address   *string   `json:"address"`
	UpdatedAt time.Time `json:"updatedAt"`
}
