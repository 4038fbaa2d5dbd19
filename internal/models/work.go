package models

import "time"

// Work is one entry of the employment history.
type Work struct {
	ID          uint        `json:"id" gorm:"primaryKey"`
	Company     string      `json:"company" gorm:"not null"`
	Role        string      `json:"role" gorm:"not null"`
	Duration    string      `json:"duration" gorm:"not null"`
	Description string      `json:"description" gorm:"type:text"`
	Images      []WorkImage `json:"images,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

type WorkImage struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	WorkID       uint      `json:"workId" gorm:"index;not null"`
	ImageURL     string    `json:"imageUrl" gorm:"not null"`
	Description  *string   `json:"description"`
	DisplayOrder int       `json:"displayOrder"`
	CreatedAt    time.Time `json:"createdAt"`
}
