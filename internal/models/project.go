package models

import (
	"time"

	"gorm.io/datatypes"
)

// Project is a portfolio entry. Tech is stored as a JSON list.
type Project struct {
	ID          uint                        `json:"id" gorm:"primaryKey"`
	Title       string                      `json:"title" gorm:"not null"`
	Description string                      `json:"description" gorm:"type:text;not null"`
	Tech        datatypes.JSONSlice[string] `json:"tech"`
	Image       *string                     `json:"image"`
	Github      *string                     `json:"github"`
	Demo        *string                     `json:"demo"`
	Images      []ProjectImage              `json:"images,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time                   `json:"createdAt"`
	UpdatedAt   time.Time                   `json:"updatedAt"`
}

type ProjectImage struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	ProjectID    uint      `json:"projectId" gorm:"index;not null"`
	ImageURL     string    `json:"imageUrl" gorm:"not null"`
	Description  *string   `json:"description"`
	DisplayOrder int       `json:"displayOrder"`
	CreatedAt    time.Time `json:"createdAt"`
}
