package models

import "time"

// AutoReplyTemplate is a named subject/body pair. Body and subject may use
// {{name}}, {{email}} and {{subject}} placeholders.
type AutoReplyTemplate struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message" gorm:"type:text"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// MessageSettings is a singleton row (id = SingletonID).
// MessageRetentionDays of 0 keeps conversations forever.
type MessageSettings struct {
	ID                    uint      `json:"id" gorm:"primaryKey"`
	EmailNotifications    bool      `json:"emailNotifications"`
	WhatsappNotifications bool      `json:"whatsappNotifications"`
	LinkedinNotifications bool      `json:"linkedinNotifications"`
	MessageRetentionDays  int       `json:"messageRetentionDays"`
	UpdatedAt             time.Time `json:"updatedAt"`
}

// DefaultMessageSettings mirrors the dashboard defaults.
func DefaultMessageSettings() *MessageSettings {
	return &MessageSettings{
		ID:                   SingletonID,
		EmailNotifications:   true,
		MessageRetentionDays: 30,
	}
}
