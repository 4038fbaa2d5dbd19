package models

import "time"

// Contact methods. ContactMethodAdminReply marks an outbound reply rather
// than an inbound contact.
const (
	ContactMethodEmail      = "email"
	ContactMethodWhatsApp   = "whatsapp"
	ContactMethodLinkedIn   = "linkedin"
	ContactMethodAdminReply = "admin-reply"
)

// DefaultSubject is used when the first message of a conversation has none.
const DefaultSubject = "No Subject"

// Conversation groups every message exchanged with one sender e-mail address.
type Conversation struct {
	ID                  uint               `json:"id" gorm:"primaryKey"`
	SenderEmail         string             `json:"senderEmail" gorm:"uniqueIndex;size:255;not null"`
	Subject             string             `json:"subject"`
	IsActive            bool               `json:"isActive"`
	AutoReplyTemplateID *uint              `json:"autoReplyTemplateId"`
	AutoReplyTemplate   *AutoReplyTemplate `json:"autoReplyTemplate" gorm:"constraint:OnDelete:SET NULL"`
	Messages            []Message          `json:"messages" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt           time.Time          `json:"createdAt"`
	UpdatedAt           time.Time          `json:"updatedAt"`
}

type Message struct {
	ID             uint         `json:"id" gorm:"primaryKey"`
	ConversationID uint         `json:"conversationId" gorm:"index;not null"`
	SenderName     string       `json:"senderName" gorm:"not null"`
	SenderEmail    string       `json:"senderEmail" gorm:"not null"`
	SenderPhone    *string      `json:"senderPhone"`
	Content        string       `json:"content" gorm:"type:text;not null"`
	ContactMethod  string       `json:"contactMethod" gorm:"size:32;not null"`
	IsRead         bool         `json:"isRead"`
	HasReply       bool         `json:"hasReply"`
	Attachments    []Attachment `json:"attachments" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time    `json:"createdAt"`
}

// IsAdminReply reports whether the message was written by the admin.
func (m *Message) IsAdminReply() bool {
	return m.ContactMethod == ContactMethodAdminReply
}

// Attachment is immutable once created.
type Attachment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	MessageID uint      `json:"messageId" gorm:"index;not null"`
	FileName  string    `json:"fileName"`
	FileURL   string    `json:"fileUrl"`
	FileType  string    `json:"fileType"`
	FileSize  int64     `json:"fileSize"`
	CreatedAt time.Time `json:"createdAt"`
}

// MessageStats is the dashboard badge data. Admin replies are never counted.
type MessageStats struct {
	Conversations int64 `json:"conversations"`
	Unread        int64 `json:"unread"`
	AwaitingReply int64 `json:"awaitingReply"`
}
