package services

import (
	"strings"

	"github.com/Ananth-NQI/portfolio-backend/internal/models"
)

// Placeholders understood by auto-reply templates.
const (
	placeholderName    = "{{name}}"
	placeholderEmail   = "{{email}}"
	placeholderSubject = "{{subject}}"
)

// RenderTemplate substitutes the sender placeholders in text. Unknown
// placeholders are left untouched.
func RenderTemplate(text string, msg *models.Message, conv *models.Conversation) string {
	r := strings.NewReplacer(
		placeholderName, msg.SenderName,
		placeholderEmail, msg.SenderEmail,
		placeholderSubject, conv.Subject,
	)
	return r.Replace(text)
}

// RenderAutoReply returns the subject and body of an auto-reply. An empty
// template subject falls back to "Re: <conversation subject>".
func RenderAutoReply(tpl *models.AutoReplyTemplate, msg *models.Message, conv *models.Conversation) (string, string) {
	subject := RenderTemplate(tpl.Subject, msg, conv)
	if strings.TrimSpace(subject) == "" {
		subject = "Re: " + conv.Subject
	}
	return subject, RenderTemplate(tpl.Message, msg, conv)
}
