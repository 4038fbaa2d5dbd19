package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Ananth-NQI/portfolio-backend/internal/models"
	"github.com/Ananth-NQI/portfolio-backend/internal/storage"
)

const (
	adminReplyName       = "Admin"
	defaultTemplateName  = "Auto Reply"
	defaultNotifyTimeout = 30 * time.Second
	conversationResource = "Conversation"
	templateResource     = "Template"
)

// AttachmentInput describes an already uploaded file.
type AttachmentInput struct {
	FileName string `json:"fileName" validate:"required"`
	FileURL  string `json:"fileUrl" validate:"required"`
	FileType string `json:"fileType"`
	FileSize int64  `json:"fileSize" validate:"min=0"`
}

// SubmitMessageInput is a contact form submission.
type SubmitMessageInput struct {
	SenderName    string            `json:"senderName" validate:"required,max=200"`
	SenderEmail   string            `json:"senderEmail" validate:"required,email,max=255"`
	SenderPhone   *string           `json:"senderPhone"`
	Subject       string            `json:"subject" validate:"max=255"`
	Content       string            `json:"content" validate:"required"`
	ContactMethod string            `json:"contactMethod" validate:"omitempty,oneof=email whatsapp linkedin"`
	Attachments   []AttachmentInput `json:"attachments" validate:"dive"`
}

type ReplyInput struct {
	Content     string            `json:"content" validate:"required"`
	Attachments []AttachmentInput `json:"attachments" validate:"dive"`
}

// ConversationPatch changes only the fields that are set. An
// AutoReplyTemplateID of 0 unlinks the template.
type ConversationPatch struct {
	Subject             *string `json:"subject"`
	IsActive            *bool   `json:"isActive"`
	AutoReplyTemplateID *uint   `json:"autoReplyTemplateId"`
}

type SettingsPatch struct {
	EmailNotifications    *bool `json:"emailNotifications"`
	WhatsappNotifications *bool `json:"whatsappNotifications"`
	LinkedinNotifications *bool `json:"linkedinNotifications"`
	MessageRetentionDays  *int  `json:"messageRetentionDays"`
}

// TemplateInput creates a template when ID is nil and updates it otherwise.
type TemplateInput struct {
	ID       *uint  `json:"id"`
	Name     string `json:"name"`
	Subject  string `json:"subject"`
	Message  string `json:"message"`
	IsActive *bool  `json:"isActive"`
}

// MessagingService groups inbound messages into per-sender conversations and
// records the admin's replies.
type MessagingService struct {
	store         storage.Store
	notifier      Notifier
	log           logrus.FieldLogger
	replyFrom     string
	notifyTimeout time.Duration
	wg            sync.WaitGroup
}

// NewMessagingService wires the service. notifier may be nil. replyFrom is the
// address recorded on admin replies.
func NewMessagingService(store storage.Store, notifier Notifier, log logrus.FieldLogger, replyFrom string) *MessagingService {
	return &MessagingService{
		store:         store,
		notifier:      notifier,
		log:           log,
		replyFrom:     replyFrom,
		notifyTimeout: defaultNotifyTimeout,
	}
}

// Wait blocks until every in-flight notification has finished.
func (s *MessagingService) Wait() {
	s.wg.Wait()
}

// dispatch runs fn in the background with its own deadline. Failures are logged only.
func (s *MessagingService) dispatch(event string, fn func(ctx context.Context, n Notifier) error) {
	if s.notifier == nil {
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), s.notifyTimeout)
		defer cancel()
		if err := fn(ctx, s.notifier); err != nil {
			s.log.WithError(err).WithField("event", event).Warn("Notification delivery failed")
		}
	}()
}

func toAttachments(in []AttachmentInput) []models.Attachment {
	if len(in) == 0 {
		return nil
	}
	out := make([]models.Attachment, 0, len(in))
	for _, a := range in {
		out = append(out, models.Attachment{
			FileName: a.FileName,
			FileURL:  a.FileURL,
			FileType: a.FileType,
			FileSize: a.FileSize,
		})
	}
	return out
}

// SubmitMessage stores an inbound message in the sender's conversation,
// creating the conversation on first contact.
func (s *MessagingService) SubmitMessage(ctx context.Context, input SubmitMessageInput) (*models.Conversation, *models.Message, error) {
	input.SenderName = strings.TrimSpace(input.SenderName)
	input.SenderEmail = strings.ToLower(strings.TrimSpace(input.SenderEmail))
	input.Subject = strings.TrimSpace(input.Subject)
	input.Content = strings.TrimSpace(input.Content)
	if err := validateInput(input); err != nil {
		return nil, nil, err
	}

	method := input.ContactMethod
	if method == "" {
		method = models.ContactMethodEmail
	}
	subject := input.Subject
	if subject == "" {
		subject = models.DefaultSubject
	}

	msg := &models.Message{
		SenderName:    input.SenderName,
		SenderEmail:   input.SenderEmail,
		SenderPhone:   trimmed(input.SenderPhone),
		Content:       input.Content,
		ContactMethod: method,
		Attachments:   toAttachments(input.Attachments),
	}

	conv, created, err := s.store.AppendInboundMessage(ctx, subject, msg)
	if err != nil {
		return nil, nil, err
	}

	s.log.WithFields(logrus.Fields{
		"conversation_id": conv.ID,
		"message_id":      msg.ID,
		"new":             created,
	}).Info("Inbound message stored")

	convCopy, msgCopy := *conv, *msg
	s.dispatch("new_message", func(ctx context.Context, n Notifier) error {
		return n.NewMessage(ctx, &convCopy, &msgCopy, created)
	})

	return conv, msg, nil
}

func (s *MessagingService) ListConversations(ctx context.Context) ([]models.Conversation, error) {
	return s.store.ListConversations(ctx)
}

// GetConversation is a pure read; it never changes read state.
func (s *MessagingService) GetConversation(ctx context.Context, id uint) (*models.Conversation, error) {
	conv, err := s.store.GetConversation(ctx, id)
	if err != nil {
		return nil, translate(err, conversationResource)
	}
	return conv, nil
}

// MarkRead flags every unread message of the conversation as read and returns
// how many changed.
func (s *MessagingService) MarkRead(ctx context.Context, id uint) (int64, error) {
	n, err := s.store.MarkConversationRead(ctx, id)
	if err != nil {
		return 0, translate(err, conversationResource)
	}
	return n, nil
}

// OpenConversation is what the admin inbox does when a conversation is
// opened: it returns the conversation as it was, then marks it read.
func (s *MessagingService) OpenConversation(ctx context.Context, id uint) (*models.Conversation, error) {
	conv, err := s.GetConversation(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.MarkRead(ctx, id); err != nil {
		return nil, err
	}
	return conv, nil
}

// Reply records an admin reply and marks every pending inbound message of the
// conversation as replied.
func (s *MessagingService) Reply(ctx context.Context, conversationID uint, input ReplyInput) (*models.Message, error) {
	input.Content = strings.TrimSpace(input.Content)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	reply := &models.Message{
		SenderName:    adminReplyName,
		SenderEmail:   s.replyFrom,
		Content:       input.Content,
		ContactMethod: models.ContactMethodAdminReply,
		IsRead:        true,
		HasReply:      true,
		Attachments:   toAttachments(input.Attachments),
	}

	marked, err := s.store.AppendReply(ctx, conversationID, reply)
	if err != nil {
		return nil, translate(err, conversationResource)
	}

	s.log.WithFields(logrus.Fields{
		"conversation_id": conversationID,
		"replied":         marked,
	}).Info("Admin reply stored")

	if s.notifier != nil {
		conv, err := s.store.GetConversation(ctx, conversationID)
		if err != nil {
			s.log.WithError(err).Warn("Could not load conversation for reply delivery")
		} else {
			replyCopy := *reply
			s.dispatch("reply", func(ctx context.Context, n Notifier) error {
				return n.Reply(ctx, conv, &replyCopy)
			})
		}
	}

	return reply, nil
}

func (s *MessagingService) UpdateConversation(ctx context.Context, id uint, patch ConversationPatch) (*models.Conversation, error) {
	updates := map[string]interface{}{}

	if patch.Subject != nil {
		subject := strings.TrimSpace(*patch.Subject)
		if subject == "" {
			return nil, invalid("subject cannot be empty")
		}
		updates["subject"] = subject
	}
	if patch.IsActive != nil {
		updates["is_active"] = *patch.IsActive
	}
	if patch.AutoReplyTemplateID != nil {
		if *patch.AutoReplyTemplateID == 0 {
			updates["auto_reply_template_id"] = nil
		} else {
			if _, err := s.store.GetTemplate(ctx, *patch.AutoReplyTemplateID); err != nil {
				if errors.Is(err, storage.ErrNotFound) {
					return nil, invalid("auto-reply template %d does not exist", *patch.AutoReplyTemplateID)
				}
				return nil, err
			}
			updates["auto_reply_template_id"] = *patch.AutoReplyTemplateID
		}
	}

	if err := s.store.UpdateConversation(ctx, id, updates); err != nil {
		return nil, translate(err, conversationResource)
	}
	return s.GetConversation(ctx, id)
}

// DeleteConversation removes the conversation with its messages and attachments.
func (s *MessagingService) DeleteConversation(ctx context.Context, id uint) error {
	if err := s.store.DeleteConversation(ctx, id); err != nil {
		return translate(err, conversationResource)
	}
	s.log.WithField("conversation_id", id).Info("Conversation deleted")
	return nil
}

func (s *MessagingService) Stats(ctx context.Context) (*models.MessageStats, error) {
	return s.store.MessageStats(ctx)
}

// GetSettings returns the message settings, creating the defaults on first use.
func (s *MessagingService) GetSettings(ctx context.Context) (*models.MessageSettings, error) {
	settings, err := s.store.GetMessageSettings(ctx)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	settings = models.DefaultMessageSettings()
	if err := s.store.SaveMessageSettings(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

func (s *MessagingService) UpdateSettings(ctx context.Context, patch SettingsPatch) (*models.MessageSettings, error) {
	if patch.MessageRetentionDays != nil && *patch.MessageRetentionDays < 0 {
		return nil, invalid("messageRetentionDays must be at least 0")
	}

	settings, err := s.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	if patch.EmailNotifications != nil {
		settings.EmailNotifications = *patch.EmailNotifications
	}
	if patch.WhatsappNotifications != nil {
		settings.WhatsappNotifications = *patch.WhatsappNotifications
	}
	if patch.LinkedinNotifications != nil {
		settings.LinkedinNotifications = *patch.LinkedinNotifications
	}
	if patch.MessageRetentionDays != nil {
		settings.MessageRetentionDays = *patch.MessageRetentionDays
	}

	if err := s.store.SaveMessageSettings(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

func (s *MessagingService) ListTemplates(ctx context.Context) ([]models.AutoReplyTemplate, error) {
	return s.store.ListTemplates(ctx)
}

// SaveTemplate creates or updates an auto-reply template. The boolean is true
// when a new template was created.
func (s *MessagingService) SaveTemplate(ctx context.Context, input TemplateInput) (*models.AutoReplyTemplate, bool, error) {
	name := strings.TrimSpace(input.Name)
	subject := strings.TrimSpace(input.Subject)
	message := strings.TrimSpace(input.Message)

	if input.ID == nil || *input.ID == 0 {
		if subject == "" {
			return nil, false, invalid("subject is required")
		}
		if message == "" {
			return nil, false, invalid("message is required")
		}
		if name == "" {
			name = defaultTemplateName
		}
		tpl := &models.AutoReplyTemplate{
			Name:     name,
			Subject:  subject,
			Message:  message,
			IsActive: input.IsActive == nil || *input.IsActive,
		}
		if err := s.store.CreateTemplate(ctx, tpl); err != nil {
			return nil, false, err
		}
		return tpl, true, nil
	}

	tpl, err := s.store.GetTemplate(ctx, *input.ID)
	if err != nil {
		return nil, false, translate(err, templateResource)
	}
	if name != "" {
		tpl.Name = name
	}
	if subject != "" {
		tpl.Subject = subject
	}
	if message != "" {
		tpl.Message = message
	}
	if input.IsActive != nil {
		tpl.IsActive = *input.IsActive
	}
	if err := s.store.UpdateTemplate(ctx, tpl); err != nil {
		return nil, false, translate(err, templateResource)
	}
	return tpl, false, nil
}

func (s *MessagingService) DeleteTemplate(ctx context.Context, id uint) error {
	return translate(s.store.DeleteTemplate(ctx, id), templateResource)
}

// PurgeExpired deletes conversations idle for longer than the configured
// retention. It returns 0 when retention is disabled.
func (s *MessagingService) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	settings, err := s.GetSettings(ctx)
	if err != nil {
		return 0, err
	}
	if settings.MessageRetentionDays <= 0 {
		return 0, nil
	}
	cutoff := now.AddDate(0, 0, -settings.MessageRetentionDays)
	return s.store.DeleteConversationsBefore(ctx, cutoff)
}
