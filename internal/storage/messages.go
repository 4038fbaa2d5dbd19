package storage

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Ananth-NQI/portfolio-backend/internal/models"
)

// conversationQuery preloads messages (with attachments) and the linked template.
func (s *DatabaseStore) conversationQuery(ctx context.Context, newestFirst bool) *gorm.DB {
	order := "created_at ASC, id ASC"
	if newestFirst {
		order = "created_at DESC, id DESC"
	}
	return s.db.WithContext(ctx).
		Preload("Messages", func(db *gorm.DB) *gorm.DB { return db.Order(order) }).
		Preload("Messages.Attachments").
		Preload("AutoReplyTemplate")
}

// AppendInboundMessage finds the conversation for msg.SenderEmail, creating
// it with subject when none exists, then stores msg and its attachments. The
// boolean reports whether the conversation was created.
func (s *DatabaseStore) AppendInboundMessage(ctx context.Context, subject string, msg *models.Message) (*models.Conversation, bool, error) {
	var conv models.Conversation
	created := false

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("sender_email = ?", msg.SenderEmail).First(&conv).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			conv = models.Conversation{
				SenderEmail: msg.SenderEmail,
				Subject:     subject,
				IsActive:    true,
			}
			// A concurrent first message from the same sender may win the
			// unique index; fall back to its row.
			res := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "sender_email"}},
				DoNothing: true,
			}).Create(&conv)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				conv = models.Conversation{}
				if err := tx.Where("sender_email = ?", msg.SenderEmail).First(&conv).Error; err != nil {
					return err
				}
			} else {
				created = true
			}
		case err != nil:
			return err
		}

		msg.ConversationID = conv.ID
		if err := tx.Create(msg).Error; err != nil {
			return err
		}

		now := time.Now()
		if err := tx.Model(&models.Conversation{}).Where("id = ?", conv.ID).Update("updated_at", now).Error; err != nil {
			return err
		}
		conv.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return &conv, created, nil
}

// ListConversations returns every conversation, most recently updated first,
// with messages newest first.
func (s *DatabaseStore) ListConversations(ctx context.Context) ([]models.Conversation, error) {
	var conversations []models.Conversation
	err := s.conversationQuery(ctx, true).
		Order("updated_at DESC").Order("id DESC").
		Find(&conversations).Error
	return conversations, err
}

// GetConversation returns one conversation with messages oldest first.
func (s *DatabaseStore) GetConversation(ctx context.Context, id uint) (*models.Conversation, error) {
	var conv models.Conversation
	if err := s.conversationQuery(ctx, false).First(&conv, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &conv, nil
}

func (s *DatabaseStore) conversationExists(tx *gorm.DB, id uint) error {
	var count int64
	if err := tx.Model(&models.Conversation{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *DatabaseStore) MarkConversationRead(ctx context.Context, id uint) (int64, error) {
	var marked int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.conversationExists(tx, id); err != nil {
			return err
		}
		res := tx.Model(&models.Message{}).
			Where("conversation_id = ? AND is_read = ?", id, false).
			Update("is_read", true)
		marked = res.RowsAffected
		return res.Error
	})
	return marked, err
}

// AppendReply stores an admin reply, flags every unreplied inbound message of
// the conversation as replied and bumps the conversation. It returns how many
// messages were flagged.
func (s *DatabaseStore) AppendReply(ctx context.Context, conversationID uint, reply *models.Message) (int64, error) {
	var marked int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.conversationExists(tx, conversationID); err != nil {
			return err
		}

		reply.ConversationID = conversationID
		if err := tx.Create(reply).Error; err != nil {
			return err
		}

		res := tx.Model(&models.Message{}).
			Where("conversation_id = ? AND has_reply = ? AND contact_method <> ?",
				conversationID, false, models.ContactMethodAdminReply).
			Update("has_reply", true)
		if res.Error != nil {
			return res.Error
		}
		marked = res.RowsAffected

		return tx.Model(&models.Conversation{}).
			Where("id = ?", conversationID).
			Update("updated_at", time.Now()).Error
	})
	return marked, err
}

func (s *DatabaseStore) UpdateConversation(ctx context.Context, id uint, updates map[string]interface{}) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.conversationExists(tx, id); err != nil {
			return err
		}
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&models.Conversation{}).Where("id = ?", id).Updates(updates).Error
	})
}

// DeleteConversation removes the conversation with its messages and attachments.
func (s *DatabaseStore) DeleteConversation(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.conversationExists(tx, id); err != nil {
			return err
		}
		return deleteConversations(tx, []uint{id})
	})
}

// DeleteConversationsBefore removes every conversation not updated since cutoff.
func (s *DatabaseStore) DeleteConversationsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	var ids []uint
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Conversation{}).Where("updated_at < ?", cutoff).Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		return deleteConversations(tx, ids)
	})
	if err != nil {
		return 0, err
	}
	return int64(len(ids)), nil
}

func deleteConversations(tx *gorm.DB, ids []uint) error {
	var messageIDs []uint
	if err := tx.Model(&models.Message{}).Where("conversation_id IN ?", ids).Pluck("id", &messageIDs).Error; err != nil {
		return err
	}
	if len(messageIDs) > 0 {
		if err := tx.Where("message_id IN ?", messageIDs).Delete(&models.Attachment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("conversation_id IN ?", ids).Delete(&models.Message{}).Error; err != nil {
			return err
		}
	}
	return tx.Where("id IN ?", ids).Delete(&models.Conversation{}).Error
}

func (s *DatabaseStore) MessageStats(ctx context.Context) (*models.MessageStats, error) {
	var stats models.MessageStats
	db := s.db.WithContext(ctx)

	if err := db.Model(&models.Conversation{}).Count(&stats.Conversations).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Message{}).
		Where("is_read = ? AND contact_method <> ?", false, models.ContactMethodAdminReply).
		Count(&stats.Unread).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Message{}).
		Where("has_reply = ? AND contact_method <> ?", false, models.ContactMethodAdminReply).
		Count(&stats.AwaitingReply).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}
