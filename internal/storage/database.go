package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Ananth-NQI/portfolio-backend/internal/models"
)

// DatabaseStore implements Store on top of gorm (PostgreSQL or SQLite).
type DatabaseStore struct {
	db *gorm.DB
}

// NewDatabaseStore wraps an already opened pool.
func NewDatabaseStore(db *gorm.DB) *DatabaseStore {
	return &DatabaseStore{db: db}
}

// DB exposes the underlying handle for migrations and shutdown.
func (s *DatabaseStore) DB() *gorm.DB {
	return s.db
}

func (s *DatabaseStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// upsertSingleton writes a single-record row keyed by models.SingletonID.
func (s *DatabaseStore) upsertSingleton(ctx context.Context, value interface{}) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(value).Error
}

// Admin operations

func (s *DatabaseStore) CountAdmins(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Admin{}).Count(&count).Error
	return count, err
}

func (s *DatabaseStore) CreateAdmin(ctx context.Context, admin *models.Admin) error {
	return s.db.WithContext(ctx).Create(admin).Error
}

func (s *DatabaseStore) GetAdmin(ctx context.Context, id uint) (*models.Admin, error) {
	var admin models.Admin
	if err := s.db.WithContext(ctx).First(&admin, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &admin, nil
}

func (s *DatabaseStore) GetAdminByUsername(ctx context.Context, username string) (*models.Admin, error) {
	var admin models.Admin
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&admin).Error; err != nil {
		return nil, notFound(err)
	}
	return &admin, nil
}

func (s *DatabaseStore) FirstAdmin(ctx context.Context) (*models.Admin, error) {
	var admin models.Admin
	if err := s.db.WithContext(ctx).Order("id ASC").First(&admin).Error; err != nil {
		return nil, notFound(err)
	}
	return &admin, nil
}

func (s *DatabaseStore) UpdateAdminPassword(ctx context.Context, id uint, hash string) error {
	res := s.db.WithContext(ctx).Model(&models.Admin{}).Where("id = ?", id).Update("password", hash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Session operations

func (s *DatabaseStore) CreateSession(ctx context.Context, session *models.AdminSession) error {
	return s.db.WithContext(ctx).Create(session).Error
}

func (s *DatabaseStore) GetSession(ctx context.Context, token string) (*models.AdminSession, error) {
	var session models.AdminSession
	if err := s.db.WithContext(ctx).Where("token = ?", token).First(&session).Error; err != nil {
		return nil, notFound(err)
	}
	return &session, nil
}

func (s *DatabaseStore) DeleteSession(ctx context.Context, token string) error {
	return s.db.WithContext(ctx).Where("token = ?", token).Delete(&models.AdminSession{}).Error
}

func (s *DatabaseStore) DeleteAdminSessions(ctx context.Context, adminID uint) error {
	return s.db.WithContext(ctx).Where("admin_id = ?", adminID).Delete(&models.AdminSession{}).Error
}

func (s *DatabaseStore) DeleteOtherSessions(ctx context.Context, adminID uint, keepToken string) error {
	return s.db.WithContext(ctx).
		Where("admin_id = ? AND token <> ?", adminID, keepToken).
		Delete(&models.AdminSession{}).Error
}

func (s *DatabaseStore) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	res := s.db.WithContext(ctx).Where("expires_at <= ?", now).Delete(&models.AdminSession{})
	return res.RowsAffected, res.Error
}

// Password reset operations

func (s *DatabaseStore) CreateResetToken(ctx context.Context, token *models.PasswordResetToken) error {
	return s.db.WithContext(ctx).Create(token).Error
}

func (s *DatabaseStore) GetResetToken(ctx context.Context, token string) (*models.PasswordResetToken, error) {
	var rt models.PasswordResetToken
	if err := s.db.WithContext(ctx).Where("token = ?", token).First(&rt).Error; err != nil {
		return nil, notFound(err)
	}
	return &rt, nil
}

func (s *DatabaseStore) DeleteResetToken(ctx context.Context, token string) error {
	return s.db.WithContext(ctx).Where("token = ?", token).Delete(&models.PasswordResetToken{}).Error
}

func (s *DatabaseStore) DeleteExpiredResetTokens(ctx context.Context, now time.Time) (int64, error) {
	res := s.db.WithContext(ctx).Where("expires_at <= ?", now).Delete(&models.PasswordResetToken{})
	return res.RowsAffected, res.Error
}

// Auto-reply templates and settings

func (s *DatabaseStore) ListTemplates(ctx context.Context) ([]models.AutoReplyTemplate, error) {
	var templates []models.AutoReplyTemplate
	err := s.db.WithContext(ctx).Order("id ASC").Find(&templates).Error
	return templates, err
}

func (s *DatabaseStore) GetTemplate(ctx context.Context, id uint) (*models.AutoReplyTemplate, error) {
	var tpl models.AutoReplyTemplate
	if err := s.db.WithContext(ctx).First(&tpl, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &tpl, nil
}

func (s *DatabaseStore) FirstActiveTemplate(ctx context.Context) (*models.AutoReplyTemplate, error) {
	var tpl models.AutoReplyTemplate
	if err := s.db.WithContext(ctx).Where("is_active = ?", true).Order("id ASC").First(&tpl).Error; err != nil {
		return nil, notFound(err)
	}
	return &tpl, nil
}

func (s *DatabaseStore) CreateTemplate(ctx context.Context, tpl *models.AutoReplyTemplate) error {
	return s.db.WithContext(ctx).Create(tpl).Error
}

func (s *DatabaseStore) UpdateTemplate(ctx context.Context, tpl *models.AutoReplyTemplate) error {
	res := s.db.WithContext(ctx).Model(&models.AutoReplyTemplate{ID: tpl.ID}).
		Select("name", "subject", "message", "is_active").
		Updates(tpl)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteTemplate unlinks the template from conversations before removing it.
func (s *DatabaseStore) DeleteTemplate(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Conversation{}).
			Where("auto_reply_template_id = ?", id).
			UpdateColumn("auto_reply_template_id", nil).Error; err != nil {
			return fmt.Errorf("unlink template: %w", err)
		}
		res := tx.Delete(&models.AutoReplyTemplate{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (s *DatabaseStore) GetMessageSettings(ctx context.Context) (*models.MessageSettings, error) {
	var settings models.MessageSettings
	if err := s.db.WithContext(ctx).First(&settings, models.SingletonID).Error; err != nil {
		return nil, notFound(err)
	}
	return &settings, nil
}

func (s *DatabaseStore) SaveMessageSettings(ctx context.Context, settings *models.MessageSettings) error {
	settings.ID = models.SingletonID
	return s.upsertSingleton(ctx, settings)
}
