package storage

import (
	"context"
	"errors"
	"time"

	"github.com/Ananth-NQI/portfolio-backend/internal/models"
)

// ErrNotFound is returned when a by-id or singleton lookup finds no row.
var ErrNotFound = errors.New("record not found")

// Store defines the interface for storage operations
type Store interface {
	Ping(ctx context.Context) error

	// Admin operations
	CountAdmins(ctx context.Context) (int64, error)
	CreateAdmin(ctx context.Context, admin *models.Admin) error
	GetAdmin(ctx context.Context, id uint) (*models.Admin, error)
	GetAdminByUsername(ctx context.Context, username string) (*models.Admin, error)
	FirstAdmin(ctx context.Context) (*models.Admin, error)
	UpdateAdminPassword(ctx context.Context, id uint, hash string) error

	// Session operations
	CreateSession(ctx context.Context, session *models.AdminSession) error
	GetSession(ctx context.Context, token string) (*models.AdminSession, error)
	DeleteSession(ctx context.Context, token string) error
	DeleteAdminSessions(ctx context.Context, adminID uint) error
	DeleteOtherSessions(ctx context.Context, adminID uint, keepToken string) error
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)

	// Password reset operations
	CreateResetToken(ctx context.Context, token *models.PasswordResetToken) error
	GetResetToken(ctx context.Context, token string) (*models.PasswordResetToken, error)
	DeleteResetToken(ctx context.Context, token string) error
	DeleteExpiredResetTokens(ctx context.Context, now time.Time) (int64, error)

	// Singleton content
	GetProfile(ctx context.Context) (*models.Profile, error)
	SaveProfile(ctx context.Context, profile *models.Profile) error
	GetAbout(ctx context.Context) (*models.About, error)
	SaveAbout(ctx context.Context, about *models.About) error
	GetContact(ctx context.Context) (*models.Contact, error)
	SaveContact(ctx context.Context, contact *models.Contact) error

	// Project operations
	ListProjects(ctx context.Context) ([]models.Project, error)
	GetProject(ctx context.Context, id uint) (*models.Project, error)
	CreateProject(ctx context.Context, project *models.Project) error
	UpdateProject(ctx context.Context, project *models.Project) error
	DeleteProject(ctx context.Context, id uint) error
	ListProjectImages(ctx context.Context, projectID uint) ([]models.ProjectImage, error)
	CreateProjectImage(ctx context.Context, image *models.ProjectImage) error
	DeleteProjectImage(ctx context.Context, projectID, imageID uint) error

	// Work operations
	ListWork(ctx context.Context) ([]models.Work, error)
	GetWork(ctx context.Context, id uint) (*models.Work, error)
	CreateWork(ctx context.Context, work *models.Work) error
	UpdateWork(ctx context.Context, work *models.Work) error
	DeleteWork(ctx context.Context, id uint) error
	ListWorkImages(ctx context.Context, workID uint) ([]models.WorkImage, error)
	CreateWorkImage(ctx context.Context, image *models.WorkImage) error
	DeleteWorkImage(ctx context.Context, workID, imageID uint) error

	// Conversation operations
	AppendInboundMessage(ctx context.Context, subject string, msg *models.Message) (*models.Conversation, bool, error)
	ListConversations(ctx context.Context) ([]models.Conversation, error)
	GetConversation(ctx context.Context, id uint) (*models.Conversation, error)
	MarkConversationRead(ctx context.Context, id uint) (int64, error)
	AppendReply(ctx context.Context, conversationID uint, reply *models.Message) (int64, error)
	UpdateConversation(ctx context.Context, id uint, updates map[string]interface{}) error
	DeleteConversation(ctx context.Context, id uint) error
	DeleteConversationsBefore(ctx context.Context, cutoff time.Time) (int64, error)
	MessageStats(ctx context.Context) (*models.MessageStats, error)

	// Auto-reply templates and settings
	ListTemplates(ctx context.Context) ([]models.AutoReplyTemplate, error)
	GetTemplate(ctx context.Context, id uint) (*models.AutoReplyTemplate, error)
	FirstActiveTemplate(ctx context.Context) (*models.AutoReplyTemplate, error)
	CreateTemplate(ctx context.Context, tpl *models.AutoReplyTemplate) error
	UpdateTemplate(ctx context.Context, tpl *models.AutoReplyTemplate) error
	DeleteTemplate(ctx context.Context, id uint) error
	GetMessageSettings(ctx context.Context) (*models.MessageSettings, error)
	SaveMessageSettings(ctx context.Context, settings *models.MessageSettings) error
}
