package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/Ananth-NQI/portfolio-backend/internal/models"
	"github.com/Ananth-NQI/portfolio-backend/internal/storage"
	"github.com/Ananth-NQI/portfolio-backend/internal/utils"
)

const (
	minPasswordLength    = 8
	resetTokenBytes      = 32
	DefaultResetTokenTTL = time.Hour

	// ResetRequestedMessage is returned whether or not a token was issued.
	ResetRequestedMessage = "If an admin account with that email exists, a reset link has been sent."
)

var errBadCredentials = &AuthError{Message: "Invalid username or password"}

// AuthConfig tunes the auth service. Zero values pick sensible defaults.
type AuthConfig struct {
	ResetTTL    time.Duration
	FrontendURL string
	HashCost    int
}

type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

type ResetPasswordInput struct {
	Token           string `json:"token" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

// AuthService handles the single admin account: login, sessions and password changes.
type AuthService struct {
	store    storage.Store
	sessions *SessionManager
	resets   ResetNotifier
	cfg      AuthConfig
	log      logrus.FieldLogger
	now      func() time.Time

	// dummyHash is compared against on unknown usernames so both failure
	// paths cost one bcrypt comparison.
	dummyHash []byte
}

// NewAuthService wires the service. resets may be nil, in which case reset
// links are only logged.
func NewAuthService(store storage.Store, sessions *SessionManager, resets ResetNotifier, cfg AuthConfig, log logrus.FieldLogger) *AuthService {
	if cfg.ResetTTL <= 0 {
		cfg.ResetTTL = DefaultResetTokenTTL
	}
	if cfg.HashCost == 0 {
		cfg.HashCost = bcrypt.DefaultCost
	}
	dummy, _ := bcrypt.GenerateFromPassword([]byte("portfolio-placeholder"), cfg.HashCost)

	return &AuthService{
		store:     store,
		sessions:  sessions,
		resets:    resets,
		cfg:       cfg,
		log:       log,
		now:       time.Now,
		dummyHash: dummy,
	}
}

// Sessions exposes the session manager for the auth middleware and cleanup job.
func (s *AuthService) Sessions() *SessionManager {
	return s.sessions
}

func (s *AuthService) hash(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.HashCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(h), nil
}

func checkNewPassword(newPassword, confirm string) error {
	if newPassword != confirm {
		return invalid("New passwords do not match")
	}
	if len(newPassword) < minPasswordLength {
		return invalid("Password must be at least %d characters", minPasswordLength)
	}
	return nil
}

// EnsureAdmin creates the admin account if none exists yet. It reports
// whether an account was created.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, password, email string) (bool, error) {
	count, err := s.store.CountAdmins(ctx)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}
	if username == "" || password == "" {
		return false, fmt.Errorf("no admin account exists and ADMIN_USERNAME/ADMIN_PASSWORD are not set")
	}
	if len(password) < minPasswordLength {
		return false, fmt.Errorf("admin password must be at least %d characters", minPasswordLength)
	}

	hash, err := s.hash(password)
	if err != nil {
		return false, err
	}
	admin := &models.Admin{
		Username: username,
		Password: hash,
		Email:    strings.TrimSpace(email),
	}
	if err := s.store.CreateAdmin(ctx, admin); err != nil {
		return false, fmt.Errorf("create admin: %w", err)
	}

	s.log.WithField("username", username).Info("Admin account created")
	return true, nil
}

// Login verifies credentials and opens a session.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*models.AdminSession, error) {
	input.Username = strings.TrimSpace(input.Username)
	if err := validateInput(input); err != nil {
		return nil, invalid("Missing username or password")
	}

	admin, err := s.store.GetAdminByUsername(ctx, input.Username)
	if errors.Is(err, storage.ErrNotFound) {
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(input.Password))
		return nil, errBadCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(input.Password)); err != nil {
		s.log.WithField("username", input.Username).Warn("Failed admin login")
		return nil, errBadCredentials
	}

	session, err := s.sessions.CreateSession(ctx, admin.ID)
	if err != nil {
		return nil, err
	}
	s.log.WithField("admin_id", admin.ID).Info("Admin logged in")
	return session, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.EndSession(ctx, token)
}

// Authenticate resolves a session token to an admin id.
func (s *AuthService) Authenticate(ctx context.Context, token string) (uint, error) {
	session, err := s.sessions.GetSession(ctx, token)
	if err != nil {
		return 0, err
	}
	return session.AdminID, nil
}

func (s *AuthService) Me(ctx context.Context, adminID uint) (*models.Admin, error) {
	admin, err := s.store.GetAdmin(ctx, adminID)
	if err != nil {
		return nil, translate(err, "Admin")
	}
	return admin, nil
}

// ChangePassword replaces the admin's password and ends every other session.
func (s *AuthService) ChangePassword(ctx context.Context, adminID uint, keepToken string, input ChangePasswordInput) error {
	if err := validateInput(input); err != nil {
		return invalid("Missing required fields")
	}
	if err := checkNewPassword(input.NewPassword, input.ConfirmPassword); err != nil {
		return err
	}

	admin, err := s.store.GetAdmin(ctx, adminID)
	if err != nil {
		return translate(err, "Admin")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(input.CurrentPassword)); err != nil {
		return invalid("Current password is incorrect")
	}

	hash, err := s.hash(input.NewPassword)
	if err != nil {
		return err
	}
	if err := s.store.UpdateAdminPassword(ctx, adminID, hash); err != nil {
		return translate(err, "Admin")
	}

	if err := s.sessions.RevokeOthers(ctx, adminID, keepToken); err != nil {
		return err
	}

	s.log.WithField("admin_id", adminID).Info("Admin password changed")
	return nil
}

// RequestPasswordReset issues a reset token for the admin and delivers the
// link. A token is issued only if the admin has no stored email or the given
// email matches it. The outcome is never revealed to the caller.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return invalid("Email is required")
	}

	admin, err := s.store.FirstAdmin(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if admin.Email != "" && !strings.EqualFold(admin.Email, email) {
		s.log.Debug("Password reset requested for a non-matching email")
		return nil
	}

	token, err := utils.GenerateToken(resetTokenBytes)
	if err != nil {
		return err
	}
	if err := s.store.CreateResetToken(ctx, &models.PasswordResetToken{
		Token:     token,
		AdminID:   admin.ID,
		ExpiresAt: s.now().Add(s.cfg.ResetTTL),
	}); err != nil {
		return err
	}

	link := s.resetLink(token)
	to := admin.Email
	if to == "" {
		to = email
	}

	if s.resets == nil {
		s.log.WithField("link", link).Debug("Password reset link issued")
		return nil
	}
	if err := s.resets.PasswordReset(ctx, to, link); err != nil {
		if errors.Is(err, ErrNoMailer) {
			s.log.WithField("link", link).Debug("Password reset link issued")
			return nil
		}
		s.log.WithError(err).Warn("Failed to deliver password reset link")
	}
	return nil
}

func (s *AuthService) resetLink(token string) string {
	base := strings.TrimRight(s.cfg.FrontendURL, "/")
	return base + "/admin/reset-password?token=" + url.QueryEscape(token)
}

// ResetPassword consumes a reset token, sets the new password and ends every session.
func (s *AuthService) ResetPassword(ctx context.Context, input ResetPasswordInput) error {
	input.Token = strings.TrimSpace(input.Token)
	if err := validateInput(input); err != nil {
		return invalid("Missing required fields")
	}
	if err := checkNewPassword(input.NewPassword, input.ConfirmPassword); err != nil {
		return err
	}

	rt, err := s.store.GetResetToken(ctx, input.Token)
	if errors.Is(err, storage.ErrNotFound) {
		return invalid("Invalid or expired reset token")
	}
	if err != nil {
		return err
	}
	if rt.Expired(s.now()) {
		_ = s.store.DeleteResetToken(ctx, input.Token)
		return invalid("Reset token has expired")
	}

	hash, err := s.hash(input.NewPassword)
	if err != nil {
		return err
	}
	if err := s.store.UpdateAdminPassword(ctx, rt.AdminID, hash); err != nil {
		return translate(err, "Admin")
	}
	if err := s.store.DeleteResetToken(ctx, input.Token); err != nil {
		return err
	}
	if err := s.sessions.RevokeAll(ctx, rt.AdminID); err != nil {
		return err
	}

	s.log.WithField("admin_id", rt.AdminID).Info("Admin password reset")
	return nil
}
