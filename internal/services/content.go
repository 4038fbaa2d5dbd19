package services

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Ananth-NQI/portfolio-backend/internal/models"
	"github.com/Ananth-NQI/portfolio-backend/internal/storage"
)

// Defaults for a profile created implicitly by AddProfileImage.
const (
	defaultProfileName  = "Portfolio Owner"
	defaultProfileTitle = "Developer"
	defaultProfileBio   = "Welcome to my portfolio"
)

// ProfileInput updates the fields that are set. The resulting profile must have a name.
type ProfileInput struct {
	Name          *string  `json:"name"`
	Title         *string  `json:"title"`
	Bio           *string  `json:"bio"`
	Email         *string  `json:"email"`
	Github        *string  `json:"github"`
	Linkedin      *string  `json:"linkedin"`
	Image         *string  `json:"image"`
	ProfileImages []string `json:"profileImages"`
}

type AboutInput struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

type ContactInput struct {
	Email   string  `json:"email" validate:"required"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

type ProfileImageInput struct {
	ImageURL  string `json:"imageUrl" validate:"required"`
	MainImage bool   `json:"mainImage"`
}

// ContentService manages the single-record sections of the site.
type ContentService struct {
	store storage.Store
	log   logrus.FieldLogger
}

func NewContentService(store storage.Store, log logrus.FieldLogger) *ContentService {
	return &ContentService{store: store, log: log}
}

func (s *ContentService) GetProfile(ctx context.Context) (*models.Profile, error) {
	profile, err := s.store.GetProfile(ctx)
	if err != nil {
		return nil, translate(err, "Profile")
	}
	return profile, nil
}

// existingProfile returns the stored profile or a blank one when none exists.
func (s *ContentService) existingProfile(ctx context.Context) (*models.Profile, error) {
	profile, err := s.store.GetProfile(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		return &models.Profile{ID: models.SingletonID}, nil
	}
	return profile, err
}

func (s *ContentService) SaveProfile(ctx context.Context, input ProfileInput) (*models.Profile, error) {
	profile, err := s.existingProfile(ctx)
	if err != nil {
		return nil, err
	}

	set := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	set(&profile.Name, input.Name)
	set(&profile.Title, input.Title)
	set(&profile.Bio, input.Bio)
	set(&profile.Email, input.Email)
	set(&profile.Github, input.Github)
	set(&profile.Linkedin, input.Linkedin)
	set(&profile.Image, input.Image)
	if input.ProfileImages != nil {
		profile.ProfileImages = input.ProfileImages
	}

	if profile.Name == "" {
		return nil, invalid("name is required")
	}

	if err := s.store.SaveProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// AddProfileImage appends imageURL to the gallery, creating a default profile
// if needed. mainImage also makes it the hero image.
func (s *ContentService) AddProfileImage(ctx context.Context, input ProfileImageInput) (*models.Profile, error) {
	input.ImageURL = strings.TrimSpace(input.ImageURL)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	profile, err := s.store.GetProfile(ctx)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		profile = &models.Profile{
			Name:          defaultProfileName,
			Title:         defaultProfileTitle,
			Bio:           defaultProfileBio,
			Image:         input.ImageURL,
			ProfileImages: []string{input.ImageURL},
		}
	case err != nil:
		return nil, err
	default:
		if !containsString(profile.ProfileImages, input.ImageURL) {
			profile.ProfileImages = append(profile.ProfileImages, input.ImageURL)
		}
		if input.MainImage {
			profile.Image = input.ImageURL
		}
	}

	if err := s.store.SaveProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *ContentService) GetAbout(ctx context.Context) (*models.About, error) {
	about, err := s.store.GetAbout(ctx)
	if err != nil {
		return nil, translate(err, "About")
	}
	return about, nil
}

func (s *ContentService) SaveAbout(ctx context.Context, input AboutInput) (*models.About, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Content = strings.TrimSpace(input.Content)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	about := &models.About{Title: input.Title, Content: input.Content}
	if err := s.store.SaveAbout(ctx, about); err != nil {
		return nil, err
	}
	return about, nil
}

func (s *ContentService) GetContact(ctx context.Context) (*models.Contact, error) {
	contact, err := s.store.GetContact(ctx)
	if err != nil {
		return nil, translate(err, "Contact info")
	}
	return contact, nil
}

func (s *ContentService) SaveContact(ctx context.Context, input ContactInput) (*models.Contact, error) {
	input.Email = strings.TrimSpace(input.Email)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	contact := &models.Contact{
		Email:   input.Email,
		Phone:   trimmed(input.Phone),
		Address: trimmed(input.Address),
	}
	if err := s.store.SaveContact(ctx, contact); err != nil {
		return nil, err
	}
	return contact, nil
}

func containsString(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
