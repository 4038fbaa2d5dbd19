package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ananth-NQI/portfolio-backend/internal/logger"
	"github.com/Ananth-NQI/portfolio-backend/internal/testutil"
)

func strPtr(s string) *string { return &s }

func TestContentNotFoundBeforeFirstSave(t *testing.T) {
	svc := NewContentService(testutil.NewStore(t), logger.Discard())
	ctx := context.Background()

	var nf *NotFoundError
	_, err := svc.GetProfile(ctx)
	assert.True(t, errors.As(err, &nf))
	_, err = svc.GetAbout(ctx)
	assert.True(t, errors.As(err, &nf))
	_, err = svc.GetContact(ctx)
	assert.True(t, errors.As(err, &nf))
}

func TestSaveProfileMergesFields(t *testing.T) {
	svc := NewContentService(testutil.NewStore(t), logger.Discard())
	ctx := context.Background()

	_, err := svc.SaveProfile(ctx, ProfileInput{Title: strPtr("Engineer")})
	var verr *ValidationError
	assert.True(t, errors.As(err, &verr), "name is required on first save")

	_, err = svc.SaveProfile(ctx, ProfileInput{Name: strPtr("Ananth"), Title: strPtr("Engineer")})
	require.NoError(t, err)

	profile, err := svc.SaveProfile(ctx, ProfileInput{Bio: strPtr("Builds things")})
	require.NoError(t, err)
	assert.Equal(t, "Ananth", profile.Name)
	assert.Equal(t, "Engineer", profile.Title)
	assert.Equal(t, "Builds things", profile.Bio)
}

func TestAddProfileImage(t *testing.T) {
	svc := NewContentService(testutil.NewStore(t), logger.Discard())
	ctx := context.Background()

	_, err := svc.AddProfileImage(ctx, ProfileImageInput{})
	var verr *ValidationError
	assert.True(t, errors.As(err, &verr))

	profile, err := svc.AddProfileImage(ctx, ProfileImageInput{ImageURL: "/uploads/a.png"})
	require.NoError(t, err)
	assert.Equal(t, "Portfolio Owner", profile.Name)
	assert.Equal(t, "/uploads/a.png", profile.Image)

	profile, err = svc.AddProfileImage(ctx, ProfileImageInput{ImageURL: "/uploads/b.png"})
	require.NoError(t, err)
	assert.Equal(t, "/uploads/a.png", profile.Image)

	profile, err = svc.AddProfileImage(ctx, ProfileImageInput{ImageURL: "/uploads/b.png", MainImage: true})
	require.NoError(t, err)
	assert.Equal(t, "/uploads/b.png", profile.Image)

	stored, err := svc.GetProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"/uploads/a.png", "/uploads/b.png"}, []string(stored.ProfileImages))
}

func TestSaveAboutAndContact(t *testing.T) {
	svc := NewContentService(testutil.NewStore(t), logger.Discard())
	ctx := context.Background()

	var verr *ValidationError
	_, err := svc.SaveAbout(ctx, AboutInput{Title: "About"})
	assert.True(t, errors.As(err, &verr))
	_, err = svc.SaveContact(ctx, ContactInput{Phone: strPtr("123")})
	assert.True(t, errors.As(err, &verr))

	_, err = svc.SaveAbout(ctx, AboutInput{Title: "About", Content: "v1"})
	require.NoError(t, err)
	_, err = svc.SaveAbout(ctx, AboutInput{Title: "About", Content: "v2"})
	require.NoError(t, err)
	about, err := svc.GetAbout(ctx)
	require.NoError(t, err)
	assert.Equal(t, "v2", about.Content)

	_, err = svc.SaveContact(ctx, ContactInput{Email: "me@site.dev", Address: strPtr("  ")})
	require.NoError(t, err)
	contact, err := svc.GetContact(ctx)
	require.NoError(t, err)
	assert.Equal(t, "me@site.dev", contact.Email)
	assert.Nil(t, contact.Address)
}
