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

func TestProjectCRUD(t *testing.T) {
	svc := NewPortfolioService(testutil.NewStore(t), logger.Discard())
	ctx := context.Background()

	var verr *ValidationError
	_, err := svc.CreateProject(ctx, ProjectInput{Title: "Site"})
	assert.True(t, errors.As(err, &verr))

	project, err := svc.CreateProject(ctx, ProjectInput{Title: "Site", Description: "Portfolio", Github: strPtr("https://github.com/x/y")})
	require.NoError(t, err)
	assert.NotNil(t, project.Tech)

	updated, err := svc.UpdateProject(ctx, project.ID, ProjectInput{Title: "Site v2", Description: "Portfolio", Tech: TechList{"Go"}})
	require.NoError(t, err)
	assert.Equal(t, "Site v2", updated.Title)
	assert.Equal(t, []string{"Go"}, []string(updated.Tech))
	assert.Nil(t, updated.Github)

	var nf *NotFoundError
	_, err = svc.UpdateProject(ctx, 999, ProjectInput{Title: "x", Description: "y"})
	assert.True(t, errors.As(err, &nf))

	list, err := svc.ListProjects(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.DeleteProject(ctx, project.ID))
	assert.True(t, errors.As(svc.DeleteProject(ctx, project.ID), &nf))
}

func TestProjectImages(t *testing.T) {
	svc := NewPortfolioService(testutil.NewStore(t), logger.Discard())
	ctx := context.Background()

	project, err := svc.CreateProject(ctx, ProjectInput{Title: "Site", Description: "Portfolio"})
	require.NoError(t, err)

	var nf *NotFoundError
	_, err = svc.AddProjectImage(ctx, 999, ImageInput{ImageURL: "/uploads/a.png"})
	assert.True(t, errors.As(err, &nf))

	var verr *ValidationError
	_, err = svc.AddProjectImage(ctx, project.ID, ImageInput{})
	assert.True(t, errors.As(err, &verr))

	second, err := svc.AddProjectImage(ctx, project.ID, ImageInput{ImageURL: "/uploads/b.png", DisplayOrder: 2})
	require.NoError(t, err)
	_, err = svc.AddProjectImage(ctx, project.ID, ImageInput{ImageURL: "/uploads/a.png", DisplayOrder: 1})
	require.NoError(t, err)

	images, err := svc.ListProjectImages(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, images, 2)
	assert.Equal(t, "/uploads/a.png", images[0].ImageURL)

	require.NoError(t, svc.DeleteProjectImage(ctx, project.ID, second.ID))
	assert.True(t, errors.As(svc.DeleteProjectImage(ctx, project.ID, second.ID), &nf))
}

func TestWorkCRUD(t *testing.T) {
	svc := NewPortfolioService(testutil.NewStore(t), logger.Discard())
	ctx := context.Background()

	var verr *ValidationError
	_, err := svc.CreateWork(ctx, WorkInput{Company: "Acme", Role: "Engineer"})
	assert.True(t, errors.As(err, &verr))

	work, err := svc.CreateWork(ctx, WorkInput{Company: "Acme", Role: "Engineer", Duration: "2020-2023"})
	require.NoError(t, err)

	updated, err := svc.UpdateWork(ctx, work.ID, WorkInput{Company: "Acme", Role: "Lead", Duration: "2020-2024", Description: "Platform"})
	require.NoError(t, err)
	assert.Equal(t, "Lead", updated.Role)

	image, err := svc.AddWorkImage(ctx, work.ID, ImageInput{ImageURL: "/uploads/w.png"})
	require.NoError(t, err)
	images, err := svc.ListWorkImages(ctx, work.ID)
	require.NoError(t, err)
	require.Len(t, images, 1)
	assert.Equal(t, image.ID, images[0].ID)

	require.NoError(t, svc.DeleteWork(ctx, work.ID))
	images, err = svc.ListWorkImages(ctx, work.ID)
	require.NoError(t, err)
	assert.Empty(t, images)

	var nf *NotFoundError
	_, err = svc.UpdateWork(ctx, work.ID, WorkInput{Company: "Acme", Role: "Lead", Duration: "x"})
	assert.True(t, errors.As(err, &nf))
}
