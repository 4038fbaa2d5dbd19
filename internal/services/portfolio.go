package services

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Ananth-NQI/portfolio-backend/internal/models"
	"github.com/Ananth-NQI/portfolio-backend/internal/storage"
)

const (
	projectResource = "Project"
	workResource    = "Work"
	imageResource   = "Image"
)

type ProjectInput struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Tech        TechList `json:"tech"`
	Image       *string  `json:"image"`
	Github      *string  `json:"github"`
	Demo        *string  `json:"demo"`
}

type WorkInput struct {
	Company     string `json:"company" validate:"required"`
	Role        string `json:"role" validate:"required"`
	Duration    string `json:"duration" validate:"required"`
	Description string `json:"description"`
}

// ImageInput attaches a gallery image to a project or work entry.
type ImageInput struct {
	ImageURL     string  `json:"imageUrl" validate:"required"`
	Description  *string `json:"description"`
	DisplayOrder int     `json:"displayOrder"`
}

// PortfolioService manages the project and work collections and their galleries.
type PortfolioService struct {
	store storage.Store
	log   logrus.FieldLogger
}

func NewPortfolioService(store storage.Store, log logrus.FieldLogger) *PortfolioService {
	return &PortfolioService{store: store, log: log}
}

func (in *ProjectInput) normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
}

func (in ProjectInput) toModel() *models.Project {
	tech := []string(in.Tech)
	if tech == nil {
		tech = []string{}
	}
	return &models.Project{
		Title:       in.Title,
		Description: in.Description,
		Tech:        tech,
		Image:       trimmed(in.Image),
		Github:      trimmed(in.Github),
		Demo:        trimmed(in.Demo),
	}
}

func (s *PortfolioService) ListProjects(ctx context.Context) ([]models.Project, error) {
	return s.store.ListProjects(ctx)
}

func (s *PortfolioService) CreateProject(ctx context.Context, input ProjectInput) (*models.Project, error) {
	input.normalize()
	if err := validateInput(input); err != nil {
		return nil, err
	}

	project := input.toModel()
	if err := s.store.CreateProject(ctx, project); err != nil {
		return nil, err
	}
	s.log.WithField("project_id", project.ID).Info("Project created")
	return project, nil
}

func (s *PortfolioService) UpdateProject(ctx context.Context, id uint, input ProjectInput) (*models.Project, error) {
	input.normalize()
	if err := validateInput(input); err != nil {
		return nil, err
	}

	project := input.toModel()
	project.ID = id
	if err := s.store.UpdateProject(ctx, project); err != nil {
		return nil, translate(err, projectResource)
	}

	updated, err := s.store.GetProject(ctx, id)
	if err != nil {
		return nil, translate(err, projectResource)
	}
	return updated, nil
}

func (s *PortfolioService) DeleteProject(ctx context.Context, id uint) error {
	if err := s.store.DeleteProject(ctx, id); err != nil {
		return translate(err, projectResource)
	}
	s.log.WithField("project_id", id).Info("Project deleted")
	return nil
}

func (s *PortfolioService) ListProjectImages(ctx context.Context, projectID uint) ([]models.ProjectImage, error) {
	return s.store.ListProjectImages(ctx, projectID)
}

func (s *PortfolioService) AddProjectImage(ctx context.Context, projectID uint, input ImageInput) (*models.ProjectImage, error) {
	input.ImageURL = strings.TrimSpace(input.ImageURL)
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if _, err := s.store.GetProject(ctx, projectID); err != nil {
		return nil, translate(err, projectResource)
	}

	image := &models.ProjectImage{
		ProjectID:    projectID,
		ImageURL:     input.ImageURL,
		Description:  trimmed(input.Description),
		DisplayOrder: input.DisplayOrder,
	}
	if err := s.store.CreateProjectImage(ctx, image); err != nil {
		return nil, err
	}
	return image, nil
}

func (s *PortfolioService) DeleteProjectImage(ctx context.Context, projectID, imageID uint) error {
	return translate(s.store.DeleteProjectImage(ctx, projectID, imageID), imageResource)
}

func (in *WorkInput) normalize() {
	in.Company = strings.TrimSpace(in.Company)
	in.Role = strings.TrimSpace(in.Role)
	in.Duration = strings.TrimSpace(in.Duration)
	in.Description = strings.TrimSpace(in.Description)
}

func (s *PortfolioService) ListWork(ctx context.Context) ([]models.Work, error) {
	return s.store.ListWork(ctx)
}

func (s *PortfolioService) CreateWork(ctx context.Context, input WorkInput) (*models.Work, error) {
	input.normalize()
	if err := validateInput(input); err != nil {
		return nil, err
	}

	work := &models.Work{
		Company:     input.Company,
		Role:        input.Role,
		Duration:    input.Duration,
		Description: input.Description,
	}
	if err := s.store.CreateWork(ctx, work); err != nil {
		return nil, err
	}
	s.log.WithField("work_id", work.ID).Info("Work entry created")
	return work, nil
}

func (s *PortfolioService) UpdateWork(ctx context.Context, id uint, input WorkInput) (*models.Work, error) {
	input.normalize()
	if err := validateInput(input); err != nil {
		return nil, err
	}

	work := &models.Work{
		ID:          id,
		Company:     input.Company,
		Role:        input.Role,
		Duration:    input.Duration,
		Description: input.Description,
	}
	if err := s.store.UpdateWork(ctx, work); err != nil {
		return nil, translate(err, workResource)
	}

	updated, err := s.store.GetWork(ctx, id)
	if err != nil {
		return nil, translate(err, workResource)
	}
	return updated, nil
}

func (s *PortfolioService) DeleteWork(ctx context.Context, id uint) error {
	if err := s.store.DeleteWork(ctx, id); err != nil {
		return translate(err, workResource)
	}
	s.log.WithField("work_id", id).Info("Work entry deleted")
	return nil
}

func (s *PortfolioService) ListWorkImages(ctx context.Context, workID uint) ([]models.WorkImage, error) {
	return s.store.ListWorkImages(ctx, workID)
}

func (s *PortfolioService) AddWorkImage(ctx context.Context, workID uint, input ImageInput) (*models.WorkImage, error) {
	input.ImageURL = strings.TrimSpace(input.ImageURL)
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if _, err := s.store.GetWork(ctx, workID); err != nil {
		return nil, translate(err, workResource)
	}

	image := &models.WorkImage{
		WorkID:       workID,
		ImageURL:     input.ImageURL,
		Description:  trimmed(input.Description),
		DisplayOrder: input.DisplayOrder,
	}
	if err := s.store.CreateWorkImage(ctx, image); err != nil {
		return nil, err
	}
	return image, nil
}

func (s *PortfolioService) DeleteWorkImage(ctx context.Context, workID, imageID uint) error {
	return translate(s.store.DeleteWorkImage(ctx, workID, imageID), imageResource)
}
