package storage

import (
	"context"

	"gorm.io/gorm"

	"github.com/Ananth-NQI/portfolio-backend/internal/models"
)

// Singleton content

func (s *DatabaseStore) GetProfile(ctx context.Context) (*models.Profile, error) {
	var profile models.Profile
	if err := s.db.WithContext(ctx).First(&profile, models.SingletonID).Error; err != nil {
		return nil, notFound(err)
	}
	return &profile, nil
}

func (s *DatabaseStore) SaveProfile(ctx context.Context, profile *models.Profile) error {
	profile.ID = models.SingletonID
	return s.upsertSingleton(ctx, profile)
}

func (s *DatabaseStore) GetAbout(ctx context.Context) (*models.About, error) {
	var about models.About
	if err := s.db.WithContext(ctx).First(&about, models.SingletonID).Error; err != nil {
		return nil, notFound(err)
	}
	return &about, nil
}

func (s *DatabaseStore) SaveAbout(ctx context.Context, about *models.About) error {
	about.ID = models.SingletonID
	return s.upsertSingleton(ctx, about)
}

func (s *DatabaseStore) GetContact(ctx context.Context) (*models.Contact, error) {
	var contact models.Contact
	if err := s.db.WithContext(ctx).First(&contact, models.SingletonID).Error; err != nil {
		return nil, notFound(err)
	}
	return &contact, nil
}

func (s *DatabaseStore) SaveContact(ctx context.Context, contact *models.Contact) error {
	contact.ID = models.SingletonID
	return s.upsertSingleton(ctx, contact)
}

// Project operations

func (s *DatabaseStore) ListProjects(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	err := s.db.WithContext(ctx).Order("id ASC").Find(&projects).Error
	return projects, err
}

func (s *DatabaseStore) GetProject(ctx context.Context, id uint) (*models.Project, error) {
	var project models.Project
	if err := s.db.WithContext(ctx).First(&project, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &project, nil
}

func (s *DatabaseStore) CreateProject(ctx context.Context, project *models.Project) error {
	return s.db.WithContext(ctx).Omit("Images").Create(project).Error
}

func (s *DatabaseStore) UpdateProject(ctx context.Context, project *models.Project) error {
	res := s.db.WithContext(ctx).Model(&models.Project{ID: project.ID}).
		Select("title", "description", "tech", "image", "github", "demo").
		Updates(project)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteProject removes the project and its images.
func (s *DatabaseStore) DeleteProject(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectImage{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Project{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (s *DatabaseStore) ListProjectImages(ctx context.Context, projectID uint) ([]models.ProjectImage, error) {
	var images []models.ProjectImage
	err := s.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("display_order ASC").Order("id ASC").
		Find(&images).Error
	return images, err
}

func (s *DatabaseStore) CreateProjectImage(ctx context.Context, image *models.ProjectImage) error {
	return s.db.WithContext(ctx).Create(image).Error
}

func (s *DatabaseStore) DeleteProjectImage(ctx context.Context, projectID, imageID uint) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND project_id = ?", imageID, projectID).
		Delete(&models.ProjectImage{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Work operations

func (s *DatabaseStore) ListWork(ctx context.Context) ([]models.Work, error) {
	var entries []models.Work
	err := s.db.WithContext(ctx).Order("id ASC").Find(&entries).Error
	return entries, err
}

func (s *DatabaseStore) GetWork(ctx context.Context, id uint) (*models.Work, error) {
	var work models.Work
	if err := s.db.WithContext(ctx).First(&work, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &work, nil
}

func (s *DatabaseStore) CreateWork(ctx context.Context, work *models.Work) error {
	return s.db.WithContext(ctx).Omit("Images").Create(work).Error
}

func (s *DatabaseStore) UpdateWork(ctx context.Context, work *models.Work) error {
	res := s.db.WithContext(ctx).Model(&models.Work{ID: work.ID}).
		Select("company", "role", "duration", "description").
		Updates(work)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *DatabaseStore) DeleteWork(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("work_id = ?", id).Delete(&models.WorkImage{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Work{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (s *DatabaseStore) ListWorkImages(ctx context.Context, workID uint) ([]models.WorkImage, error) {
	var images []models.WorkImage
	err := s.db.WithContext(ctx).
		Where("work_id = ?", workID).
		Order("display_order ASC").Order("id ASC").
		Find(&images).Error
	return images, err
}

func (s *DatabaseStore) CreateWorkImage(ctx context.Context, image *models.WorkImage) error {
	return s.db.WithContext(ctx).Create(image).Error
}

func (s *DatabaseStore) DeleteWorkImage(ctx context.Context, workID, imageID uint) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND work_id = ?", imageID, workID).
		Delete(&models.WorkImage{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
