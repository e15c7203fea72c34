package services

import (
	"context"

	"knowledge-base/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ProjectService reads and writes research projects.
type ProjectService struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewProjectService(db *gorm.DB, log *zap.Logger) *ProjectService {
	db, log = defaults(db, log)
	return &ProjectService{db: db, log: log.Named("projects")}
}

func (s *ProjectService) Create(ctx context.Context, project *models.Project) error {
	return translateError("create project", s.db.WithContext(ctx).Omit("Areas").Create(project).Error)
}

func (s *ProjectService) Get(ctx context.Context, name string) (*models.Project, error) {
	var project models.Project
	err := s.db.WithContext(ctx).
		Preload("Areas", models.OrderByArea).
		First(&project, "name = ?", name).Error
	if err != nil {
		return nil, translateError("get project", err)
	}
	return &project, nil
}

// List returns all projects, most recent first.
func (s *ProjectService) List(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	if err := s.db.WithContext(ctx).Scopes(models.OrderByProject).Find(&projects).Error; err != nil {
		return nil, translateError("list projects", err)
	}
	return projects, nil
}

func (s *ProjectService) AddAreas(ctx context.Context, name string, codes ...int) error {
	if _, err := s.Get(ctx, name); err != nil {
		return err
	}
	areas, err := loadTargets[models.Area](ctx, s.db, "code IN ?", codes)
	if err != nil {
		return err
	}
	return appendLinks(ctx, s.db, &models.Project{Name: name}, "Areas", areas)
}

func (s *ProjectService) Delete(ctx context.Context, name string) error {
	res := s.db.WithContext(ctx).Delete(&models.Project{}, "name = ?", name)
	if res.Error != nil {
		return translateError("delete project", res.Error)
	}
	if res.RowsAffected == 0 {
		return translateError("delete project", gorm.ErrRecordNotFound)
	}
	return nil
}
