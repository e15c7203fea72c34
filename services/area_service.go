package services

import (
	"context"

	"knowledge-base/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AreaService reads and writes subject areas.
type AreaService struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewAreaService(db *gorm.DB, log *zap.Logger) *AreaService {
	db, log = defaults(db, log)
	return &AreaService{db: db, log: log.Named("areas")}
}

func (s *AreaService) Create(ctx context.Context, area *models.Area) error {
	return translateError("create area", s.db.WithContext(ctx).Create(area).Error)
}

func (s *AreaService) Get(ctx context.Context, code int) (*models.Area, error) {
	var area models.Area
	if err := s.db.WithContext(ctx).First(&area, "code = ?", code).Error; err != nil {
		return nil, translateError("get area", err)
	}
	return &area, nil
}

// List returns all areas, highest code first.
func (s *AreaService) List(ctx context.Context) ([]models.Area, error) {
	var areas []models.Area
	if err := s.db.WithContext(ctx).Scopes(models.OrderByArea).Find(&areas).Error; err != nil {
		return nil, translateError("list areas", err)
	}
	return areas, nil
}

// Delete removes the area. Links from authors, publications and projects go
// with it; the linked rows stay.
func (s *AreaService) Delete(ctx context.Context, code int) error {
	res := s.db.WithContext(ctx).Delete(&models.Area{}, "code = ?", code)
	if res.Error != nil {
		return translateError("delete area", res.Error)
	}
	if res.RowsAffected == 0 {
		return translateError("delete area", gorm.ErrRecordNotFound)
	}
	s.log.Debug("area deleted", zap.Int("code", code))
	return nil
}
