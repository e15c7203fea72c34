package services

import (
	"context"

	"knowledge-base/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AffiliationService reads and writes institutions and their hierarchy.
type AffiliationService struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewAffiliationService(db *gorm.DB, log *zap.Logger) *AffiliationService {
	db, log = defaults(db, log)
	return &AffiliationService{db: db, log: log.Named("affiliations")}
}

func (s *AffiliationService) Create(ctx context.Context, affiliation *models.Affiliation) error {
	return translateError("create affiliation",
		s.db.WithContext(ctx).Omit("Parent").Create(affiliation).Error)
}

// Get loads the affiliation and its parent, if any.
func (s *AffiliationService) Get(ctx context.Context, scopusID int64) (*models.Affiliation, error) {
	var affiliation models.Affiliation
	err := s.db.WithContext(ctx).
		Preload("Parent").
		First(&affiliation, "scopus_id = ?", scopusID).Error
	if err != nil {
		return nil, translateError("get affiliation", err)
	}
	return &affiliation, nil
}

func (s *AffiliationService) List(ctx context.Context) ([]models.Affiliation, error) {
	var affiliations []models.Affiliation
	if err := s.db.WithContext(ctx).Scopes(models.OrderByAffiliation).Find(&affiliations).Error; err != nil {
		return nil, translateError("list affiliations", err)
	}
	return affiliations, nil
}

// Children returns the direct sub-units of scopusID.
func (s *AffiliationService) Children(ctx context.Context, scopusID int64) ([]models.Affiliation, error) {
	var children []models.Affiliation
	err := s.db.WithContext(ctx).
		Scopes(models.OrderByAffiliation).
		Where("parent_id = ?", scopusID).
		Find(&children).Error
	if err != nil {
		return nil, translateError("list affiliation children", err)
	}
	return children, nil
}

// SetParent attaches scopusID under parentID, or detaches it when parentID is nil.
func (s *AffiliationService) SetParent(ctx context.Context, scopusID int64, parentID *int64) error {
	res := s.db.WithContext(ctx).
		Model(&models.Affiliation{}).
		Where("scopus_id = ?", scopusID).
		Update("parent_id", parentID)
	if res.Error != nil {
		return translateError("set affiliation parent", res.Error)
	}
	if res.RowsAffected == 0 {
		return translateError("set affiliation parent", gorm.ErrRecordNotFound)
	}
	return nil
}

// Delete removes the affiliation. The store clears parent_id on its
// children; they are not deleted.
func (s *AffiliationService) Delete(ctx context.Context, scopusID int64) error {
	res := s.db.WithContext(ctx).Delete(&models.Affiliation{}, "scopus_id = ?", scopusID)
	if res.Error != nil {
		return translateError("delete affiliation", res.Error)
	}
	if res.RowsAffected == 0 {
		return translateError("delete affiliation", gorm.ErrRecordNotFound)
	}
	s.log.Debug("affiliation deleted", zap.Int64("scopus_id", scopusID))
	return nil
}
