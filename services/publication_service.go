package services

import (
	"context"

	"knowledge-base/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PublicationService reads and writes bibliographic records.
type PublicationService struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewPublicationService(db *gorm.DB, log *zap.Logger) *PublicationService {
	db, log = defaults(db, log)
	return &PublicationService{db: db, log: log.Named("publications")}
}

// Create inserts the publication row. Keywords and areas are linked
// afterwards with AddKeywords and AddAreas.
func (s *PublicationService) Create(ctx context.Context, publication *models.Publication) error {
	err := s.db.WithContext(ctx).
		Omit("PublicationType", "Keywords", "Areas").
		Create(publication).Error
	return translateError("create publication", err)
}

// Get loads the publication with its type, keywords and areas.
func (s *PublicationService) Get(ctx context.Context, id uint) (*models.Publication, error) {
	var publication models.Publication
	err := s.db.WithContext(ctx).
		Preload("PublicationType").
		Preload("Keywords", models.OrderByKeyword).
		Preload("Areas", models.OrderByArea).
		First(&publication, id).Error
	if err != nil {
		return nil, translateError("get publication", err)
	}
	return &publication, nil
}

// List returns all publications, newest first.
func (s *PublicationService) List(ctx context.Context) ([]models.Publication, error) {
	var publications []models.Publication
	if err := s.db.WithContext(ctx).Scopes(models.OrderByPublication).Find(&publications).Error; err != nil {
		return nil, translateError("list publications", err)
	}
	return publications, nil
}

// FindByDOI returns the publications carrying doi. DOIs are not unique in
// the schema, so more than one row may match.
func (s *PublicationService) FindByDOI(ctx context.Context, doi string) ([]models.Publication, error) {
	var publications []models.Publication
	err := s.db.WithContext(ctx).
		Scopes(models.OrderByPublication).
		Where("doi = ?", doi).
		Find(&publications).Error
	if err != nil {
		return nil, translateError("find publications by doi", err)
	}
	return publications, nil
}

// Authors follows the author-publication link backwards.
func (s *PublicationService) Authors(ctx context.Context, id uint) ([]models.Author, error) {
	var authors []models.Author
	err := s.db.WithContext(ctx).
		Joins("JOIN knowledge_author_publications ap ON ap.author_id = knowledge_author.id").
		Where("ap.publication_id = ?", id).
		Scopes(models.OrderByAuthor).
		Find(&authors).Error
	if err != nil {
		return nil, translateError("list publication authors", err)
	}
	return authors, nil
}

func (s *PublicationService) AddKeywords(ctx context.Context, id uint, names ...string) error {
	if err := s.exists(ctx, id); err != nil {
		return err
	}
	keywords, err := loadTargets[models.Keyword](ctx, s.db, "name IN ?", names)
	if err != nil {
		return err
	}
	return appendLinks(ctx, s.db, &models.Publication{ID: id}, "Keywords", keywords)
}

func (s *PublicationService) AddAreas(ctx context.Context, id uint, codes ...int) error {
	if err := s.exists(ctx, id); err != nil {
		return err
	}
	areas, err := loadTargets[models.Area](ctx, s.db, "code IN ?", codes)
	if err != nil {
		return err
	}
	return appendLinks(ctx, s.db, &models.Publication{ID: id}, "Areas", areas)
}

func (s *PublicationService) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Publication{}, id)
	if res.Error != nil {
		return translateError("delete publication", res.Error)
	}
	if res.RowsAffected == 0 {
		return translateError("delete publication", gorm.ErrRecordNotFound)
	}
	s.log.Debug("publication deleted", zap.Uint("publication_id", id))
	return nil
}

func (s *PublicationService) exists(ctx context.Context, id uint) error {
	var n int64
	if err := s.db.WithContext(ctx).Model(&models.Publication{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return translateError("find publication", err)
	}
	if n == 0 {
		return translateError("find publication", gorm.ErrRecordNotFound)
	}
	return nil
}
