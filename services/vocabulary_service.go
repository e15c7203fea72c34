package services

import (
	"context"
	"strings"
	"time"

	"knowledge-base/models"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	vocabularyCacheTTL     = 10 * time.Minute
	vocabularyCacheCleanup = 30 * time.Minute
)

// VocabularyService manages the controlled vocabularies (publication types
// and keywords). Lookups by name are cached in process; writes through this
// service keep the cache coherent, writes made elsewhere show up after the TTL.
type VocabularyService struct {
	db    *gorm.DB
	log   *zap.Logger
	cache *cache.Cache
}

func NewVocabularyService(db *gorm.DB, log *zap.Logger) *VocabularyService {
	db, log = defaults(db, log)
	return &VocabularyService{
		db:    db,
		log:   log.Named("vocabulary"),
		cache: cache.New(vocabularyCacheTTL, vocabularyCacheCleanup),
	}
}

func publicationTypeKey(name string) string { return "publication_type:" + name }
func keywordKey(name string) string         { return "keyword:" + name }

func (s *VocabularyService) CreatePublicationType(ctx context.Context, name string) (*models.PublicationType, error) {
	publicationType := &models.PublicationType{Name: strings.TrimSpace(name)}
	if err := s.db.WithContext(ctx).Create(publicationType).Error; err != nil {
		return nil, translateError("create publication type", err)
	}
	s.cache.SetDefault(publicationTypeKey(publicationType.Name), *publicationType)
	return publicationType, nil
}

// PublicationTypeByName resolves a type by its unique name.
func (s *VocabularyService) PublicationTypeByName(ctx context.Context, name string) (*models.PublicationType, error) {
	name = strings.TrimSpace(name)
	if cached, ok := s.cache.Get(publicationTypeKey(name)); ok {
		publicationType := cached.(models.PublicationType)
		return &publicationType, nil
	}

	var publicationType models.PublicationType
	if err := s.db.WithContext(ctx).First(&publicationType, "name = ?", name).Error; err != nil {
		return nil, translateError("get publication type", err)
	}
	s.cache.SetDefault(publicationTypeKey(name), publicationType)
	return &publicationType, nil
}

func (s *VocabularyService) ListPublicationTypes(ctx context.Context) ([]models.PublicationType, error) {
	var types []models.PublicationType
	if err := s.db.WithContext(ctx).Scopes(models.OrderByPublicationType).Find(&types).Error; err != nil {
		return nil, translateError("list publication types", err)
	}
	return types, nil
}

// DeletePublicationType removes the type. Every publication of that type is
// deleted with it by the store.
func (s *VocabularyService) DeletePublicationType(ctx context.Context, id uint) error {
	var publicationType models.PublicationType
	if err := s.db.WithContext(ctx).First(&publicationType, id).Error; err != nil {
		return translateError("delete publication type", err)
	}
	if err := s.db.WithContext(ctx).Delete(&publicationType).Error; err != nil {
		return translateError("delete publication type", err)
	}
	s.forgetPublicationType(id)
	s.log.Info("publication type deleted",
		zap.Uint("publication_type_id", id),
		zap.String("name", publicationType.Name))
	return nil
}

// forgetPublicationType drops every cached entry for the type, including
// ones stored under a name the row no longer carries.
func (s *VocabularyService) forgetPublicationType(id uint) {
	for key, item := range s.cache.Items() {
		if publicationType, ok := item.Object.(models.PublicationType); ok && publicationType.ID == id {
			s.cache.Delete(key)
		}
	}
}

func (s *VocabularyService) CreateKeyword(ctx context.Context, name string) (*models.Keyword, error) {
	keyword := &models.Keyword{Name: strings.TrimSpace(name)}
	if err := s.db.WithContext(ctx).Create(keyword).Error; err != nil {
		return nil, translateError("create keyword", err)
	}
	s.cache.SetDefault(keywordKey(keyword.Name), *keyword)
	return keyword, nil
}

func (s *VocabularyService) KeywordByName(ctx context.Context, name string) (*models.Keyword, error) {
	name = strings.TrimSpace(name)
	if cached, ok := s.cache.Get(keywordKey(name)); ok {
		keyword := cached.(models.Keyword)
		return &keyword, nil
	}

	var keyword models.Keyword
	if err := s.db.WithContext(ctx).First(&keyword, "name = ?", name).Error; err != nil {
		return nil, translateError("get keyword", err)
	}
	s.cache.SetDefault(keywordKey(name), keyword)
	return &keyword, nil
}

func (s *VocabularyService) ListKeywords(ctx context.Context) ([]models.Keyword, error) {
	var keywords []models.Keyword
	if err := s.db.WithContext(ctx).Scopes(models.OrderByKeyword).Find(&keywords).Error; err != nil {
		return nil, translateError("list keywords", err)
	}
	return keywords, nil
}

// DeleteKeyword removes the keyword and its publication links.
func (s *VocabularyService) DeleteKeyword(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	res := s.db.WithContext(ctx).Delete(&models.Keyword{}, "name = ?", name)
	if res.Error != nil {
		return translateError("delete keyword", res.Error)
	}
	if res.RowsAffected == 0 {
		return translateError("delete keyword", gorm.ErrRecordNotFound)
	}
	s.forgetKeyword(name)
	return nil
}

// forgetKeyword drops every cached entry for the keyword. Names compare
// case-insensitively, as they do under MySQL's default collation, so a
// lookup typed in another case is evicted too.
func (s *VocabularyService) forgetKeyword(name string) {
	for key, item := range s.cache.Items() {
		if keyword, ok := item.Object.(models.Keyword); ok && strings.EqualFold(keyword.Name, name) {
			s.cache.Delete(key)
		}
	}
}
