package services

import (
	"knowledge-base/config"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// KnowledgeStore groups the per-entity services over one database handle.
type KnowledgeStore struct {
	Areas        *AreaService
	Affiliations *AffiliationService
	Authors      *AuthorService
	Publications *PublicationService
	Projects     *ProjectService
	Vocabulary   *VocabularyService
}

// NewKnowledgeStore constructs every service. A nil db or logger falls back to
// the process-wide config.DB and config.Log.
func NewKnowledgeStore(db *gorm.DB, log *zap.Logger) *KnowledgeStore {
	db, log = defaults(db, log)
	return &KnowledgeStore{
		Areas:        NewAreaService(db, log),
		Affiliations: NewAffiliationService(db, log),
		Authors:      NewAuthorService(db, log),
		Publications: NewPublicationService(db, log),
		Projects:     NewProjectService(db, log),
		Vocabulary:   NewVocabularyService(db, log),
	}
}

func defaults(db *gorm.DB, log *zap.Logger) (*gorm.DB, *zap.Logger) {
	if db == nil {
		db = config.DB
	}
	if log == nil {
		log = config.Log
	}
	return db, log
}
