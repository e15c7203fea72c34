package services

import (
	"context"
	"fmt"

	"knowledge-base/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const authorPublicationsJoin = "JOIN knowledge_author_publications ap ON ap.publication_id = knowledge_publication.id"

// AuthorStats summarises an author's publications.
type AuthorStats struct {
	AuthorID     uint `json:"author_id"`
	Publications int  `json:"publications"`
	WithAbstract int  `json:"with_abstract"`
	FullText     int  `json:"full_text"`
}

// AuthorService reads and writes researcher profiles and their links.
type AuthorService struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewAuthorService(db *gorm.DB, log *zap.Logger) *AuthorService {
	db, log = defaults(db, log)
	return &AuthorService{db: db, log: log.Named("authors")}
}

// Create inserts the author row only; use the Add/Set methods for links.
func (s *AuthorService) Create(ctx context.Context, author *models.Author) error {
	err := s.db.WithContext(ctx).
		Omit("Domains", "Publications", "CurrentAffiliations", "PreviousAffiliations", "Projects").
		Create(author).Error
	return translateError("create author", err)
}

// Get loads the author with every relation, each in its default order.
func (s *AuthorService) Get(ctx context.Context, id uint) (*models.Author, error) {
	var author models.Author
	err := s.db.WithContext(ctx).
		Preload("Domains", models.OrderByArea).
		Preload("Publications", models.OrderByPublication).
		Preload("CurrentAffiliations", models.OrderByAffiliation).
		Preload("PreviousAffiliations", models.OrderByAffiliation).
		Preload("Projects", models.OrderByProject).
		First(&author, id).Error
	if err != nil {
		return nil, translateError("get author", err)
	}
	return &author, nil
}

func (s *AuthorService) List(ctx context.Context) ([]models.Author, error) {
	var authors []models.Author
	if err := s.db.WithContext(ctx).Scopes(models.OrderByAuthor).Find(&authors).Error; err != nil {
		return nil, translateError("list authors", err)
	}
	return authors, nil
}

// FindByScopusID returns every author carrying the Scopus id. More than one
// row is possible because the identifier triple does not enforce uniqueness
// of its parts.
func (s *AuthorService) FindByScopusID(ctx context.Context, scopusID int64) ([]models.Author, error) {
	return s.findBy(ctx, "scopus_id = ?", scopusID)
}

func (s *AuthorService) FindByCienciaID(ctx context.Context, cienciaID string) ([]models.Author, error) {
	if cienciaID == "" {
		return []models.Author{}, nil
	}
	return s.findBy(ctx, "ciencia_id = ?", cienciaID)
}

func (s *AuthorService) FindByOrcidID(ctx context.Context, orcidID string) ([]models.Author, error) {
	if orcidID == "" {
		return []models.Author{}, nil
	}
	return s.findBy(ctx, "orcid_id = ?", orcidID)
}

func (s *AuthorService) findBy(ctx context.Context, query string, arg any) ([]models.Author, error) {
	var authors []models.Author
	if err := s.db.WithContext(ctx).Scopes(models.OrderByAuthor).Where(query, arg).Find(&authors).Error; err != nil {
		return nil, translateError("find authors", err)
	}
	return authors, nil
}

// MarkSyncedCiencia records that the author was reconciled against Ciência Vitae.
func (s *AuthorService) MarkSyncedCiencia(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).
		Model(&models.Author{}).
		Where("id = ?", id).
		Update("synced_ciencia", true)
	if res.Error != nil {
		return translateError("mark author synced", res.Error)
	}
	if res.RowsAffected == 0 {
		return translateError("mark author synced", gorm.ErrRecordNotFound)
	}
	return nil
}

func (s *AuthorService) AddPublications(ctx context.Context, id uint, publicationIDs ...uint) error {
	if err := s.exists(ctx, id); err != nil {
		return err
	}
	publications, err := loadTargets[models.Publication](ctx, s.db, "id IN ?", publicationIDs)
	if err != nil {
		return err
	}
	return appendLinks(ctx, s.db, &models.Author{ID: id}, "Publications", publications)
}

// RemovePublications unlinks the publications; the rows themselves stay.
func (s *AuthorService) RemovePublications(ctx context.Context, id uint, publicationIDs ...uint) error {
	if len(publicationIDs) == 0 {
		return nil
	}
	publications := make([]models.Publication, len(publicationIDs))
	for i, publicationID := range publicationIDs {
		publications[i].ID = publicationID
	}
	err := s.db.WithContext(ctx).Model(&models.Author{ID: id}).Association("Publications").Delete(&publications)
	return translateError("unlink author publications", err)
}

func (s *AuthorService) AddDomains(ctx context.Context, id uint, codes ...int) error {
	if err := s.exists(ctx, id); err != nil {
		return err
	}
	areas, err := loadTargets[models.Area](ctx, s.db, "code IN ?", codes)
	if err != nil {
		return err
	}
	return appendLinks(ctx, s.db, &models.Author{ID: id}, "Domains", areas)
}

func (s *AuthorService) AddProjects(ctx context.Context, id uint, names ...string) error {
	if err := s.exists(ctx, id); err != nil {
		return err
	}
	projects, err := loadTargets[models.Project](ctx, s.db, "name IN ?", names)
	if err != nil {
		return err
	}
	return appendLinks(ctx, s.db, &models.Author{ID: id}, "Projects", projects)
}

// SetCurrentAffiliations replaces the author's current affiliations.
func (s *AuthorService) SetCurrentAffiliations(ctx context.Context, id uint, scopusIDs ...int64) error {
	return s.replaceAffiliations(ctx, id, "CurrentAffiliations", scopusIDs)
}

// SetPreviousAffiliations replaces the author's previous affiliations.
func (s *AuthorService) SetPreviousAffiliations(ctx context.Context, id uint, scopusIDs ...int64) error {
	return s.replaceAffiliations(ctx, id, "PreviousAffiliations", scopusIDs)
}

func (s *AuthorService) replaceAffiliations(ctx context.Context, id uint, relation string, scopusIDs []int64) error {
	if err := s.exists(ctx, id); err != nil {
		return err
	}
	association := s.db.WithContext(ctx).Model(&models.Author{ID: id}).Association(relation)
	if len(scopusIDs) == 0 {
		return translateError("clear author "+relation, association.Clear())
	}
	affiliations, err := loadTargets[models.Affiliation](ctx, s.db, "scopus_id IN ?", scopusIDs)
	if err != nil {
		return err
	}
	return translateError("replace author "+relation, association.Replace(&affiliations))
}

// Delete removes the author and its link rows.
func (s *AuthorService) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Author{}, id)
	if res.Error != nil {
		return translateError("delete author", res.Error)
	}
	if res.RowsAffected == 0 {
		return translateError("delete author", gorm.ErrRecordNotFound)
	}
	s.log.Debug("author deleted", zap.Uint("author_id", id))
	return nil
}

// Stats loads the author's publications and counts them with the model
// accessors.
func (s *AuthorService) Stats(ctx context.Context, id uint) (*AuthorStats, error) {
	var author models.Author
	err := s.db.WithContext(ctx).
		Preload("Publications", models.OrderByPublication).
		First(&author, id).Error
	if err != nil {
		return nil, translateError("author stats", err)
	}
	return &AuthorStats{
		AuthorID:     author.ID,
		Publications: len(author.Publications),
		WithAbstract: author.PublicationsAbstract(),
		FullText:     author.PublicationsFulltext(),
	}, nil
}

// CountWithAbstract counts the author's publications with a non-empty
// abstract without loading them.
func (s *AuthorService) CountWithAbstract(ctx context.Context, id uint) (int64, error) {
	return s.countPublications(ctx, id, "knowledge_publication.abstract <> ?", "")
}

// CountFullText counts the author's publications whose full text is available.
func (s *AuthorService) CountFullText(ctx context.Context, id uint) (int64, error) {
	return s.countPublications(ctx, id, "knowledge_publication.available = ?", true)
}

func (s *AuthorService) countPublications(ctx context.Context, id uint, cond string, arg any) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).
		Model(&models.Publication{}).
		Joins(authorPublicationsJoin).
		Where("ap.author_id = ?", id).
		Where(cond, arg).
		Count(&n).Error
	if err != nil {
		return 0, translateError("count author publications", err)
	}
	return n, nil
}

func (s *AuthorService) exists(ctx context.Context, id uint) error {
	var n int64
	if err := s.db.WithContext(ctx).Model(&models.Author{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return translateError("find author", err)
	}
	if n == 0 {
		return translateError(fmt.Sprintf("author %d", id), gorm.ErrRecordNotFound)
	}
	return nil
}
