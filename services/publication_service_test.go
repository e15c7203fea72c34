package services

import (
	"context"
	"testing"

	"knowledge-base/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicationDuplicateProviderIDs(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	fx := seedVocabulary(t, store)

	first := newPublication(fx.article.ID, "Original", 2020)
	first.ScopusID = strPtr("85012345678")
	first.CienciaID = strPtr("C-42")
	require.NoError(t, store.Publications.Create(ctx, first))

	dup := newPublication(fx.review.ID, "Copy", 2021)
	dup.ScopusID = strPtr("85012345678")
	dup.CienciaID = strPtr("C-42")
	err := store.Publications.Create(ctx, dup)
	require.ErrorIs(t, err, ErrDuplicate)

	// NULL in either column never collides.
	for i := 0; i < 2; i++ {
		partial := newPublication(fx.article.ID, "Scopus only", 2022)
		partial.ScopusID = strPtr("85012345678")
		require.NoError(t, store.Publications.Create(ctx, partial))
	}

	list, err := store.Publications.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 3)
}

func TestPublicationDeleteTypeCascades(t *testing.T) {
	store, db := newTestStore(t)
	ctx := context.Background()
	fx := seedVocabulary(t, store)

	article := newPublication(fx.article.ID, "Article", 2020)
	review := newPublication(fx.review.ID, "Review", 2020)
	require.NoError(t, store.Publications.Create(ctx, article))
	require.NoError(t, store.Publications.Create(ctx, review))

	author := &models.Author{Name: "Writer"}
	require.NoError(t, store.Authors.Create(ctx, author))
	require.NoError(t, store.Authors.AddPublications(ctx, author.ID, article.ID, review.ID))

	require.NoError(t, store.Vocabulary.DeletePublicationType(ctx, fx.article.ID))

	_, err := store.Publications.Get(ctx, article.ID)
	require.ErrorIs(t, err, ErrNotFound)
	_, err = store.Publications.Get(ctx, review.ID)
	require.NoError(t, err)

	got, err := store.Authors.Get(ctx, author.ID)
	require.NoError(t, err)
	require.Len(t, got.Publications, 1)
	assert.Equal(t, "Review", got.Publications[0].Title)

	var links int64
	require.NoError(t, db.Table("knowledge_author_publications").Count(&links).Error)
	assert.Equal(t, int64(1), links)
}

func TestPublicationCreateRequiresType(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	err := store.Publications.Create(ctx, newPublication(404, "Orphan", 2020))
	require.ErrorIs(t, err, ErrForeignKey)
}

func TestPublicationListOrder(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	fx := seedVocabulary(t, store)

	for _, p := range []*models.Publication{
		newPublication(fx.article.ID, "Beta", 2021),
		newPublication(fx.article.ID, "Alpha", 2021),
		newPublication(fx.article.ID, "Gamma", 2019),
		newPublication(fx.article.ID, "Delta", 2023),
	} {
		require.NoError(t, store.Publications.Create(ctx, p))
	}

	list, err := store.Publications.List(ctx)
	require.NoError(t, err)
	var got []string
	for _, p := range list {
		got = append(got, p.String())
	}
	assert.Equal(t, []string{
		"[2023-01-15] Delta",
		"[2021-01-15] Alpha",
		"[2021-01-15] Beta",
		"[2019-01-15] Gamma",
	}, got)
}

func TestPublicationLinksAndAuthors(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	fx := seedVocabulary(t, store)

	_, err := store.Vocabulary.CreateKeyword(ctx, "ontology")
	require.NoError(t, err)
	_, err = store.Vocabulary.CreateKeyword(ctx, "graphs")
	require.NoError(t, err)
	require.NoError(t, store.Areas.Create(ctx, &models.Area{Code: 1702, Name: "Artificial Intelligence"}))

	publication := newPublication(fx.article.ID, "Knowledge graphs", 2022)
	publication.DOI = strPtr("10.1000/kg.2022")
	require.NoError(t, store.Publications.Create(ctx, publication))
	require.NoError(t, store.Publications.AddKeywords(ctx, publication.ID, "ontology", "graphs"))
	require.NoError(t, store.Publications.AddAreas(ctx, publication.ID, 1702))

	for _, name := range []string{"Zé", "Beatriz"} {
		author := &models.Author{Name: name}
		require.NoError(t, store.Authors.Create(ctx, author))
		require.NoError(t, store.Authors.AddPublications(ctx, author.ID, publication.ID))
	}

	got, err := store.Publications.Get(ctx, publication.ID)
	require.NoError(t, err)
	require.NotNil(t, got.PublicationType)
	assert.Equal(t, "Article", got.PublicationType.Name)
	require.Len(t, got.Keywords, 2)
	assert.Equal(t, "graphs", got.Keywords[0].Name)
	assert.Equal(t, "ontology", got.Keywords[1].Name)
	require.Len(t, got.Areas, 1)
	assert.Equal(t, "1702 - Artificial Intelligence", got.Areas[0].String())

	authors, err := store.Publications.Authors(ctx, publication.ID)
	require.NoError(t, err)
	require.Len(t, authors, 2)
	assert.Equal(t, "Beatriz", authors[0].Name)
	assert.Equal(t, "Zé", authors[1].Name)

	byDOI, err := store.Publications.FindByDOI(ctx, "10.1000/kg.2022")
	require.NoError(t, err)
	require.Len(t, byDOI, 1)
	assert.Equal(t, publication.ID, byDOI[0].ID)

	require.NoError(t, store.Vocabulary.DeleteKeyword(ctx, "ontology"))
	got, err = store.Publications.Get(ctx, publication.ID)
	require.NoError(t, err)
	require.Len(t, got.Keywords, 1)

	err = store.Publications.AddKeywords(ctx, publication.ID, "missing")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Publications.Delete(ctx, publication.ID))
	authors, err = store.Publications.Authors(ctx, publication.ID)
	require.NoError(t, err)
	assert.Empty(t, authors)
	require.ErrorIs(t, store.Publications.Delete(ctx, publication.ID), ErrNotFound)
}
