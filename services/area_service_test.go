package services

import (
	"context"
	"testing"

	"knowledge-base/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAreaCRUD(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	for _, area := range []models.Area{
		{Code: 1700, Name: "Computer Science"},
		{Code: 2600, Name: "Mathematics"},
		{Code: 1100, Name: "Agricultural and Biological Sciences"},
	} {
		require.NoError(t, store.Areas.Create(ctx, &area))
	}

	err := store.Areas.Create(ctx, &models.Area{Code: 1700, Name: "Again"})
	require.ErrorIs(t, err, ErrDuplicate)

	areas, err := store.Areas.List(ctx)
	require.NoError(t, err)
	require.Len(t, areas, 3)
	assert.Equal(t, []int{2600, 1700, 1100}, []int{areas[0].Code, areas[1].Code, areas[2].Code})

	got, err := store.Areas.Get(ctx, 2600)
	require.NoError(t, err)
	assert.Equal(t, "2600 - Mathematics", got.String())

	require.NoError(t, store.Areas.Delete(ctx, 2600))
	_, err = store.Areas.Get(ctx, 2600)
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, store.Areas.Delete(ctx, 2600), ErrNotFound)
}

func TestAreaDeleteDropsLinksOnly(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	fx := seedVocabulary(t, store)

	require.NoError(t, store.Areas.Create(ctx, &models.Area{Code: 1700, Name: "Computer Science"}))

	author := &models.Author{Name: "Domain"}
	require.NoError(t, store.Authors.Create(ctx, author))
	require.NoError(t, store.Authors.AddDomains(ctx, author.ID, 1700))

	publication := newPublication(fx.article.ID, "Tagged", 2020)
	require.NoError(t, store.Publications.Create(ctx, publication))
	require.NoError(t, store.Publications.AddAreas(ctx, publication.ID, 1700))

	require.NoError(t, store.Projects.Create(ctx, &models.Project{Name: "P", Date: models.NewDate(2020, 1, 1)}))
	require.NoError(t, store.Projects.AddAreas(ctx, "P", 1700))

	require.NoError(t, store.Areas.Delete(ctx, 1700))

	gotAuthor, err := store.Authors.Get(ctx, author.ID)
	require.NoError(t, err)
	assert.Empty(t, gotAuthor.Domains)

	gotPublication, err := store.Publications.Get(ctx, publication.ID)
	require.NoError(t, err)
	assert.Empty(t, gotPublication.Areas)

	gotProject, err := store.Projects.Get(ctx, "P")
	require.NoError(t, err)
	assert.Empty(t, gotProject.Areas)
}
